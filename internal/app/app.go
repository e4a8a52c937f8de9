package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lenslane/backend/order/internal/dal/postgres"
	"github.com/lenslane/backend/order/internal/dal/rabbitmq"
	outboxrepo "github.com/lenslane/backend/order/internal/dal/repositories/outbox/postgres"
	"github.com/lenslane/backend/order/internal/otel"
	"github.com/lenslane/backend/order/internal/service/services/ordersvc"
	httptransport "github.com/lenslane/backend/order/internal/transport/http"
	outboxworker "github.com/lenslane/backend/order/internal/worker/outbox"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	postgresClient *postgres.Client
	rabbitMqClient *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()
	rabbitMqClient := rabbitmq.MustNewClient()

	mustDeclareQueues(rabbitMqClient)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)

	transport := httptransport.NewHTTPTransport(orderSvc)
	transport.RegisterRoutes()

	outboxWorker := outboxworker.NewWorker(
		outboxrepo.NewOutboxRepository(postgresClient.Pool()),
		rabbitMqClient,
	)

	return &App{
		orderSvc:       orderSvc,
		transport:      transport,
		outboxWorker:   outboxWorker,
		postgresClient: postgresClient,
		rabbitMqClient: rabbitMqClient,
		otelController: otelController,
	}
}

func mustDeclareQueues(client *rabbitmq.Client) {
	for _, name := range []string{ordersvc.QueueOrderCreated, ordersvc.QueueOrderCancelled} {
		if _, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
			Name:    name,
			Durable: true,
		}); err != nil {
			panic(err)
		}
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		slog.Info("Starting outbox worker")
		a.outboxWorker.Start(ctx)
	}()

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown stops all application components in order: outbox worker,
// HTTP server, RabbitMQ, PostgreSQL and the trace provider.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.outboxWorker.Stop()
	slog.Info("Outbox worker stopped gracefully")

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider shutdown error", "error", err)
	} else {
		slog.Info("Otel trace provider stopped gracefully")
	}

	slog.Info("Application shutdown complete")
}
