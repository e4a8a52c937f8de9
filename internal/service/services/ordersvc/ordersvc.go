package ordersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lenslane/backend/order/internal/dal/interfaces/iorderitemrepo"
	"github.com/lenslane/backend/order/internal/dal/interfaces/iorderrepo"
	"github.com/lenslane/backend/order/internal/dal/interfaces/ioutboxrepo"
	"github.com/lenslane/backend/order/internal/dal/interfaces/iproductrepo"
	"github.com/lenslane/backend/order/internal/dal/interfaces/ishippingzonerepo"
	"github.com/lenslane/backend/order/internal/dal/postgres"
	"github.com/lenslane/backend/order/internal/dal/uow"
	"github.com/lenslane/backend/order/internal/service/models/order"
	"github.com/lenslane/backend/order/internal/service/models/orderitem"
	"github.com/lenslane/backend/order/internal/service/models/outbox"
	"github.com/lenslane/backend/order/internal/service/models/product"
	"github.com/spf13/viper"
)

// Queues order events are staged for.
const (
	QueueOrderCreated   = "oms.order.created"
	QueueOrderCancelled = "oms.order.cancelled"
)

// OrderService is a service for placing and managing orders.
type OrderService struct {
	pgClient *postgres.Client
	newUOWFn func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	ProductRepository() iproductrepo.IProductRepository
	ShippingZoneRepository() ishippingzonerepo.IShippingZoneRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

func (s *OrderService) newUOW() unitOfWork {
	if s.newUOWFn != nil {
		return s.newUOWFn()
	}

	return uow.NewUnitOfWork(s.pgClient)
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithUnitOfWorkFactory overrides how units of work are created. Used to
// inject fakes in tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOWFn = factory
	}
}

// PlaceOrder validates the request and runs the whole placement as one
// transaction: zone resolution, stock check, header insert, line item insert,
// conditional stock decrement and the order.created outbox event. Any failure
// rolls everything back, so no partial order is ever observable and stock is
// only decremented for orders that commit.
func (s *OrderService) PlaceOrder(ctx context.Context, ord order.Order) (*order.Order, error) {
	if err := validatePlacement(&ord); err != nil {
		return nil, err
	}

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer work.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := s.checkInventory(ctx, work, ord.OrderItems); err != nil {
		return nil, err
	}

	zone, err := work.ShippingZoneRepository().GetByID(ctx, ord.ShippingCityID)
	if err != nil {
		if errors.Is(err, ishippingzonerepo.ErrZoneNotFound) {
			return nil, ErrShippingZoneUnavailable
		}

		return nil, err
	}
	if !zone.IsActive {
		return nil, ErrShippingZoneUnavailable
	}

	var itemsTotal int64
	for i := range ord.OrderItems {
		item := &ord.OrderItems[i]
		item.TotalPriceCents = item.UnitPriceCents * int64(item.Quantity)
		itemsTotal += item.TotalPriceCents
	}

	ord.ItemsTotalCents = itemsTotal
	ord.ShippingFeeCents = zone.ShippingFeeCents
	ord.TotalCents = itemsTotal + zone.ShippingFeeCents
	ord.Status = order.StatusPending
	ord.CreatedAt = now
	ord.UpdatedAt = now

	inserted, err := work.OrderRepository().Insert(ctx, ord)
	if err != nil {
		return nil, err
	}

	for i := range ord.OrderItems {
		ord.OrderItems[i].OrderID = inserted.ID
		ord.OrderItems[i].CreatedAt = now
		ord.OrderItems[i].UpdatedAt = now
	}

	insertedItems, err := work.OrderItemRepository().BulkInsert(ctx, ord.OrderItems)
	if err != nil {
		return nil, err
	}
	inserted.OrderItems = insertedItems

	// Conditional decrement inside the same transaction. A false return means
	// a concurrent order consumed the stock after our read; the rollback
	// discards the header and items along with it.
	for _, item := range insertedItems {
		ok, err := work.ProductRepository().DecrementStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &InsufficientStockError{
				ProductName: item.ProductName,
				Requested:   item.Quantity,
			}
		}
	}

	inserted.ShippingZone = zone

	if err := s.stageOrderEvent(ctx, work, QueueOrderCreated, inserted, now); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order placement: %w", err)
	}

	return inserted, nil
}

// checkInventory verifies every requested line against current stock,
// failing fast on the first violation so the error names one product.
func (s *OrderService) checkInventory(
	ctx context.Context,
	work unitOfWork,
	items []orderitem.OrderItem,
) error {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := work.ProductRepository().GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	byID := make(map[int64]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, item := range items {
		p, ok := byID[item.ProductID]
		if !ok {
			return &ProductNotFoundError{ProductName: item.ProductName}
		}
		if item.Quantity > p.Quantity {
			return &InsufficientStockError{
				ProductName: item.ProductName,
				Requested:   item.Quantity,
				Available:   p.Quantity,
			}
		}
	}

	return nil
}

// GetOrders retrieves orders matching the filter, newest first, each expanded
// with its line items and shipping zone.
func (s *OrderService) GetOrders(
	ctx context.Context,
	filter order.QueryOrdersModel,
) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderIds := make([]int64, 0, len(orders))
	zoneIds := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIds = append(orderIds, o.ID)
		zoneIds = append(zoneIds, o.ShippingCityID)
	}

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{OrderIds: orderIds})
	if err != nil {
		return nil, err
	}

	zones, err := work.ShippingZoneRepository().GetByIDs(ctx, zoneIds)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
		for j := range zones {
			if zones[j].ID == orders[i].ShippingCityID {
				orders[i].ShippingZone = &zones[j]
				break
			}
		}
	}

	return orders, nil
}

// GetOrder retrieves a single order with its line items and shipping zone.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	orders, err := s.GetOrders(ctx, order.QueryOrdersModel{Ids: []int64{id}})
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}

	return &orders[0], nil
}

// UpdateOrder applies a status and/or notes change. Any of the enumerated
// statuses is accepted regardless of the current one; monetary fields are
// never recomputed.
func (s *OrderService) UpdateOrder(
	ctx context.Context,
	id int64,
	upd order.UpdateOrderModel,
) (*order.Order, error) {
	work := s.newUOW()

	updated, err := work.OrderRepository().Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, iorderrepo.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}

		return nil, err
	}

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{OrderIds: []int64{id}})
	if err != nil {
		return nil, err
	}
	updated.OrderItems = items

	return updated, nil
}

// DeleteOrder removes the order and restores stock for each of its lines in
// one transaction, staging an order.cancelled event alongside. Restoring a
// product that has since left the catalog is logged and skipped.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer work.Rollback(ctx) //nolint:errcheck // no-op after commit

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{Ids: []int64{id}})
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return ErrOrderNotFound
	}
	ord := orders[0]

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{OrderIds: []int64{id}})
	if err != nil {
		return err
	}

	for _, item := range items {
		ok, err := work.ProductRepository().RestoreStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			slog.WarnContext(ctx, "Product gone from catalog, skipping stock restoration",
				"order_id", id,
				"product_id", item.ProductID,
				"quantity", item.Quantity,
			)
		}
	}

	ord.OrderItems = items
	if err := s.stageOrderEvent(ctx, work, QueueOrderCancelled, &ord, now); err != nil {
		return err
	}

	deleted, err := work.OrderRepository().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrOrderNotFound
	}

	if err := work.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order deletion: %w", err)
	}

	return nil
}

// stageOrderEvent writes an order event into the outbox within the current
// transaction; the outbox worker publishes it after commit.
func (s *OrderService) stageOrderEvent(
	ctx context.Context,
	work unitOfWork,
	queue string,
	ord *order.Order,
	now time.Time,
) error {
	payload, err := json.Marshal(ord)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	maxRetries := viper.GetInt("rabbitmq.outbox.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	return work.OutboxRepository().Insert(ctx, outbox.OutboxMessage{
		QueueName:   queue,
		RoutingKey:  queue,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  maxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
}

func validatePlacement(ord *order.Order) error {
	if strings.TrimSpace(ord.CustomerName) == "" ||
		strings.TrimSpace(ord.CustomerWhatsapp) == "" ||
		ord.ShippingCityID <= 0 ||
		len(ord.OrderItems) == 0 {
		return ErrMissingRequiredFields
	}

	whatsapp, err := order.NormalizeWhatsapp(ord.CustomerWhatsapp)
	if err != nil {
		return err
	}
	ord.CustomerWhatsapp = whatsapp

	for _, item := range ord.OrderItems {
		if item.ProductID <= 0 || item.Quantity <= 0 || item.UnitPriceCents < 0 {
			return ErrMissingRequiredFields
		}
	}

	return nil
}
