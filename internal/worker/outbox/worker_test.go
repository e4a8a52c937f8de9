package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lenslane/backend/order/internal/service/models/outbox"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOutboxRepo implements ioutboxrepo.IOutboxRepository for testing.
type mockOutboxRepo struct {
	mu sync.Mutex

	Pending    []outbox.OutboxMessage
	PendingErr error

	DeletedIDs []int64

	RetryID    int64
	RetryCount int
	RetryErr   string
	NextRetry  time.Time
}

func (m *mockOutboxRepo) Insert(_ context.Context, _ outbox.OutboxMessage) error {
	return nil
}

func (m *mockOutboxRepo) GetPendingMessages(_ context.Context, _ int) ([]outbox.OutboxMessage, error) {
	return m.Pending, m.PendingErr
}

func (m *mockOutboxRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletedIDs = append(m.DeletedIDs, id)
	return nil
}

func (m *mockOutboxRepo) UpdateRetry(_ context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RetryID = id
	m.RetryCount = retryCount
	m.RetryErr = lastError
	m.NextRetry = nextRetryAt
	return nil
}

// mockPublisher implements the publisher interface for testing.
type mockPublisher struct {
	mu        sync.Mutex
	Err       error
	Published []amqp.Publishing
	Keys      []string
}

func (m *mockPublisher) Publish(_, routingKey string, msg amqp.Publishing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Published = append(m.Published, msg)
	m.Keys = append(m.Keys, routingKey)
	return nil
}

func TestProcessMessages_PublishesAndDeletes(t *testing.T) {
	repo := &mockOutboxRepo{
		Pending: []outbox.OutboxMessage{
			{ID: 1, RoutingKey: "oms.order.created", ContentType: "application/json", Payload: []byte(`{"id":1}`)},
			{ID: 2, RoutingKey: "oms.order.cancelled", ContentType: "application/json", Payload: []byte(`{"id":2}`)},
		},
	}
	pub := &mockPublisher{}
	w := NewWorker(repo, pub)

	w.processMessages(context.Background())

	require.Len(t, pub.Published, 2)
	assert.ElementsMatch(t, []string{"oms.order.created", "oms.order.cancelled"}, pub.Keys)
	assert.ElementsMatch(t, []int64{1, 2}, repo.DeletedIDs)
	assert.Zero(t, repo.RetryID, "no retries on success")
}

func TestProcessMessages_SchedulesRetryOnPublishFailure(t *testing.T) {
	repo := &mockOutboxRepo{
		Pending: []outbox.OutboxMessage{
			{ID: 7, RoutingKey: "oms.order.created", RetryCount: 1},
		},
	}
	pub := &mockPublisher{Err: errors.New("broker unavailable")}
	w := NewWorker(repo, pub)

	before := time.Now()
	w.processMessages(context.Background())

	assert.Empty(t, repo.DeletedIDs)
	assert.Equal(t, int64(7), repo.RetryID)
	assert.Equal(t, 2, repo.RetryCount)
	assert.Equal(t, "broker unavailable", repo.RetryErr)
	assert.True(t, repo.NextRetry.After(before), "next retry must be in the future")
}

func TestStartStop(t *testing.T) {
	repo := &mockOutboxRepo{}
	w := NewWorker(repo, &mockPublisher{})

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	w.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
