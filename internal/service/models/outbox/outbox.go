package outbox

import (
	"time"
)

// OutboxMessage is an order event staged in the database within the same
// transaction as the write it describes, to be published to RabbitMQ by the
// outbox worker.
type OutboxMessage struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}
