package iorderrepo

import (
	"context"
	"errors"

	"github.com/lenslane/backend/order/internal/service/models/order"
)

// ErrOrderNotFound is returned when no order matches the given id.
var ErrOrderNotFound = errors.New("order not found")

// IOrderRepository is an interface for the order postgres repository.
type IOrderRepository interface {
	// Insert creates the order header and returns it with the generated id,
	// order number and timestamps filled in.
	Insert(ctx context.Context, o order.Order) (*order.Order, error)

	// Query retrieves orders matching the filter, newest first.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)

	// Update applies the non-nil fields of upd and bumps updated_at.
	Update(ctx context.Context, id int64, upd order.UpdateOrderModel) (*order.Order, error)

	// Delete removes the order header. Line items cascade in the database.
	Delete(ctx context.Context, id int64) (bool, error)
}
