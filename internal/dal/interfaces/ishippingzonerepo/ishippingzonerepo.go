package ishippingzonerepo

import (
	"context"
	"errors"

	"github.com/lenslane/backend/order/internal/service/models/shippingzone"
)

// ErrZoneNotFound is returned when no shipping zone matches the given id.
var ErrZoneNotFound = errors.New("shipping zone not found")

// IShippingZoneRepository is an interface for the shipping zone postgres repository.
type IShippingZoneRepository interface {
	GetByID(ctx context.Context, id int64) (*shippingzone.ShippingZone, error)
	GetByIDs(ctx context.Context, ids []int64) ([]shippingzone.ShippingZone, error)
}
