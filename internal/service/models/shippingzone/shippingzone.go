package shippingzone

import (
	"time"
)

// ShippingZone is a named destination with a flat delivery fee. Only active
// zones may be selected at order time; an order keeps the fee it captured
// even if the zone is deactivated later.
type ShippingZone struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	NameAr           string    `json:"nameAr,omitempty"`
	ShippingFeeCents int64     `json:"shippingFeeCents"`
	IsActive         bool      `json:"isActive"`
	SortOrder        int       `json:"sortOrder"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
