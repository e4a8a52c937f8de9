package product

import (
	"time"
)

// Product is the slice of the catalog record this service works with. The
// order flow reads quantity for validation and mutates it through conditional
// increments and decrements; all other catalog fields are owned elsewhere.
type Product struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Image      string    `json:"image"`
	PriceCents int64     `json:"priceCents"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
