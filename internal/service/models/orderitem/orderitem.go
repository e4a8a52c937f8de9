package orderitem

import (
	"time"
)

// OrderItem represents a product line within an order. Product name and image
// are denormalized at order time so historical orders stay displayable even
// if the catalog record later changes.
type OrderItem struct {
	ID              int64     `json:"id"`
	OrderID         int64     `json:"orderId"`
	ProductID       int64     `json:"productId"`
	ProductName     string    `json:"productName"`
	ProductImage    string    `json:"productImage"`
	Quantity        int       `json:"quantity"`
	UnitPriceCents  int64     `json:"unitPriceCents"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
