package order

import (
	"time"

	"github.com/lenslane/backend/order/internal/service/models/orderitem"
	"github.com/lenslane/backend/order/internal/service/models/shippingzone"
)

// Order represents an order header in the system.
type Order struct {
	ID               int64                      `json:"id"`
	OrderNumber      string                     `json:"orderNumber"`
	CustomerName     string                     `json:"customerName"`
	CustomerWhatsapp string                     `json:"customerWhatsapp"`
	CustomerEmail    string                     `json:"customerEmail,omitempty"`
	CustomerAddress  string                     `json:"customerAddress,omitempty"`
	Notes            string                     `json:"notes,omitempty"`
	ItemsTotalCents  int64                      `json:"itemsTotalCents"`
	ShippingFeeCents int64                      `json:"shippingFeeCents"`
	TotalCents       int64                      `json:"totalCents"`
	ShippingCityID   int64                      `json:"shippingCityId"`
	Status           Status                     `json:"status"`
	CreatedAt        time.Time                  `json:"createdAt"`
	UpdatedAt        time.Time                  `json:"updatedAt"`
	OrderItems       []orderitem.OrderItem      `json:"orderItems"`
	ShippingZone     *shippingzone.ShippingZone `json:"shippingZone,omitempty"`
}
