package createorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lenslane/backend/order/internal/service/models/order"
	"github.com/lenslane/backend/order/internal/service/models/orderitem"
	"github.com/lenslane/backend/order/internal/service/services/ordersvc"
	"github.com/lenslane/backend/order/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, ord order.Order) (*order.Order, error)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Mirrors order.NormalizeWhatsapp: digits only, optional leading plus,
	// whitespace ignored.
	_ = v.RegisterValidation("whatsapp", func(fl validator.FieldLevel) bool {
		_, err := order.NormalizeWhatsapp(fl.Field().String())
		return err == nil
	})

	return v
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	ProductID      int64  `json:"productId"      validate:"gt=0"`
	ProductName    string `json:"productName"    validate:"required"`
	ProductImage   string `json:"productImage"`
	Quantity       int    `json:"quantity"       validate:"gt=0"`
	UnitPriceCents int64  `json:"unitPriceCents" validate:"gte=0"`
}

// toModel converts itemInCreateOrderRequest to orderitem.OrderItem.
func (r *itemInCreateOrderRequest) toModel() orderitem.OrderItem {
	return orderitem.OrderItem{
		ProductID:      r.ProductID,
		ProductName:    r.ProductName,
		ProductImage:   r.ProductImage,
		Quantity:       r.Quantity,
		UnitPriceCents: r.UnitPriceCents,
	}
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	CustomerName     string                     `json:"customerName"     validate:"required"`
	CustomerWhatsapp string                     `json:"customerWhatsapp" validate:"required,whatsapp"`
	CustomerEmail    string                     `json:"customerEmail"    validate:"omitempty,email"`
	CustomerAddress  string                     `json:"customerAddress"`
	Notes            string                     `json:"notes"`
	ShippingCityID   int64                      `json:"shippingCityId"   validate:"gt=0"`
	Items            []itemInCreateOrderRequest `json:"items"            validate:"required,min=1,dive"`
}

// Validate validates the create order request. Format failures on the
// whatsapp field surface as their own error; everything else collapses into
// the field-agnostic required-fields error.
func (r *createOrderRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Tag() == "whatsapp" {
				return order.ErrInvalidWhatsapp
			}
		}
	}

	return ordersvc.ErrMissingRequiredFields
}

// toModel converts createOrderRequest to order.Order.
func (r *createOrderRequest) toModel() order.Order {
	items := make([]orderitem.OrderItem, len(r.Items))
	for i := range r.Items {
		items[i] = r.Items[i].toModel()
	}

	return order.Order{
		CustomerName:     r.CustomerName,
		CustomerWhatsapp: r.CustomerWhatsapp,
		CustomerEmail:    r.CustomerEmail,
		CustomerAddress:  r.CustomerAddress,
		Notes:            r.Notes,
		ShippingCityID:   r.ShippingCityID,
		OrderItems:       items,
	}
}

type createOrderResponse struct {
	Success bool         `json:"success"`
	Order   *order.Order `json:"order"`
}

// CreateOrder handles the order placement request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.ErrorContext(r.Context(), "Error decoding request body for create order", "error", err)
		response.Error(w, r, ordersvc.ErrMissingRequiredFields)

		return
	}

	if err := req.Validate(); err != nil {
		slog.ErrorContext(r.Context(), "Error validating request body for create order", "error", err)
		response.Error(w, r, err)

		return
	}

	placed, err := service.PlaceOrder(r.Context(), req.toModel())
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, http.StatusCreated, createOrderResponse{Success: true, Order: placed})
}
