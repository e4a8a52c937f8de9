package ordersvc

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRequiredFields is returned when customer name, whatsapp,
	// shipping zone or line items are absent from a placement request.
	ErrMissingRequiredFields = errors.New("required fields missing")

	// ErrOrderNotFound is returned when no order matches the given id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrProductNotFound is the sentinel behind ProductNotFoundError.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock is the sentinel behind InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrShippingZoneUnavailable is returned when the requested zone does
	// not exist or is inactive. Placement fails closed rather than falling
	// back to a zero fee.
	ErrShippingZoneUnavailable = errors.New("shipping zone not found or inactive")
)

// ProductNotFoundError names the product a placement request referenced that
// does not exist in the catalog.
type ProductNotFoundError struct {
	ProductName string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %q not found", e.ProductName)
}

func (e *ProductNotFoundError) Unwrap() error {
	return ErrProductNotFound
}

// InsufficientStockError names the under-stocked product together with the
// requested and available quantities.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"insufficient stock for product %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available,
	)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
