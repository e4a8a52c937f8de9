package iproductrepo

import (
	"context"

	"github.com/lenslane/backend/order/internal/service/models/product"
)

// IProductRepository is the slice of the catalog this service touches: stock
// reads plus conditional stock mutations.
type IProductRepository interface {
	// GetByIDs returns the products that exist among the given ids. Callers
	// detect missing products by comparing against the requested set.
	GetByIDs(ctx context.Context, ids []int64) ([]product.Product, error)

	// DecrementStock atomically subtracts quantity from the product's stock,
	// but only if enough stock remains. Returns false when the precondition
	// did not hold (missing product or insufficient stock).
	DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error)

	// RestoreStock adds quantity back to the product's stock. Returns false
	// when the product no longer exists.
	RestoreStock(ctx context.Context, productID int64, quantity int) (bool, error)
}
