package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lenslane/backend/order/internal/dal/postgres"
	"github.com/lenslane/backend/order/internal/service/models/product"
)

// PostgresProductRepository gives the order flow its view of the catalog:
// stock reads and conditional stock mutations. Other product fields are
// managed by the catalog admin flows, not here.
type PostgresProductRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn postgres.Conn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetByIDs returns the products that exist among the given ids.
func (r *PostgresProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]product.Product, error) {
	if len(ids) == 0 {
		return []product.Product{}, nil
	}

	sql, args, err := r.sb.
		Select("id", "name", "image", "price_cents", "quantity", "created_at", "updated_at").
		From("products").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		var p product.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Image, &p.PriceCents, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result = append(result, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// DecrementStock subtracts quantity from the product's stock in a single
// conditional update. The quantity >= N guard closes the check-then-act race:
// two concurrent orders can never drive stock negative.
func (r *PostgresProductRepository) DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error) {
	sql, args, err := r.sb.
		Update("products").
		Set("quantity", sq.Expr("quantity - ?", quantity)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": productID}).
		Where(sq.Expr("quantity >= ?", quantity)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build decrement query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock for product %d: %w", productID, err)
	}

	return tag.RowsAffected() > 0, nil
}

// RestoreStock adds quantity back to the product's stock.
func (r *PostgresProductRepository) RestoreStock(ctx context.Context, productID int64, quantity int) (bool, error) {
	sql, args, err := r.sb.
		Update("products").
		Set("quantity", sq.Expr("quantity + ?", quantity)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": productID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build restore query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("failed to restore stock for product %d: %w", productID, err)
	}

	return tag.RowsAffected() > 0, nil
}
