package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/lenslane/backend/order/internal/dal/postgres"
	"github.com/lenslane/backend/order/internal/service/models/orderitem"
)

// OrderItemDal represents the order item data access layer model.
type OrderItemDal struct {
	Id              int64     `db:"id"`
	OrderId         int64     `db:"order_id"`
	ProductId       int64     `db:"product_id"`
	ProductName     string    `db:"product_name"`
	ProductImage    string    `db:"product_image"`
	Quantity        int       `db:"quantity"`
	UnitPriceCents  int64     `db:"unit_price_cents"`
	TotalPriceCents int64     `db:"total_price_cents"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// ToModel converts OrderItemDal to the service layer OrderItem model.
func (oi *OrderItemDal) ToModel() *orderitem.OrderItem {
	return &orderitem.OrderItem{
		ID:              oi.Id,
		OrderID:         oi.OrderId,
		ProductID:       oi.ProductId,
		ProductName:     oi.ProductName,
		ProductImage:    oi.ProductImage,
		Quantity:        oi.Quantity,
		UnitPriceCents:  oi.UnitPriceCents,
		TotalPriceCents: oi.TotalPriceCents,
		CreatedAt:       oi.CreatedAt,
		UpdatedAt:       oi.UpdatedAt,
	}
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.Conn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts multiple order items and returns them with generated IDs.
// Uses unnest over parallel arrays so the whole batch is a single statement.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	orderItems []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(orderItems) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	sql := `
		INSERT INTO order_items (
			order_id,
			product_id,
			product_name,
			product_image,
			quantity,
			unit_price_cents,
			total_price_cents,
			created_at,
			updated_at
		)
		SELECT
			order_id,
			product_id,
			product_name,
			product_image,
			quantity,
			unit_price_cents,
			total_price_cents,
			created_at,
			updated_at
		FROM unnest(
			$1::bigint[], $2::bigint[], $3::text[], $4::text[], $5::int[],
			$6::bigint[], $7::bigint[], $8::timestamptz[], $9::timestamptz[]
		) AS t(
			order_id, product_id, product_name, product_image, quantity,
			unit_price_cents, total_price_cents, created_at, updated_at
		)
		RETURNING
			id, order_id, product_id, product_name, product_image, quantity,
			unit_price_cents, total_price_cents, created_at, updated_at
	`

	orderIds := make([]int64, len(orderItems))
	productIds := make([]int64, len(orderItems))
	productNames := make([]string, len(orderItems))
	productImages := make([]string, len(orderItems))
	quantities := make([]int32, len(orderItems))
	unitPrices := make([]int64, len(orderItems))
	totalPrices := make([]int64, len(orderItems))
	createdAts := make([]time.Time, len(orderItems))
	updatedAts := make([]time.Time, len(orderItems))

	for i, oi := range orderItems {
		orderIds[i] = oi.OrderID
		productIds[i] = oi.ProductID
		productNames[i] = oi.ProductName
		productImages[i] = oi.ProductImage
		quantities[i] = int32(oi.Quantity)
		unitPrices[i] = oi.UnitPriceCents
		totalPrices[i] = oi.TotalPriceCents
		createdAts[i] = oi.CreatedAt
		updatedAts[i] = oi.UpdatedAt
	}

	rows, err := r.conn.Query(ctx, sql,
		orderIds,
		productIds,
		productNames,
		productImages,
		quantities,
		unitPrices,
		totalPrices,
		createdAts,
		updatedAts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// Query retrieves order items based on filter criteria.
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	query := r.sb.
		Select(
			"id",
			"order_id",
			"product_id",
			"product_name",
			"product_image",
			"quantity",
			"unit_price_cents",
			"total_price_cents",
			"created_at",
			"updated_at",
		).
		From("order_items")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.OrderIds) > 0 {
		query = query.Where(sq.Eq{"order_id": filter.OrderIds})
	}

	if len(filter.ProductIds) > 0 {
		query = query.Where(sq.Eq{"product_id": filter.ProductIds})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func collectItems(rows pgx.Rows) ([]orderitem.OrderItem, error) {
	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal

		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.ProductName,
			&dal.ProductImage,
			&dal.Quantity,
			&dal.UnitPriceCents,
			&dal.TotalPriceCents,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		result = append(result, *dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
