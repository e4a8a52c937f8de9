package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/lenslane/backend/order/internal/dal/interfaces/iorderrepo"
	"github.com/lenslane/backend/order/internal/dal/postgres"
	"github.com/lenslane/backend/order/internal/service/models/order"
	"github.com/lenslane/backend/order/internal/service/models/orderitem"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id               int64     `db:"id"`
	OrderNumber      string    `db:"order_number"`
	CustomerName     string    `db:"customer_name"`
	CustomerWhatsapp string    `db:"customer_whatsapp"`
	CustomerEmail    string    `db:"customer_email"`
	CustomerAddress  string    `db:"customer_address"`
	Notes            string    `db:"notes"`
	ItemsTotalCents  int64     `db:"items_total_cents"`
	ShippingFeeCents int64     `db:"shipping_fee_cents"`
	TotalCents       int64     `db:"total_cents"`
	ShippingCityId   int64     `db:"shipping_city_id"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:               o.Id,
		OrderNumber:      o.OrderNumber,
		CustomerName:     o.CustomerName,
		CustomerWhatsapp: o.CustomerWhatsapp,
		CustomerEmail:    o.CustomerEmail,
		CustomerAddress:  o.CustomerAddress,
		Notes:            o.Notes,
		ItemsTotalCents:  o.ItemsTotalCents,
		ShippingFeeCents: o.ShippingFeeCents,
		TotalCents:       o.TotalCents,
		ShippingCityID:   o.ShippingCityId,
		Status:           status,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		OrderItems:       []orderitem.OrderItem{}, // Populated separately
	}, nil
}

var orderColumns = []string{
	"id",
	"order_number",
	"customer_name",
	"customer_whatsapp",
	"customer_email",
	"customer_address",
	"notes",
	"items_total_cents",
	"shipping_fee_cents",
	"total_cents",
	"shipping_city_id",
	"status",
	"created_at",
	"updated_at",
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.Conn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.OrderNumber,
		&dal.CustomerName,
		&dal.CustomerWhatsapp,
		&dal.CustomerEmail,
		&dal.CustomerAddress,
		&dal.Notes,
		&dal.ItemsTotalCents,
		&dal.ShippingFeeCents,
		&dal.TotalCents,
		&dal.ShippingCityId,
		&dal.Status,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// Insert creates the order header. The order number is generated by the
// database via next_order_number() so uniqueness is enforced in one place.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	sql := `
		INSERT INTO orders (
			order_number,
			customer_name,
			customer_whatsapp,
			customer_email,
			customer_address,
			notes,
			items_total_cents,
			shipping_fee_cents,
			total_cents,
			shipping_city_id,
			status,
			created_at,
			updated_at
		)
		VALUES (next_order_number(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING
			id,
			order_number,
			customer_name,
			customer_whatsapp,
			customer_email,
			customer_address,
			notes,
			items_total_cents,
			shipping_fee_cents,
			total_cents,
			shipping_city_id,
			status,
			created_at,
			updated_at
	`

	inserted, err := scanOrder(r.conn.QueryRow(ctx, sql,
		o.CustomerName,
		o.CustomerWhatsapp,
		o.CustomerEmail,
		o.CustomerAddress,
		o.Notes,
		o.ItemsTotalCents,
		o.ShippingFeeCents,
		o.TotalCents,
		o.ShippingCityID,
		o.Status.String(),
		o.CreatedAt,
		o.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return inserted, nil
}

// Query retrieves orders based on filter criteria, newest first.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	query := r.sb.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		query = query.Where(sq.Eq{"status": statuses})
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
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		model, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Update applies the non-nil fields of upd and bumps updated_at. Monetary
// fields are never touched here.
func (r *PostgresOrderRepository) Update(
	ctx context.Context,
	id int64,
	upd order.UpdateOrderModel,
) (*order.Order, error) {
	query := r.sb.
		Update("orders").
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", "))

	if upd.Status != nil {
		query = query.Set("status", upd.Status.String())
	}

	if upd.Notes != nil {
		query = query.Set("notes", *upd.Notes)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	updated, err := scanOrder(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, iorderrepo.ErrOrderNotFound
		}

		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return updated, nil
}

// Delete removes the order header. Line items cascade in the database.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.
		Delete("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete order: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
