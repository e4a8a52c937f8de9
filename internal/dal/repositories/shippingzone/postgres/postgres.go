package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/lenslane/backend/order/internal/dal/interfaces/ishippingzonerepo"
	"github.com/lenslane/backend/order/internal/dal/postgres"
	"github.com/lenslane/backend/order/internal/service/models/shippingzone"
)

// ShippingZoneDal represents the shipping zone data access layer model.
type ShippingZoneDal struct {
	Id               int64     `db:"id"`
	Name             string    `db:"name"`
	NameAr           string    `db:"name_ar"`
	ShippingFeeCents int64     `db:"shipping_fee_cents"`
	IsActive         bool      `db:"is_active"`
	SortOrder        int       `db:"sort_order"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// ToModel converts ShippingZoneDal to the service layer ShippingZone model.
func (z *ShippingZoneDal) ToModel() *shippingzone.ShippingZone {
	return &shippingzone.ShippingZone{
		ID:               z.Id,
		Name:             z.Name,
		NameAr:           z.NameAr,
		ShippingFeeCents: z.ShippingFeeCents,
		IsActive:         z.IsActive,
		SortOrder:        z.SortOrder,
		CreatedAt:        z.CreatedAt,
		UpdatedAt:        z.UpdatedAt,
	}
}

// PostgresShippingZoneRepository represents a Postgres shipping zone repository.
type PostgresShippingZoneRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresShippingZoneRepository creates a new Postgres shipping zone repository.
func NewPostgresShippingZoneRepository(conn postgres.Conn) *PostgresShippingZoneRepository {
	return &PostgresShippingZoneRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var zoneColumns = []string{
	"id",
	"name",
	"name_ar",
	"shipping_fee_cents",
	"is_active",
	"sort_order",
	"created_at",
	"updated_at",
}

// GetByID retrieves a single zone regardless of its active flag. Callers
// decide whether inactive zones are acceptable.
func (r *PostgresShippingZoneRepository) GetByID(ctx context.Context, id int64) (*shippingzone.ShippingZone, error) {
	sql, args, err := r.sb.
		Select(zoneColumns...).
		From("shipping_cities").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dal ShippingZoneDal
	err = r.conn.QueryRow(ctx, sql, args...).Scan(
		&dal.Id,
		&dal.Name,
		&dal.NameAr,
		&dal.ShippingFeeCents,
		&dal.IsActive,
		&dal.SortOrder,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ishippingzonerepo.ErrZoneNotFound
		}

		return nil, fmt.Errorf("failed to query shipping zone: %w", err)
	}

	return dal.ToModel(), nil
}

// GetByIDs retrieves the zones that exist among the given ids.
func (r *PostgresShippingZoneRepository) GetByIDs(ctx context.Context, ids []int64) ([]shippingzone.ShippingZone, error) {
	if len(ids) == 0 {
		return []shippingzone.ShippingZone{}, nil
	}

	sql, args, err := r.sb.
		Select(zoneColumns...).
		From("shipping_cities").
		Where(sq.Eq{"id": ids}).
		OrderBy("sort_order ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shipping zones: %w", err)
	}
	defer rows.Close()

	var result []shippingzone.ShippingZone
	for rows.Next() {
		var dal ShippingZoneDal
		err := rows.Scan(
			&dal.Id,
			&dal.Name,
			&dal.NameAr,
			&dal.ShippingFeeCents,
			&dal.IsActive,
			&dal.SortOrder,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shipping zone: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
