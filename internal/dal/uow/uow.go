package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lenslane/backend/order/internal/dal/interfaces/iorderitemrepo"
	"github.com/lenslane/backend/order/internal/dal/interfaces/iorderrepo"
	"github.com/lenslane/backend/order/internal/dal/interfaces/ioutboxrepo"
	"github.com/lenslane/backend/order/internal/dal/interfaces/iproductrepo"
	"github.com/lenslane/backend/order/internal/dal/interfaces/ishippingzonerepo"
	"github.com/lenslane/backend/order/internal/dal/postgres"
	orderrepo "github.com/lenslane/backend/order/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/lenslane/backend/order/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/lenslane/backend/order/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/lenslane/backend/order/internal/dal/repositories/product/postgres"
	shippingzonerepo "github.com/lenslane/backend/order/internal/dal/repositories/shippingzone/postgres"
)

// UnitOfWork binds the repositories to a shared connection. Before Begin they
// run against the pool; after Begin they all run inside one transaction, so a
// cross-repository sequence commits or rolls back as a whole.
type UnitOfWork struct {
	pool             *pgxpool.Pool
	tx               pgx.Tx
	orderRepo        iorderrepo.IOrderRepository
	orderItemRepo    iorderitemrepo.IOrderItemRepository
	productRepo      iproductrepo.IProductRepository
	shippingZoneRepo ishippingzonerepo.IShippingZoneRepository
	outboxRepo       ioutboxrepo.IOutboxRepository
}

// NewUnitOfWork creates a unit of work bound to the pool.
func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	u := &UnitOfWork{pool: client.Pool()}
	u.bind(client.Pool())

	return u
}

func (u *UnitOfWork) bind(conn postgres.Conn) {
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(conn)
	u.productRepo = productrepo.NewPostgresProductRepository(conn)
	u.shippingZoneRepo = shippingzonerepo.NewPostgresShippingZoneRepository(conn)
	u.outboxRepo = outboxrepo.NewOutboxRepository(conn)
}

// Begin starts a transaction and rebinds all repositories to it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

// Commit commits the active transaction. A no-op without one.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback aborts the active transaction. Safe to defer after Begin; rolling
// back an already-committed transaction returns pgx.ErrTxClosed, which
// callers ignore.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Rollback(ctx)
}

func (u *UnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *UnitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *UnitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

func (u *UnitOfWork) ShippingZoneRepository() ishippingzonerepo.IShippingZoneRepository {
	return u.shippingZoneRepo
}

func (u *UnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}
