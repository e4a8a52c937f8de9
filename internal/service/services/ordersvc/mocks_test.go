package ordersvc

import (
	"context"
	"time"

	"github.com/lenslane/backend/order/internal/dal/interfaces/iorderitemrepo"
	"github.com/lenslane/backend/order/internal/dal/interfaces/iorderrepo"
	"github.com/lenslane/backend/order/internal/dal/interfaces/ioutboxrepo"
	"github.com/lenslane/backend/order/internal/dal/interfaces/iproductrepo"
	"github.com/lenslane/backend/order/internal/dal/interfaces/ishippingzonerepo"
	"github.com/lenslane/backend/order/internal/service/models/order"
	"github.com/lenslane/backend/order/internal/service/models/orderitem"
	"github.com/lenslane/backend/order/internal/service/models/outbox"
	"github.com/lenslane/backend/order/internal/service/models/product"
	"github.com/lenslane/backend/order/internal/service/models/shippingzone"
)

// mockUnitOfWork implements the unitOfWork interface for testing.
type mockUnitOfWork struct {
	BeginErr   error
	CommitErr  error
	Begun      bool
	Committed  bool
	RolledBack bool

	Orders   *mockOrderRepo
	Items    *mockOrderItemRepo
	Products *mockProductRepo
	Zones    *mockZoneRepo
	Outbox   *mockOutboxRepo
}

func newMockUOW() *mockUnitOfWork {
	return &mockUnitOfWork{
		Orders:   &mockOrderRepo{},
		Items:    &mockOrderItemRepo{},
		Products: &mockProductRepo{DecrementOK: true, RestoreOK: true},
		Zones:    &mockZoneRepo{},
		Outbox:   &mockOutboxRepo{},
	}
}

func (m *mockUnitOfWork) Begin(_ context.Context) error {
	m.Begun = true
	return m.BeginErr
}

func (m *mockUnitOfWork) Commit(_ context.Context) error {
	if m.CommitErr != nil {
		return m.CommitErr
	}
	m.Committed = true
	return nil
}

func (m *mockUnitOfWork) Rollback(_ context.Context) error {
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

func (m *mockUnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return m.Orders
}

func (m *mockUnitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return m.Items
}

func (m *mockUnitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return m.Products
}

func (m *mockUnitOfWork) ShippingZoneRepository() ishippingzonerepo.IShippingZoneRepository {
	return m.Zones
}

func (m *mockUnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return m.Outbox
}

// mockOrderRepo implements iorderrepo.IOrderRepository for testing.
type mockOrderRepo struct {
	InsertErr     error
	InsertedOrder *order.Order // Captures the header passed to Insert

	QueryResult []order.Order
	QueryErr    error

	UpdateResult *order.Order
	UpdateErr    error
	UpdatedWith  *order.UpdateOrderModel

	DeleteResult bool
	DeleteErr    error
	DeletedID    int64
}

func (m *mockOrderRepo) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	if m.InsertErr != nil {
		return nil, m.InsertErr
	}

	inserted := o
	inserted.ID = 1
	inserted.OrderNumber = "ORD-000001"
	m.InsertedOrder = &inserted

	return &inserted, nil
}

func (m *mockOrderRepo) Query(_ context.Context, _ *order.QueryOrdersModel) ([]order.Order, error) {
	return m.QueryResult, m.QueryErr
}

func (m *mockOrderRepo) Update(_ context.Context, _ int64, upd order.UpdateOrderModel) (*order.Order, error) {
	m.UpdatedWith = &upd
	return m.UpdateResult, m.UpdateErr
}

func (m *mockOrderRepo) Delete(_ context.Context, id int64) (bool, error) {
	m.DeletedID = id
	return m.DeleteResult, m.DeleteErr
}

// mockOrderItemRepo implements iorderitemrepo.IOrderItemRepository for testing.
type mockOrderItemRepo struct {
	BulkInsertErr error
	Inserted      []orderitem.OrderItem

	QueryResult []orderitem.OrderItem
	QueryErr    error
}

func (m *mockOrderItemRepo) BulkInsert(_ context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	if m.BulkInsertErr != nil {
		return nil, m.BulkInsertErr
	}

	for i := range items {
		items[i].ID = int64(i + 1)
	}
	m.Inserted = items

	return items, nil
}

func (m *mockOrderItemRepo) Query(_ context.Context, _ *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error) {
	return m.QueryResult, m.QueryErr
}

type stockCall struct {
	ProductID int64
	Quantity  int
}

// mockProductRepo implements iproductrepo.IProductRepository for testing.
type mockProductRepo struct {
	Catalog []product.Product
	GetErr  error

	DecrementOK       bool
	DecrementFalseFor int64 // product id for which DecrementStock reports failure
	DecrementErr      error
	DecrementCalls    []stockCall

	RestoreOK    bool
	RestoreErr   error
	RestoreCalls []stockCall
}

func (m *mockProductRepo) GetByIDs(_ context.Context, _ []int64) ([]product.Product, error) {
	return m.Catalog, m.GetErr
}

func (m *mockProductRepo) DecrementStock(_ context.Context, productID int64, quantity int) (bool, error) {
	if m.DecrementErr != nil {
		return false, m.DecrementErr
	}
	m.DecrementCalls = append(m.DecrementCalls, stockCall{ProductID: productID, Quantity: quantity})
	if m.DecrementFalseFor != 0 && m.DecrementFalseFor == productID {
		return false, nil
	}
	return m.DecrementOK, nil
}

func (m *mockProductRepo) RestoreStock(_ context.Context, productID int64, quantity int) (bool, error) {
	if m.RestoreErr != nil {
		return false, m.RestoreErr
	}
	m.RestoreCalls = append(m.RestoreCalls, stockCall{ProductID: productID, Quantity: quantity})
	return m.RestoreOK, nil
}

// mockZoneRepo implements ishippingzonerepo.IShippingZoneRepository for testing.
type mockZoneRepo struct {
	Zone *shippingzone.ShippingZone
	Err  error
}

func (m *mockZoneRepo) GetByID(_ context.Context, _ int64) (*shippingzone.ShippingZone, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Zone, nil
}

func (m *mockZoneRepo) GetByIDs(_ context.Context, _ []int64) ([]shippingzone.ShippingZone, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Zone == nil {
		return []shippingzone.ShippingZone{}, nil
	}
	return []shippingzone.ShippingZone{*m.Zone}, nil
}

// mockOutboxRepo implements ioutboxrepo.IOutboxRepository for testing.
type mockOutboxRepo struct {
	InsertErr error
	Inserted  []outbox.OutboxMessage
}

func (m *mockOutboxRepo) Insert(_ context.Context, msg outbox.OutboxMessage) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.Inserted = append(m.Inserted, msg)
	return nil
}

func (m *mockOutboxRepo) GetPendingMessages(_ context.Context, _ int) ([]outbox.OutboxMessage, error) {
	return nil, nil
}

func (m *mockOutboxRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

func (m *mockOutboxRepo) UpdateRetry(_ context.Context, _ int64, _ int, _ string, _ time.Time) error {
	return nil
}
