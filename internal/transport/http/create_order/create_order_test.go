package createorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lenslane/backend/order/internal/service/models/order"
	"github.com/lenslane/backend/order/internal/service/services/ordersvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockService implements the service interface for testing.
type mockService struct {
	Placed *order.Order // Captures the model passed to PlaceOrder
	Result *order.Order
	Err    error
}

func (m *mockService) PlaceOrder(_ context.Context, ord order.Order) (*order.Order, error) {
	m.Placed = &ord
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

func postOrder(t *testing.T, svc *mockService, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()

	CreateOrder(rec, req, svc)

	return rec
}

const validBody = `{
	"customerName": "Sara Ahmed",
	"customerWhatsapp": "+20 100 123 4567",
	"shippingCityId": 7,
	"items": [
		{"productId": 1, "productName": "Aviator Classic", "quantity": 2, "unitPriceCents": 10000}
	]
}`

func TestCreateOrder_Success(t *testing.T) {
	svc := &mockService{Result: &order.Order{ID: 1, OrderNumber: "ORD-000001", Status: order.StatusPending}}

	rec := postOrder(t, svc, validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool         `json:"success"`
		Order   *order.Order `json:"order"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Order)
	assert.Equal(t, "ORD-000001", resp.Order.OrderNumber)

	require.NotNil(t, svc.Placed)
	assert.Equal(t, int64(7), svc.Placed.ShippingCityID)
	require.Len(t, svc.Placed.OrderItems, 1)
	assert.Equal(t, 2, svc.Placed.OrderItems[0].Quantity)
}

func TestCreateOrder_MissingFields(t *testing.T) {
	cases := map[string]string{
		"empty body":   `{}`,
		"no items":     `{"customerName":"Sara","customerWhatsapp":"+201001234567","shippingCityId":7,"items":[]}`,
		"no name":      `{"customerWhatsapp":"+201001234567","shippingCityId":7,"items":[{"productId":1,"productName":"x","quantity":1,"unitPriceCents":100}]}`,
		"no zone":      `{"customerName":"Sara","customerWhatsapp":"+201001234567","items":[{"productId":1,"productName":"x","quantity":1,"unitPriceCents":100}]}`,
		"zero qty":     `{"customerName":"Sara","customerWhatsapp":"+201001234567","shippingCityId":7,"items":[{"productId":1,"productName":"x","quantity":0,"unitPriceCents":100}]}`,
		"invalid json": `{`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &mockService{}

			rec := postOrder(t, svc, body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, svc.Placed, "service must not be called")
		})
	}
}

func TestCreateOrder_WhatsappGate(t *testing.T) {
	svc := &mockService{}
	body := strings.Replace(validBody, "+20 100 123 4567", "12a45", 1)

	rec := postOrder(t, svc, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "whatsapp")
	assert.Nil(t, svc.Placed)
}

func TestCreateOrder_ServiceErrorsMapped(t *testing.T) {
	cases := map[string]struct {
		err  error
		code int
	}{
		"insufficient stock": {
			err:  &ordersvc.InsufficientStockError{ProductName: "Aviator Classic", Requested: 2, Available: 1},
			code: http.StatusBadRequest,
		},
		"product not found": {
			err:  &ordersvc.ProductNotFoundError{ProductName: "Aviator Classic"},
			code: http.StatusNotFound,
		},
		"inactive zone": {
			err:  ordersvc.ErrShippingZoneUnavailable,
			code: http.StatusBadRequest,
		},
		"downstream failure": {
			err:  assert.AnError,
			code: http.StatusInternalServerError,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &mockService{Err: tc.err}

			rec := postOrder(t, svc, validBody)

			assert.Equal(t, tc.code, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}
