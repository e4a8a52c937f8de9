package updateorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lenslane/backend/order/internal/service/models/order"
	"github.com/lenslane/backend/order/internal/transport/http/response"
)

type service interface {
	UpdateOrder(ctx context.Context, id int64, upd order.UpdateOrderModel) (*order.Order, error)
}

// updateOrderRequest carries the PATCH body. Absent fields stay untouched.
type updateOrderRequest struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *updateOrderRequest) toModel() (order.UpdateOrderModel, error) {
	upd := order.UpdateOrderModel{Notes: r.Notes}

	if r.Status != nil {
		status, err := order.ParseStatus(*r.Status)
		if err != nil {
			return order.UpdateOrderModel{}, err
		}
		upd.Status = &status
	}

	return upd, nil
}

// UpdateOrder handles the status/notes update request.
func UpdateOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	req := updateOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.ErrorContext(r.Context(), "Error decoding request body for update order", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	upd, err := req.toModel()
	if err != nil {
		response.Error(w, r, err)

		return
	}

	updated, err := service.UpdateOrder(r.Context(), id, upd)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, http.StatusOK, updated)
}
