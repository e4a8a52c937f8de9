package deleteorder

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lenslane/backend/order/internal/transport/http/response"
)

type service interface {
	DeleteOrder(ctx context.Context, id int64) error
}

type deleteOrderResponse struct {
	Success bool `json:"success"`
}

// DeleteOrder handles the order deletion request. Stock restoration happens
// in the service layer, atomically with the delete.
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	if err := service.DeleteOrder(r.Context(), id); err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, http.StatusOK, deleteOrderResponse{Success: true})
}
