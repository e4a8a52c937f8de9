package getorder

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lenslane/backend/order/internal/service/models/order"
	"github.com/lenslane/backend/order/internal/transport/http/response"
)

type service interface {
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
}

// GetOrder handles the single order lookup request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	ord, err := service.GetOrder(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, http.StatusOK, ord)
}
