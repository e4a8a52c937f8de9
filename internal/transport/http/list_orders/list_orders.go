package listorders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/lenslane/backend/order/internal/service/models/order"
	"github.com/lenslane/backend/order/internal/transport/http/response"
)

type service interface {
	GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
}

type listOrdersRequest struct {
	Status string `schema:"status,omitempty"`
	Limit  int    `schema:"limit,omitempty"`
	Offset int    `schema:"offset,omitempty"`
}

// toModel maps the query string to a filter. An empty status or the literal
// "all" means no status filter.
func (q *listOrdersRequest) toModel() (order.QueryOrdersModel, error) {
	filter := order.QueryOrdersModel{
		Limit:  q.Limit,
		Offset: q.Offset,
	}

	if q.Status != "" && q.Status != "all" {
		status, err := order.ParseStatus(q.Status)
		if err != nil {
			return order.QueryOrdersModel{}, err
		}
		filter.Statuses = []order.Status{status}
	}

	return filter, nil
}

// ListOrders handles the order listing request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &listOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		slog.ErrorContext(r.Context(), "Error decoding list orders request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	filter, err := query.toModel()
	if err != nil {
		response.Error(w, r, err)

		return
	}

	orders, err := service.GetOrders(r.Context(), filter)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, http.StatusOK, orders)
}
