package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lenslane/backend/order/internal/service/models/order"
	"github.com/lenslane/backend/order/internal/service/services/ordersvc"
)

// JSON writes v as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Error converts a service error into a JSON error body. Validation errors
// map to 400, unknown resources to 404, everything else is a 500 with the
// underlying message logged rather than exposed.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed", "error", err)
		msg = "internal server error"
	}

	JSON(w, status, errorBody{Success: false, Error: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ordersvc.ErrMissingRequiredFields),
		errors.Is(err, order.ErrInvalidWhatsapp),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, ordersvc.ErrShippingZoneUnavailable),
		errors.Is(err, ordersvc.ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, ordersvc.ErrOrderNotFound),
		errors.Is(err, ordersvc.ErrProductNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
