package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/antonioqueb/account-statement-report/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writePipelineError maps the statement pipeline's user-facing failures to
// HTTP 422 with stable codes; anything else is a 500.
func writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNoMatchingOrders):
		writeError(w, r, err.Error(), "NO_MATCHING_ORDERS", http.StatusUnprocessableEntity)
	case errors.Is(err, core.ErrAllOrdersSettled):
		writeError(w, r, err.Error(), "ALL_ORDERS_SETTLED", http.StatusUnprocessableEntity)
	case errors.Is(err, core.ErrCustomerRequired):
		writeError(w, r, err.Error(), "CUSTOMER_REQUIRED", http.StatusUnprocessableEntity)
	default:
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
