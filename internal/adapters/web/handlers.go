package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/antonioqueb/account-statement-report/internal/app"
)

const maxRequestBody = 1 << 20 // 1 MiB; statement requests are tiny

// Handler holds the ApplicationService behind the HTTP routes.
type Handler struct {
	svc app.ApplicationService
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(maxRequestBody))

	r.Get("/api/health", h.health)
	r.Get("/api/exchange-rate", h.exchangeRate)
	r.Get("/api/customers", h.listCustomers)

	r.Post("/api/statements", h.generateStatement)
	r.Post("/api/statements/open-orders", h.selectOpenOrders)
	r.Put("/api/statements/selection/{session}", h.saveSelection)
	r.Delete("/api/statements/selection/{session}", h.clearSelection)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (h *Handler) exchangeRate(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetExchangeRate(r.Context())
	if err != nil {
		writePipelineError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"banorte_rate": result.Rate})
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListCustomers(r.Context())
	if err != nil {
		writePipelineError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"customers": result.Customers})
}

// generateStatement runs the full report pipeline and returns the payload
// plus template values. Pipeline failures come back as 422 so the wizard
// UI can surface them verbatim.
func (h *Handler) generateStatement(w http.ResponseWriter, r *http.Request) {
	var req app.StatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.GenerateStatement(r.Context(), req)
	if err != nil {
		writePipelineError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{
		"payload": result.Payload,
		"values":  result.Values,
	})
}

func (h *Handler) selectOpenOrders(w http.ResponseWriter, r *http.Request) {
	var req app.StatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.SelectOpenOrders(r.Context(), req)
	if err != nil {
		writePipelineError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{
		"orders":    result.Orders,
		"order_ids": result.OrderIDs,
	})
}

func (h *Handler) saveSelection(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")

	var body struct {
		OrderIDs []int `json:"order_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	if err := h.svc.SaveSelection(r.Context(), session, body.OrderIDs); err != nil {
		writePipelineError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"saved": strconv.Itoa(len(body.OrderIDs)) + " orders"})
}

func (h *Handler) clearSelection(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	if err := h.svc.ClearSelection(r.Context(), session); err != nil {
		writePipelineError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "cleared"})
}
