package app

// StatementRequest is the adapter-facing form of the wizard filters.
// Dates are YYYY-MM-DD strings (empty means unbounded); OrderIDs is the
// manual selection. When OrderIDs is empty and SessionID names a session
// with a saved selection, that selection is used instead.
type StatementRequest struct {
	CustomerID       int    `json:"customer_id"`
	ProjectID        *int   `json:"project_id,omitempty"`
	DateFrom         string `json:"date_from,omitempty"`
	DateTo           string `json:"date_to,omitempty"`
	IncludeDraft     bool   `json:"include_draft"`
	IncludeFullyPaid bool   `json:"include_fully_paid"`
	OrderIDs         []int  `json:"order_ids,omitempty"`
	SessionID        string `json:"session_id,omitempty"`
}
