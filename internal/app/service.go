package app

import "context"

// ApplicationService is the single interface all UI adapters (REPL, CLI,
// Web) call. It decouples presentation from the statement domain.
// Implementations must contain no fmt.Println, no ANSI codes, and no
// display logic of any kind.
type ApplicationService interface {
	// GenerateStatement runs the full statement pipeline and returns the
	// renderer payload plus the template variable map.
	GenerateStatement(ctx context.Context, req StatementRequest) (*StatementResult, error)

	// SelectOpenOrders returns the customer's orders with an outstanding
	// balance, for pre-populating the manual selection. When req.SessionID
	// is set the result is also persisted as that session's selection.
	SelectOpenOrders(ctx context.Context, req StatementRequest) (*OpenOrdersResult, error)

	// SaveSelection stores a manual order selection for a wizard session.
	SaveSelection(ctx context.Context, sessionID string, orderIDs []int) error

	// ClearSelection drops a session's manual selection.
	ClearSelection(ctx context.Context, sessionID string) error

	// ListCustomers returns the customer master for the wizard's picker.
	ListCustomers(ctx context.Context) (*CustomerListResult, error)

	// GetExchangeRate returns the rate the next report would use.
	GetExchangeRate(ctx context.Context) (*ExchangeRateResult, error)
}
