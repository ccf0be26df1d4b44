package app

import (
	"context"
	"fmt"
	"time"

	"github.com/antonioqueb/account-statement-report/internal/core"
	"github.com/antonioqueb/account-statement-report/internal/report"
)

type appService struct {
	statements *core.StatementService
	customers  core.CustomerRepository
	selections core.SelectionStore
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	statements *core.StatementService,
	customers core.CustomerRepository,
	selections core.SelectionStore,
) ApplicationService {
	return &appService{
		statements: statements,
		customers:  customers,
		selections: selections,
	}
}

func (s *appService) GenerateStatement(ctx context.Context, req StatementRequest) (*StatementResult, error) {
	filters, err := s.toFilters(ctx, req)
	if err != nil {
		return nil, err
	}

	payload, err := s.statements.GenerateStatement(ctx, filters)
	if err != nil {
		return nil, err
	}

	data, err := report.PayloadMap(payload)
	if err != nil {
		return nil, err
	}
	return &StatementResult{
		Payload: payload,
		Values:  report.Values(nil, data),
	}, nil
}

func (s *appService) SelectOpenOrders(ctx context.Context, req StatementRequest) (*OpenOrdersResult, error) {
	filters, err := s.toFilters(ctx, req)
	if err != nil {
		return nil, err
	}
	// Manual selection plays no role here; open orders always come from
	// the filtered search.
	filters.OrderIDs = nil

	orders, err := s.statements.SelectOpenOrders(ctx, filters)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	if req.SessionID != "" {
		if err := s.selections.Save(ctx, req.SessionID, ids); err != nil {
			return nil, err
		}
	}
	return &OpenOrdersResult{Orders: orders, OrderIDs: ids}, nil
}

func (s *appService) SaveSelection(ctx context.Context, sessionID string, orderIDs []int) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	return s.selections.Save(ctx, sessionID, orderIDs)
}

func (s *appService) ClearSelection(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	return s.selections.Clear(ctx, sessionID)
}

func (s *appService) ListCustomers(ctx context.Context) (*CustomerListResult, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	return &CustomerListResult{Customers: customers}, nil
}

func (s *appService) GetExchangeRate(ctx context.Context) (*ExchangeRateResult, error) {
	return &ExchangeRateResult{Rate: s.statements.ExchangeRate(ctx)}, nil
}

// toFilters parses the wire-level request into core filters, pulling the
// session's saved selection when no explicit order list was sent.
func (s *appService) toFilters(ctx context.Context, req StatementRequest) (core.StatementFilters, error) {
	filters := core.StatementFilters{
		CustomerID:       req.CustomerID,
		ProjectID:        req.ProjectID,
		IncludeDraft:     req.IncludeDraft,
		IncludeFullyPaid: req.IncludeFullyPaid,
		OrderIDs:         req.OrderIDs,
		SessionID:        req.SessionID,
	}

	if req.DateFrom != "" {
		from, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return filters, fmt.Errorf("invalid date_from %q: %w", req.DateFrom, err)
		}
		filters.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return filters, fmt.Errorf("invalid date_to %q: %w", req.DateTo, err)
		}
		filters.DateTo = &to
	}

	if len(filters.OrderIDs) == 0 && req.SessionID != "" {
		saved, err := s.selections.Load(ctx, req.SessionID)
		if err != nil {
			return filters, err
		}
		filters.OrderIDs = saved
	}

	return filters, nil
}
