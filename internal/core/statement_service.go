package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// User-facing pipeline failures. All three abort report generation; no
// partial report is ever emitted.
var (
	ErrNoMatchingOrders = errors.New("no sale orders found for this customer with the selected filters")
	ErrAllOrdersSettled = errors.New("all matching orders are fully paid; enable 'include fully paid' to show them")
	ErrCustomerRequired = errors.New("select a customer first")
)

// settledThreshold is the balance at or below which an order counts as
// fully paid.
var settledThreshold = decimal.RequireFromString("0.01")

// StatementFilters is the wizard input for one report generation.
// OrderIDs, when non-empty, is a manual selection that replaces the
// filtered search and bypasses the settled-order exclusion.
type StatementFilters struct {
	CustomerID       int        `json:"customer_id"`
	ProjectID        *int       `json:"project_id,omitempty"`
	DateFrom         *time.Time `json:"date_from,omitempty"`
	DateTo           *time.Time `json:"date_to,omitempty"`
	IncludeDraft     bool       `json:"include_draft"`
	IncludeFullyPaid bool       `json:"include_fully_paid"`
	OrderIDs         []int      `json:"order_ids,omitempty"`
	SessionID        string     `json:"session_id,omitempty"`
}

// StatementService assembles multi-currency AR statements. It is the
// wizard-equivalent: order selection, rate snapshot, per-order
// aggregation, report totals, and the currency-scenario tag.
type StatementService struct {
	orders    OrderRepository
	customers CustomerRepository
	projects  ProjectRepository
	resolver  *RateResolver
	now       func() time.Time
}

func NewStatementService(orders OrderRepository, customers CustomerRepository, projects ProjectRepository, resolver *RateResolver) *StatementService {
	return &StatementService{
		orders:    orders,
		customers: customers,
		projects:  projects,
		resolver:  resolver,
		now:       time.Now,
	}
}

// ExchangeRate exposes the rate the next report would use, for display on
// the wizard form.
func (s *StatementService) ExchangeRate(ctx context.Context) decimal.Decimal {
	return s.resolver.Resolve(ctx)
}

// GenerateStatement runs the full report pipeline and returns the payload
// handed to the renderer. Fails with ErrNoMatchingOrders or
// ErrAllOrdersSettled; both are terminal and user-facing.
func (s *StatementService) GenerateStatement(ctx context.Context, filters StatementFilters) (*ReportPayload, error) {
	if filters.CustomerID == 0 {
		return nil, ErrCustomerRequired
	}

	manual := len(filters.OrderIDs) > 0
	var orders []SaleOrder
	var err error
	if manual {
		orders, err = s.orders.ByIDs(ctx, filters.OrderIDs)
	} else {
		orders, err = s.orders.Search(ctx, s.buildPredicates(ctx, filters))
	}
	if err != nil {
		return nil, fmt.Errorf("order selection failed: %w", err)
	}
	if len(orders) == 0 {
		return nil, ErrNoMatchingOrders
	}

	// Single rate snapshot for the whole report.
	rate := s.resolver.Resolve(ctx)
	hasRate := rate.IsPositive()

	payload := &ReportPayload{
		SessionID:     filters.SessionID,
		CustomerID:    filters.CustomerID,
		BanorteRate:   rate,
		StatementDate: s.now().Format(dateLayout),
	}

	for i := range orders {
		stmt := BuildStatement(&orders[i], rate)

		// Settled orders drop out unless manually selected or requested.
		if !manual && !filters.IncludeFullyPaid && stmt.Balance.LessThanOrEqual(settledThreshold) {
			continue
		}

		payload.Orders = append(payload.Orders, stmt)
		payload.TotalBalanceUSD = payload.TotalBalanceUSD.Add(stmt.BalanceUSD)
		payload.TotalBalanceMXN = payload.TotalBalanceMXN.Add(stmt.BalanceMXN)
		payload.TotalAmountUSD = payload.TotalAmountUSD.Add(stmt.TotalUSD)
		payload.TotalAmountMXN = payload.TotalAmountMXN.Add(stmt.TotalMXN)

		if stmt.Currency == CurrencyUSD {
			payload.OrdersUSDCount++
			payload.TotalPaidUSD = payload.TotalPaidUSD.Add(stmt.TotalPaid)
			if hasRate {
				payload.TotalPaidMXN = payload.TotalPaidMXN.Add(stmt.TotalPaid.Mul(rate))
			}
		} else {
			payload.OrdersMXNCount++
			payload.TotalPaidMXN = payload.TotalPaidMXN.Add(stmt.TotalPaid)
			if hasRate {
				payload.TotalPaidUSD = payload.TotalPaidUSD.Add(stmt.TotalPaid.Div(rate))
			}
		}
	}

	if len(payload.Orders) == 0 {
		return nil, ErrAllOrdersSettled
	}
	payload.TotalOrders = len(payload.Orders)

	switch {
	case payload.OrdersUSDCount > 0 && payload.OrdersMXNCount > 0:
		payload.CurrencyScenario = ScenarioMultiCurrency
	case payload.OrdersUSDCount > 0:
		payload.CurrencyScenario = ScenarioUSDOnly
	default:
		payload.CurrencyScenario = ScenarioMXNOnly
	}

	if err := s.fillIdentity(ctx, filters, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// SelectOpenOrders returns the orders with an outstanding balance matching
// the filters, used to pre-populate the wizard's manual selection. It
// never generates a report.
func (s *StatementService) SelectOpenOrders(ctx context.Context, filters StatementFilters) ([]SaleOrder, error) {
	if filters.CustomerID == 0 {
		return nil, ErrCustomerRequired
	}

	orders, err := s.orders.Search(ctx, s.buildPredicates(ctx, filters))
	if err != nil {
		return nil, fmt.Errorf("order selection failed: %w", err)
	}

	rate := s.resolver.Resolve(ctx)
	var open []SaleOrder
	for i := range orders {
		stmt := BuildStatement(&orders[i], rate)
		if stmt.Balance.GreaterThan(settledThreshold) {
			open = append(open, orders[i])
		}
	}
	return open, nil
}

// buildPredicates assembles the typed search filter. The quote-backup
// exclusion is added only on deployments whose schema carries the column.
func (s *StatementService) buildPredicates(ctx context.Context, filters StatementFilters) []Predicate {
	predicates := []Predicate{
		{Field: "customer_id", Op: OpEq, Value: filters.CustomerID},
	}

	states := []string{OrderStateConfirmed, OrderStateDone}
	if filters.IncludeDraft {
		states = append(states, OrderStateDraft, OrderStateQuoteSent)
	}
	predicates = append(predicates, Predicate{Field: "state", Op: OpIn, Value: states})

	if filters.ProjectID != nil {
		predicates = append(predicates, Predicate{Field: "project_id", Op: OpEq, Value: *filters.ProjectID})
	}
	if filters.DateFrom != nil {
		from := filters.DateFrom.Truncate(24 * time.Hour)
		predicates = append(predicates, Predicate{Field: "date_order", Op: OpGte, Value: from})
	}
	if filters.DateTo != nil {
		// Inclusive range: date_to means the end of that day.
		y, m, d := filters.DateTo.Date()
		to := time.Date(y, m, d, 23, 59, 59, 0, filters.DateTo.Location())
		predicates = append(predicates, Predicate{Field: "date_order", Op: OpLte, Value: to})
	}

	if s.orders.SupportsField(ctx, "is_quote_backup") {
		predicates = append(predicates, Predicate{Field: "is_quote_backup", Op: OpEq, Value: false})
	}

	return predicates
}

// fillIdentity adds the customer/project metadata the template prints in
// its header.
func (s *StatementService) fillIdentity(ctx context.Context, filters StatementFilters, payload *ReportPayload) error {
	customer, err := s.customers.Get(ctx, filters.CustomerID)
	if err != nil {
		return err
	}
	payload.CustomerName = customer.Name
	payload.CustomerVAT = customer.VAT

	if filters.ProjectID != nil {
		project, err := s.projects.Get(ctx, *filters.ProjectID)
		if err != nil {
			return err
		}
		payload.ProjectName = project.Name
	}
	if filters.DateFrom != nil {
		payload.DateFrom = filters.DateFrom.Format(dateLayout)
	}
	if filters.DateTo != nil {
		payload.DateTo = filters.DateTo.Format(dateLayout)
	}
	return nil
}
