package app

import (
	"github.com/shopspring/decimal"

	"github.com/antonioqueb/account-statement-report/internal/core"
)

// StatementResult is returned by GenerateStatement. Payload is the value
// handed to the renderer; Values is the template variable map derived
// from it.
type StatementResult struct {
	Payload *core.ReportPayload
	Values  map[string]any
}

// OpenOrdersResult is returned by SelectOpenOrders.
type OpenOrdersResult struct {
	Orders   []core.SaleOrder
	OrderIDs []int
}

// CustomerListResult is returned by ListCustomers.
type CustomerListResult struct {
	Customers []core.Customer
}

// ExchangeRateResult is returned by GetExchangeRate. Rate is MXN per USD;
// zero means no usable rate is configured or derivable.
type ExchangeRateResult struct {
	Rate decimal.Decimal
}
