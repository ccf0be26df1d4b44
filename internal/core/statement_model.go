package core

import "github.com/shopspring/decimal"

// Currency scenarios a report can fall into; the PDF template picks its
// column layout from this tag.
const (
	ScenarioUSDOnly       = "usd_only"
	ScenarioMXNOnly       = "mxn_only"
	ScenarioMultiCurrency = "multi_currency"
)

// StatementLine is the computed view of one order line: delivery progress
// plus amounts in the order's currency and their converted counterparts.
// When no usable rate exists the alternate amounts are zero and
// CurrencyAlt is "N/A".
type StatementLine struct {
	ProductName  string          `json:"product_name"`
	QtyOrdered   decimal.Decimal `json:"qty_ordered"`
	QtyDelivered decimal.Decimal `json:"qty_delivered"`
	QtyPending   decimal.Decimal `json:"qty_pending"`
	PctDelivered decimal.Decimal `json:"pct_delivered"`
	PriceUnit    decimal.Decimal `json:"price_unit"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	Currency     string          `json:"currency"`
	UoM          string          `json:"uom"`
	PriceUnitAlt decimal.Decimal `json:"price_unit_alt"`
	SubtotalAlt  decimal.Decimal `json:"subtotal_alt"`
	TotalAlt     decimal.Decimal `json:"total_alt"`
	CurrencyAlt  string          `json:"currency_alt"`
}

// StatementPayment is one reconciled payment as shown on the statement.
// Amount stays in the payment's own currency; conversion into the order
// currency happens only inside TotalPaid.
type StatementPayment struct {
	Name     string          `json:"name"`
	Date     string          `json:"date"` // YYYY-MM-DD, empty when unset
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Statement is the consolidated financial summary of one sale order.
// Balance figures are mirrored into both USD and MXN using the single
// rate snapshot the statement was built with; the non-native side is
// zero when no usable rate exists.
type Statement struct {
	OrderName     string             `json:"order_name"`
	OrderDate     string             `json:"order_date"` // YYYY-MM-DD
	SellerName    string             `json:"seller_name"`
	Currency      string             `json:"currency"`
	MaterialLines []StatementLine    `json:"material_lines"`
	ServiceLines  []StatementLine    `json:"service_lines"`
	Payments      []StatementPayment `json:"payments"`
	AmountUntaxed decimal.Decimal    `json:"amount_untaxed"`
	AmountTax     decimal.Decimal    `json:"amount_tax"`
	AmountTotal   decimal.Decimal    `json:"amount_total"`
	TotalPaid     decimal.Decimal    `json:"total_paid"`
	Balance       decimal.Decimal    `json:"balance"`
	BalanceUSD    decimal.Decimal    `json:"balance_usd"`
	BalanceMXN    decimal.Decimal    `json:"balance_mxn"`
	TotalUSD      decimal.Decimal    `json:"total_usd"`
	TotalMXN      decimal.Decimal    `json:"total_mxn"`
}

// ReportPayload is the full statement set handed to the report renderer.
// Everything in it is serializable by value, no live records.
type ReportPayload struct {
	SessionID        string          `json:"session_id,omitempty"`
	CustomerID       int             `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	CustomerVAT      string          `json:"customer_vat"`
	ProjectName      string          `json:"project_name"`
	DateFrom         string          `json:"date_from"`
	DateTo           string          `json:"date_to"`
	BanorteRate      decimal.Decimal `json:"banorte_rate"`
	StatementDate    string          `json:"statement_date"`
	Orders           []Statement     `json:"orders_data"`
	TotalBalanceUSD  decimal.Decimal `json:"total_balance_usd"`
	TotalBalanceMXN  decimal.Decimal `json:"total_balance_mxn"`
	TotalAmountUSD   decimal.Decimal `json:"total_amount_usd"`
	TotalAmountMXN   decimal.Decimal `json:"total_amount_mxn"`
	TotalPaidUSD     decimal.Decimal `json:"total_paid_usd"`
	TotalPaidMXN     decimal.Decimal `json:"total_paid_mxn"`
	TotalOrders      int             `json:"total_orders"`
	OrdersUSDCount   int             `json:"orders_usd_count"`
	OrdersMXNCount   int             `json:"orders_mxn_count"`
	CurrencyScenario string          `json:"currency_scenario"`
}
