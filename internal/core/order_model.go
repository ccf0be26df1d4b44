package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale order states mirrored from the host ERP.
//
//	draft → sent → sale → done
//	any state → cancel
//
// Statements cover sale/done orders; draft/sent are pulled in only when the
// caller asks for quotations.
const (
	OrderStateDraft     = "draft"
	OrderStateQuoteSent = "sent"
	OrderStateConfirmed = "sale"
	OrderStateDone      = "done"
	OrderStateCancelled = "cancel"
)

// Display types for order lines. Section and note rows carry no product or
// amounts and are excluded from statements.
const (
	DisplayTypeSection = "line_section"
	DisplayTypeNote    = "line_note"
)

// ProductTypeService marks lines rendered in the statement's services
// section; everything else counts as material.
const ProductTypeService = "service"

// SaleOrder is a customer sale order header with its statement-relevant
// graph (lines, posted invoices, reconciled payments) preloaded.
// Read-only source of truth; this service never mutates it.
type SaleOrder struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	CustomerID    int             `json:"customer_id"`
	CustomerName  string          `json:"customer_name"` // joined from customers
	ProjectID     *int            `json:"project_id,omitempty"`
	SellerName    string          `json:"seller_name"`
	State         string          `json:"state"`
	DateOrder     time.Time       `json:"date_order"`
	Currency      string          `json:"currency"`
	AmountUntaxed decimal.Decimal `json:"amount_untaxed"`
	AmountTax     decimal.Decimal `json:"amount_tax"`
	AmountTotal   decimal.Decimal `json:"amount_total"`
	IsQuoteBackup bool            `json:"is_quote_backup"`
	Lines         []OrderLine     `json:"lines"`
	Invoices      []Invoice       `json:"invoices"`
}

// OrderLine is one row of a sale order. DisplayType is empty for real
// product lines and line_section/line_note for layout-only rows.
type OrderLine struct {
	ID           int             `json:"id"`
	OrderID      int             `json:"order_id"`
	ProductName  string          `json:"product_name"`
	ProductType  string          `json:"product_type"` // "consu", "service", ...; empty when no product
	HasProduct   bool            `json:"has_product"`
	DisplayType  string          `json:"display_type"`
	QtyOrdered   decimal.Decimal `json:"qty_ordered"`
	QtyDelivered decimal.Decimal `json:"qty_delivered"`
	PriceUnit    decimal.Decimal `json:"price_unit"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	UoM          string          `json:"uom"`
}

// Invoice is a posted customer invoice (out_invoice) linked to a sale
// order, carrying the payments reconciled against it.
type Invoice struct {
	ID       int       `json:"id"`
	OrderID  int       `json:"order_id"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	Payments []Payment `json:"payments"`
}

// Payment is a customer payment reconciled against one or more invoices.
type Payment struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}
