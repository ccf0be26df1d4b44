package core

import "time"

// Currencies handled by the statement report. Orders and payments in any
// other currency are carried through untouched (no conversion rule exists).
const (
	CurrencyUSD = "USD"
	CurrencyMXN = "MXN"
)

// CurrencyUnavailable is the alternate-currency label used when no usable
// exchange rate exists for a line.
const CurrencyUnavailable = "N/A"

type Company struct {
	ID           int    `json:"id"`
	CompanyCode  string `json:"company_code"`
	Name         string `json:"name"`
	BaseCurrency string `json:"base_currency"`
}

// Customer is the AR counterparty a statement is generated for.
// Synced from the host ERP; read-only here.
type Customer struct {
	ID        int       `json:"id"`
	CompanyID int       `json:"company_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	VAT       string    `json:"vat"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Project is an optional grouping of sale orders used as a statement filter.
type Project struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
