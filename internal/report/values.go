// Package report maps an assembled statement payload into the exact
// variable set the PDF template consumes. It performs no computation,
// only defensive unwrapping, defaulting, and renaming.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/antonioqueb/account-statement-report/internal/core"
)

// DocModel is the document-wrapping tag the rendering collaborator uses
// to identify the originating record type.
const DocModel = "statement.wizard"

// Values builds the template variable map from the payload produced by
// the statement service. Callers sometimes pass the payload nested under
// a "data" key; the inner object is preferred when present. Every
// template variable gets either the payload's value or its documented
// default (0, "", empty list); absent keys never surface as nil.
func Values(docIDs []string, data map[string]any) map[string]any {
	if data == nil {
		data = map[string]any{}
	}
	inner := data
	if nested, ok := data["data"].(map[string]any); ok {
		inner = nested
	}

	ids := docIDs
	if sessionID := stringValue(inner, "session_id"); sessionID != "" {
		ids = []string{sessionID}
	}
	if ids == nil {
		ids = []string{}
	}

	return map[string]any{
		"doc_ids":           ids,
		"doc_model":         DocModel,
		"data":              inner,
		"banorte_rate":      numberValue(inner, "banorte_rate"),
		"orders_data":       listValue(inner, "orders_data"),
		"customer_name":     stringValue(inner, "customer_name"),
		"customer_vat":      stringValue(inner, "customer_vat"),
		"project_name":      stringValue(inner, "project_name"),
		"statement_date":    stringValue(inner, "statement_date"),
		"date_from":         stringValue(inner, "date_from"),
		"date_to":           stringValue(inner, "date_to"),
		"total_balance_usd": numberValue(inner, "total_balance_usd"),
		"total_balance_mxn": numberValue(inner, "total_balance_mxn"),
		"total_amount_usd":  numberValue(inner, "total_amount_usd"),
		"total_amount_mxn":  numberValue(inner, "total_amount_mxn"),
		"total_paid_usd":    numberValue(inner, "total_paid_usd"),
		"total_paid_mxn":    numberValue(inner, "total_paid_mxn"),
		"total_orders":      numberValue(inner, "total_orders"),
		"orders_usd_count":  numberValue(inner, "orders_usd_count"),
		"orders_mxn_count":  numberValue(inner, "orders_mxn_count"),
		"currency_scenario": stringValue(inner, "currency_scenario"),
		"report_currency":   stringValueDefault(inner, "report_currency", "mxn"),
	}
}

// PayloadMap converts the typed payload into the generic map form the
// renderer contract uses, going through its JSON encoding so only
// serializable primitives cross the boundary.
func PayloadMap(p *core.ReportPayload) (map[string]any, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report payload: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode report payload: %w", err)
	}
	return m, nil
}

func stringValue(m map[string]any, key string) string {
	return stringValueDefault(m, key, "")
}

func stringValueDefault(m map[string]any, key, def string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return def
}

// numberValue keeps whatever numeric representation the payload carried
// (float64 from JSON, json.Number, decimal string); absence defaults to 0.
func numberValue(m map[string]any, key string) any {
	v, ok := m[key]
	if !ok || v == nil {
		return 0
	}
	return v
}

func listValue(m map[string]any, key string) []any {
	if l, ok := m[key].([]any); ok {
		return l
	}
	return []any{}
}
