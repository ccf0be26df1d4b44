package report_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/antonioqueb/account-statement-report/internal/core"
	"github.com/antonioqueb/account-statement-report/internal/report"
)

func TestValues_UnwrapsNestedData(t *testing.T) {
	inner := map[string]any{
		"customer_name": "Mármoles del Norte",
		"banorte_rate":  18.5,
	}
	values := report.Values(nil, map[string]any{"data": inner})

	if values["customer_name"] != "Mármoles del Norte" {
		t.Errorf("expected inner customer name, got %v", values["customer_name"])
	}
	if values["banorte_rate"] != 18.5 {
		t.Errorf("expected inner rate, got %v", values["banorte_rate"])
	}
	if got, ok := values["data"].(map[string]any); !ok || got["customer_name"] != "Mármoles del Norte" {
		t.Error("data must expose the unwrapped inner object")
	}
}

func TestValues_FlatDataPassesThrough(t *testing.T) {
	values := report.Values(nil, map[string]any{"customer_name": "Acme"})
	if values["customer_name"] != "Acme" {
		t.Errorf("expected flat customer name, got %v", values["customer_name"])
	}
}

func TestValues_DefaultsForAbsentKeys(t *testing.T) {
	values := report.Values(nil, nil)

	strings := []string{"customer_name", "customer_vat", "project_name",
		"statement_date", "date_from", "date_to", "currency_scenario"}
	for _, key := range strings {
		if values[key] != "" {
			t.Errorf("%s must default to empty string, got %v", key, values[key])
		}
	}
	numbers := []string{"banorte_rate", "total_balance_usd", "total_balance_mxn",
		"total_amount_usd", "total_amount_mxn", "total_paid_usd", "total_paid_mxn",
		"total_orders", "orders_usd_count", "orders_mxn_count"}
	for _, key := range numbers {
		if values[key] != 0 {
			t.Errorf("%s must default to 0, got %v", key, values[key])
		}
	}
	if list, ok := values["orders_data"].([]any); !ok || len(list) != 0 {
		t.Errorf("orders_data must default to an empty list, got %v", values["orders_data"])
	}
	if ids, ok := values["doc_ids"].([]string); !ok || len(ids) != 0 {
		t.Errorf("doc_ids must default to an empty list, got %v", values["doc_ids"])
	}
	if values["doc_model"] != report.DocModel {
		t.Errorf("expected doc_model %q, got %v", report.DocModel, values["doc_model"])
	}
	if values["report_currency"] != "mxn" {
		t.Errorf("report_currency must default to mxn, got %v", values["report_currency"])
	}
}

func TestValues_SessionIDOverridesDocIDs(t *testing.T) {
	values := report.Values([]string{"caller-id"}, map[string]any{"session_id": "sess-42"})
	ids, ok := values["doc_ids"].([]string)
	if !ok || len(ids) != 1 || ids[0] != "sess-42" {
		t.Errorf("session_id must replace caller doc ids, got %v", values["doc_ids"])
	}
}

func TestValues_CallerDocIDsKeptWithoutSession(t *testing.T) {
	values := report.Values([]string{"caller-id"}, map[string]any{})
	ids, ok := values["doc_ids"].([]string)
	if !ok || len(ids) != 1 || ids[0] != "caller-id" {
		t.Errorf("expected caller doc ids preserved, got %v", values["doc_ids"])
	}
}

func TestValues_ReportCurrencyOverride(t *testing.T) {
	values := report.Values(nil, map[string]any{"report_currency": "usd"})
	if values["report_currency"] != "usd" {
		t.Errorf("explicit report currency must win, got %v", values["report_currency"])
	}
}

func TestPayloadMap_RoundTrip(t *testing.T) {
	payload := &core.ReportPayload{
		SessionID:        "sess-1",
		CustomerID:       7,
		CustomerName:     "Acme",
		BanorteRate:      decimal.RequireFromString("18.5"),
		TotalOrders:      2,
		CurrencyScenario: core.ScenarioMXNOnly,
	}
	m, err := report.PayloadMap(payload)
	if err != nil {
		t.Fatalf("PayloadMap failed: %v", err)
	}
	if m["customer_name"] != "Acme" {
		t.Errorf("expected customer name in map, got %v", m["customer_name"])
	}
	if m["currency_scenario"] != core.ScenarioMXNOnly {
		t.Errorf("expected scenario in map, got %v", m["currency_scenario"])
	}

	// The map feeds straight into Values.
	values := report.Values(nil, m)
	if values["customer_name"] != "Acme" {
		t.Errorf("expected customer name to survive the pipeline, got %v", values["customer_name"])
	}
	ids, ok := values["doc_ids"].([]string)
	if !ok || len(ids) != 1 || ids[0] != "sess-1" {
		t.Errorf("expected session id as doc id, got %v", values["doc_ids"])
	}
}
