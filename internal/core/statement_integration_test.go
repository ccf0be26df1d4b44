package core_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/antonioqueb/account-statement-report/internal/core"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Clean and seed test DB
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE statement_selections, payment_reconciliations, payments, invoices,
			sale_order_lines, sale_orders, projects, customers, companies,
			currency_rates, config_params CASCADE;

		INSERT INTO companies (id, company_code, name, base_currency) VALUES (1, '1000', 'Marmolería Test', 'MXN');

		INSERT INTO customers (id, company_id, code, name, vat, email) VALUES
		(7, 1, 'C007', 'Cliente Integración', 'CIT010101ABC', 'cliente@test.mx');

		INSERT INTO projects (id, name) VALUES (3, 'Residencial Lomas');

		INSERT INTO sale_orders (id, name, customer_id, project_id, seller_name, state, date_order, currency, amount_untaxed, amount_tax, amount_total, is_quote_backup) VALUES
		(1, 'S00001', 7, 3,    'Laura', 'sale',  '2026-05-01T12:00:00Z', 'MXN', 1000, 160, 1160, false),
		(2, 'S00002', 7, NULL, 'Laura', 'sale',  '2026-05-02T12:00:00Z', 'USD',  500,  80,  580, false),
		(3, 'S00003', 7, NULL, 'Laura', 'draft', '2026-05-03T12:00:00Z', 'MXN',  100,   0,  100, false),
		(4, 'S00004', 7, NULL, 'Laura', 'sale',  '2026-05-04T12:00:00Z', 'MXN',  999,   0,  999, true);

		INSERT INTO sale_order_lines (order_id, product_name, product_type, has_product, display_type, qty_ordered, qty_delivered, price_unit, subtotal, tax, total, uom) VALUES
		(1, 'Cubierta de granito', 'consu',   true,  '',             10, 4, 100, 1000, 160, 1160, 'm²'),
		(1, 'Materiales',          '',        false, 'line_section',  0, 0,   0,    0,   0,    0, ''),
		(2, 'Instalación',         'service', true,  '',              1, 0, 500,  500,  80,  580, 'Units');

		INSERT INTO invoices (id, order_id, name, date, state, move_type) VALUES
		(1, 1, 'INV/2026/0001', '2026-05-10', 'posted', 'out_invoice'),
		(2, 1, 'INV/2026/0002', '2026-05-11', 'draft',  'out_invoice');

		INSERT INTO payments (id, name, date, amount, currency) VALUES
		(1, 'PAY/0001', '2026-05-12', 160, 'MXN');

		INSERT INTO payment_reconciliations (invoice_id, payment_id) VALUES (1, 1);

		INSERT INTO currency_rates (currency, rate, rate_date) VALUES ('USD', 0.05, '2026-01-01');

		INSERT INTO config_params (key, value) VALUES ('banorte.last_rate', '18.5');
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func confirmedStatePredicates(customerID int) []core.Predicate {
	return []core.Predicate{
		{Field: "customer_id", Op: core.OpEq, Value: customerID},
		{Field: "state", Op: core.OpIn, Value: []string{core.OrderStateConfirmed, core.OrderStateDone}},
		{Field: "is_quote_backup", Op: core.OpEq, Value: false},
	}
}

func TestOrderRepository_SearchLoadsFullGraph(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := core.NewOrderRepository(pool)
	ctx := context.Background()

	if !repo.SupportsField(ctx, "is_quote_backup") {
		t.Fatal("migrated schema must report is_quote_backup as supported")
	}

	orders, err := repo.Search(ctx, confirmedStatePredicates(7))
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	// Draft order 3 and quote-backup order 4 must be excluded.
	if len(orders) != 2 || orders[0].Name != "S00001" || orders[1].Name != "S00002" {
		t.Fatalf("expected S00001 and S00002 in date order, got %+v", orders)
	}

	first := orders[0]
	if first.CustomerName != "Cliente Integración" {
		t.Errorf("expected joined customer name, got %q", first.CustomerName)
	}
	if len(first.Lines) != 2 {
		t.Errorf("expected 2 lines (product + section) loaded, got %d", len(first.Lines))
	}
	// Only the posted out-invoice comes back, with its reconciled payment.
	if len(first.Invoices) != 1 {
		t.Fatalf("expected 1 posted invoice, got %d", len(first.Invoices))
	}
	if len(first.Invoices[0].Payments) != 1 || !first.Invoices[0].Payments[0].Amount.Equal(decimal.NewFromInt(160)) {
		t.Errorf("expected reconciled payment of 160, got %+v", first.Invoices[0].Payments)
	}
}

func TestOrderRepository_ByIDs(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := core.NewOrderRepository(pool)
	orders, err := repo.ByIDs(context.Background(), []int{2, 1})
	if err != nil {
		t.Fatalf("ByIDs failed: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != 1 || orders[1].ID != 2 {
		t.Errorf("expected orders 1,2 in date order, got %+v", orders)
	}
}

func TestOrderRepository_DateRangePredicates(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := core.NewOrderRepository(pool)
	predicates := append(confirmedStatePredicates(7),
		core.Predicate{Field: "date_order", Op: core.OpGte, Value: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)},
		core.Predicate{Field: "date_order", Op: core.OpLte, Value: time.Date(2026, 5, 2, 23, 59, 59, 0, time.UTC)},
	)
	orders, err := repo.Search(context.Background(), predicates)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(orders) != 1 || orders[0].Name != "S00002" {
		t.Errorf("expected only S00002 in range, got %+v", orders)
	}
}

func TestConfigStoreAndCurrencyConverter(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	config := core.NewConfigStore(pool)

	value, err := config.GetParam(ctx, core.BanorteRateParam)
	if err != nil || value != "18.5" {
		t.Errorf("expected configured rate 18.5, got %q (%v)", value, err)
	}
	value, err = config.GetParam(ctx, "no.such.key")
	if err != nil || value != "" {
		t.Errorf("missing params must return empty without error, got %q (%v)", value, err)
	}

	// USD stored at 0.05 units per MXN, so 1 USD converts to 20 MXN.
	converter := core.NewCurrencyConverter(pool, core.CurrencyMXN)
	converted, err := converter.Convert(ctx, decimal.NewFromInt(100), core.CurrencyUSD, core.CurrencyMXN, time.Now())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !converted.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected 2000 MXN, got %s", converted)
	}

	unknown, err := converter.Convert(ctx, decimal.NewFromInt(100), "EUR", core.CurrencyMXN, time.Now())
	if err != nil || !unknown.IsZero() {
		t.Errorf("unknown currency must convert to zero, got %s (%v)", unknown, err)
	}
}

func TestSelectionStore_SaveLoadClear(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	store := core.NewSelectionStore(pool)
	ctx := context.Background()
	session := "sess-integration"

	if err := store.Save(ctx, session, []int{1, 2}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	ids, err := store.Load(ctx, session)
	if err != nil || len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("expected [1 2], got %v (%v)", ids, err)
	}

	// A second save replaces the selection.
	if err := store.Save(ctx, session, []int{2}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	ids, _ = store.Load(ctx, session)
	if len(ids) != 1 || ids[0] != 2 {
		t.Errorf("expected replaced selection [2], got %v", ids)
	}

	if err := store.Clear(ctx, session); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	ids, _ = store.Load(ctx, session)
	if len(ids) != 0 {
		t.Errorf("expected empty selection after clear, got %v", ids)
	}
}

func TestGenerateStatement_EndToEnd(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	config := core.NewConfigStore(pool)
	converter := core.NewCurrencyConverter(pool, core.CurrencyMXN)
	resolver := core.NewRateResolver(config, converter, core.CurrencyMXN)
	svc := core.NewStatementService(
		core.NewOrderRepository(pool),
		core.NewCustomerRepository(pool),
		core.NewProjectRepository(pool),
		resolver,
	)

	payload, err := svc.GenerateStatement(ctx, core.StatementFilters{CustomerID: 7})
	if err != nil {
		t.Fatalf("GenerateStatement failed: %v", err)
	}

	if !payload.BanorteRate.Equal(decimal.RequireFromString("18.5")) {
		t.Errorf("expected configured rate 18.5, got %s", payload.BanorteRate)
	}
	if payload.CurrencyScenario != core.ScenarioMultiCurrency {
		t.Errorf("expected multi_currency, got %s", payload.CurrencyScenario)
	}
	if payload.TotalOrders != 2 || payload.OrdersUSDCount != 1 || payload.OrdersMXNCount != 1 {
		t.Errorf("bad order counts: total=%d usd=%d mxn=%d",
			payload.TotalOrders, payload.OrdersUSDCount, payload.OrdersMXNCount)
	}
	if payload.CustomerName != "Cliente Integración" || payload.CustomerVAT != "CIT010101ABC" {
		t.Errorf("bad customer identity: %q %q", payload.CustomerName, payload.CustomerVAT)
	}

	// Order 1: 1160 total, 160 paid → balance 1000 MXN.
	first := payload.Orders[0]
	if first.OrderName != "S00001" || !first.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected S00001 with balance 1000, got %s %s", first.OrderName, first.Balance)
	}
	if len(first.MaterialLines) != 1 {
		t.Errorf("section rows must not become statement lines, got %d", len(first.MaterialLines))
	}
	// Order 2: service order, no payments → balance 580 USD.
	second := payload.Orders[1]
	if second.OrderName != "S00002" || !second.Balance.Equal(decimal.NewFromInt(580)) {
		t.Errorf("expected S00002 with balance 580, got %s %s", second.OrderName, second.Balance)
	}
	if len(second.ServiceLines) != 1 {
		t.Errorf("expected the service line split out, got %d", len(second.ServiceLines))
	}
}

func TestGenerateStatement_LiveRateFallbackEndToEnd(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	if _, err := pool.Exec(ctx, "DELETE FROM config_params WHERE key = $1", core.BanorteRateParam); err != nil {
		t.Fatalf("Failed to drop configured rate: %v", err)
	}

	resolver := core.NewRateResolver(
		core.NewConfigStore(pool),
		core.NewCurrencyConverter(pool, core.CurrencyMXN),
		core.CurrencyMXN,
	)
	rate := resolver.Resolve(ctx)
	if !rate.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected live rate 20 from currency_rates, got %s", rate)
	}
}
