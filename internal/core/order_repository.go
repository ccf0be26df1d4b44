package core

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Op is a predicate comparison operator.
type Op string

const (
	OpEq  Op = "="
	OpIn  Op = "in"
	OpGte Op = ">="
	OpLte Op = "<="
)

// Predicate is one typed filter condition. Filter builders assemble a list
// of these instead of embedding query-language strings; the repository is
// responsible for rendering them safely.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

// OrderRepository is the read-only source of sale orders with their
// statement graph (lines, posted out-invoices, reconciled payments).
type OrderRepository interface {
	// Search returns orders matching all predicates, ordered by date_order
	// ascending. Every order comes back fully loaded.
	Search(ctx context.Context, predicates []Predicate) ([]SaleOrder, error)

	// ByIDs returns the given orders (fully loaded) ordered by date_order
	// ascending. Unknown IDs are silently dropped.
	ByIDs(ctx context.Context, ids []int) ([]SaleOrder, error)

	// SupportsField reports whether an optional column exists on this
	// deployment. Filter builders must consult it before adding predicates
	// on optional fields.
	SupportsField(ctx context.Context, field string) bool
}

// searchableFields whitelists predicate fields and maps them to columns.
var searchableFields = map[string]string{
	"customer_id":     "o.customer_id",
	"state":           "o.state",
	"project_id":      "o.project_id",
	"date_order":      "o.date_order",
	"is_quote_backup": "o.is_quote_backup",
}

// optionalFields may be missing on older deployments; their presence is
// probed against information_schema instead of assumed.
var optionalFields = map[string]bool{
	"is_quote_backup": true,
}

type pgOrderRepository struct {
	pool *pgxpool.Pool

	probeOnce sync.Once
	columns   map[string]bool
}

// NewOrderRepository constructs an OrderRepository over the sale_orders
// tables synced from the host ERP.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &pgOrderRepository{pool: pool}
}

// SupportsField probes sale_orders columns once and caches the result.
// A failed probe reports optional fields as unsupported rather than erroring.
func (r *pgOrderRepository) SupportsField(ctx context.Context, field string) bool {
	if !optionalFields[field] {
		_, ok := searchableFields[field]
		return ok
	}
	r.probeOnce.Do(func() {
		r.columns = map[string]bool{}
		rows, err := r.pool.Query(ctx, `
			SELECT column_name FROM information_schema.columns
			WHERE table_name = 'sale_orders'
		`)
		if err != nil {
			return
		}
		defer rows.Close()
		for rows.Next() {
			var name string
			if rows.Scan(&name) == nil {
				r.columns[name] = true
			}
		}
	})
	return r.columns[field]
}

func (r *pgOrderRepository) Search(ctx context.Context, predicates []Predicate) ([]SaleOrder, error) {
	where, args, err := renderPredicates(predicates)
	if err != nil {
		return nil, err
	}
	query := r.baseSelect(ctx)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY o.date_order ASC, o.id ASC"
	return r.queryOrders(ctx, query, args)
}

func (r *pgOrderRepository) ByIDs(ctx context.Context, ids []int) ([]SaleOrder, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := r.baseSelect(ctx) + " WHERE o.id = ANY($1) ORDER BY o.date_order ASC, o.id ASC"
	return r.queryOrders(ctx, query, []any{ids})
}

// baseSelect builds the order header select. is_quote_backup is selected
// only when the column exists; otherwise a false literal keeps the scan
// shape stable.
func (r *pgOrderRepository) baseSelect(ctx context.Context) string {
	quoteBackup := "false"
	if r.SupportsField(ctx, "is_quote_backup") {
		quoteBackup = "COALESCE(o.is_quote_backup, false)"
	}
	return fmt.Sprintf(`
		SELECT o.id, o.name, o.customer_id, c.name, o.project_id, o.seller_name,
		       o.state, o.date_order, o.currency,
		       o.amount_untaxed, o.amount_tax, o.amount_total, %s
		FROM sale_orders o
		JOIN customers c ON c.id = o.customer_id`, quoteBackup)
}

// renderPredicates converts typed predicates into a parameterized WHERE
// clause. Unknown fields or operators are build errors, not SQL.
func renderPredicates(predicates []Predicate) (string, []any, error) {
	var clauses []string
	var args []any
	for _, p := range predicates {
		column, ok := searchableFields[p.Field]
		if !ok {
			return "", nil, fmt.Errorf("unsearchable field %q", p.Field)
		}
		args = append(args, p.Value)
		n := len(args)
		switch p.Op {
		case OpEq:
			clauses = append(clauses, fmt.Sprintf("%s = $%d", column, n))
		case OpIn:
			clauses = append(clauses, fmt.Sprintf("%s = ANY($%d)", column, n))
		case OpGte:
			clauses = append(clauses, fmt.Sprintf("%s >= $%d", column, n))
		case OpLte:
			clauses = append(clauses, fmt.Sprintf("%s <= $%d", column, n))
		default:
			return "", nil, fmt.Errorf("unsupported operator %q", p.Op)
		}
	}
	return strings.Join(clauses, " AND "), args, nil
}

func (r *pgOrderRepository) queryOrders(ctx context.Context, query string, args []any) ([]SaleOrder, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale orders: %w", err)
	}
	defer rows.Close()

	var orders []SaleOrder
	for rows.Next() {
		var o SaleOrder
		if err := rows.Scan(&o.ID, &o.Name, &o.CustomerID, &o.CustomerName, &o.ProjectID,
			&o.SellerName, &o.State, &o.DateOrder, &o.Currency,
			&o.AmountUntaxed, &o.AmountTax, &o.AmountTotal, &o.IsQuoteBackup); err != nil {
			return nil, fmt.Errorf("failed to scan sale order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sale orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, nil
	}

	if err := r.loadLines(ctx, orders); err != nil {
		return nil, err
	}
	if err := r.loadInvoices(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *pgOrderRepository) loadLines(ctx context.Context, orders []SaleOrder) error {
	index := make(map[int]*SaleOrder, len(orders))
	ids := make([]int, 0, len(orders))
	for i := range orders {
		index[orders[i].ID] = &orders[i]
		ids = append(ids, orders[i].ID)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_name, product_type, has_product, display_type,
		       qty_ordered, qty_delivered, price_unit, subtotal, tax, total, uom
		FROM sale_order_lines
		WHERE order_id = ANY($1)
		ORDER BY order_id, id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductName, &l.ProductType, &l.HasProduct,
			&l.DisplayType, &l.QtyOrdered, &l.QtyDelivered, &l.PriceUnit,
			&l.Subtotal, &l.Tax, &l.Total, &l.UoM); err != nil {
			return fmt.Errorf("failed to scan order line: %w", err)
		}
		if o := index[l.OrderID]; o != nil {
			o.Lines = append(o.Lines, l)
		}
	}
	return rows.Err()
}

// loadInvoices attaches posted out-invoices and their reconciled payments.
func (r *pgOrderRepository) loadInvoices(ctx context.Context, orders []SaleOrder) error {
	index := make(map[int]*SaleOrder, len(orders))
	ids := make([]int, 0, len(orders))
	for i := range orders {
		index[orders[i].ID] = &orders[i]
		ids = append(ids, orders[i].ID)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, name, date
		FROM invoices
		WHERE order_id = ANY($1) AND state = 'posted' AND move_type = 'out_invoice'
		ORDER BY order_id, date, id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to query invoices: %w", err)
	}

	var invoices []Invoice
	var invoiceIDs []int
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.OrderID, &inv.Name, &inv.Date); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
		invoiceIDs = append(invoiceIDs, inv.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read invoices: %w", err)
	}
	if len(invoices) == 0 {
		return nil
	}

	payRows, err := r.pool.Query(ctx, `
		SELECT rec.invoice_id, p.id, p.name, p.date, p.amount, p.currency
		FROM payment_reconciliations rec
		JOIN payments p ON p.id = rec.payment_id
		WHERE rec.invoice_id = ANY($1)
		ORDER BY p.date, p.id
	`, invoiceIDs)
	if err != nil {
		return fmt.Errorf("failed to query reconciled payments: %w", err)
	}
	defer payRows.Close()

	paymentsByInvoice := map[int][]Payment{}
	for payRows.Next() {
		var invoiceID int
		var p Payment
		if err := payRows.Scan(&invoiceID, &p.ID, &p.Name, &p.Date, &p.Amount, &p.Currency); err != nil {
			return fmt.Errorf("failed to scan payment: %w", err)
		}
		paymentsByInvoice[invoiceID] = append(paymentsByInvoice[invoiceID], p)
	}
	if err := payRows.Err(); err != nil {
		return fmt.Errorf("failed to read reconciled payments: %w", err)
	}

	for _, inv := range invoices {
		inv.Payments = paymentsByInvoice[inv.ID]
		if o := index[inv.OrderID]; o != nil {
			o.Invoices = append(o.Invoices, inv)
		}
	}
	return nil
}
