package repl

import (
	"fmt"
	"strings"

	"github.com/antonioqueb/account-statement-report/internal/app"
)

func printCustomers(result *app.CustomerListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 72))
	fmt.Println("  CUSTOMERS")
	fmt.Println(strings.Repeat("=", 72))
	if len(result.Customers) == 0 {
		fmt.Println("  No customers found.")
		fmt.Println(strings.Repeat("=", 72))
		return
	}
	fmt.Printf("  %-6s %-10s %-34s %s\n", "ID", "CODE", "NAME", "VAT")
	fmt.Println(strings.Repeat("-", 72))
	for _, c := range result.Customers {
		fmt.Printf("  %-6d %-10s %-34s %s\n", c.ID, c.Code, c.Name, c.VAT)
	}
	fmt.Println(strings.Repeat("=", 72))
}

func printOpenOrders(result *app.OpenOrdersResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Println("  OPEN ORDERS")
	fmt.Println(strings.Repeat("-", 62))
	if len(result.Orders) == 0 {
		fmt.Println("  None.")
		fmt.Println(strings.Repeat("=", 62))
		return
	}
	for _, o := range result.Orders {
		fmt.Printf("  %-12s %-12s %-5s %15s\n",
			o.Name, o.DateOrder.Format("2006-01-02"), o.Currency, o.AmountTotal.StringFixed(2))
	}
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  %d open order(s)\n", len(result.Orders))
}

func printStatementSummary(result *app.StatementResult) {
	p := result.Payload
	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  STATEMENT: %s\n", p.CustomerName)
	fmt.Printf("  Date     : %s\n", p.StatementDate)
	if p.ProjectName != "" {
		fmt.Printf("  Project  : %s\n", p.ProjectName)
	}
	fmt.Printf("  Rate     : %s MXN/USD\n", p.BanorteRate)
	fmt.Printf("  Scenario : %s (%d USD / %d MXN orders)\n",
		p.CurrencyScenario, p.OrdersUSDCount, p.OrdersMXNCount)
	fmt.Println(strings.Repeat("-", 62))
	for _, stmt := range p.Orders {
		fmt.Printf("  %-12s %-5s total %14s  paid %14s  due %14s\n",
			stmt.OrderName, stmt.Currency,
			stmt.AmountTotal.StringFixed(2), stmt.TotalPaid.StringFixed(2), stmt.Balance.StringFixed(2))
	}
	fmt.Println(strings.Repeat("-", 62))
	fmt.Printf("  %-28s USD %16s  MXN %16s\n", "TOTAL BALANCE",
		p.TotalBalanceUSD.StringFixed(2), p.TotalBalanceMXN.StringFixed(2))
	fmt.Printf("  %-28s USD %16s  MXN %16s\n", "TOTAL AMOUNT",
		p.TotalAmountUSD.StringFixed(2), p.TotalAmountMXN.StringFixed(2))
	fmt.Printf("  %-28s USD %16s  MXN %16s\n", "TOTAL PAID",
		p.TotalPaidUSD.StringFixed(2), p.TotalPaidMXN.StringFixed(2))
	fmt.Println(strings.Repeat("=", 62))
}
