package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/antonioqueb/account-statement-report/internal/app"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:]; the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	switch args[0] {
	case "statement", "stmt", "s":
		req, err := parseStatementFlags(args[1:])
		if err != nil {
			log.Fatalf("Invalid flags: %v", err)
		}
		result, err := svc.GenerateStatement(ctx, req)
		if err != nil {
			log.Fatalf("Statement generation failed: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result.Payload)

	case "open-orders", "open", "o":
		req, err := parseStatementFlags(args[1:])
		if err != nil {
			log.Fatalf("Invalid flags: %v", err)
		}
		result, err := svc.SelectOpenOrders(ctx, req)
		if err != nil {
			log.Fatalf("Open-order selection failed: %v", err)
		}
		printOpenOrders(result)

	case "customers", "cust":
		result, err := svc.ListCustomers(ctx)
		if err != nil {
			log.Fatalf("Failed to list customers: %v", err)
		}
		for _, c := range result.Customers {
			fmt.Printf("%6d  %-10s %s\n", c.ID, c.Code, c.Name)
		}

	case "rate", "r":
		result, err := svc.GetExchangeRate(ctx)
		if err != nil {
			log.Fatalf("Failed to resolve rate: %v", err)
		}
		if result.Rate.IsZero() {
			fmt.Println("No usable MXN/USD rate (conversion unavailable).")
		} else {
			fmt.Printf("Banorte rate: %s MXN per USD\n", result.Rate)
		}

	default:
		log.Fatalf("Unknown command: %s\nAvailable: statement, open-orders, customers, rate", args[0])
	}
}

// parseStatementFlags maps CLI flags onto a StatementRequest.
func parseStatementFlags(args []string) (app.StatementRequest, error) {
	fs := flag.NewFlagSet("statement", flag.ContinueOnError)
	customer := fs.Int("customer", 0, "customer id (required)")
	project := fs.Int("project", 0, "optional project id filter")
	from := fs.String("from", "", "date from (YYYY-MM-DD)")
	to := fs.String("to", "", "date to (YYYY-MM-DD, inclusive)")
	drafts := fs.Bool("drafts", false, "include draft/sent quotations")
	paid := fs.Bool("paid", false, "include fully paid orders")
	orders := fs.String("orders", "", "comma-separated order ids (manual selection)")
	session := fs.String("session", "", "wizard session id")

	var req app.StatementRequest
	if err := fs.Parse(args); err != nil {
		return req, err
	}

	req = app.StatementRequest{
		CustomerID:       *customer,
		DateFrom:         *from,
		DateTo:           *to,
		IncludeDraft:     *drafts,
		IncludeFullyPaid: *paid,
		SessionID:        *session,
	}
	if *project != 0 {
		req.ProjectID = project
	}
	if *orders != "" {
		for _, part := range strings.Split(*orders, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return req, fmt.Errorf("invalid order id %q", part)
			}
			req.OrderIDs = append(req.OrderIDs, id)
		}
	}
	return req, nil
}

func printOpenOrders(result *app.OpenOrdersResult) {
	if len(result.Orders) == 0 {
		fmt.Println("No open orders.")
		return
	}
	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  %-12s %-12s %-5s %15s\n", "ORDER", "DATE", "CUR", "TOTAL")
	fmt.Println(strings.Repeat("-", 62))
	for _, o := range result.Orders {
		fmt.Printf("  %-12s %-12s %-5s %15s\n",
			o.Name, o.DateOrder.Format("2006-01-02"), o.Currency, o.AmountTotal.StringFixed(2))
	}
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  %d open order(s)\n", len(result.Orders))
}
