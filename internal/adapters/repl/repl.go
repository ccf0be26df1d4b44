package repl

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/antonioqueb/account-statement-report/internal/app"
)

// Run starts the interactive statement wizard loop. It reads slash
// commands from reader and keeps one wizard session (manual selection)
// alive until exit.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader) {
	sessionID := uuid.NewString()

	fmt.Println("AR Statement Wizard")
	fmt.Printf("Session: %s\n", sessionID)
	fmt.Println("Use /statement to generate a statement, /help for all commands.")
	fmt.Println(strings.Repeat("-", 70))

	for {
		fmt.Print("> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			continue
		}

		switch strings.ToLower(tokens[0]) {
		case "exit", "quit", "q":
			return

		case "help", "h":
			printHelp()

		case "customers", "c":
			result, err := svc.ListCustomers(ctx)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			printCustomers(result)

		case "rate":
			result, err := svc.GetExchangeRate(ctx)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			if result.Rate.IsZero() {
				fmt.Println("No usable MXN/USD rate (conversion unavailable).")
			} else {
				fmt.Printf("Banorte rate: %s MXN per USD\n", result.Rate)
			}

		case "open", "open-orders":
			req := promptFilters(reader, sessionID)
			result, err := svc.SelectOpenOrders(ctx, req)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			printOpenOrders(result)
			fmt.Println("Selection saved for this session; /statement will use it.")

		case "clear":
			if err := svc.ClearSelection(ctx, sessionID); err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Println("Manual selection cleared.")

		case "statement", "s":
			req := promptFilters(reader, sessionID)
			result, err := svc.GenerateStatement(ctx, req)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			printStatementSummary(result)

		default:
			fmt.Printf("Unknown command %q. Use /help.\n", tokens[0])
		}
	}
}

func printHelp() {
	fmt.Println(`Commands:
  /customers        list customers
  /rate             show the MXN/USD rate the next report would use
  /open             pick filters and pre-select open orders for this session
  /clear            drop the session's manual selection
  /statement        pick filters and generate the statement
  /exit             leave`)
}
