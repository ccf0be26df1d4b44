package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/antonioqueb/account-statement-report/internal/adapters/cli"
	"github.com/antonioqueb/account-statement-report/internal/adapters/repl"
	"github.com/antonioqueb/account-statement-report/internal/app"
	"github.com/antonioqueb/account-statement-report/internal/core"
	"github.com/antonioqueb/account-statement-report/internal/db"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	company, err := loadDefaultCompany(ctx, pool)
	if err != nil {
		log.Fatalf("Failed to load company: %v", err)
	}

	svc := buildService(pool, company)

	if len(os.Args) > 1 {
		cli.Run(ctx, svc, os.Args[1:])
		return
	}
	repl.Run(ctx, svc, bufio.NewReader(os.Stdin))
}

func loadDefaultCompany(ctx context.Context, pool *pgxpool.Pool) (*core.Company, error) {
	c := &core.Company{}
	err := pool.QueryRow(ctx,
		"SELECT id, company_code, name, base_currency FROM companies LIMIT 1",
	).Scan(&c.ID, &c.CompanyCode, &c.Name, &c.BaseCurrency)
	if err != nil {
		return nil, fmt.Errorf("no default company found, have migrations run?: %w", err)
	}
	return c, nil
}

func buildService(pool *pgxpool.Pool, company *core.Company) app.ApplicationService {
	configStore := core.NewConfigStore(pool)
	converter := core.NewCurrencyConverter(pool, company.BaseCurrency)
	resolver := core.NewRateResolver(configStore, converter, company.BaseCurrency)

	orders := core.NewOrderRepository(pool)
	customers := core.NewCustomerRepository(pool)
	projects := core.NewProjectRepository(pool)
	selections := core.NewSelectionStore(pool)

	statements := core.NewStatementService(orders, customers, projects, resolver)
	return app.NewAppService(statements, customers, selections)
}
