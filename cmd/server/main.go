package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	webAdapter "github.com/antonioqueb/account-statement-report/internal/adapters/web"
	"github.com/antonioqueb/account-statement-report/internal/app"
	"github.com/antonioqueb/account-statement-report/internal/core"
	"github.com/antonioqueb/account-statement-report/internal/db"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	company, err := loadDefaultCompany(ctx, pool)
	if err != nil {
		log.Fatalf("company: %v", err)
	}

	svc := buildService(pool, company)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins)

	log.Printf("statement server starting on :%s (company %s, base %s)",
		port, company.CompanyCode, company.BaseCurrency)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
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
