package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type pgCurrencyConverter struct {
	pool         *pgxpool.Pool
	baseCurrency string
}

// NewCurrencyConverter constructs a CurrencyConverter over the
// currency_rates table. Rates are stored as units of the currency per one
// unit of the company base currency, matching the host ERP's convention;
// the base currency itself has an implicit rate of 1.
func NewCurrencyConverter(pool *pgxpool.Pool, baseCurrency string) CurrencyConverter {
	return &pgCurrencyConverter{pool: pool, baseCurrency: baseCurrency}
}

func (c *pgCurrencyConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	fromRate, err := c.rateAt(ctx, from, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := c.rateAt(ctx, to, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	if !fromRate.IsPositive() || !toRate.IsPositive() {
		return decimal.Zero, nil
	}
	return amount.Div(fromRate).Mul(toRate), nil
}

// rateAt returns the latest stored rate at or before asOf; zero means no
// rate is known for that currency.
func (c *pgCurrencyConverter) rateAt(ctx context.Context, currency string, asOf time.Time) (decimal.Decimal, error) {
	if currency == c.baseCurrency {
		return decimal.NewFromInt(1), nil
	}
	var rate decimal.Decimal
	err := c.pool.QueryRow(ctx, `
		SELECT rate FROM currency_rates
		WHERE currency = $1 AND rate_date <= $2
		ORDER BY rate_date DESC
		LIMIT 1
	`, currency, asOf).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to read %s rate: %w", currency, err)
	}
	return rate, nil
}
