package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BanorteRateParam is the configuration key holding the last known
// preferential MXN-per-USD exchange rate.
const BanorteRateParam = "banorte.last_rate"

// ConfigStore reads named configuration parameters. GetParam returns the
// stored string value, or "" when the key is absent.
type ConfigStore interface {
	GetParam(ctx context.Context, key string) (string, error)
}

// CurrencyConverter is the host accounting system's conversion utility.
type CurrencyConverter interface {
	// Convert converts amount from one currency to another at the rate in
	// effect on asOf. A zero result means no rate is known.
	Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time) (decimal.Decimal, error)
}

// RateResolver determines the MXN-per-USD rate used for one report run.
// The configured Banorte rate wins; otherwise it falls back to the live
// currency conversion. Resolve never fails; when no usable rate exists
// it returns zero, which downstream code treats as "conversion unavailable".
type RateResolver struct {
	config       ConfigStore
	converter    CurrencyConverter
	baseCurrency string
}

func NewRateResolver(config ConfigStore, converter CurrencyConverter, baseCurrency string) *RateResolver {
	return &RateResolver{config: config, converter: converter, baseCurrency: baseCurrency}
}

// Resolve returns the MXN-per-USD rate, or zero when unavailable.
// Callers must resolve once per report and pass the snapshot down; the
// rate is never re-resolved per order.
func (r *RateResolver) Resolve(ctx context.Context) decimal.Decimal {
	if raw, err := r.config.GetParam(ctx, BanorteRateParam); err == nil && raw != "" {
		if rate, err := decimal.NewFromString(raw); err == nil && rate.IsPositive() {
			return rate
		}
	}
	return r.liveRate(ctx)
}

// liveRate derives MXN-per-USD from the host conversion utility.
func (r *RateResolver) liveRate(ctx context.Context) decimal.Decimal {
	if r.converter == nil {
		return decimal.Zero
	}
	today := time.Now()
	switch r.baseCurrency {
	case CurrencyMXN:
		rate, err := r.converter.Convert(ctx, decimal.NewFromInt(1), CurrencyUSD, CurrencyMXN, today)
		if err != nil || rate.IsNegative() {
			return decimal.Zero
		}
		return rate
	case CurrencyUSD:
		// The converter yields USD per MXN here; the report wants MXN per USD.
		inverse, err := r.converter.Convert(ctx, decimal.NewFromInt(1), CurrencyMXN, CurrencyUSD, today)
		if err != nil || !inverse.IsPositive() {
			return decimal.Zero
		}
		return decimal.NewFromInt(1).Div(inverse)
	}
	return decimal.Zero
}
