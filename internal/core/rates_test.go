package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/antonioqueb/account-statement-report/internal/core"
)

type fakeConfig struct {
	values map[string]string
	err    error
}

func (f *fakeConfig) GetParam(ctx context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.values[key], nil
}

// fakeConverter returns a fixed result per (from,to) pair.
type fakeConverter struct {
	rates map[string]decimal.Decimal // key "FROM/TO"
	err   error
}

func (f *fakeConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return amount.Mul(f.rates[from+"/"+to]), nil
}

func TestRateResolver_ConfiguredRateWins(t *testing.T) {
	resolver := core.NewRateResolver(
		&fakeConfig{values: map[string]string{core.BanorteRateParam: "19.5"}},
		&fakeConverter{rates: map[string]decimal.Decimal{"USD/MXN": decimal.NewFromInt(99)}},
		core.CurrencyMXN,
	)

	rate := resolver.Resolve(context.Background())
	if !rate.Equal(decimal.RequireFromString("19.5")) {
		t.Errorf("expected configured rate 19.5, got %s", rate)
	}
}

func TestRateResolver_FallbackCases(t *testing.T) {
	liveRate := decimal.RequireFromString("18.25")
	tests := []struct {
		name  string
		param string
	}{
		{"missing param", ""},
		{"zero param", "0"},
		{"negative param", "-4"},
		{"garbage param", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := map[string]string{}
			if tt.param != "" {
				values[core.BanorteRateParam] = tt.param
			}
			resolver := core.NewRateResolver(
				&fakeConfig{values: values},
				&fakeConverter{rates: map[string]decimal.Decimal{"USD/MXN": liveRate}},
				core.CurrencyMXN,
			)
			rate := resolver.Resolve(context.Background())
			if !rate.Equal(liveRate) {
				t.Errorf("expected live rate %s, got %s", liveRate, rate)
			}
		})
	}
}

func TestRateResolver_USDBaseTakesReciprocal(t *testing.T) {
	// 1 MXN = 0.05 USD, so the report rate is 20 MXN per USD.
	resolver := core.NewRateResolver(
		&fakeConfig{values: map[string]string{}},
		&fakeConverter{rates: map[string]decimal.Decimal{"MXN/USD": decimal.RequireFromString("0.05")}},
		core.CurrencyUSD,
	)
	rate := resolver.Resolve(context.Background())
	if !rate.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected reciprocal rate 20, got %s", rate)
	}
}

func TestRateResolver_NeverErrors(t *testing.T) {
	tests := []struct {
		name     string
		config   core.ConfigStore
		conv     core.CurrencyConverter
		base     string
	}{
		{"config error and converter error", &fakeConfig{err: errors.New("down")}, &fakeConverter{err: errors.New("down")}, core.CurrencyMXN},
		{"zero conversion", &fakeConfig{values: map[string]string{}}, &fakeConverter{rates: map[string]decimal.Decimal{}}, core.CurrencyMXN},
		{"zero reciprocal", &fakeConfig{values: map[string]string{}}, &fakeConverter{rates: map[string]decimal.Decimal{}}, core.CurrencyUSD},
		{"nil converter", &fakeConfig{values: map[string]string{}}, nil, core.CurrencyMXN},
		{"unknown base currency", &fakeConfig{values: map[string]string{}}, &fakeConverter{rates: map[string]decimal.Decimal{}}, "EUR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := core.NewRateResolver(tt.config, tt.conv, tt.base)
			if rate := resolver.Resolve(context.Background()); !rate.IsZero() {
				t.Errorf("expected degraded zero rate, got %s", rate)
			}
		})
	}
}
