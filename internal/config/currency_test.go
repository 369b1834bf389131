package config

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCurrencyByCode_KnownAndFallback(t *testing.T) {
	if c := CurrencyByCode("EUR"); c.Symbol != "€" {
		t.Fatalf("EUR symbol = %q, want €", c.Symbol)
	}
	if c := CurrencyByCode("XXX"); c.Code != "USD" {
		t.Fatalf("unknown code resolved to %q, want USD fallback", c.Code)
	}
}

func TestCurrencyFormat_RoundsAtDisplay(t *testing.T) {
	usd := CurrencyByCode("USD")

	got := usd.Format(decimal.RequireFromString("12.5"))
	if got != "$12.50" {
		t.Fatalf("Format(12.5) = %q, want $12.50", got)
	}

	// Three decimals round half-up only when rendered.
	got = usd.Format(decimal.RequireFromString("0.005"))
	if got != "$0.01" {
		t.Fatalf("Format(0.005) = %q, want $0.01", got)
	}
}

func TestCurrencyFormat_SymbolPlacement(t *testing.T) {
	after := Currency{Code: "TST", Symbol: "kr", SymbolAfter: true}
	if got := after.Format(decimal.NewFromInt(7)); got != "7.00kr" {
		t.Fatalf("Format = %q, want 7.00kr", got)
	}
}
