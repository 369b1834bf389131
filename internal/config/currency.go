package config

import "github.com/shopspring/decimal"

// Currency describes how amounts are rendered for one currency code.
type Currency struct {
	Code        string
	Symbol      string
	Name        string
	SymbolAfter bool // symbol follows the amount instead of preceding it
}

// Currencies lists the supported display currencies.
var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
}

// CurrencyByCode returns the currency for a code, defaulting to USD.
func CurrencyByCode(code string) Currency {
	for _, c := range Currencies {
		if c.Code == code {
			return c
		}
	}
	return Currencies[0]
}

// Format renders an amount with the currency symbol, rounded to two
// decimal places. Rounding happens only here, at the display boundary.
func (c Currency) Format(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	if c.SymbolAfter {
		return s + c.Symbol
	}
	return c.Symbol + s
}
