package pipeline

import (
	"github.com/shopspring/decimal"

	"pawtally/internal/model"
)

var monthsPerYear = decimal.NewFromInt(12)

// EstimateTotals summarizes an annual cost estimate.
type EstimateTotals struct {
	Monthly           decimal.Decimal // sum of the monthly lines
	AnnualFromMonthly decimal.Decimal // Monthly * 12
	OneTime           decimal.Decimal // sum of the one-time lines
	TotalAnnual       decimal.Decimal // AnnualFromMonthly + OneTime
}

// SummarizeEstimate totals an estimate: twelve months of the monthly
// amounts plus the one-time costs.
func SummarizeEstimate(est model.AnnualEstimate) EstimateTotals {
	t := EstimateTotals{
		Monthly: decimal.Zero,
		OneTime: decimal.Zero,
	}
	for _, amount := range est.MonthlyExpenses {
		t.Monthly = t.Monthly.Add(amount)
	}
	for _, amount := range est.OneTimeExpenses {
		t.OneTime = t.OneTime.Add(amount)
	}
	t.AnnualFromMonthly = t.Monthly.Mul(monthsPerYear)
	t.TotalAnnual = t.AnnualFromMonthly.Add(t.OneTime)
	return t
}
