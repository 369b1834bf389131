package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"

	"pawtally/internal/model"
)

func TestSummarizeEstimate(t *testing.T) {
	est := model.AnnualEstimate{
		MonthlyExpenses: map[model.Category]decimal.Decimal{
			model.CategoryFood:     dec(t, "50.00"),
			model.CategoryGrooming: dec(t, "12.50"),
		},
		OneTimeExpenses: map[string]decimal.Decimal{
			"adoption": dec(t, "200.00"),
			"supplies": dec(t, "79.99"),
		},
	}

	got := SummarizeEstimate(est)

	if want := dec(t, "62.50"); !got.Monthly.Equal(want) {
		t.Fatalf("Monthly = %s, want %s", got.Monthly, want)
	}
	if want := dec(t, "750.00"); !got.AnnualFromMonthly.Equal(want) {
		t.Fatalf("AnnualFromMonthly = %s, want %s", got.AnnualFromMonthly, want)
	}
	if want := dec(t, "279.99"); !got.OneTime.Equal(want) {
		t.Fatalf("OneTime = %s, want %s", got.OneTime, want)
	}
	if want := dec(t, "1029.99"); !got.TotalAnnual.Equal(want) {
		t.Fatalf("TotalAnnual = %s, want %s", got.TotalAnnual, want)
	}
}

func TestSummarizeEstimate_EmptyLines(t *testing.T) {
	got := SummarizeEstimate(model.AnnualEstimate{})

	if !got.TotalAnnual.IsZero() || !got.Monthly.IsZero() || !got.OneTime.IsZero() {
		t.Fatalf("empty estimate totals = %+v, want all zero", got)
	}
}
