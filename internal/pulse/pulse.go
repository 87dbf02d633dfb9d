// Package pulse derives the 0-100 financial pulse score from aggregated
// monthly history: a weighted composite of income stability and savings
// rate. Everything here is a pure function of its inputs.
package pulse

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"github.com/finpulse-dev/finpulse/internal/model"
)

// ErrNoData is returned when there is no monthly history to score.
// Callers show an "add data" placeholder instead of a misleading zero.
var ErrNoData = errors.New("no monthly records")

// Trend describes where recent income is heading relative to the
// overall average.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Result is the full pulse breakdown for one history.
type Result struct {
	Score          int     // final 0-100 composite
	StabilityScore float64 // clamped to [0,100]
	SavingsScore   float64 // clamped to [0,100]
	SavingsRatePct float64 // raw rate, negative when spending exceeds income
	Volatility     float64 // stddev(income) / avg(income)
	AvgIncome      decimal.Decimal
	AvgExpense     decimal.Decimal
	Trend          Trend
}

// Compute scores a monthly history. The score weights stability at 40%
// and savings rate at 60%. A single month has no measurable variance,
// so its stability is always 100.
func Compute(records []model.MonthlyRecord) (Result, error) {
	if len(records) == 0 {
		return Result{}, ErrNoData
	}

	n := decimal.NewFromInt(int64(len(records)))
	var incomeSum, expenseSum decimal.Decimal
	incomes := make([]float64, len(records))
	for i, rec := range records {
		incomeSum = incomeSum.Add(rec.Income)
		expenseSum = expenseSum.Add(rec.Expense)
		incomes[i] = rec.Income.InexactFloat64()
	}
	avgIncome := incomeSum.Div(n)
	avgExpense := expenseSum.Div(n)

	avgIncomeF := avgIncome.InexactFloat64()
	avgExpenseF := avgExpense.InexactFloat64()

	savingsRate := 0.0
	if avgIncomeF > 0 {
		savingsRate = (avgIncomeF - avgExpenseF) / avgIncomeF * 100
	}

	volatility := 0.0
	if avgIncomeF > 0 {
		var variance float64
		for _, inc := range incomes {
			d := inc - avgIncomeF
			variance += d * d
		}
		variance /= float64(len(incomes))
		volatility = math.Sqrt(variance) / avgIncomeF
	}

	stability := clamp(0, 100, 100-volatility*100)
	savingsScore := clamp(0, 100, savingsRate)

	return Result{
		Score:          int(math.Round(stability*0.4 + savingsScore*0.6)),
		StabilityScore: stability,
		SavingsScore:   savingsScore,
		SavingsRatePct: savingsRate,
		Volatility:     volatility,
		AvgIncome:      avgIncome,
		AvgExpense:     avgExpense,
		Trend:          trendOf(incomes, avgIncomeF, 0.05),
	}, nil
}

// trendOf compares the last-3-month average income against the overall
// average with a symmetric tolerance band. Fewer than 3 months always
// reads as stable.
func trendOf(incomes []float64, overall, band float64) Trend {
	if len(incomes) < 3 {
		return TrendStable
	}
	recent := incomes[len(incomes)-3:]
	var sum float64
	for _, v := range recent {
		sum += v
	}
	recentAvg := sum / float64(len(recent))

	switch {
	case recentAvg > overall*(1+band):
		return TrendUp
	case recentAvg < overall*(1-band):
		return TrendDown
	default:
		return TrendStable
	}
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
