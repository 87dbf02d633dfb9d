package pulse

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/finpulse-dev/finpulse/internal/model"
)

// RhythmPattern classifies how steady the income stream is.
type RhythmPattern string

const (
	PatternStable   RhythmPattern = "stable"   // volatility < 0.1
	PatternModerate RhythmPattern = "moderate" // volatility < 0.3
	PatternVolatile RhythmPattern = "volatile"
)

// Rhythm is the income-pattern analysis for a monthly history.
type Rhythm struct {
	Pattern    RhythmPattern
	Volatility float64
	AvgIncome  decimal.Decimal
	StdDev     float64
	Trend      Trend
	DataPoints int
}

// AnalyzeRhythm classifies the income pattern of a monthly history.
// The trend band here is wider than the pulse trend (10% vs 5%):
// rhythm is about structural shifts, not month-to-month noise.
func AnalyzeRhythm(records []model.MonthlyRecord) (Rhythm, error) {
	if len(records) == 0 {
		return Rhythm{}, ErrNoData
	}

	var incomeSum decimal.Decimal
	incomes := make([]float64, len(records))
	for i, rec := range records {
		incomeSum = incomeSum.Add(rec.Income)
		incomes[i] = rec.Income.InexactFloat64()
	}
	avgIncome := incomeSum.Div(decimal.NewFromInt(int64(len(records))))
	avgIncomeF := avgIncome.InexactFloat64()

	var variance float64
	for _, inc := range incomes {
		d := inc - avgIncomeF
		variance += d * d
	}
	variance /= float64(len(incomes))
	stdDev := math.Sqrt(variance)

	volatility := 0.0
	if avgIncomeF > 0 {
		volatility = stdDev / avgIncomeF
	}

	pattern := PatternVolatile
	switch {
	case volatility < 0.1:
		pattern = PatternStable
	case volatility < 0.3:
		pattern = PatternModerate
	}

	return Rhythm{
		Pattern:    pattern,
		Volatility: volatility,
		AvgIncome:  avgIncome,
		StdDev:     stdDev,
		Trend:      trendOf(incomes, avgIncomeF, 0.10),
		DataPoints: len(records),
	}, nil
}

// SavingsPlan is a volatility-adjusted savings suggestion.
type SavingsPlan struct {
	MonthlyAmount decimal.Decimal
	TargetSavings decimal.Decimal // current savings plus the plan over the horizon
	RatePct       float64
	HorizonMonths int
	Confidence    model.Confidence
}

// SuggestSavingsPlan proposes a monthly savings amount from the income
// rhythm: steadier income supports a more aggressive rate (30% stable,
// 25% moderate, 20% volatile).
func SuggestSavingsPlan(r Rhythm, currentSavings decimal.Decimal, horizonMonths int) SavingsPlan {
	rate := 0.20
	switch {
	case r.Volatility < 0.1:
		rate = 0.30
	case r.Volatility < 0.3:
		rate = 0.25
	}

	monthly := r.AvgIncome.Mul(decimal.NewFromFloat(rate)).Round(2)
	target := currentSavings.Add(monthly.Mul(decimal.NewFromInt(int64(horizonMonths))))

	confidence := model.ConfidenceLow
	switch {
	case r.Volatility < 0.2:
		confidence = model.ConfidenceHigh
	case r.Volatility < 0.4:
		confidence = model.ConfidenceMedium
	}

	return SavingsPlan{
		MonthlyAmount: monthly,
		TargetSavings: target,
		RatePct:       rate * 100,
		HorizonMonths: horizonMonths,
		Confidence:    confidence,
	}
}
