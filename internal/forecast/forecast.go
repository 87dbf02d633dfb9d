// Package forecast projects income forward from observed history and
// sizes an emergency fund against income volatility. Projections are
// plain trend extrapolation over 30-day steps, not a model fit: with a
// thin history they degrade to a flat average and say so via the
// confidence grade.
package forecast

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finpulse-dev/finpulse/internal/model"
)

// trendStep dampens how much of the observed trend each projected
// month carries.
const trendStep = 0.1

// minTrendPoints is the history size needed before a trend is applied.
const minTrendPoints = 4

// Point is one observed income amount.
type Point struct {
	Date   time.Time
	Amount decimal.Decimal
}

// Forecast is one projected month of income.
type Forecast struct {
	Month      time.Time
	Predicted  decimal.Decimal
	Confidence model.Confidence
}

// Income projects income for the next monthsAhead 30-day steps. Fewer
// than three observations yield a flat average anchored at now with
// low confidence; otherwise projection runs from the last observed
// date, applying the first-two versus last-two trend once the history
// has at least four points. Predictions never go below zero.
func Income(history []Point, monthsAhead int, now time.Time) []Forecast {
	if monthsAhead <= 0 {
		return nil
	}

	points := make([]Point, len(history))
	copy(points, history)
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	mean := meanAmount(points)

	if len(points) < 3 {
		return flatForecast(mean, monthsAhead, now, model.ConfidenceLow)
	}

	trend := 0.0
	if len(points) >= minTrendPoints {
		older := points[0].Amount.Add(points[1].Amount).Div(decimal.NewFromInt(2))
		recent := points[len(points)-2].Amount.Add(points[len(points)-1].Amount).Div(decimal.NewFromInt(2))
		if older.IsPositive() {
			trend = recent.Sub(older).Div(older).InexactFloat64()
		}
	}

	last := points[len(points)-1].Date
	forecasts := make([]Forecast, 0, monthsAhead)
	for i := 1; i <= monthsAhead; i++ {
		predicted := mean.Mul(decimal.NewFromFloat(1 + trend*float64(i)*trendStep)).Round(2)
		if predicted.IsNegative() {
			predicted = decimal.Zero
		}
		forecasts = append(forecasts, Forecast{
			Month:      last.AddDate(0, 0, 30*i),
			Predicted:  predicted,
			Confidence: model.ConfidenceMedium,
		})
	}
	return forecasts
}

func flatForecast(mean decimal.Decimal, monthsAhead int, from time.Time, conf model.Confidence) []Forecast {
	forecasts := make([]Forecast, 0, monthsAhead)
	for i := 1; i <= monthsAhead; i++ {
		forecasts = append(forecasts, Forecast{
			Month:      from.AddDate(0, 0, 30*i),
			Predicted:  mean.Round(2),
			Confidence: conf,
		})
	}
	return forecasts
}

func meanAmount(points []Point) decimal.Decimal {
	if len(points) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, p := range points {
		sum = sum.Add(p.Amount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(points))))
}

// FundPlan is an emergency-fund recommendation.
type FundPlan struct {
	RecommendedAmount decimal.Decimal
	MonthsCovered     float64
	Reason            string
}

// EmergencyFund sizes a cash reserve: three months of expenses for
// steady income, four for moderate swings, six for volatile income,
// plus half a month per dependent.
func EmergencyFund(avgMonthlyExpense decimal.Decimal, volatility float64, dependents int) FundPlan {
	baseMonths := 6.0
	switch {
	case volatility < 0.1:
		baseMonths = 3
	case volatility < 0.3:
		baseMonths = 4
	}

	if dependents < 0 {
		dependents = 0
	}
	months := baseMonths + 0.5*float64(dependents)

	amount := avgMonthlyExpense.Mul(decimal.NewFromFloat(months)).Round(2)

	return FundPlan{
		RecommendedAmount: amount,
		MonthsCovered:     months,
		Reason:            fundReason(volatility, dependents),
	}
}

func fundReason(volatility float64, dependents int) string {
	reason := "you have stable income"
	switch {
	case volatility > 0.3:
		reason = "your income is highly variable"
	case volatility > 0.1:
		reason = "your income has moderate fluctuations"
	}

	if dependents > 0 {
		reason = fmt.Sprintf("%s and you have %d dependent(s)", reason, dependents)
	}
	return fmt.Sprintf("Based on %s, we recommend this emergency fund size.", reason)
}
