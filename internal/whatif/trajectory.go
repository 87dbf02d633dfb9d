package whatif

import "github.com/shopspring/decimal"

// TrajectoryPoint is one month on a projected savings curve.
type TrajectoryPoint struct {
	Month   int
	Balance decimal.Decimal
}

// Trajectory projects a savings balance month by month over the given
// span. A purchase, if any, lands in month zero; the monthly surplus
// accrues between points. The result holds months+1 points so callers
// can chart with/without-purchase curves side by side.
func Trajectory(currentSavings, monthlySurplus decimal.Decimal, months int, withPurchase decimal.Decimal) []TrajectoryPoint {
	if months < 0 {
		months = 0
	}

	balance := currentSavings
	if withPurchase.IsPositive() {
		balance = balance.Sub(withPurchase)
	}

	points := make([]TrajectoryPoint, 0, months+1)
	for month := 0; month <= months; month++ {
		points = append(points, TrajectoryPoint{Month: month, Balance: balance})
		balance = balance.Add(monthlySurplus)
	}
	return points
}
