package pulse

// Insights turns a pulse result into short coaching lines. Bands are
// fixed: the point is a stable message per state, not prose variety.
func Insights(res Result) []string {
	var insights []string

	switch {
	case res.Score >= 80:
		insights = append(insights, "Excellent financial health. Keep up the great work.")
	case res.Score >= 60:
		insights = append(insights, "Good financial position. Small improvements can take you further.")
	case res.Score >= 40:
		insights = append(insights, "Moderate financial health. Focus on increasing savings.")
	default:
		insights = append(insights, "Attention needed. Work on stabilizing your finances.")
	}

	if res.Volatility > 0.4 {
		insights = append(insights, "Income fluctuates significantly. Build a 3-month emergency fund.")
	}

	if res.SavingsScore < 10 {
		insights = append(insights, "Try to save at least 10-15% of your income each month.")
	} else if res.SavingsScore > 40 {
		insights = append(insights, "Outstanding savings rate. Consider investing for growth.")
	}

	return insights
}
