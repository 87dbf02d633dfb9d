package fiscal

import (
	"fmt"
	"math"
	"time"
)

// The Indian financial year runs April through March. Advance-tax
// installments fall due June 15, September 15, December 15 and
// March 15 within it.

// Year identifies a financial year by its starting calendar year:
// FY 2025-26 has StartYear 2025.
type Year struct {
	StartYear int
}

// YearOf returns the financial year containing t.
func YearOf(t time.Time) Year {
	if t.Month() >= time.April {
		return Year{StartYear: t.Year()}
	}
	return Year{StartYear: t.Year() - 1}
}

// String returns the conventional short form, e.g. "2025-26".
func (y Year) String() string {
	return fmt.Sprintf("%04d-%02d", y.StartYear, (y.StartYear+1)%100)
}

// Start returns April 1 of the starting year, UTC.
func (y Year) Start() time.Time {
	return time.Date(y.StartYear, time.April, 1, 0, 0, 0, 0, time.UTC)
}

// End returns March 31 of the following year, UTC.
func (y Year) End() time.Time {
	return time.Date(y.StartYear+1, time.March, 31, 0, 0, 0, 0, time.UTC)
}

// Quarter is a financial-year quarter: Q1 = April-June.
type Quarter int

const (
	Q1 Quarter = 1
	Q2 Quarter = 2
	Q3 Quarter = 3
	Q4 Quarter = 4
)

// String returns "Q1".."Q4".
func (q Quarter) String() string {
	return fmt.Sprintf("Q%d", int(q))
}

// QuarterOf returns the financial-year quarter containing t.
func QuarterOf(t time.Time) Quarter {
	switch {
	case t.Month() >= time.April && t.Month() <= time.June:
		return Q1
	case t.Month() >= time.July && t.Month() <= time.September:
		return Q2
	case t.Month() >= time.October:
		return Q3
	default: // January-March
		return Q4
	}
}

// DueDate returns the advance-tax installment due date for q within y.
func (y Year) DueDate(q Quarter) time.Time {
	switch q {
	case Q1:
		return time.Date(y.StartYear, time.June, 15, 0, 0, 0, 0, time.UTC)
	case Q2:
		return time.Date(y.StartYear, time.September, 15, 0, 0, 0, 0, time.UTC)
	case Q3:
		return time.Date(y.StartYear, time.December, 15, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y.StartYear+1, time.March, 15, 0, 0, 0, 0, time.UTC)
	}
}

// MonthKey returns the sortable month bucket key for t, e.g. "2025-04".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ParseMonthKey parses a "YYYY-MM" key into the first day of that
// month, UTC.
func ParseMonthKey(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: %w", s, err)
	}
	return t, nil
}

// MonthsUntil returns the number of 30-day windows between now and
// deadline, rounded up, with a floor of 1. Past deadlines count as one
// month: the caller still gets a finite planning horizon.
func MonthsUntil(now, deadline time.Time) int {
	days := deadline.Sub(now).Hours() / 24
	months := int(math.Ceil(days / 30))
	if months < 1 {
		return 1
	}
	return months
}
