package tax

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finpulse-dev/finpulse/internal/fiscal"
)

func TestMilestoneSchedule(t *testing.T) {
	fy := fiscal.Year{StartYear: 2025}
	payments := map[fiscal.Quarter]decimal.Decimal{
		fiscal.Q1: dec("15000"),
		fiscal.Q2: dec("10000"),
	}

	milestones := MilestoneSchedule(fy, dec("100000"), payments)
	require.Len(t, milestones, 4)

	assert.Equal(t, []int64{15, 45, 75, 100}, []int64{
		milestones[0].TargetPercent,
		milestones[1].TargetPercent,
		milestones[2].TargetPercent,
		milestones[3].TargetPercent,
	})

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), milestones[0].DueDate)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), milestones[3].DueDate)

	// Paid percentages are cumulative: 15, then 25 from Q2 onward.
	assert.InDelta(t, 15.0, milestones[0].PaidPercent, 1e-9)
	assert.InDelta(t, 25.0, milestones[1].PaidPercent, 1e-9)
	assert.InDelta(t, 25.0, milestones[2].PaidPercent, 1e-9)
	assert.InDelta(t, 25.0, milestones[3].PaidPercent, 1e-9)
}

func TestMilestoneSchedule_Shortfalls(t *testing.T) {
	fy := fiscal.Year{StartYear: 2025}
	annual := dec("100000")
	payments := map[fiscal.Quarter]decimal.Decimal{fiscal.Q1: dec("15000")}

	milestones := MilestoneSchedule(fy, annual, payments)

	assert.True(t, milestones[0].Shortfall(annual).IsZero(), "Q1 target met exactly")
	assert.True(t, milestones[1].Shortfall(annual).Equal(dec("30000")), "Q2 shortfall = %s", milestones[1].Shortfall(annual))
	assert.True(t, milestones[3].Shortfall(annual).Equal(dec("85000")))
}

func TestMilestoneSchedule_ZeroEstimate(t *testing.T) {
	fy := fiscal.Year{StartYear: 2025}

	milestones := MilestoneSchedule(fy, decimal.Zero, nil)
	require.Len(t, milestones, 4)
	for _, m := range milestones {
		assert.Zero(t, m.PaidPercent)
	}
}

func TestCurrentMilestone(t *testing.T) {
	fy := fiscal.Year{StartYear: 2025}
	annual := dec("100000")

	// Q1 satisfied, Q2 behind.
	behind := MilestoneSchedule(fy, annual, map[fiscal.Quarter]decimal.Decimal{
		fiscal.Q1: dec("20000"),
	})
	assert.Equal(t, 2, CurrentMilestone(behind).Quarter)

	// Everything paid: default to the last quarter.
	done := MilestoneSchedule(fy, annual, map[fiscal.Quarter]decimal.Decimal{
		fiscal.Q1: dec("25000"),
		fiscal.Q2: dec("25000"),
		fiscal.Q3: dec("25000"),
		fiscal.Q4: dec("25000"),
	})
	assert.Equal(t, 4, CurrentMilestone(done).Quarter)

	// Nothing paid: the first quarter is current.
	fresh := MilestoneSchedule(fy, annual, nil)
	assert.Equal(t, 1, CurrentMilestone(fresh).Quarter)
}
