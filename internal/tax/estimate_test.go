package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finpulse-dev/finpulse/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestEstimate_NewRegime(t *testing.T) {
	// 1,200,000: 0 + 400,000*5% + 300,000*10% + 200,000*15% = 80,000.
	est, err := Estimate(dec("1200000"), decimal.Zero, model.RegimeNew)
	require.NoError(t, err)

	assert.Equal(t, model.RegimeNew, est.Regime)
	assert.True(t, est.GrossTax.Equal(dec("80000")), "gross = %s", est.GrossTax)
	assert.True(t, est.Cess.Equal(dec("3200")), "cess = %s", est.Cess)
	assert.True(t, est.TotalTax.Equal(dec("83200")), "total = %s", est.TotalTax)
	assert.InDelta(t, 6.933, est.EffectiveRatePct, 0.001)
}

func TestEstimate_NewRegimeIgnoresDeductions(t *testing.T) {
	withDeductions, err := Estimate(dec("1200000"), dec("300000"), model.RegimeNew)
	require.NoError(t, err)
	without, err := Estimate(dec("1200000"), decimal.Zero, model.RegimeNew)
	require.NoError(t, err)

	assert.True(t, withDeductions.TotalTax.Equal(without.TotalTax))
}

func TestEstimate_OldRegime(t *testing.T) {
	// taxable 1,000,000: 0 + 250,000*5% + 500,000*20% = 112,500.
	est, err := Estimate(dec("1200000"), dec("200000"), model.RegimeOld)
	require.NoError(t, err)

	assert.Equal(t, model.RegimeOld, est.Regime)
	assert.True(t, est.TaxableIncome.Equal(dec("1000000")))
	assert.True(t, est.GrossTax.Equal(dec("112500")), "gross = %s", est.GrossTax)
	assert.True(t, est.Cess.Equal(dec("4500")))
	assert.True(t, est.TotalTax.Equal(dec("117000")), "total = %s", est.TotalTax)
}

func TestEstimate_OldRegimeDeductionCap(t *testing.T) {
	// 400,000 claimed, 250,000 allowed: taxable 950,000.
	// 0 + 250,000*5% + 450,000*20% = 102,500; cess 4,100.
	est, err := Estimate(dec("1200000"), dec("400000"), model.RegimeOld)
	require.NoError(t, err)

	assert.True(t, est.TaxableIncome.Equal(dec("950000")), "taxable = %s", est.TaxableIncome)
	assert.True(t, est.TotalTax.Equal(dec("106600")), "total = %s", est.TotalTax)
}

func TestEstimate_OldRegimeDeductionsExceedIncome(t *testing.T) {
	est, err := Estimate(dec("100000"), dec("500000"), model.RegimeOld)
	require.NoError(t, err)

	assert.True(t, est.TaxableIncome.IsZero())
	assert.True(t, est.TotalTax.IsZero())
	assert.Zero(t, est.EffectiveRatePct)
}

func TestEstimate_ZeroIncome(t *testing.T) {
	for _, regime := range []model.TaxRegime{model.RegimeNew, model.RegimeOld, model.RegimeHybrid} {
		est, err := Estimate(decimal.Zero, decimal.Zero, regime)
		require.NoError(t, err, "regime %s", regime)
		assert.True(t, est.TotalTax.IsZero(), "regime %s", regime)
	}
}

func TestEstimate_BelowFirstSlab(t *testing.T) {
	est, err := Estimate(dec("300000"), decimal.Zero, model.RegimeNew)
	require.NoError(t, err)
	assert.True(t, est.TotalTax.IsZero())
}

func TestEstimate_HybridPicksNewWhenCheaper(t *testing.T) {
	// At 1,200,000 with modest deductions the new regime wins easily.
	est, err := Estimate(dec("1200000"), dec("200000"), model.RegimeHybrid)
	require.NoError(t, err)

	assert.Equal(t, model.RegimeNew, est.Regime, "regime reports the winning table")
	assert.True(t, est.TotalTax.Equal(dec("83200")), "total = %s", est.TotalTax)
}

func TestEstimate_HybridPicksOldWhenCheaper(t *testing.T) {
	// 600,000 with 200,000 deductions (+50,000 buffer, capped at
	// 250,000): old taxable 350,000 -> 5,200 total. New: 15,600.
	est, err := Estimate(dec("600000"), dec("200000"), model.RegimeHybrid)
	require.NoError(t, err)

	assert.Equal(t, model.RegimeOld, est.Regime)
	assert.True(t, est.TotalTax.Equal(dec("5200")), "total = %s", est.TotalTax)
}

func TestEstimate_UnknownRegime(t *testing.T) {
	_, err := Estimate(dec("1000000"), decimal.Zero, model.TaxRegime("flat"))
	assert.Error(t, err)
}

func TestEstimate_Monotonic(t *testing.T) {
	step := dec("50000")
	deductions := dec("100000")

	for _, regime := range []model.TaxRegime{model.RegimeNew, model.RegimeOld, model.RegimeHybrid} {
		prev := decimal.Zero
		income := decimal.Zero
		for i := 0; i <= 40; i++ {
			est, err := Estimate(income, deductions, regime)
			require.NoError(t, err)
			assert.True(t, est.TotalTax.GreaterThanOrEqual(prev),
				"%s regime: tax fell from %s to %s at income %s", regime, prev, est.TotalTax, income)
			assert.False(t, est.TotalTax.IsNegative())
			prev = est.TotalTax
			income = income.Add(step)
		}
	}
}

func TestParseRegime(t *testing.T) {
	for _, in := range []string{"new", "NEW", "old", "Hybrid"} {
		r, err := ParseRegime(in)
		require.NoError(t, err, "input %q", in)
		assert.True(t, r.Valid())
	}

	_, err := ParseRegime("flat")
	assert.Error(t, err)
}
