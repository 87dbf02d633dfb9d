package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finpulse-dev/finpulse/internal/fiscal"
	"github.com/finpulse-dev/finpulse/internal/model"
)

func expense(category, amount string) model.Transaction {
	return model.Transaction{
		ID:       category + "/" + amount,
		Type:     model.TypeExpense,
		Amount:   dec(amount),
		Date:     "2025-05-10",
		Category: category,
		Status:   model.StatusCleared,
	}
}

func income(amount string) model.Transaction {
	return model.Transaction{
		ID:     "inc/" + amount,
		Type:   model.TypeIncome,
		Amount: dec(amount),
		Date:   "2025-05-01",
		Status: model.StatusCleared,
	}
}

func TestCategorizeExpenses(t *testing.T) {
	tests := []struct {
		category string
		want     ExpenseCategory
	}{
		{"Office Rent", CategoryOfficeRent},
		{"laptop upgrade", CategoryEquipment},
		{"computer hardware", CategoryEquipment},
		{"internet bill", CategoryInternetPhone},
		{"mobile recharge", CategoryInternetPhone},
		{"travel to client", CategoryTravel},
		{"local transport", CategoryTravel},
		{"online course", CategoryProfessionalDev},
		{"book purchase", CategoryProfessionalDev},
		{"software license", CategorySoftware},
		{"saas tools", CategorySoftware},
		{"groceries", CategoryOther},
		{"", CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := CategorizeExpenses([]model.Transaction{expense(tt.category, "1000")})
			assert.True(t, got[tt.want].Equal(dec("1000")),
				"category %q went to the wrong bucket", tt.category)
		})
	}
}

func TestCategorizeExpenses_SumsAndIgnoresIncome(t *testing.T) {
	txns := []model.Transaction{
		expense("office rent", "20000"),
		expense("co-working rent", "10000"),
		income("500000"),
	}

	got := CategorizeExpenses(txns)
	assert.True(t, got[CategoryOfficeRent].Equal(dec("30000")))
	assert.Len(t, got, 7, "every bucket is present, zero-valued when empty")
	assert.True(t, got[CategoryTravel].IsZero())
}

func TestEstimateQuarterly(t *testing.T) {
	txns := []model.Transaction{
		income("300000"),
		income("300000"),
		expense("office rent", "50000"),
		expense("software subscription", "10000"),
	}

	est := EstimateQuarterly(txns, fiscal.Q1)

	assert.True(t, est.TotalIncome.Equal(dec("600000")))
	assert.True(t, est.BusinessExpenses.Equal(dec("60000")))
	// 600,000 - 60,000 - 50,000 standard deduction = 490,000 taxable.
	assert.True(t, est.TaxableIncome.Equal(dec("490000")), "taxable = %s", est.TaxableIncome)
	// New regime: 190,000 * 5% = 9,500; +4% cess = 9,880.
	assert.True(t, est.EstimatedAnnual.Equal(dec("9880")), "annual = %s", est.EstimatedAnnual)
	// Q1 installment is 15% of the annual estimate.
	assert.True(t, est.InstallmentDue.Equal(dec("1482")), "installment = %s", est.InstallmentDue)
	assert.InDelta(t, 1.647, est.EffectiveRatePct, 0.001)
}

func TestEstimateQuarterly_SharesSumToWholeYear(t *testing.T) {
	txns := []model.Transaction{income("1200000")}

	var total decimal.Decimal
	for q := fiscal.Q1; q <= fiscal.Q4; q++ {
		total = total.Add(EstimateQuarterly(txns, q).InstallmentDue)
	}

	annual := EstimateQuarterly(txns, fiscal.Q1).EstimatedAnnual
	assert.True(t, total.Equal(annual), "installments %s should cover the annual estimate %s", total, annual)
}

func TestEstimateQuarterly_ExpensesExceedIncome(t *testing.T) {
	txns := []model.Transaction{
		income("40000"),
		expense("office rent", "60000"),
	}

	est := EstimateQuarterly(txns, fiscal.Q2)
	assert.True(t, est.TaxableIncome.IsZero())
	assert.True(t, est.EstimatedAnnual.IsZero())
	assert.True(t, est.InstallmentDue.IsZero())
}

func TestCheckGST(t *testing.T) {
	tests := []struct {
		name     string
		turnover string
		want     GSTRequirement
	}{
		{"over the threshold", "2500000", GSTRequired},
		{"exactly at the threshold", "2000000", GSTRequired},
		{"within the approach band", "1600000", GSTApproaching},
		{"band boundary", "1500000", GSTApproaching},
		{"comfortably below", "1000000", GSTNotRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckGST(dec(tt.turnover))
			assert.Equal(t, tt.want, got.Status)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestCheckGST_BufferFloorsAtZero(t *testing.T) {
	got := CheckGST(dec("2500000"))
	assert.True(t, got.Required)
	assert.True(t, got.Buffer.IsZero())

	below := CheckGST(dec("1700000"))
	assert.False(t, below.Required)
	assert.True(t, below.Buffer.Equal(dec("300000")))
}

func TestTDS(t *testing.T) {
	tests := []struct {
		incomeType string
		wantPct    float64
		wantNet    string
	}{
		{"professional_fees", 10, "90000"},
		{"freelance", 10, "90000"},
		{"contract", 2, "98000"},
		{"Rent", 10, "90000"},
		{"consulting", 10, "90000"}, // unknown types fall back to 10%
	}
	for _, tt := range tests {
		t.Run(tt.incomeType, func(t *testing.T) {
			got := TDS(tt.incomeType, dec("100000"))
			assert.Equal(t, tt.wantPct, got.RatePct)
			assert.True(t, got.Net.Equal(dec(tt.wantNet)), "net = %s", got.Net)
			assert.True(t, got.Gross.Equal(dec("100000")))
			assert.True(t, got.Deducted.Add(got.Net).Equal(got.Gross))
		})
	}
}

func TestSuggestions(t *testing.T) {
	est := QuarterlyEstimate{
		Quarter:          fiscal.Q2,
		TotalIncome:      dec("1000000"),
		BusinessExpenses: dec("20000"),
		TaxableIncome:    dec("930000"),
		InstallmentDue:   dec("15000"),
	}

	got := Suggestions(est)
	require.Len(t, got, 5)
	assert.Contains(t, got[0], "Track business expenses")
	assert.Contains(t, got[1], "80C")
	assert.Contains(t, got[2], "80D")
	assert.Contains(t, got[3], "Q2")
	assert.Contains(t, got[4], "invoices")
}

func TestSuggestions_QuietQuarter(t *testing.T) {
	est := QuarterlyEstimate{
		Quarter:          fiscal.Q1,
		TotalIncome:      dec("200000"),
		BusinessExpenses: dec("50000"),
		TaxableIncome:    dec("100000"),
		InstallmentDue:   decimal.Zero,
	}

	got := Suggestions(est)
	// Only the two always-on lines: expenses are healthy, income is
	// under the 80C band, no installment due.
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "80D")
	assert.Contains(t, got[1], "invoices")
}
