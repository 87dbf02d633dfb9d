package tax

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finpulse-dev/finpulse/internal/model"
)

// ExpenseCategory is a tax-deduction bucket for business expenses.
type ExpenseCategory string

const (
	CategoryOfficeRent      ExpenseCategory = "office_rent"
	CategoryEquipment       ExpenseCategory = "equipment"
	CategoryInternetPhone   ExpenseCategory = "internet_phone"
	CategoryTravel          ExpenseCategory = "travel"
	CategoryProfessionalDev ExpenseCategory = "professional_development"
	CategorySoftware        ExpenseCategory = "software_subscriptions"
	CategoryOther           ExpenseCategory = "other"
)

// CategorizeExpenses buckets expense transactions into deduction
// categories by keyword match on the ledger category. Every bucket is
// present in the result, zero-valued when empty.
func CategorizeExpenses(txns []model.Transaction) map[ExpenseCategory]decimal.Decimal {
	categories := map[ExpenseCategory]decimal.Decimal{
		CategoryOfficeRent:      decimal.Zero,
		CategoryEquipment:       decimal.Zero,
		CategoryInternetPhone:   decimal.Zero,
		CategoryTravel:          decimal.Zero,
		CategoryProfessionalDev: decimal.Zero,
		CategorySoftware:        decimal.Zero,
		CategoryOther:           decimal.Zero,
	}

	for _, txn := range txns {
		if txn.Type != model.TypeExpense {
			continue
		}
		bucket := Classify(txn.Category)
		categories[bucket] = categories[bucket].Add(txn.Amount)
	}
	return categories
}

// Classify maps a free-text category or description to a deduction
// bucket by keyword match.
func Classify(text string) ExpenseCategory {
	category := strings.ToLower(text)
	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(category, w) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("rent"):
		return CategoryOfficeRent
	case contains("laptop", "computer", "equipment", "hardware"):
		return CategoryEquipment
	case contains("internet", "phone", "mobile"):
		return CategoryInternetPhone
	case contains("travel", "transport"):
		return CategoryTravel
	case contains("course", "training", "book", "learning", "professional"):
		return CategoryProfessionalDev
	case contains("software", "subscription", "saas"):
		return CategorySoftware
	default:
		return CategoryOther
	}
}

// GSTRequirement is the registration status against the turnover
// threshold.
type GSTRequirement string

const (
	GSTRequired    GSTRequirement = "required"
	GSTApproaching GSTRequirement = "approaching"
	GSTNotRequired GSTRequirement = "not_required"
)

// gstThreshold is the annual service-turnover level above which GST
// registration is mandatory.
var gstThreshold = decimal.NewFromInt(2000000)

// gstApproachBand flags turnover within this distance of the threshold.
var gstApproachBand = decimal.NewFromInt(500000)

// GSTStatus is the result of a registration check.
type GSTStatus struct {
	Status    GSTRequirement
	Required  bool
	Threshold decimal.Decimal
	Turnover  decimal.Decimal
	Buffer    decimal.Decimal // distance below the threshold, floored at 0
	Message   string
}

// CheckGST reports whether the annual turnover requires GST
// registration, is approaching the threshold, or is comfortably below.
func CheckGST(annualTurnover decimal.Decimal) GSTStatus {
	buffer := gstThreshold.Sub(annualTurnover)
	required := annualTurnover.GreaterThanOrEqual(gstThreshold)

	status := GSTStatus{
		Required:  required,
		Threshold: gstThreshold,
		Turnover:  annualTurnover,
		Buffer:    buffer,
	}
	if buffer.IsNegative() {
		status.Buffer = decimal.Zero
	}

	switch {
	case required:
		status.Status = GSTRequired
		status.Message = fmt.Sprintf("GST registration is mandatory: turnover %s exceeds the %s threshold.",
			annualTurnover.StringFixed(0), gstThreshold.StringFixed(0))
	case buffer.LessThanOrEqual(gstApproachBand):
		status.Status = GSTApproaching
		status.Message = fmt.Sprintf("Turnover is %s away from the GST threshold. Consider registering voluntarily.",
			buffer.StringFixed(0))
	default:
		status.Status = GSTNotRequired
		status.Message = fmt.Sprintf("GST registration not required yet: %s below the threshold.",
			buffer.StringFixed(0))
	}
	return status
}

// tdsRates maps income types to their deduction-at-source rates.
var tdsRates = map[string]decimal.Decimal{
	"professional_fees": decimal.NewFromFloat(0.10), // 194J
	"freelance":         decimal.NewFromFloat(0.10),
	"contract":          decimal.NewFromFloat(0.02), // 194C
	"rent":              decimal.NewFromFloat(0.10), // 194I
}

// tdsDefaultRate applies to income types without a specific rate.
var tdsDefaultRate = decimal.NewFromFloat(0.10)

// TDSResult breaks an income amount into gross, deducted and net.
type TDSResult struct {
	IncomeType string
	Gross      decimal.Decimal
	RatePct    float64
	Deducted   decimal.Decimal
	Net        decimal.Decimal
}

// TDS computes the tax deducted at source for an income payment.
func TDS(incomeType string, amount decimal.Decimal) TDSResult {
	rate, ok := tdsRates[strings.ToLower(incomeType)]
	if !ok {
		rate = tdsDefaultRate
	}

	deducted := amount.Mul(rate).Round(2)
	return TDSResult{
		IncomeType: incomeType,
		Gross:      amount,
		RatePct:    rate.InexactFloat64() * 100,
		Deducted:   deducted,
		Net:        amount.Sub(deducted),
	}
}
