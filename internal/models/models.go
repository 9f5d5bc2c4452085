package models

import "strings"

// Property represents a row of Properties.csv
type Property struct {
	PropertyID   string `db:"property_id" json:"property_id"`
	Name         string `db:"property" json:"property"`
	Address      string `db:"address" json:"address"`
	PropertyType string `db:"property_type" json:"property_type"`
	Owner        string `db:"owner" json:"owner"`
}

// TrialBalanceEntry is one account's activity for one property and month.
type TrialBalanceEntry struct {
	PropertyID       string  `db:"property_id" json:"property_id"`
	Year             int     `db:"year" json:"year"`
	Month            string  `db:"month" json:"month"`
	AccountID        string  `db:"account_id" json:"account_id"`
	AccountName      string  `db:"account_name" json:"account_name"`
	Debit            float64 `db:"debit" json:"debit"`
	Credit           float64 `db:"credit" json:"credit"`
	Amount           float64 `db:"amount" json:"amount"`
	BeginningBalance float64 `db:"beginning_balance" json:"beginning_balance"`
	EndingBalance    float64 `db:"ending_balance" json:"ending_balance"`
}

// AccountMapping is one row of the chart-of-accounts mapping table.
// CashflowOrder is zero when the row is not part of the cashflow report.
type AccountMapping struct {
	AccountRef         string  `db:"account_ref" json:"account_ref"`
	AccountLabel       string  `db:"account_label" json:"account_label"`
	AccountIDFrom      string  `db:"account_id_from" json:"account_id_from"`
	AccountIDTo        string  `db:"account_id_to" json:"account_id_to"`
	NormalBalance      string  `db:"normal_balance" json:"normal_balance"`
	FinancialStatement string  `db:"financial_statement" json:"financial_statement"`
	CashflowOrder      float64 `db:"cashflow_order" json:"cashflow_order"`
	CalculationFormula string  `db:"calculation_formula" json:"calculation_formula,omitempty"`
}

// InCashflow reports whether the row declares a cashflow order.
func (m AccountMapping) InCashflow() bool {
	return m.CashflowOrder != 0
}

// LoanScheduleRow is one payment of a property's loan schedule.
type LoanScheduleRow struct {
	Property         string  `db:"property" json:"property"`
	Year             int     `db:"year" json:"year"`
	Month            string  `db:"month" json:"month"`
	PaymentDate      string  `db:"payment_date" json:"payment_date"`
	PaymentNumber    int     `db:"payment_number" json:"payment_number"`
	BeginningBalance float64 `db:"beginning_balance" json:"beginning_balance"`
	ScheduledPayment float64 `db:"scheduled_payment" json:"scheduled_payment"`
	TotalPayment     float64 `db:"total_payment" json:"total_payment"`
	Principal        float64 `db:"principal" json:"principal"`
	Interest         float64 `db:"interest" json:"interest"`
	EndingBalance    float64 `db:"ending_balance" json:"ending_balance"`
}

// LoanInfo describes the loan attached to a property. Rate is always a
// percent number (6.0 for 6%).
type LoanInfo struct {
	PropertyID   string  `db:"property_id" json:"property_id"`
	BankerName   string  `db:"banker_name" json:"banker_name"`
	LoanNumber   string  `db:"loan_number" json:"loan_number"`
	Rate         float64 `db:"rate" json:"rate"`
	MaturityDate string  `db:"maturity_date" json:"maturity_date"`
	Address      string  `db:"address" json:"address"`
	LoanAmount   float64 `db:"loan_amount" json:"loan_amount"`
	Term         float64 `db:"term" json:"term"`
}

// RentRollMonthly is the monthly rent-roll snapshot of a property.
type RentRollMonthly struct {
	Property          string  `db:"property" json:"property"`
	TotalUnits        float64 `db:"total_units" json:"total_units"`
	SquareFootage     float64 `db:"sq_footage" json:"sq_footage"`
	MarketRent        float64 `db:"market_rent" json:"market_rent"`
	TenantRent        float64 `db:"tenant_rent" json:"tenant_rent"`
	CAM               float64 `db:"cam" json:"cam"`
	TenantRentPerSqFt float64 `db:"tenant_rent_per_sqft" json:"tenant_rent_per_sqft"`
}

// RentRollAnnual is the annual rent-roll snapshot of a property.
type RentRollAnnual struct {
	Property   string  `db:"property" json:"property"`
	MarketRent float64 `db:"market_rent" json:"market_rent"`
	TenantRent float64 `db:"tenant_rent" json:"tenant_rent"`
	CAM        float64 `db:"cam" json:"cam"`
	Misc       float64 `db:"misc" json:"misc"`
}

// Financial statement constants
const (
	StatementIncome  = "Income Statement"
	StatementBalance = "Balance Sheet"
	StatementTotal   = "Total"
)

// Normal balance constants
const (
	NormalDebit  = "debit"
	NormalCredit = "credit"
)

// Report refs that the presentation layer looks up by name
const (
	RefRevenueTotal     = "rev_total"
	RefExpenseTotal     = "exp_total"
	RefNOI              = "noi"
	RefNetIncome        = "ni"
	RefAdjustmentsTotal = "adj_total"
	RefCashflow         = "cf"
)

// MonthsPerYear is the width of every monthly series.
const MonthsPerYear = 12

// MonthNames is the fixed calendar used to place trial-balance rows.
var MonthNames = [MonthsPerYear]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthIndex returns the zero-based index of a month name. Matching is
// case-insensitive after trimming; anything else is not a month.
func MonthIndex(name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, m := range MonthNames {
		if strings.EqualFold(m, name) {
			return i, true
		}
	}
	return -1, false
}

// SameName compares two display names the way the datasets join on them.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
