package debt

import (
	"portfolio-analytics/internal/models"
)

// Coverage is the DSCR card of one month: NOI against the principal and
// interest actually posted in the loan schedule.
type Coverage struct {
	NOI         float64 `json:"noi"`
	Principal   float64 `json:"principal"`
	Interest    float64 `json:"interest"`
	DebtService float64 `json:"debt_service"`
	DSCR        float64 `json:"dscr"`
}

// MonthlyCoverage computes the coverage of a month from its schedule row.
// Without a payment the debt service is 0 and so is the ratio.
func MonthlyCoverage(noi float64, schedule []models.LoanScheduleRow, year, month int) Coverage {
	c := Coverage{NOI: noi}
	if payment, ok := PaymentFor(schedule, year, month); ok {
		c.Principal = payment.Principal
		c.Interest = payment.Interest
	}
	c.DebtService = c.Principal + c.Interest
	c.DSCR = DSCR(noi, c.DebtService)
	return c
}

// SensitivityRow is one line of the interest-rate sensitivity table.
type SensitivityRow struct {
	RatePercent        float64 `json:"rate_percent"`
	Current            bool    `json:"current"`
	MonthlyDebtService float64 `json:"monthly_debt_service"`
	AnnualDebtService  float64 `json:"annual_debt_service"`
	NOI                float64 `json:"noi"`
	DSCR               float64 `json:"dscr"`
	CashflowBeforeTax  float64 `json:"cashflow_before_tax"`
}

// SensitivityInput carries what the table is computed from. NOI is the
// year-to-date NOI through Month. UserRate is optional and in percent.
type SensitivityInput struct {
	Loan     models.LoanInfo
	Schedule []models.LoanScheduleRow
	Year     int
	Month    int
	NOI      float64
	UserRate *float64
}

// Sensitivity returns the row of the contractual rate, priced with the
// payments actually posted year to date, and, when a positive user rate is
// given, a row priced with the amortization formula at that rate.
func Sensitivity(in SensitivityInput) []SensitivityRow {
	current := SensitivityRow{
		RatePercent:       in.Loan.Rate,
		Current:           true,
		AnnualDebtService: YearToDatePayments(in.Schedule, in.Year, in.Month),
		NOI:               in.NOI,
	}
	if payment, ok := PaymentFor(in.Schedule, in.Year, in.Month); ok {
		current.MonthlyDebtService = payment.TotalPayment
	}
	current.DSCR = DSCR(in.NOI, current.AnnualDebtService)
	current.CashflowBeforeTax = in.NOI - current.AnnualDebtService

	rows := []SensitivityRow{current}
	if in.UserRate == nil || *in.UserRate <= 0 {
		return rows
	}

	monthly := MonthlyPayment(in.Loan.LoanAmount, *in.UserRate, in.Loan.Term)
	annual := monthly * PaymentsPerYear
	rows = append(rows, SensitivityRow{
		RatePercent:        *in.UserRate,
		MonthlyDebtService: monthly,
		AnnualDebtService:  annual,
		NOI:                in.NOI,
		DSCR:               DSCR(in.NOI, annual),
		CashflowBeforeTax:  in.NOI - annual,
	})
	return rows
}
