package debt

import (
	"strings"
	"time"

	"portfolio-analytics/internal/models"
)

var paymentDateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"2006-01-02",
	"1/2/06",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParsePaymentDate accepts the date layouts seen in loan schedules.
func ParsePaymentDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range paymentDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PaymentFor finds the schedule row of a year and month (1-12).
func PaymentFor(schedule []models.LoanScheduleRow, year, month int) (models.LoanScheduleRow, bool) {
	for _, row := range schedule {
		if row.Year != year {
			continue
		}
		if index, ok := models.MonthIndex(row.Month); ok && index == month-1 {
			return row, true
		}
	}
	return models.LoanScheduleRow{}, false
}

// YearToDatePayments sums the total payments of a year from January
// through month. Rows with an unknown month name are left out.
func YearToDatePayments(schedule []models.LoanScheduleRow, year, month int) float64 {
	var total float64
	for _, row := range schedule {
		if row.Year != year {
			continue
		}
		if index, ok := models.MonthIndex(row.Month); ok && index < month {
			total += row.TotalPayment
		}
	}
	return total
}

// ScheduleLine is a schedule row with its display flags.
type ScheduleLine struct {
	models.LoanScheduleRow
	Highlighted bool `json:"highlighted"`
	Past        bool `json:"past"`
}

type ScheduleSummary struct {
	LoanAmount                float64 `json:"loan_amount"`
	TermYears                 float64 `json:"term_years"`
	StartDate                 string  `json:"start_date"`
	Lender                    string  `json:"lender"`
	ScheduledPayment          float64 `json:"scheduled_payment"`
	ActualNumberOfPayments    int     `json:"actual_number_of_payments"`
	AnnualRate                float64 `json:"annual_rate"`
	PaymentsPerYear           int     `json:"payments_per_year"`
	ScheduledNumberOfPayments int     `json:"scheduled_number_of_payments"`
	TotalInterest             float64 `json:"total_interest"`
}

// Schedule is the loan schedule view of one property.
type Schedule struct {
	Summary ScheduleSummary `json:"summary"`
	Lines   []ScheduleLine  `json:"lines"`
}

// BuildSchedule summarizes a loan and flags its payments relative to the
// selected year and month. A zero year or month selects nothing, so no
// line is highlighted or past.
func BuildSchedule(loan models.LoanInfo, schedule []models.LoanScheduleRow, year, month int) Schedule {
	selected := year != 0 && month != 0
	var cutoff time.Time
	if selected {
		cutoff = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	}

	summary := ScheduleSummary{
		LoanAmount:                loan.LoanAmount,
		TermYears:                 loan.Term,
		Lender:                    loan.BankerName,
		AnnualRate:                loan.Rate,
		PaymentsPerYear:           PaymentsPerYear,
		ScheduledNumberOfPayments: int(loan.Term * PaymentsPerYear),
	}

	lines := make([]ScheduleLine, 0, len(schedule))
	var highlighted *models.LoanScheduleRow
	for i, row := range schedule {
		line := ScheduleLine{LoanScheduleRow: row}
		if selected {
			index, ok := models.MonthIndex(row.Month)
			line.Highlighted = ok && row.Year == year && index == month-1
			if paid, ok := ParsePaymentDate(row.PaymentDate); ok && paid.Before(cutoff) {
				line.Past = true
			}
		}
		if line.Highlighted && highlighted == nil {
			highlighted = &schedule[i]
		}
		summary.TotalInterest += row.Interest
		lines = append(lines, line)
	}

	if len(schedule) > 0 {
		first, last := schedule[0], schedule[len(schedule)-1]
		summary.StartDate = first.PaymentDate
		summary.ActualNumberOfPayments = last.PaymentNumber
		summary.ScheduledPayment = first.ScheduledPayment
		if highlighted != nil && highlighted.ScheduledPayment != 0 {
			summary.ScheduledPayment = highlighted.ScheduledPayment
		}
	}

	return Schedule{Summary: summary, Lines: lines}
}
