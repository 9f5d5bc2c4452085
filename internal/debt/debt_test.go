package debt

import (
	"math"
	"testing"

	"portfolio-analytics/internal/models"
)

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		term      float64
		want      float64
		tolerance float64
	}{
		{"thirty year at six percent", 100000, 6, 30, 599.55, 0.01},
		{"fifteen year at four percent", 200000, 4, 15, 1479.38, 0.01},
		{"zero rate", 120000, 0, 10, 1000, 0},
		{"negative rate", 100000, -1, 30, 0, 0},
		{"no principal", 0, 6, 30, 0, 0},
		{"no term", 100000, 6, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyPayment(tt.principal, tt.rate, tt.term)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("MonthlyPayment(%v, %v, %v) = %v, want %v", tt.principal, tt.rate, tt.term, got, tt.want)
			}
		})
	}
}

func TestDSCR(t *testing.T) {
	if got := DSCR(50000, 40000); got != 1.25 {
		t.Errorf("DSCR(50000, 40000) = %v, want 1.25", got)
	}
	got := DSCR(50000, 0)
	if got != 0 || math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("DSCR(50000, 0) = %v, want 0", got)
	}
}

func testSchedule() []models.LoanScheduleRow {
	return []models.LoanScheduleRow{
		{Property: "Maple Court", Year: 2023, Month: "December", PaymentDate: "12/1/2023", PaymentNumber: 1, ScheduledPayment: 600, TotalPayment: 600, Principal: 100, Interest: 500},
		{Property: "Maple Court", Year: 2024, Month: "January", PaymentDate: "1/1/2024", PaymentNumber: 2, ScheduledPayment: 600, TotalPayment: 600, Principal: 101, Interest: 499},
		{Property: "Maple Court", Year: 2024, Month: "February", PaymentDate: "2/1/2024", PaymentNumber: 3, ScheduledPayment: 650, TotalPayment: 700, Principal: 102, Interest: 498},
		{Property: "Maple Court", Year: 2024, Month: "March", PaymentDate: "2024-03-01", PaymentNumber: 4, ScheduledPayment: 650, TotalPayment: 650, Principal: 103, Interest: 497},
	}
}

func TestYearToDatePayments(t *testing.T) {
	if got := YearToDatePayments(testSchedule(), 2024, 2); got != 1300 {
		t.Errorf("YearToDatePayments through February = %v, want 1300", got)
	}
	if got := YearToDatePayments(testSchedule(), 2025, 12); got != 0 {
		t.Errorf("YearToDatePayments for an empty year = %v, want 0", got)
	}
}

func TestMonthlyCoverage(t *testing.T) {
	c := MonthlyCoverage(1200, testSchedule(), 2024, 1)
	if c.DebtService != 600 {
		t.Errorf("debt service = %v, want 600", c.DebtService)
	}
	if c.DSCR != 2 {
		t.Errorf("dscr = %v, want 2", c.DSCR)
	}

	missing := MonthlyCoverage(1200, testSchedule(), 2024, 7)
	if missing.DebtService != 0 || missing.DSCR != 0 || missing.NOI != 1200 {
		t.Errorf("unexpected coverage without payment: %+v", missing)
	}
}

func TestSensitivity(t *testing.T) {
	loan := models.LoanInfo{PropertyID: "P1", Rate: 6, LoanAmount: 100000, Term: 30}
	in := SensitivityInput{Loan: loan, Schedule: testSchedule(), Year: 2024, Month: 2, NOI: 2600}

	rows := Sensitivity(in)
	if len(rows) != 1 {
		t.Fatalf("expected only the current row, got %d", len(rows))
	}
	current := rows[0]
	if !current.Current || current.RatePercent != 6 {
		t.Errorf("unexpected current row %+v", current)
	}
	if current.MonthlyDebtService != 700 || current.AnnualDebtService != 1300 {
		t.Errorf("debt service = %v / %v, want 700 / 1300", current.MonthlyDebtService, current.AnnualDebtService)
	}
	if current.DSCR != 2 || current.CashflowBeforeTax != 1300 {
		t.Errorf("dscr %v, cashflow %v", current.DSCR, current.CashflowBeforeTax)
	}

	rate := 6.0
	in.UserRate = &rate
	rows = Sensitivity(in)
	if len(rows) != 2 {
		t.Fatalf("expected a user row, got %d rows", len(rows))
	}
	user := rows[1]
	if math.Abs(user.MonthlyDebtService-599.55) > 0.01 {
		t.Errorf("user monthly debt service = %v", user.MonthlyDebtService)
	}
	if math.Abs(user.AnnualDebtService-user.MonthlyDebtService*12) > 1e-9 {
		t.Errorf("annual debt service should be 12 monthly payments")
	}
	if math.Abs(user.CashflowBeforeTax-(2600-user.AnnualDebtService)) > 1e-9 {
		t.Errorf("cashflow before tax = %v", user.CashflowBeforeTax)
	}

	zero := 0.0
	in.UserRate = &zero
	if rows := Sensitivity(in); len(rows) != 1 {
		t.Errorf("non-positive user rate should be ignored, got %d rows", len(rows))
	}
}

func TestBuildSchedule(t *testing.T) {
	loan := models.LoanInfo{BankerName: "First Bank", Rate: 6, LoanAmount: 100000, Term: 30}
	s := BuildSchedule(loan, testSchedule(), 2024, 2)

	if s.Summary.StartDate != "12/1/2023" || s.Summary.ActualNumberOfPayments != 4 {
		t.Errorf("unexpected summary %+v", s.Summary)
	}
	if s.Summary.ScheduledPayment != 650 {
		t.Errorf("scheduled payment = %v, want the February row's 650", s.Summary.ScheduledPayment)
	}
	if s.Summary.ScheduledNumberOfPayments != 360 || s.Summary.PaymentsPerYear != 12 {
		t.Errorf("unexpected payment counts %+v", s.Summary)
	}
	if s.Summary.TotalInterest != 1994 {
		t.Errorf("total interest = %v, want 1994", s.Summary.TotalInterest)
	}

	wantPast := []bool{true, true, false, false}
	for i, line := range s.Lines {
		if line.Past != wantPast[i] {
			t.Errorf("line %d past = %v, want %v", i, line.Past, wantPast[i])
		}
		if line.Highlighted != (i == 2) {
			t.Errorf("line %d highlighted = %v", i, line.Highlighted)
		}
	}

	unselected := BuildSchedule(loan, testSchedule(), 0, 0)
	if unselected.Summary.ScheduledPayment != 600 {
		t.Errorf("without a selection the first row's payment is used, got %v", unselected.Summary.ScheduledPayment)
	}
	for _, line := range unselected.Lines {
		if line.Past || line.Highlighted {
			t.Error("no line should be flagged without a selection")
		}
	}
}

func TestParsePaymentDate(t *testing.T) {
	for _, value := range []string{"3/1/2024", "03/01/2024", "2024-03-01"} {
		got, ok := ParsePaymentDate(value)
		if !ok || got.Month() != 3 || got.Year() != 2024 {
			t.Errorf("ParsePaymentDate(%q) = %v, %v", value, got, ok)
		}
	}
	if _, ok := ParsePaymentDate("soon"); ok {
		t.Error("expected garbage to fail")
	}
}
