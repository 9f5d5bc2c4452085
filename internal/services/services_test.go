package services

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"

	"portfolio-analytics/internal/cashflow"
	"portfolio-analytics/internal/ledger"
	"portfolio-analytics/internal/models"
)

func testStore() *ledger.Store {
	return &ledger.Store{
		Properties: []models.Property{
			{PropertyID: "P1", Name: "Oak Plaza", Address: "1 Oak St", PropertyType: "Retail", Owner: "Oak LLC"},
			{PropertyID: "P2", Name: "Elm Court", Address: "2 Elm St", PropertyType: "Multifamily", Owner: "Elm LP"},
		},
		Mapping: []models.AccountMapping{
			{AccountRef: "rent", AccountLabel: "Rental Income", AccountIDFrom: "4000-0000", AccountIDTo: "4999-9999", NormalBalance: models.NormalCredit, FinancialStatement: models.StatementIncome, CashflowOrder: 1},
			{AccountRef: models.RefRevenueTotal, AccountLabel: "Total Revenue", FinancialStatement: models.StatementTotal, CashflowOrder: 2, CalculationFormula: "rent"},
			{AccountRef: "opex", AccountLabel: "Operating Expenses", AccountIDFrom: "5000-0000", AccountIDTo: "5999-9999", NormalBalance: models.NormalDebit, FinancialStatement: models.StatementIncome, CashflowOrder: 3},
			{AccountRef: models.RefExpenseTotal, AccountLabel: "Total Expenses", FinancialStatement: models.StatementTotal, CashflowOrder: 4, CalculationFormula: "opex"},
			{AccountRef: models.RefNOI, AccountLabel: "Net Operating Income", FinancialStatement: models.StatementTotal, CashflowOrder: 5, CalculationFormula: "rev_total - exp_total"},
			{AccountRef: models.RefCashflow, AccountLabel: "Cashflow", FinancialStatement: models.StatementTotal, CashflowOrder: 6, CalculationFormula: "noi"},
		},
		TrialBalance: []models.TrialBalanceEntry{
			{PropertyID: "P1", Year: 2024, Month: "January", AccountID: "4000-0000", AccountName: "Base Rent", Credit: 10000},
			{PropertyID: "P1", Year: 2024, Month: "January", AccountID: "5000-0000", AccountName: "Repairs", Debit: 4000},
			{PropertyID: "P1", Year: 2024, Month: "January", AccountID: "1100-0000", AccountName: "Operating Cash", BeginningBalance: 1000, EndingBalance: 7000},
			{PropertyID: "P1", Year: 2024, Month: "February", AccountID: "4000-0000", AccountName: "Base Rent", Credit: 10000},
			{PropertyID: "P1", Year: 2024, Month: "February", AccountID: "5000-0000", AccountName: "Repairs", Debit: 4000},
		},
		LoanInfo: []models.LoanInfo{
			{PropertyID: "P1", BankerName: "First Bank", LoanNumber: "L-1", Rate: 6, Address: "1 Loan Ave", LoanAmount: 100000, Term: 30},
		},
		LoanSchedule: []models.LoanScheduleRow{
			{Property: "Oak Plaza", Year: 2024, Month: "January", PaymentDate: "1/1/2024", PaymentNumber: 1, Principal: 100, Interest: 500, TotalPayment: 600, ScheduledPayment: 600},
			{Property: "Oak Plaza", Year: 2024, Month: "February", PaymentDate: "2/1/2024", PaymentNumber: 2, Principal: 101, Interest: 499, TotalPayment: 600, ScheduledPayment: 600},
		},
		RentRollMonthly: []models.RentRollMonthly{
			{Property: "oak plaza ", TenantRent: 1100, MarketRent: 1000},
		},
		RentRollAnnual: []models.RentRollAnnual{
			{Property: "Oak Plaza", TenantRent: 12000, CAM: 1200, Misc: 300},
		},
	}
}

func newDashboard() *DashboardService {
	return NewDashboardService(testStore(), cashflow.DefaultCashRange)
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name                  string
		property, year, month string
		want                  Filter
		wantErr               bool
	}{
		{name: "all selectors", property: "all", year: "all", month: "all", want: Filter{}},
		{name: "empty selectors", want: Filter{}},
		{name: "specific", property: " P1 ", year: "2024", month: "3", want: Filter{PropertyID: "P1", Year: 2024, Month: 3}},
		{name: "month by name", property: "P1", year: "2024", month: "march", want: Filter{PropertyID: "P1", Year: 2024, Month: 3}},
		{name: "month out of range", month: "13", wantErr: true},
		{name: "month zero", month: "0", wantErr: true},
		{name: "bad year", year: "twenty", wantErr: true},
		{name: "negative year", year: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilter(tt.property, tt.year, tt.month)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFilter) {
					t.Errorf("expected ErrInvalidFilter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFilter() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseRate(t *testing.T) {
	rate, err := ParseRate("7.5%")
	if err != nil || rate == nil || *rate != 7.5 {
		t.Errorf("ParseRate(7.5%%) = %v, %v", rate, err)
	}
	rate, err = ParseRate("")
	if err != nil || rate != nil {
		t.Errorf("empty rate should be absent, got %v, %v", rate, err)
	}
	if _, err := ParseRate("abc"); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestFilters(t *testing.T) {
	view := newDashboard().Filters()
	if len(view.Properties) != 2 || view.Properties[0].Name != "Oak Plaza" {
		t.Errorf("unexpected properties %+v", view.Properties)
	}
	if len(view.Years) != 1 || view.Years[0] != 2024 {
		t.Errorf("unexpected years %v", view.Years)
	}
	if len(view.Months) != 12 || view.Months[11] != "December" {
		t.Errorf("unexpected months %v", view.Months)
	}
}

func TestOverview(t *testing.T) {
	view := newDashboard().Overview(Filter{PropertyID: "P1", Year: 2024, Month: 1})
	if view.Placeholder != "" {
		t.Fatalf("unexpected placeholder %q", view.Placeholder)
	}
	if view.KPIs.TotalIncome != 10000 || view.KPIs.OperatingExpense != 4000 || view.KPIs.NOI != 6000 || view.KPIs.Cashflow != 6000 {
		t.Errorf("unexpected KPIs %+v", view.KPIs)
	}
	if view.KPIs.NetIncome != 0 {
		t.Errorf("absent net income line should read 0, got %v", view.KPIs.NetIncome)
	}
	if view.Property.Address != "1 Loan Ave" {
		t.Errorf("expected the loan address, got %q", view.Property.Address)
	}
	if view.LoanPayment.Payment == nil || view.LoanPayment.Payment.PaymentNumber != 1 {
		t.Errorf("unexpected loan payment %+v", view.LoanPayment)
	}
	if view.DSCR.Coverage == nil || view.DSCR.Coverage.DebtService != 600 || view.DSCR.Display != "10.00" {
		t.Errorf("unexpected DSCR card %+v", view.DSCR)
	}
}

func TestOverviewPlaceholders(t *testing.T) {
	svc := newDashboard()

	if view := svc.Overview(Filter{PropertyID: "P1", Year: 2024}); view.Placeholder != PlaceholderSelectMonth {
		t.Errorf("expected select-month placeholder, got %q", view.Placeholder)
	}

	view := svc.Overview(Filter{PropertyID: "P2", Year: 2024, Month: 1})
	if view.DSCR.Placeholder != PlaceholderNotAvailable || view.DSCR.Display != PlaceholderNotAvailable {
		t.Errorf("expected N/A DSCR without loan info, got %+v", view.DSCR)
	}
	if view.LoanPayment.Placeholder != PlaceholderNoLoanPayment {
		t.Errorf("expected loan payment placeholder, got %+v", view.LoanPayment)
	}
	if view.Property == nil || view.Property.Address != "2 Elm St" {
		t.Errorf("expected the property address, got %+v", view.Property)
	}
}

func TestCashflow(t *testing.T) {
	svc := newDashboard()

	view := svc.Cashflow(Filter{PropertyID: "P1", Year: 2024, Month: 1})
	if view.Placeholder != "" || view.Report == nil {
		t.Fatalf("unexpected view %+v", view)
	}
	noi, ok := view.Report.Values(models.RefNOI)
	if !ok || noi[0] != 6000 || noi[1] != 6000 {
		t.Errorf("unexpected NOI %v", noi)
	}
	if len(view.Rows) == 0 {
		t.Error("expected projected rows")
	}
	recon := view.Reconciliation
	if recon.Month != "January" || len(recon.Accounts) != 1 || recon.Total.Difference != 6000 {
		t.Errorf("unexpected reconciliation %+v", recon)
	}

	december := svc.Cashflow(Filter{PropertyID: "P1", Year: 2024})
	if december.Reconciliation.Month != "December" || len(december.Reconciliation.Accounts) != 0 {
		t.Errorf("expected an empty December reconciliation, got %+v", december.Reconciliation)
	}
}

func TestCashflowPlaceholders(t *testing.T) {
	svc := newDashboard()
	if view := svc.Cashflow(Filter{PropertyID: "P1"}); view.Placeholder != PlaceholderSelectPeriod {
		t.Errorf("expected select-period placeholder, got %q", view.Placeholder)
	}
	if view := svc.Cashflow(Filter{PropertyID: "P1", Year: 2019}); view.Placeholder != PlaceholderNoData || view.Report != nil {
		t.Errorf("expected no-data placeholder, got %+v", view)
	}
}

func TestCashflowIsRecomputedPerCall(t *testing.T) {
	svc := newDashboard()
	f := Filter{PropertyID: "P1", Year: 2024}
	first := svc.Cashflow(f)
	second := svc.Cashflow(f)
	if first.Report == second.Report {
		t.Fatal("expected a fresh report per call")
	}
	for _, ref := range first.Report.Order {
		a, _ := first.Report.Values(ref)
		b, _ := second.Report.Values(ref)
		if a != b {
			t.Errorf("%s differs between calls: %v vs %v", ref, a, b)
		}
	}
}

func TestLoanSchedule(t *testing.T) {
	svc := newDashboard()

	view := svc.LoanSchedule(Filter{PropertyID: "P1", Year: 2024, Month: 2})
	if view.Schedule == nil {
		t.Fatalf("unexpected placeholder %q", view.Placeholder)
	}
	if view.Schedule.Summary.ScheduledNumberOfPayments != 360 || view.Schedule.Summary.TotalInterest != 999 {
		t.Errorf("unexpected summary %+v", view.Schedule.Summary)
	}
	if !view.Schedule.Lines[1].Highlighted || !view.Schedule.Lines[0].Past {
		t.Errorf("unexpected flags %+v", view.Schedule.Lines)
	}
	if view.RateDisplay != "6.00%" {
		t.Errorf("RateDisplay = %q", view.RateDisplay)
	}

	if view := svc.LoanSchedule(Filter{PropertyID: "P2"}); view.Placeholder != PlaceholderNoLoanInfo {
		t.Errorf("expected loan info placeholder, got %q", view.Placeholder)
	}
	if view := svc.LoanSchedule(Filter{PropertyID: "P9"}); view.Placeholder != PlaceholderNoProperty {
		t.Errorf("expected property placeholder, got %q", view.Placeholder)
	}
	if view := svc.LoanSchedule(Filter{}); view.Placeholder != PlaceholderSelectProperty {
		t.Errorf("expected select-property placeholder, got %q", view.Placeholder)
	}
}

func TestRentRoll(t *testing.T) {
	svc := newDashboard()

	view := svc.RentRoll(Filter{PropertyID: "P1"})
	if view.Placeholder != "" {
		t.Fatalf("unexpected placeholder %q", view.Placeholder)
	}
	if math.Abs(view.RentPremium-0.1) > 1e-9 || view.RentPremiumText != "10.00%" {
		t.Errorf("unexpected premium %v %q", view.RentPremium, view.RentPremiumText)
	}
	if view.AnnualTotalIncome != 13500 {
		t.Errorf("AnnualTotalIncome = %v", view.AnnualTotalIncome)
	}

	if view := svc.RentRoll(Filter{PropertyID: "P2"}); view.Placeholder != PlaceholderNoRentRoll {
		t.Errorf("expected rent roll placeholder, got %q", view.Placeholder)
	}
	if RentPremium(100, 0) != 0 {
		t.Error("zero market rent should give a zero premium")
	}
}

func TestSensitivity(t *testing.T) {
	svc := newDashboard()
	rate := 6.0

	view := svc.Sensitivity(Filter{PropertyID: "P1", Year: 2024, Month: 2}, &rate)
	if view.NOI != 12000 {
		t.Errorf("NOI = %v, want year-to-date 12000", view.NOI)
	}
	if len(view.Rows) != 2 {
		t.Fatalf("expected current and user rows, got %+v", view.Rows)
	}
	current, user := view.Rows[0], view.Rows[1]
	if !current.Current || current.AnnualDebtService != 1200 || current.DSCR != 10 {
		t.Errorf("unexpected current row %+v", current)
	}
	if math.Abs(user.MonthlyDebtService-599.55) > 0.01 {
		t.Errorf("user monthly payment = %v", user.MonthlyDebtService)
	}
	if math.Abs(user.CashflowBeforeTax-(12000-user.AnnualDebtService)) > 1e-9 {
		t.Errorf("unexpected cashflow before tax %v", user.CashflowBeforeTax)
	}

	if view := svc.Sensitivity(Filter{PropertyID: "P2", Year: 2024, Month: 2}, nil); view.Placeholder != PlaceholderNoLoanInfo {
		t.Errorf("expected loan info placeholder, got %q", view.Placeholder)
	}
}

type fakePropertyRepo struct {
	properties []models.Property
	err        error
}

func (f *fakePropertyRepo) ReplaceProperties(ctx context.Context, tx *sql.Tx, properties []models.Property) error {
	f.properties = properties
	return f.err
}

func (f *fakePropertyRepo) ReplaceRentRolls(ctx context.Context, tx *sql.Tx, monthly []models.RentRollMonthly, annual []models.RentRollAnnual) error {
	return nil
}

func (f *fakePropertyRepo) ListProperties(ctx context.Context) ([]models.Property, error) {
	return f.properties, nil
}

func (f *fakePropertyRepo) GetPropertyByID(ctx context.Context, propertyID string) (*models.Property, error) {
	return nil, nil
}

func (f *fakePropertyRepo) ListRentRollMonthly(ctx context.Context) ([]models.RentRollMonthly, error) {
	return nil, nil
}

func (f *fakePropertyRepo) ListRentRollAnnual(ctx context.Context) ([]models.RentRollAnnual, error) {
	return nil, nil
}

type fakeTrialRepo struct{ entries []models.TrialBalanceEntry }

func (f *fakeTrialRepo) ReplaceEntries(ctx context.Context, tx *sql.Tx, entries []models.TrialBalanceEntry) error {
	f.entries = entries
	return nil
}

func (f *fakeTrialRepo) ListEntries(ctx context.Context) ([]models.TrialBalanceEntry, error) {
	return f.entries, nil
}

type fakeMappingRepo struct{ mappings []models.AccountMapping }

func (f *fakeMappingRepo) ReplaceMappings(ctx context.Context, tx *sql.Tx, mappings []models.AccountMapping) error {
	f.mappings = mappings
	return nil
}

func (f *fakeMappingRepo) ListMappings(ctx context.Context) ([]models.AccountMapping, error) {
	return f.mappings, nil
}

type fakeLoanRepo struct {
	schedule []models.LoanScheduleRow
	loans    []models.LoanInfo
}

func (f *fakeLoanRepo) ReplaceSchedule(ctx context.Context, tx *sql.Tx, rows []models.LoanScheduleRow) error {
	f.schedule = rows
	return nil
}

func (f *fakeLoanRepo) ReplaceLoanInfo(ctx context.Context, tx *sql.Tx, loans []models.LoanInfo) error {
	f.loans = loans
	return nil
}

func (f *fakeLoanRepo) ListSchedule(ctx context.Context) ([]models.LoanScheduleRow, error) {
	return f.schedule, nil
}

func (f *fakeLoanRepo) ListLoanInfo(ctx context.Context) ([]models.LoanInfo, error) {
	return f.loans, nil
}

func (f *fakeLoanRepo) GetLoanInfoByPropertyID(ctx context.Context, propertyID string) (*models.LoanInfo, error) {
	return nil, nil
}

func TestLedgerServiceImportThenLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	svc := NewLedgerService(db, &fakePropertyRepo{}, &fakeTrialRepo{}, &fakeMappingRepo{}, &fakeLoanRepo{}, zerolog.Nop())
	store := testStore()

	result, err := svc.Import(context.Background(), store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BatchID == "" || result.RecordsCount != 18 || result.Details["trial_balance"] != 5 {
		t.Errorf("unexpected result %+v", result)
	}

	loaded, err := svc.LoadStore(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded.TrialBalance) != 5 || len(loaded.LoanSchedule) != 2 || len(loaded.Properties) != 2 {
		t.Errorf("unexpected loaded store %+v", loaded.Counts())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestLedgerServiceImportRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	props := &fakePropertyRepo{err: errors.New("table locked")}
	svc := NewLedgerService(db, props, &fakeTrialRepo{}, &fakeMappingRepo{}, &fakeLoanRepo{}, zerolog.Nop())

	if _, err := svc.Import(context.Background(), testStore()); err == nil {
		t.Fatal("expected an error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
