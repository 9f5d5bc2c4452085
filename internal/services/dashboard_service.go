package services

import (
	"portfolio-analytics/internal/cashflow"
	"portfolio-analytics/internal/debt"
	"portfolio-analytics/internal/ledger"
	"portfolio-analytics/internal/models"
	"portfolio-analytics/internal/money"
)

// Placeholder messages shown in place of a section that cannot be computed
const (
	PlaceholderSelectProperty = "Select a property to view this report"
	PlaceholderSelectPeriod   = "Select a property and year to view the cashflow report"
	PlaceholderSelectMonth    = "Select a property, year and month to view this report"
	PlaceholderNoData         = "No trial balance data for the selected property and year"
	PlaceholderNoProperty     = "Property not found"
	PlaceholderNoLoanInfo     = "Loan information not found for this property"
	PlaceholderNoLoanPayment  = "No loan payment data for the selected month"
	PlaceholderNoRentRoll     = "Rent roll data not available for this property"
	PlaceholderNotAvailable   = "N/A"
)

// DashboardService computes the dashboard views from a loaded store. The
// store is never written, so one service may serve concurrent requests.
// Every call aggregates from scratch.
type DashboardService struct {
	store *ledger.Store
	cash  cashflow.CashRange
}

func NewDashboardService(store *ledger.Store, cash cashflow.CashRange) *DashboardService {
	return &DashboardService{store: store, cash: cash}
}

type PropertyOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FiltersView struct {
	Properties []PropertyOption `json:"properties"`
	Years      []int            `json:"years"`
	Months     []string         `json:"months"`
}

// Filters lists the selectable properties, years and months.
func (s *DashboardService) Filters() FiltersView {
	view := FiltersView{
		Properties: make([]PropertyOption, 0, len(s.store.Properties)),
		Years:      s.store.CashflowYears(),
		Months:     models.MonthNames[:],
	}
	for _, p := range s.store.Properties {
		view.Properties = append(view.Properties, PropertyOption{ID: p.PropertyID, Name: p.Name})
	}
	if view.Years == nil {
		view.Years = []int{}
	}
	return view
}

func (s *DashboardService) report(f Filter) *cashflow.Report {
	return cashflow.Aggregate(s.store.TrialBalanceFor(f.PropertyID, f.Year), s.store.Mapping)
}

// monthValue reads one month of a report line. An absent line reads as 0.
func monthValue(report *cashflow.Report, ref string, index int) float64 {
	values, _ := report.Values(ref)
	return values[index]
}

type PropertyHeader struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Type    string `json:"type"`
	Owner   string `json:"owner"`
}

type KPIs struct {
	TotalIncome      float64 `json:"total_income"`
	OperatingExpense float64 `json:"operating_expense"`
	NOI              float64 `json:"noi"`
	NetIncome        float64 `json:"net_income"`
	Cashflow         float64 `json:"cashflow"`
}

type LoanPaymentCard struct {
	Placeholder string                  `json:"placeholder,omitempty"`
	Payment     *models.LoanScheduleRow `json:"payment,omitempty"`
}

type DSCRCard struct {
	Placeholder string         `json:"placeholder,omitempty"`
	NOI         float64        `json:"noi"`
	Coverage    *debt.Coverage `json:"coverage,omitempty"`
	Display     string         `json:"display"`
}

type OverviewView struct {
	Filter      Filter           `json:"filter"`
	Placeholder string           `json:"placeholder,omitempty"`
	Property    *PropertyHeader  `json:"property,omitempty"`
	KPIs        *KPIs            `json:"kpis,omitempty"`
	LoanPayment *LoanPaymentCard `json:"loan_payment,omitempty"`
	DSCR        *DSCRCard        `json:"dscr,omitempty"`
}

// Overview computes the KPI cards of one property and month.
func (s *DashboardService) Overview(f Filter) OverviewView {
	view := OverviewView{Filter: f}
	if !f.HasMonth() {
		view.Placeholder = PlaceholderSelectMonth
		return view
	}

	report := s.report(f)
	index := f.MonthIndex()
	view.KPIs = &KPIs{
		TotalIncome:      monthValue(report, models.RefRevenueTotal, index),
		OperatingExpense: monthValue(report, models.RefExpenseTotal, index),
		NOI:              monthValue(report, models.RefNOI, index),
		NetIncome:        monthValue(report, models.RefNetIncome, index),
		Cashflow:         monthValue(report, models.RefCashflow, index),
	}

	property, hasProperty := s.store.Property(f.PropertyID)
	loan, hasLoan := s.store.LoanInfoFor(f.PropertyID)
	if hasProperty {
		view.Property = &PropertyHeader{
			Name:    property.Name,
			Address: property.Address,
			Type:    property.PropertyType,
			Owner:   property.Owner,
		}
		if hasLoan && loan.Address != "" {
			view.Property.Address = loan.Address
		}
	}

	var schedule []models.LoanScheduleRow
	if hasProperty {
		schedule = s.store.LoanScheduleFor(property.Name)
	}

	view.LoanPayment = &LoanPaymentCard{Placeholder: PlaceholderNoLoanPayment}
	if payment, ok := debt.PaymentFor(schedule, f.Year, f.Month); ok {
		view.LoanPayment = &LoanPaymentCard{Payment: &payment}
	}

	noi := view.KPIs.NOI
	view.DSCR = &DSCRCard{NOI: noi, Placeholder: PlaceholderNotAvailable, Display: PlaceholderNotAvailable}
	if hasProperty && hasLoan {
		coverage := debt.MonthlyCoverage(noi, schedule, f.Year, f.Month)
		view.DSCR = &DSCRCard{
			NOI:      noi,
			Coverage: &coverage,
			Display:  money.FormatDSCR(coverage.DSCR),
		}
	}

	return view
}

type CashflowView struct {
	Filter         Filter                       `json:"filter"`
	Placeholder    string                       `json:"placeholder,omitempty"`
	Months         []string                     `json:"months"`
	Report         *cashflow.Report             `json:"report,omitempty"`
	Rows           []cashflow.Row               `json:"rows,omitempty"`
	Reconciliation *cashflow.CashReconciliation `json:"cash_reconciliation,omitempty"`
}

// Cashflow builds the cashflow statement of a property and year together
// with the operating cash reconciliation of the selected month, December
// when no month is selected.
func (s *DashboardService) Cashflow(f Filter) CashflowView {
	view := CashflowView{Filter: f, Months: models.MonthNames[:]}
	if !f.HasPeriod() {
		view.Placeholder = PlaceholderSelectPeriod
		return view
	}

	entries := s.store.TrialBalanceFor(f.PropertyID, f.Year)
	report := cashflow.Aggregate(entries, s.store.Mapping)
	if report.Empty() {
		view.Placeholder = PlaceholderNoData
		return view
	}

	view.Report = report
	view.Rows = cashflow.Project(report)

	monthIndex := models.MonthsPerYear - 1
	if f.Month != 0 {
		monthIndex = f.MonthIndex()
	}
	recon := cashflow.ReconcileCash(entries, monthIndex, s.cash)
	view.Reconciliation = &recon

	return view
}

type LoanScheduleView struct {
	Filter      Filter           `json:"filter"`
	Placeholder string           `json:"placeholder,omitempty"`
	Loan        *models.LoanInfo `json:"loan,omitempty"`
	RateDisplay string           `json:"rate_display,omitempty"`
	Schedule    *debt.Schedule   `json:"schedule,omitempty"`
}

// LoanSchedule returns the amortization schedule of a property. Year and
// month only drive the highlighted and past flags.
func (s *DashboardService) LoanSchedule(f Filter) LoanScheduleView {
	view := LoanScheduleView{Filter: f}
	if !f.HasProperty() {
		view.Placeholder = PlaceholderSelectProperty
		return view
	}

	property, ok := s.store.Property(f.PropertyID)
	if !ok {
		view.Placeholder = PlaceholderNoProperty
		return view
	}
	loan, ok := s.store.LoanInfoFor(f.PropertyID)
	if !ok {
		view.Placeholder = PlaceholderNoLoanInfo
		return view
	}

	schedule := debt.BuildSchedule(loan, s.store.LoanScheduleFor(property.Name), f.Year, f.Month)
	view.Loan = &loan
	view.RateDisplay = money.FormatRate(loan.Rate)
	view.Schedule = &schedule
	return view
}

type RentRollView struct {
	Filter            Filter                  `json:"filter"`
	Placeholder       string                  `json:"placeholder,omitempty"`
	Monthly           *models.RentRollMonthly `json:"monthly,omitempty"`
	Annual            *models.RentRollAnnual  `json:"annual,omitempty"`
	RentPremium       float64                 `json:"rent_premium"`
	RentPremiumText   string                  `json:"rent_premium_display,omitempty"`
	AnnualTotalIncome float64                 `json:"annual_total_income"`
}

// RentRoll returns both rent-roll snapshots of a property.
func (s *DashboardService) RentRoll(f Filter) RentRollView {
	view := RentRollView{Filter: f}
	if !f.HasProperty() {
		view.Placeholder = PlaceholderSelectProperty
		return view
	}

	property, ok := s.store.Property(f.PropertyID)
	if !ok {
		view.Placeholder = PlaceholderNoProperty
		return view
	}
	monthly, hasMonthly := s.store.RentRollMonthlyFor(property.Name)
	annual, hasAnnual := s.store.RentRollAnnualFor(property.Name)
	if !hasMonthly || !hasAnnual {
		view.Placeholder = PlaceholderNoRentRoll
		return view
	}

	view.Monthly = &monthly
	view.Annual = &annual
	view.RentPremium = RentPremium(monthly.TenantRent, monthly.MarketRent)
	view.RentPremiumText = money.FormatPercent(view.RentPremium)
	view.AnnualTotalIncome = annual.TenantRent + annual.CAM + annual.Misc
	return view
}

// RentPremium is how far tenant rent sits above market, as a fraction.
func RentPremium(tenant, market float64) float64 {
	if market == 0 {
		return 0
	}
	return (tenant - market) / market
}

type SensitivityView struct {
	Filter      Filter                `json:"filter"`
	Placeholder string                `json:"placeholder,omitempty"`
	NOI         float64               `json:"noi_ytd"`
	Rows        []debt.SensitivityRow `json:"rows,omitempty"`
}

// Sensitivity prices the loan at its contractual rate and, optionally, at
// a user rate in percent against year-to-date NOI.
func (s *DashboardService) Sensitivity(f Filter, userRate *float64) SensitivityView {
	view := SensitivityView{Filter: f}
	if !f.HasMonth() {
		view.Placeholder = PlaceholderSelectMonth
		return view
	}

	property, ok := s.store.Property(f.PropertyID)
	if !ok {
		view.Placeholder = PlaceholderNoProperty
		return view
	}
	loan, ok := s.store.LoanInfoFor(f.PropertyID)
	if !ok {
		view.Placeholder = PlaceholderNoLoanInfo
		return view
	}

	noi, _ := s.report(f).Values(models.RefNOI)
	view.NOI = noi.YearToDate(f.MonthIndex())
	view.Rows = debt.Sensitivity(debt.SensitivityInput{
		Loan:     loan,
		Schedule: s.store.LoanScheduleFor(property.Name),
		Year:     f.Year,
		Month:    f.Month,
		NOI:      view.NOI,
		UserRate: userRate,
	})
	return view
}
