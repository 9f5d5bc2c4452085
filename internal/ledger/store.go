// Package ledger holds the typed datasets the dashboard computes from. A
// Store is filled once at load time and only read afterwards.
package ledger

import (
	"sort"

	"portfolio-analytics/internal/models"
)

type Store struct {
	Properties      []models.Property
	LoanSchedule    []models.LoanScheduleRow
	LoanInfo        []models.LoanInfo
	TrialBalance    []models.TrialBalanceEntry
	Mapping         []models.AccountMapping
	RentRollMonthly []models.RentRollMonthly
	RentRollAnnual  []models.RentRollAnnual
}

// Property finds a property by id.
func (s *Store) Property(propertyID string) (models.Property, bool) {
	for _, p := range s.Properties {
		if models.SameName(p.PropertyID, propertyID) {
			return p, true
		}
	}
	return models.Property{}, false
}

// LoanInfoFor returns the first loan recorded for a property id.
func (s *Store) LoanInfoFor(propertyID string) (models.LoanInfo, bool) {
	for _, l := range s.LoanInfo {
		if models.SameName(l.PropertyID, propertyID) {
			return l, true
		}
	}
	return models.LoanInfo{}, false
}

// TrialBalanceFor selects the rows of one property and fiscal year.
func (s *Store) TrialBalanceFor(propertyID string, year int) []models.TrialBalanceEntry {
	var rows []models.TrialBalanceEntry
	for _, row := range s.TrialBalance {
		if row.Year == year && models.SameName(row.PropertyID, propertyID) {
			rows = append(rows, row)
		}
	}
	return rows
}

// LoanScheduleFor returns a property's payments in file order. Schedules
// are keyed by property name, not id.
func (s *Store) LoanScheduleFor(propertyName string) []models.LoanScheduleRow {
	var rows []models.LoanScheduleRow
	for _, row := range s.LoanSchedule {
		if models.SameName(row.Property, propertyName) {
			rows = append(rows, row)
		}
	}
	return rows
}

func (s *Store) RentRollMonthlyFor(propertyName string) (models.RentRollMonthly, bool) {
	for _, r := range s.RentRollMonthly {
		if models.SameName(r.Property, propertyName) {
			return r, true
		}
	}
	return models.RentRollMonthly{}, false
}

func (s *Store) RentRollAnnualFor(propertyName string) (models.RentRollAnnual, bool) {
	for _, r := range s.RentRollAnnual {
		if models.SameName(r.Property, propertyName) {
			return r, true
		}
	}
	return models.RentRollAnnual{}, false
}

// CashflowYears lists the distinct loan-schedule years, newest first.
func (s *Store) CashflowYears() []int {
	seen := make(map[int]bool)
	var years []int
	for _, row := range s.LoanSchedule {
		if row.Year == 0 || seen[row.Year] {
			continue
		}
		seen[row.Year] = true
		years = append(years, row.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Counts reports the number of rows per dataset.
func (s *Store) Counts() map[string]int {
	return map[string]int{
		"properties":       len(s.Properties),
		"loans":            len(s.LoanSchedule),
		"loan_info":        len(s.LoanInfo),
		"trial_balance":    len(s.TrialBalance),
		"mapping":          len(s.Mapping),
		"rentroll_monthly": len(s.RentRollMonthly),
		"rentroll_annual":  len(s.RentRollAnnual),
	}
}
