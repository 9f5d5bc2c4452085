// Package cashflow turns a trial balance and the chart-of-accounts mapping
// into the monthly cashflow report.
package cashflow

import (
	"encoding/json"
	"sort"

	"portfolio-analytics/internal/models"
)

// Series holds one value per calendar month, January first.
type Series [models.MonthsPerYear]float64

// Total sums the twelve months.
func (s Series) Total() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// YearToDate sums January through the month at index.
func (s Series) YearToDate(index int) float64 {
	var total float64
	for i := 0; i <= index && i < len(s); i++ {
		total += s[i]
	}
	return total
}

// Account is the detail line of one account name within a group.
type Account struct {
	Label     string `json:"label"`
	AccountID string `json:"account_id"`
	Monthly   Series `json:"monthly"`
}

// Group is the report line of one mapping row.
type Group struct {
	models.AccountMapping
	Accounts map[string]*Account `json:"accounts"`
	Monthly  Series              `json:"monthly"`
}

// SortedAccounts returns the detail lines ordered by account id, then label.
func (g *Group) SortedAccounts() []*Account {
	out := make([]*Account, 0, len(g.Accounts))
	for _, a := range g.Accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AccountID != out[j].AccountID {
			return out[i].AccountID < out[j].AccountID
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Report is the result of one aggregation pass. Order holds the group refs
// in cashflow order.
type Report struct {
	Order  []string
	groups map[string]*Group
}

// Group looks up a report line by account ref.
func (r *Report) Group(ref string) (*Group, bool) {
	g, ok := r.groups[ref]
	return g, ok
}

// Values returns the monthly series of a report line.
func (r *Report) Values(ref string) (Series, bool) {
	g, ok := r.groups[ref]
	if !ok {
		return Series{}, false
	}
	return g.Monthly, true
}

// Groups returns the report lines in cashflow order.
func (r *Report) Groups() []*Group {
	out := make([]*Group, 0, len(r.Order))
	for _, ref := range r.Order {
		out = append(out, r.groups[ref])
	}
	return out
}

// MarshalJSON exposes the lines keyed by account ref along with their order.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Order  []string          `json:"order"`
		Groups map[string]*Group `json:"groups"`
	}{Order: r.Order, Groups: r.groups})
}

// Empty reports whether the selection produced no report lines.
func (r *Report) Empty() bool {
	return len(r.Order) == 0
}

// Aggregate builds the cashflow report for the trial-balance rows of one
// property and year. An empty selection yields an empty report.
func Aggregate(entries []models.TrialBalanceEntry, mapping []models.AccountMapping) *Report {
	report := &Report{groups: make(map[string]*Group)}
	if len(entries) == 0 {
		return report
	}

	ordered := CashflowMapping(mapping)
	for _, m := range ordered {
		if _, exists := report.groups[m.AccountRef]; exists {
			continue
		}
		report.groups[m.AccountRef] = &Group{
			AccountMapping: m,
			Accounts:       make(map[string]*Account),
		}
		report.Order = append(report.Order, m.AccountRef)
	}

	classifier := NewClassifier(ordered)
	for _, row := range entries {
		m, ok := classifier.Classify(row.AccountID)
		if !ok {
			continue
		}
		group := report.groups[m.AccountRef]

		account, ok := group.Accounts[row.AccountName]
		if !ok {
			account = &Account{Label: row.AccountName, AccountID: row.AccountID}
			group.Accounts[row.AccountName] = account
		}

		index, ok := models.MonthIndex(row.Month)
		if !ok {
			continue
		}
		account.Monthly[index] += Activity(group.AccountMapping, row.Debit, row.Credit)
	}

	for _, ref := range report.Order {
		group := report.groups[ref]
		if len(group.Accounts) == 0 {
			continue
		}
		var totals Series
		for _, account := range group.SortedAccounts() {
			for i, v := range account.Monthly {
				totals[i] += v
			}
		}
		group.Monthly = totals
	}

	for _, ref := range report.Order {
		group := report.groups[ref]
		if group.CalculationFormula == "" {
			continue
		}
		group.Monthly = Evaluate(group.CalculationFormula, report.Values)
	}

	return report
}
