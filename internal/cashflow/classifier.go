package cashflow

import (
	"sort"
	"strings"

	"portfolio-analytics/internal/models"
)

// CashflowMapping keeps the mapping rows that declare a cashflow order and
// sorts them by it. Rows sharing an order keep their file order.
func CashflowMapping(mapping []models.AccountMapping) []models.AccountMapping {
	var rows []models.AccountMapping
	for _, m := range mapping {
		if m.InCashflow() {
			rows = append(rows, m)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CashflowOrder < rows[j].CashflowOrder
	})
	return rows
}

// InRange reports whether accountID falls inside the mapping row's inclusive
// code range. Codes compare as strings, so both ends must be formatted like
// the trial-balance ids.
func InRange(m models.AccountMapping, accountID string) bool {
	if m.AccountIDFrom == "" || m.AccountIDTo == "" {
		return false
	}
	return accountID >= m.AccountIDFrom && accountID <= m.AccountIDTo
}

// Classifier resolves trial-balance account ids to mapping rows.
type Classifier struct {
	mapping []models.AccountMapping
}

// NewClassifier expects mapping already sorted by cashflow order.
func NewClassifier(mapping []models.AccountMapping) *Classifier {
	return &Classifier{mapping: mapping}
}

// Classify returns the first mapping row whose range contains accountID.
func (c *Classifier) Classify(accountID string) (models.AccountMapping, bool) {
	accountID = strings.TrimSpace(accountID)
	for _, m := range c.mapping {
		if InRange(m, accountID) {
			return m, true
		}
	}
	return models.AccountMapping{}, false
}

// Activity is the signed amount a posting adds to its group. Income
// statement groups follow their normal balance; every other statement type
// counts credits as increases.
func Activity(m models.AccountMapping, debit, credit float64) float64 {
	if m.FinancialStatement == models.StatementIncome &&
		strings.EqualFold(strings.TrimSpace(m.NormalBalance), models.NormalDebit) {
		return debit - credit
	}
	return credit - debit
}
