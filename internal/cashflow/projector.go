package cashflow

import "portfolio-analytics/internal/models"

// RowKind tells the presentation layer what a projected row stands for.
type RowKind string

const (
	RowAccount    RowKind = "account"
	RowAdjustment RowKind = "adjustment"
	RowGroup      RowKind = "group"
)

// Emphasis marks group rows for display.
type Emphasis string

const (
	EmphasisNone      Emphasis = ""
	EmphasisSubtotal  Emphasis = "subtotal"
	EmphasisHighlight Emphasis = "highlight"
)

// HighlightRefs are the report lines always rendered as key totals.
var HighlightRefs = []string{
	models.RefRevenueTotal,
	models.RefExpenseTotal,
	models.RefNOI,
	models.RefNetIncome,
	models.RefAdjustmentsTotal,
	models.RefCashflow,
}

// Row is one line of the projected cashflow table. Parent is the group ref
// a detail row collapses under.
type Row struct {
	Kind     RowKind  `json:"kind"`
	Ref      string   `json:"ref"`
	Parent   string   `json:"parent,omitempty"`
	Label    string   `json:"label"`
	Monthly  Series   `json:"monthly"`
	Total    float64  `json:"total"`
	Emphasis Emphasis `json:"emphasis,omitempty"`
}

// AdjustmentRefs returns the groups nested under the adjustments total, in
// the order its formula names them.
func AdjustmentRefs(report *Report) []string {
	adj, ok := report.Group(models.RefAdjustmentsTotal)
	if !ok {
		return nil
	}
	return FormulaRefs(adj.CalculationFormula)
}

// Project flattens a report into display rows: each group's accounts sorted
// by id, then the group line itself. Groups referenced by the adjustments
// total are moved under it. Group lines that are neither key totals nor
// subtotals are left out.
func Project(report *Report) []Row {
	adjustments := AdjustmentRefs(report)
	nested := make(map[string]bool, len(adjustments))
	for _, ref := range adjustments {
		nested[ref] = true
	}

	var rows []Row
	for _, group := range report.Groups() {
		if nested[group.AccountRef] {
			continue
		}

		accounts := group.SortedAccounts()
		for _, account := range accounts {
			rows = append(rows, Row{
				Kind:    RowAccount,
				Ref:     account.AccountID,
				Parent:  group.AccountRef,
				Label:   account.Label,
				Monthly: account.Monthly,
				Total:   account.Monthly.Total(),
			})
		}

		if group.AccountRef == models.RefAdjustmentsTotal {
			for _, ref := range adjustments {
				child, ok := report.Group(ref)
				if !ok {
					continue
				}
				rows = append(rows, Row{
					Kind:    RowAdjustment,
					Ref:     child.AccountRef,
					Parent:  group.AccountRef,
					Label:   child.AccountLabel,
					Monthly: child.Monthly,
					Total:   child.Monthly.Total(),
				})
			}
		}

		emphasis := emphasisFor(group, len(accounts) > 0)
		if emphasis == EmphasisNone {
			continue
		}
		rows = append(rows, Row{
			Kind:     RowGroup,
			Ref:      group.AccountRef,
			Label:    group.AccountLabel,
			Monthly:  group.Monthly,
			Total:    group.Monthly.Total(),
			Emphasis: emphasis,
		})
	}

	return rows
}

func emphasisFor(group *Group, hasAccounts bool) Emphasis {
	for _, ref := range HighlightRefs {
		if group.AccountRef == ref {
			return EmphasisHighlight
		}
	}
	if hasAccounts || group.AccountRef == models.RefAdjustmentsTotal || group.CalculationFormula != "" {
		return EmphasisSubtotal
	}
	return EmphasisNone
}
