package cashflow

import (
	"strings"

	"portfolio-analytics/internal/models"
)

// CashRange is the inclusive account-id range of the operating cash
// accounts.
type CashRange struct {
	From string
	To   string
}

// DefaultCashRange covers the operating bank accounts of the standard chart.
var DefaultCashRange = CashRange{From: "1100-0000", To: "1145-0000"}

type CashPosition struct {
	Account    string  `json:"account"`
	AccountID  string  `json:"account_id,omitempty"`
	Beginning  float64 `json:"beginning_balance"`
	Ending     float64 `json:"ending_balance"`
	Difference float64 `json:"difference"`
}

// CashReconciliation compares opening and closing cash for one month.
type CashReconciliation struct {
	Month    string         `json:"month"`
	Accounts []CashPosition `json:"accounts"`
	Total    CashPosition   `json:"total"`
}

// ReconcileCash lists the cash accounts posted in the month at monthIndex
// with their balance movement, plus a total line.
func ReconcileCash(entries []models.TrialBalanceEntry, monthIndex int, cash CashRange) CashReconciliation {
	recon := CashReconciliation{
		Month: models.MonthNames[monthIndex],
		Total: CashPosition{Account: "TOTAL CASH"},
	}

	for _, row := range entries {
		index, ok := models.MonthIndex(row.Month)
		if !ok || index != monthIndex {
			continue
		}
		id := strings.TrimSpace(row.AccountID)
		if id < cash.From || id > cash.To {
			continue
		}

		recon.Accounts = append(recon.Accounts, CashPosition{
			Account:    row.AccountName,
			AccountID:  row.AccountID,
			Beginning:  row.BeginningBalance,
			Ending:     row.EndingBalance,
			Difference: row.EndingBalance - row.BeginningBalance,
		})
		recon.Total.Beginning += row.BeginningBalance
		recon.Total.Ending += row.EndingBalance
	}
	recon.Total.Difference = recon.Total.Ending - recon.Total.Beginning

	return recon
}
