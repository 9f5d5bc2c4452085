package ingest

import (
	"portfolio-analytics/internal/models"
)

func decodeProperties(records []Record) []models.Property {
	out := make([]models.Property, 0, len(records))
	for _, r := range records {
		out = append(out, models.Property{
			PropertyID:   r.Str("property_id"),
			Name:         r.Str("property"),
			Address:      r.Str("address"),
			PropertyType: r.Str("property_type"),
			Owner:        r.Str("owner"),
		})
	}
	return out
}

func decodeTrialBalance(records []Record) []models.TrialBalanceEntry {
	out := make([]models.TrialBalanceEntry, 0, len(records))
	for _, r := range records {
		out = append(out, models.TrialBalanceEntry{
			PropertyID:       r.Str("property_id"),
			Year:             r.Int("year"),
			Month:            r.Str("month"),
			AccountID:        r.Str("account_id"),
			AccountName:      r.Str("accounts"),
			Debit:            r.Float("debit"),
			Credit:           r.Float("credit"),
			Amount:           r.Float("amount"),
			BeginningBalance: r.Float("beginning_balance"),
			EndingBalance:    r.Float("ending_balance"),
		})
	}
	return out
}

func decodeMapping(records []Record) []models.AccountMapping {
	out := make([]models.AccountMapping, 0, len(records))
	for _, r := range records {
		out = append(out, models.AccountMapping{
			AccountRef:         r.Str("account_ref"),
			AccountLabel:       r.Str("account"),
			AccountIDFrom:      r.Str("account_id_from"),
			AccountIDTo:        r.Str("account_id_to"),
			NormalBalance:      r.Str("normal_balance"),
			FinancialStatement: r.Str("fs"),
			CashflowOrder:      r.Float("order_cf"),
			CalculationFormula: r.Str("calculation_formula"),
		})
	}
	return out
}

func decodeLoanSchedule(records []Record) []models.LoanScheduleRow {
	out := make([]models.LoanScheduleRow, 0, len(records))
	for _, r := range records {
		out = append(out, models.LoanScheduleRow{
			Property:         r.Str("property"),
			Year:             r.Int("year"),
			Month:            r.Str("month"),
			PaymentDate:      r.Str("payment_date"),
			PaymentNumber:    r.Int("pmt_no"),
			BeginningBalance: r.Float("beginning_balance"),
			ScheduledPayment: r.Float("scheduled_payment"),
			TotalPayment:     r.Float("total_payment"),
			Principal:        r.Float("principal"),
			Interest:         r.Float("interest"),
			EndingBalance:    r.Float("ending_balance"),
		})
	}
	return out
}

func decodeLoanInfo(records []Record) []models.LoanInfo {
	out := make([]models.LoanInfo, 0, len(records))
	for _, r := range records {
		out = append(out, models.LoanInfo{
			PropertyID:   r.Str("property_id"),
			BankerName:   r.Str("banker"),
			LoanNumber:   r.Str("loan_number"),
			Rate:         PercentRate(r.Float("rate")),
			MaturityDate: r.Str("maturity_date"),
			Address:      r.Str("address"),
			LoanAmount:   r.Float("loan_amount"),
			Term:         r.Float("term"),
		})
	}
	return out
}

func decodeRentRollMonthly(records []Record) []models.RentRollMonthly {
	out := make([]models.RentRollMonthly, 0, len(records))
	for _, r := range records {
		out = append(out, models.RentRollMonthly{
			Property:          r.Str("property"),
			TotalUnits:        r.Float("total_units"),
			SquareFootage:     r.Float("sq_footage"),
			MarketRent:        r.Float("market_rent"),
			TenantRent:        r.Float("tenant_rent"),
			CAM:               r.Float("cam"),
			TenantRentPerSqFt: r.Float("tenant_rent_per_sqft"),
		})
	}
	return out
}

func decodeRentRollAnnual(records []Record) []models.RentRollAnnual {
	out := make([]models.RentRollAnnual, 0, len(records))
	for _, r := range records {
		out = append(out, models.RentRollAnnual{
			Property:   r.Str("property"),
			MarketRent: r.Float("market_rent"),
			TenantRent: r.Float("tenant_rent"),
			CAM:        r.Float("cam"),
			Misc:       r.Float("misc"),
		})
	}
	return out
}

// PercentRate converts a loan rate to a percent number. Rates below 1 are
// fractions (0.055 becomes 5.5).
func PercentRate(rate float64) float64 {
	if rate > 0 && rate < 1 {
		return rate * 100
	}
	return rate
}
