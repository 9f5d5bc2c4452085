// Package debt computes loan payments, debt service and coverage ratios.
package debt

import "math"

// PaymentsPerYear is the payment frequency of every loan in the datasets.
const PaymentsPerYear = 12

// MonthlyPayment is the fixed payment that amortizes principal over
// termYears at ratePercent (6 for 6%) a year. A zero rate spreads the
// principal evenly. A negative rate, or a missing principal or term, cannot
// be computed and yields 0.
func MonthlyPayment(principal, ratePercent, termYears float64) float64 {
	if ratePercent < 0 || math.IsNaN(ratePercent) || principal == 0 || termYears <= 0 {
		return 0
	}
	n := termYears * PaymentsPerYear
	i := ratePercent / 1200
	factor := math.Pow(1+i, n)
	if factor-1 == 0 {
		return principal / n
	}
	return principal * i * factor / (factor - 1)
}

// DSCR divides net operating income by debt service. No debt service means
// no meaningful ratio, reported as 0.
func DSCR(noi, debtService float64) float64 {
	if debtService == 0 {
		return 0
	}
	return noi / debtService
}
