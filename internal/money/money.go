// Package money coerces loosely-typed dataset cells into numbers and formats
// amounts for display.
package money

import (
	"math"
	"regexp"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var nonNumeric = regexp.MustCompile(`[^0-9.\-]+`)

// amountFormatter prints cents with a thousands separator and two decimals.
var amountFormatter = gomoney.NewFormatter(2, ".", ",", "", "1")

// ParseCurrency strips everything but digits, '.' and '-' and parses what is
// left. Anything that does not parse to a finite number folds to 0.
func ParseCurrency(value string) float64 {
	cleaned := nonNumeric.ReplaceAllString(value, "")
	if cleaned == "" {
		return 0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	f := d.InexactFloat64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func grouped(v float64) string {
	cents := decimal.NewFromFloat(math.Abs(v)).Shift(2).Round(0).IntPart()
	return amountFormatter.Format(cents)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FormatCurrency renders v with two decimals and thousands separators.
// Negative amounts are wrapped in parentheses.
func FormatCurrency(v float64) string {
	if !finite(v) {
		return "0.00"
	}
	s := grouped(v)
	if v < 0 && s != "0.00" {
		return "(" + s + ")"
	}
	return s
}

// FormatNumber is FormatCurrency for report cells.
func FormatNumber(v float64) string {
	if !finite(v) || v == 0 {
		return "0.00"
	}
	return FormatCurrency(v)
}

// FormatTableValue is FormatCurrency except that zero renders as "-".
func FormatTableValue(v float64) string {
	if !finite(v) || v == 0 {
		return "-"
	}
	return FormatCurrency(v)
}

// FormatPercent renders a fraction as a percentage.
func FormatPercent(v float64) string {
	if !finite(v) {
		return "-"
	}
	return decimal.NewFromFloat(v).Shift(2).StringFixed(2) + "%"
}

// FormatRate renders a rate that is already a percent number.
func FormatRate(v float64) string {
	if !finite(v) {
		return "0.00%"
	}
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

// FormatDSCR renders a coverage ratio.
func FormatDSCR(v float64) string {
	if !finite(v) {
		return "0.00"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}
