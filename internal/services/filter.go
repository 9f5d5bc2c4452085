package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"portfolio-analytics/internal/models"
)

// ErrInvalidFilter is returned for a selector value that is neither "all"
// nor a valid choice.
var ErrInvalidFilter = errors.New("invalid filter")

const selectAll = "all"

// Filter is the property/year/month selection. Zero values mean "all".
// Month is 1-12.
type Filter struct {
	PropertyID string `json:"property_id,omitempty"`
	Year       int    `json:"year,omitempty"`
	Month      int    `json:"month,omitempty"`
}

func (f Filter) HasProperty() bool { return f.PropertyID != "" }

func (f Filter) HasPeriod() bool { return f.HasProperty() && f.Year != 0 }

func (f Filter) HasMonth() bool { return f.HasPeriod() && f.Month != 0 }

// MonthIndex is the zero-based month of the selection.
func (f Filter) MonthIndex() int { return f.Month - 1 }

func unselected(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || strings.EqualFold(value, selectAll)
}

// ParseFilter reads the three selectors. A month may be given as 1-12 or
// by name.
func ParseFilter(property, year, month string) (Filter, error) {
	var f Filter
	if !unselected(property) {
		f.PropertyID = strings.TrimSpace(property)
	}

	if !unselected(year) {
		y, err := strconv.Atoi(strings.TrimSpace(year))
		if err != nil || y <= 0 {
			return Filter{}, fmt.Errorf("%w: year %q", ErrInvalidFilter, year)
		}
		f.Year = y
	}

	if !unselected(month) {
		m, err := strconv.Atoi(strings.TrimSpace(month))
		if err != nil {
			index, ok := models.MonthIndex(month)
			if !ok {
				return Filter{}, fmt.Errorf("%w: month %q", ErrInvalidFilter, month)
			}
			m = index + 1
		}
		if m < 1 || m > models.MonthsPerYear {
			return Filter{}, fmt.Errorf("%w: month %q", ErrInvalidFilter, month)
		}
		f.Month = m
	}

	return f, nil
}

// ParseRate reads an optional user rate in percent. An empty value means no
// rate was given.
func ParseRate(value string) (*float64, error) {
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "%"))
	if value == "" {
		return nil, nil
	}
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil || rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("%w: rate %q", ErrInvalidFilter, value)
	}
	return &rate, nil
}
