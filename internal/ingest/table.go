package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"portfolio-analytics/internal/money"
)

// ErrMissingField is returned when a dataset lacks a required header.
var ErrMissingField = errors.New("required field missing")

// Record is one CSV row keyed by normalized header.
type Record map[string]string

// Str returns the trimmed cell, or "" when the column is absent.
func (r Record) Str(key string) string {
	return strings.TrimSpace(r[key])
}

// Float coerces the cell with money.ParseCurrency.
func (r Record) Float(key string) float64 {
	return money.ParseCurrency(r[key])
}

// Int coerces the cell and rounds it to the nearest integer.
func (r Record) Int(key string) int {
	return int(math.Round(r.Float(key)))
}

// NormalizeHeader trims, lower-cases and replaces spaces with underscores.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
}

// ReadTable parses a CSV stream into records, checking the dataset's
// required headers.
func ReadTable(r io.Reader, ds Dataset) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: empty file: %w", ds.File, ErrMissingField)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read header: %w", ds.File, err)
	}

	columns := make([]string, len(header))
	present := make(map[string]bool, len(header))
	for i, h := range header {
		name := NormalizeHeader(h)
		if canonical, ok := ds.Aliases[name]; ok && !present[canonical] {
			name = canonical
		}
		columns[i] = name
		present[name] = true
	}

	for _, field := range ds.Required {
		if !present[field] {
			return nil, fmt.Errorf("%s: %w: %s", ds.File, ErrMissingField, field)
		}
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read row: %w", ds.File, err)
		}
		if blank(row) {
			continue
		}

		rec := make(Record, len(columns))
		for i, col := range columns {
			if i < len(row) && col != "" {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
