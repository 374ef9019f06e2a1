package tabular

import (
	"fmt"
	"strings"
)

// Row is one data row keyed by canonical columns. Values are stored
// whitespace-trimmed.
type Row map[Column]string

// Get returns the value of a column, or "" when absent.
func (r Row) Get(c Column) string {
	return r[c]
}

// GetWithFallback returns the column's value, falling back to known
// legacy column names when the canonical one is blank.
func (r Row) GetWithFallback(c Column) string {
	if v := r[c]; !IsBlank(v) {
		return v
	}
	for _, legacy := range LegacyFallbacks(c) {
		if v := r[legacy]; !IsBlank(v) {
			return v
		}
	}
	return ""
}

// Table is normalized tabular data from one source sheet.
type Table struct {
	Columns []Column
	Rows    []Row
}

// New normalizes a raw header row and its data rows into a Table.
// An empty header yields an empty table.
func New(header []string, rows [][]string) Table {
	columns := NormalizeHeader(header)
	if len(columns) == 0 {
		return Table{}
	}

	table := Table{Columns: activeColumns(columns)}
	for _, raw := range rows {
		row := make(Row, len(table.Columns))
		for i, col := range columns {
			if col == "" {
				continue // dropped duplicate identity column
			}
			if i < len(raw) {
				row[col] = strings.TrimSpace(raw[i])
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// Empty reports whether the table has no columns.
func (t Table) Empty() bool {
	return len(t.Columns) == 0
}

// Has reports whether a canonical column exists in the table.
func (t Table) Has(c Column) bool {
	for _, col := range t.Columns {
		if col == c {
			return true
		}
	}
	return false
}

// NormalizeHeader maps a raw header row to canonical columns, resolving
// synonyms and disambiguating duplicates deterministically: the first
// occurrence keeps the bare name, later occurrences get a numeric suffix
// (備註 columns continue the 備註N series). The identity column is never
// split; a second column canonicalizing to it is dropped (empty Column)
// so exactly one unambiguous identity column survives.
//
// The returned slice is positionally aligned with the input.
func NormalizeHeader(header []string) []Column {
	if len(header) == 0 {
		return nil
	}

	columns := make([]Column, len(header))
	seen := make(map[Column]int, len(header))

	for i, raw := range header {
		canonical := Canonicalize(raw)

		if n, dup := seen[canonical]; dup {
			if canonical == ColIdentity {
				columns[i] = ""
				continue
			}
			seen[canonical] = n + 1
			if strings.HasPrefix(string(canonical), "備註") {
				columns[i] = Column(fmt.Sprintf("備註%d", n+1))
			} else {
				columns[i] = Column(fmt.Sprintf("%s(%d)", canonical, n+1))
			}
			continue
		}

		seen[canonical] = 1
		columns[i] = canonical
	}

	return columns
}

// activeColumns filters out positions dropped by normalization.
func activeColumns(columns []Column) []Column {
	active := make([]Column, 0, len(columns))
	for _, c := range columns {
		if c != "" {
			active = append(active, c)
		}
	}
	return active
}

// IsBlank reports whether a source cell value should be treated as
// absent. Spreadsheet exports round-trip missing values as "nan" or
// "None" strings; this is the single emptiness predicate for all of
// them.
func IsBlank(value string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return true
	}
	switch strings.ToLower(v) {
	case "nan", "none", "<nil>":
		return true
	}
	return false
}
