// Package orders holds the in-memory order table loaded from the CSV
// extract and a natural-language query engine over it.
package orders

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Row is a single order record keyed by column name.
type Row map[string]string

// Table is the read-only order dataset.
type Table struct {
	Columns []string
	Rows    []Row
}

// Load reads the order CSV into memory. Duplicate column names are
// renamed with a numeric suffix (status, status.1, ...) so no column
// shadows another.
func Load(filePath string) (*Table, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open orders CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse orders CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("orders CSV is empty")
	}

	columns := dedupeColumns(records[0])

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(columns))
		for i, col := range columns {
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			// Exports from dataframes leave NaN markers behind.
			if strings.EqualFold(value, "nan") {
				value = ""
			}
			row[col] = value
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}, nil
}

func dedupeColumns(header []string) []string {
	seen := make(map[string]int, len(header))
	columns := make([]string, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			columns[i] = fmt.Sprintf("%s.%d", name, n)
		} else {
			seen[name] = 1
			columns[i] = name
		}
	}
	return columns
}

// HasColumn reports whether the table has the given column.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Filter returns up to limit rows whose column value matches the given
// value. Matching is case-insensitive, exact first, substring as a
// fallback. A limit of 0 means no limit.
func (t *Table) Filter(column, value string, limit int) []Row {
	needle := strings.ToLower(strings.TrimSpace(value))
	// An empty needle would substring-match every non-empty cell.
	if needle == "" {
		return nil
	}

	var exact, partial []Row
	for _, row := range t.Rows {
		cell := strings.ToLower(strings.TrimSpace(row[column]))
		if cell == "" {
			continue
		}
		switch {
		case cell == needle:
			exact = append(exact, row)
		case strings.Contains(cell, needle):
			partial = append(partial, row)
		}
	}

	matched := exact
	if len(matched) == 0 {
		matched = partial
	}

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// Render formats rows as readable lines for prompt context.
func (t *Table) Render(rows []Row) string {
	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		parts := make([]string, 0, len(t.Columns))
		for _, col := range t.Columns {
			if v := row[col]; v != "" {
				parts = append(parts, fmt.Sprintf("%s: %s", col, v))
			}
		}
		sb.WriteString(strings.Join(parts, " | "))
	}
	return sb.String()
}
