// Package csvutil serializes report rows into CSV the way the backup
// export expects: string fields quote-wrapped with internal quotes
// doubled, numbers with two decimals unless they are whole, and a fixed
// column order with human-readable header labels.
package csvutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BOM is the UTF-8 byte-order mark prepended for spreadsheet compatibility.
const BOM = "\uFEFF"

// Column maps a row key to its header label.
type Column struct {
	Key   string
	Label string
}

// Convert serializes rows into CSV text using the given column order.
// Rows are maps from column key to value; missing keys serialize empty.
func Convert(columns []Column, rows []map[string]any) string {
	if len(rows) == 0 {
		return ""
	}

	labels := make([]string, len(columns))
	for i, col := range columns {
		labels[i] = col.Label
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(labels, ","))

	for _, row := range rows {
		fields := make([]string, len(columns))
		for i, col := range columns {
			fields[i] = formatField(row[col.Key])
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	return strings.Join(lines, "\n")
}

// Quote wraps s in double quotes, doubling any internal quotes.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// FormatNumber renders whole values without decimals and everything
// else with exactly two.
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatField(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return Quote(val)
	case time.Time:
		return Quote(val.UTC().Format(time.RFC3339))
	case *time.Time:
		if val == nil {
			return ""
		}
		return Quote(val.UTC().Format(time.RFC3339))
	case float64:
		return FormatNumber(val)
	case float32:
		return FormatNumber(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return Quote(fmt.Sprintf("%v", val))
	}
}
