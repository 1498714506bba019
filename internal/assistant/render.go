package assistant

import (
	"fmt"
	"strconv"
	"strings"
)

// Render formats rows as a right-aligned text table with a header line.
// Floats are rounded to two decimals; NULLs render as empty cells.
func Render(columns []string, rows [][]any) string {
	if len(rows) == 0 {
		return "no results"
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, len(columns))
		for i := range columns {
			if i < len(row) {
				line[i] = formatCell(row[i])
			}
		}
		cells = append(cells, line)
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	for _, line := range cells {
		for i, cell := range line {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeLine := func(line []string) {
		for i, cell := range line {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	writeLine(columns)
	for _, line := range cells {
		writeLine(line)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func formatCell(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(value, 'f', 2, 64)
	case float32:
		return strconv.FormatFloat(float64(value), 'f', 2, 64)
	case []byte:
		return string(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// splitColumns parses the model's comma-separated column_names field.
func splitColumns(names string) []string {
	parts := strings.Split(names, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
