package report

import (
	"fmt"
	"strings"
)

// markdownTable renders a GitHub flavored markdown table.
type markdownTable struct {
	Headers []string
	Rows    [][]string
}

func (t *markdownTable) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func (t *markdownTable) String() string {
	var sb strings.Builder
	sb.WriteString("| " + strings.Join(t.Headers, " | ") + " |\n")
	seps := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		seps[i] = strings.Repeat("-", max(len(h), 3))
	}
	sb.WriteString("|" + strings.Join(seps, "|") + "|\n")
	for _, row := range t.Rows {
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return sb.String()
}

// consoleTable renders the same data with fixed width columns.
func (t *markdownTable) Console(widths []int) string {
	var sb strings.Builder
	line := func(cells []string) {
		sb.WriteString("|")
		for i, cell := range cells {
			w := 10
			if i < len(widths) {
				w = widths[i]
			}
			if i == 0 {
				fmt.Fprintf(&sb, " %-*s |", w, cell)
			} else {
				fmt.Fprintf(&sb, " %*s |", w, cell)
			}
		}
		sb.WriteString("\n")
	}
	line(t.Headers)
	sb.WriteString("|")
	for i := range t.Headers {
		w := 10
		if i < len(widths) {
			w = widths[i]
		}
		sb.WriteString(strings.Repeat("-", w+2) + "|")
	}
	sb.WriteString("\n")
	for _, row := range t.Rows {
		line(row)
	}
	return sb.String()
}

func fmtMs(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func fmtPercent(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

func stationHeaders(counts []float64) []string {
	res := make([]string, len(counts))
	for i, n := range counts {
		res[i] = fmt.Sprintf("nWifi=%d", int(n))
	}
	return res
}

func rule(width int) string {
	return strings.Repeat("=", width)
}

// banner is a title framed by rules, the console summary section header.
func banner(width int, title string) string {
	return rule(width) + "\n" + title + "\n" + rule(width) + "\n"
}
