package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/blogem/record-engine/models"
)

const reportWidth = 80

// Export renders a report as a human-readable text document
func Export(schema *models.Schema, title string, report *models.Report) string {
	var b strings.Builder
	rule := strings.Repeat("═", reportWidth)

	inner := reportWidth - 2
	heading := strings.Repeat(" ", 13) + strings.ToUpper(title)
	if pad := inner - utf8.RuneCountInString(heading); pad > 0 {
		heading += strings.Repeat(" ", pad)
	}
	b.WriteString("╔" + strings.Repeat("═", inner) + "╗\n")
	b.WriteString("║" + heading + "║\n")
	b.WriteString("╚" + strings.Repeat("═", inner) + "╝\n")
	b.WriteString("\n")

	fmt.Fprintf(&b, "Generated: %s\n", report.GeneratedAt.Format(models.AuditTimestampLayout))
	fmt.Fprintf(&b, "Total Records: %d\n", len(report.Rows))
	b.WriteString(rule + "\n\n")

	for i, row := range report.Rows {
		fmt.Fprintf(&b, "┌─ Record #%d %s\n", i+1, strings.Repeat("─", 67))
		for _, f := range schema.Fields {
			value := models.FormatValue(row.Values[f.Column])
			if row.Values[f.Column] == nil {
				value = "N/A"
			}
			fmt.Fprintf(&b, "│ %-20s: %s\n", f.Label, value)
		}
		b.WriteString("└" + strings.Repeat("─", reportWidth-1) + "\n\n")
	}

	column := schema.NumericFieldForCalc
	agg := report.Aggregate
	b.WriteString(rule + "\n")
	b.WriteString("STATISTICS\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total Records      : %d\n", len(report.Rows))
	fmt.Fprintf(&b, "Total %-12s: %s\n", column, formatAmount(agg.Total))
	fmt.Fprintf(&b, "Average %-11s: %.2f\n", column, agg.Average)
	fmt.Fprintf(&b, "Max %-15s: %s\n", column, formatAmount(agg.Max))
	fmt.Fprintf(&b, "Min %-15s: %s\n", column, formatAmount(agg.Min))
	b.WriteString(rule + "\n\n")
	b.WriteString("End of Report\n")

	return b.String()
}

// formatAmount renders a value with thousands separators and two decimals
func formatAmount(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}
