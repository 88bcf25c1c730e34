package report

import (
	"fmt"
	"strings"
)

// TextFormatter renders a Summary as aligned plain text for the console.
type TextFormatter struct{}

// NewTextFormatter creates a TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format converts a Summary to a plain text table.
func (f *TextFormatter) Format(summary *Summary) string {
	var sb strings.Builder

	sb.WriteString("Interception summary")
	if summary.PageURL != "" {
		fmt.Fprintf(&sb, " for %s", summary.PageURL)
	}
	sb.WriteString("\n\n")

	if len(summary.Rules) == 0 {
		sb.WriteString("  (no rules registered)\n")
	}
	for _, r := range summary.Rules {
		budget := "-"
		if r.Budget > 0 {
			budget = fmt.Sprintf("%d", r.Budget)
		}
		note := ""
		if r.Exhausted() {
			note = " (exhausted)"
		}
		method := r.Method
		if method == "" {
			method = "*"
		}
		fmt.Fprintf(&sb, "  %-24s %-6s %-40s calls %d/%s%s\n",
			r.ID, method, r.Pattern, r.Count, budget, note)
	}

	fmt.Fprintf(&sb, "\n  fulfilled: %d  passed through: %d\n",
		summary.Traffic.Fulfilled, summary.Traffic.PassedThrough)

	return sb.String()
}

// Ensure TextFormatter implements Formatter
var _ Formatter = (*TextFormatter)(nil)
