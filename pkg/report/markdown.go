package report

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders a Summary as a markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format converts a Summary to markdown.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	var sb strings.Builder

	sb.WriteString("# Interception Summary\n\n")
	if summary.PageURL != "" {
		fmt.Fprintf(&sb, "Page: %s\n\n", summary.PageURL)
	}
	fmt.Fprintf(&sb, "Generated: %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04:05"))

	sb.WriteString("| Rule | Method | Pattern | Calls | Budget |\n")
	sb.WriteString("|------|--------|---------|-------|--------|\n")
	for _, r := range summary.Rules {
		budget := "-"
		if r.Budget > 0 {
			budget = fmt.Sprintf("%d", r.Budget)
			if r.Exhausted() {
				budget += " (exhausted)"
			}
		}
		method := r.Method
		if method == "" {
			method = "*"
		}
		fmt.Fprintf(&sb, "| %s | %s | `%s` | %d | %s |\n",
			r.ID, method, r.Pattern, r.Count, budget)
	}

	fmt.Fprintf(&sb, "\nTotal fulfilled: %d / passed through: %d\n",
		summary.Traffic.Fulfilled, summary.Traffic.PassedThrough)

	return sb.String()
}

// Ensure MarkdownFormatter implements Formatter
var _ Formatter = (*MarkdownFormatter)(nil)
