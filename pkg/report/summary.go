// Package report provides summary generation for interception sessions.
package report

import "time"

// Summary contains all data collected during one interception session.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Page the session ran against (empty for headless/library use).
	PageURL string

	// Per-rule activity in registration order.
	Rules []RuleActivity

	// Traffic totals across all hooks.
	Traffic TrafficTotals
}

// RuleActivity reports how one rule behaved during the session.
type RuleActivity struct {
	ID      string
	Pattern string
	Method  string
	Budget  int // 0 = unlimited
	Count   int
}

// Exhausted reports whether the rule reached its call budget.
func (a RuleActivity) Exhausted() bool {
	return a.Budget > 0 && a.Count >= a.Budget
}

// TrafficTotals contains aggregate interception counts.
type TrafficTotals struct {
	Fulfilled     int
	PassedThrough int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithPage sets the page URL the session ran against.
func (b *Builder) WithPage(url string) *Builder {
	b.summary.PageURL = url
	return b
}

// WithRules sets the per-rule activity.
func (b *Builder) WithRules(rules []RuleActivity) *Builder {
	b.summary.Rules = rules
	return b
}

// WithTraffic sets the aggregate traffic totals.
func (b *Builder) WithTraffic(fulfilled, passedThrough int) *Builder {
	b.summary.Traffic = TrafficTotals{
		Fulfilled:     fulfilled,
		PassedThrough: passedThrough,
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
