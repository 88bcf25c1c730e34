package report

import (
	"testing"
	"time"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder(t *testing.T) {
	summary := NewBuilder().
		WithPage("https://portal.test/claims").
		WithRules([]RuleActivity{
			{ID: "claims", Pattern: "**/api/claims/**", Method: "POST", Count: 2},
		}).
		WithTraffic(2, 5).
		Build()

	if summary.PageURL != "https://portal.test/claims" {
		t.Errorf("page url = %q", summary.PageURL)
	}
	if len(summary.Rules) != 1 || summary.Rules[0].ID != "claims" {
		t.Errorf("rules = %+v", summary.Rules)
	}
	if summary.Traffic.Fulfilled != 2 || summary.Traffic.PassedThrough != 5 {
		t.Errorf("traffic = %+v", summary.Traffic)
	}
}

func TestRuleActivity_Exhausted(t *testing.T) {
	tests := []struct {
		name     string
		activity RuleActivity
		want     bool
	}{
		{"unlimited budget", RuleActivity{Budget: 0, Count: 100}, false},
		{"under budget", RuleActivity{Budget: 3, Count: 2}, false},
		{"at budget", RuleActivity{Budget: 3, Count: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.activity.Exhausted(); got != tt.want {
				t.Errorf("Exhausted() = %v, want %v", got, tt.want)
			}
		})
	}
}
