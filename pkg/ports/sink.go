package ports

import (
	"time"
)

// TrafficEvent describes one interception decision for diagnostics.
type TrafficEvent struct {
	Time       time.Time `json:"time"`
	RuleID     string    `json:"rule_id,omitempty"`
	Method     string    `json:"method"`
	URL        string    `json:"url"`
	Fulfilled  bool      `json:"fulfilled"`
	StatusCode int       `json:"status_code,omitempty"`
	DelayMs    int       `json:"delay_ms,omitempty"`
	Reason     string    `json:"reason,omitempty"` // why a pass-through happened
}

// TrafficSink abstracts transcript output for interception decisions.
// It allows recording every fulfillment and pass-through for debugging.
type TrafficSink interface {
	// Enabled returns true if transcript output is enabled.
	Enabled() bool

	// Record appends one traffic event to the transcript.
	Record(event TrafficEvent) error
}
