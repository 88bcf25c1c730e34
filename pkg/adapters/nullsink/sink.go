// Package nullsink provides a no-op traffic sink implementation.
package nullsink

import (
	"github.com/user/routemock/pkg/ports"
)

// Sink is a no-op implementation of ports.TrafficSink.
// It discards all traffic events.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// Record does nothing.
func (s *Sink) Record(event ports.TrafficEvent) error {
	return nil
}

// Ensure Sink implements ports.TrafficSink
var _ ports.TrafficSink = (*Sink)(nil)
