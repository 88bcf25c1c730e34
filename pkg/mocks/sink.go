package mocks

import (
	"sync"

	"github.com/user/routemock/pkg/ports"
)

// Sink is a mock implementation of ports.TrafficSink that collects
// recorded events in memory.
type Sink struct {
	EnabledFunc func() bool
	RecordFunc  func(event ports.TrafficEvent) error

	mu     sync.Mutex
	events []ports.TrafficEvent
}

func (m *Sink) Enabled() bool {
	if m.EnabledFunc != nil {
		return m.EnabledFunc()
	}
	return true
}

func (m *Sink) Record(event ports.TrafficEvent) error {
	if m.RecordFunc != nil {
		if err := m.RecordFunc(event); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
	return nil
}

// Events returns a snapshot of the recorded events in order.
func (m *Sink) Events() []ports.TrafficEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.TrafficEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Ensure Sink implements ports.TrafficSink
var _ ports.TrafficSink = (*Sink)(nil)
