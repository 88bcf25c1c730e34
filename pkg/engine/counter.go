package engine

import (
	"sync"
)

// CallCounter records per-rule fulfillment counts. Interception handlers
// run on their own goroutines, so every access is mutex-guarded: no
// increment may be lost even when several requests are in flight.
// A counter has exactly one writer (the dispatcher) and multiple readers
// (waits and test assertions).
type CallCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewCallCounter creates an empty CallCounter.
func NewCallCounter() *CallCounter {
	return &CallCounter{
		counts: make(map[string]int),
	}
}

// Get returns the fulfillment count for the rule id. Unknown ids read as
// zero rather than failing.
func (c *CallCounter) Get(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[id]
}

// Increment adds one fulfillment for the rule id and returns the new count.
func (c *CallCounter) Increment(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[id]++
	return c.counts[id]
}

// Reset sets the count for the rule id back to zero, creating the record
// if it does not exist.
func (c *CallCounter) Reset(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[id] = 0
}

// Remove deletes the record for the rule id.
func (c *CallCounter) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counts, id)
}

// Clear deletes all records.
func (c *CallCounter) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts = make(map[string]int)
}

// Snapshot returns a copy of all current counts.
func (c *CallCounter) Snapshot() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.counts))
	for id, n := range c.counts {
		out[id] = n
	}
	return out
}
