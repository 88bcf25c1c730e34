package engine

import (
	"sync"
	"testing"
)

func TestCallCounter_Basics(t *testing.T) {
	c := NewCallCounter()

	if got := c.Get("unknown"); got != 0 {
		t.Errorf("unknown id should read 0, got %d", got)
	}

	if got := c.Increment("eligibility"); got != 1 {
		t.Errorf("first increment = %d, want 1", got)
	}
	if got := c.Increment("eligibility"); got != 2 {
		t.Errorf("second increment = %d, want 2", got)
	}
	if got := c.Get("eligibility"); got != 2 {
		t.Errorf("Get = %d, want 2", got)
	}

	c.Reset("eligibility")
	if got := c.Get("eligibility"); got != 0 {
		t.Errorf("after Reset = %d, want 0", got)
	}

	c.Increment("claims")
	c.Remove("claims")
	if got := c.Get("claims"); got != 0 {
		t.Errorf("after Remove = %d, want 0", got)
	}
}

func TestCallCounter_Clear(t *testing.T) {
	c := NewCallCounter()
	c.Increment("a")
	c.Increment("b")
	c.Clear()

	if snap := c.Snapshot(); len(snap) != 0 {
		t.Errorf("after Clear snapshot should be empty, got %v", snap)
	}
}

func TestCallCounter_Snapshot(t *testing.T) {
	c := NewCallCounter()
	c.Increment("a")
	c.Increment("a")
	c.Increment("b")

	snap := c.Snapshot()
	if snap["a"] != 2 || snap["b"] != 1 {
		t.Errorf("snapshot = %v, want a=2 b=1", snap)
	}

	// Mutating the snapshot must not leak back into the counter.
	snap["a"] = 100
	if got := c.Get("a"); got != 2 {
		t.Errorf("counter changed via snapshot: %d", got)
	}
}

func TestCallCounter_ConcurrentIncrements(t *testing.T) {
	c := NewCallCounter()

	const workers = 20
	const perWorker = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				c.Increment("shared")
			}
		}()
	}
	wg.Wait()

	if got := c.Get("shared"); got != workers*perWorker {
		t.Errorf("lost increments: got %d, want %d", got, workers*perWorker)
	}
}
