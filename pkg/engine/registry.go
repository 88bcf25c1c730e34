package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/user/routemock/pkg/ports"
	"github.com/user/routemock/pkg/rules"
)

// ruleEntry is one registered rule with its registration order.
type ruleEntry struct {
	id   string
	rule rules.MockRule
	seq  uint64
}

// Registry owns the set of active rules and their installed interception
// hooks. One hook is installed per distinct URL pattern; rules sharing a
// pattern are dispatched most-recently-registered first. A Registry and
// its counter belong to exactly one browser-context/scenario instance and
// are never shared across concurrent scenarios.
type Registry struct {
	interceptor ports.Interceptor
	counter     *CallCounter
	dispatcher  *Dispatcher
	logger      ports.Logger

	mu      sync.Mutex
	entries map[string]*ruleEntry
	hooks   map[string][]*ruleEntry // pattern -> entries in registration order
	seq     uint64
	done    chan struct{}
	closed  bool
}

// NewRegistry creates a Registry dispatching through the given
// interceptor. Fulfillments are recorded on the counter and, when the
// sink is enabled, in the traffic transcript.
func NewRegistry(interceptor ports.Interceptor, counter *CallCounter, sink ports.TrafficSink, logger ports.Logger) *Registry {
	done := make(chan struct{})
	return &Registry{
		interceptor: interceptor,
		counter:     counter,
		dispatcher:  NewDispatcher(counter, NewSynthesizer(), sink, logger, done),
		logger:      logger.WithComponent("registry"),
		entries:     make(map[string]*ruleEntry),
		hooks:       make(map[string][]*ruleEntry),
		done:        done,
	}
}

// Register installs the rule under the given id. Re-registering an
// existing id replaces the previous rule (last-registration-wins) and
// resets its call record to zero.
func (g *Registry) Register(id string, rule rules.MockRule) error {
	if id == "" {
		return fmt.Errorf("rule id must not be empty")
	}
	if err := rule.Validate(); err != nil {
		return fmt.Errorf("rule %q: %w", id, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return fmt.Errorf("registry is closed")
	}

	if old, ok := g.entries[id]; ok {
		g.logger.Debug("Replacing rule %s", id)
		if err := g.detachLocked(old); err != nil {
			return err
		}
	}

	g.seq++
	entry := &ruleEntry{id: id, rule: rule, seq: g.seq}
	installHook := len(g.hooks[rule.URLPattern]) == 0
	g.entries[id] = entry
	g.hooks[rule.URLPattern] = append(g.hooks[rule.URLPattern], entry)
	g.counter.Reset(id)

	if installHook {
		if err := g.interceptor.RegisterInterception(rule.URLPattern, g.handlerFor(rule.URLPattern)); err != nil {
			g.detachLocked(entry)
			delete(g.entries, id)
			g.counter.Remove(id)
			return fmt.Errorf("install hook for %q: %w", rule.URLPattern, err)
		}
	}

	g.logger.Debug("Registered rule %s for %s", id, rule.URLPattern)
	return nil
}

// Remove uninstalls the rule and deletes its call record. Removing an
// unknown id is a no-op, not an error.
func (g *Registry) Remove(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, ok := g.entries[id]
	if !ok {
		return nil
	}
	// Drop the bookkeeping even when the hook uninstall fails, so the
	// registry never keeps a rule whose hook scope is already gone.
	err := g.detachLocked(entry)
	delete(g.entries, id)
	g.counter.Remove(id)
	g.logger.Debug("Removed rule %s", id)
	return err
}

// Clear removes all rules and uninstalls every hook. The registry stays
// usable for further registrations.
func (g *Registry) Clear() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var firstErr error
	for pattern := range g.hooks {
		if err := g.interceptor.UnregisterInterception(pattern); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("uninstall hook for %q: %w", pattern, err)
		}
	}
	g.entries = make(map[string]*ruleEntry)
	g.hooks = make(map[string][]*ruleEntry)
	g.counter.Clear()
	return firstErr
}

// Close clears the registry and aborts any pending artificial delays.
// A closed registry rejects further registrations.
func (g *Registry) Close() error {
	err := g.Clear()
	g.mu.Lock()
	if !g.closed {
		g.closed = true
		close(g.done)
	}
	g.mu.Unlock()
	return err
}

// Count returns the fulfillment count for the rule id; unknown ids read
// as zero.
func (g *Registry) Count(id string) int {
	return g.counter.Get(id)
}

// Stats returns the totals of fulfilled and passed-through requests.
func (g *Registry) Stats() (fulfilled, passedThrough int) {
	return g.dispatcher.Stats()
}

// RuleInfo describes one registered rule for reporting.
type RuleInfo struct {
	ID      string
	Pattern string
	Method  string
	Budget  int
	Count   int
}

// Rules returns all registered rules in registration order.
func (g *Registry) Rules() []RuleInfo {
	g.mu.Lock()
	entries := make([]*ruleEntry, 0, len(g.entries))
	for _, e := range g.entries {
		entries = append(entries, e)
	}
	g.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]RuleInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, RuleInfo{
			ID:      e.id,
			Pattern: e.rule.URLPattern,
			Method:  e.rule.Method,
			Budget:  e.rule.CallBudget,
			Count:   g.counter.Get(e.id),
		})
	}
	return out
}

// detachLocked removes the entry from its pattern hook, uninstalling the
// hook once no rules remain under that pattern. Caller holds g.mu.
func (g *Registry) detachLocked(entry *ruleEntry) error {
	list := g.hooks[entry.rule.URLPattern]
	for i, e := range list {
		if e == entry {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(g.hooks, entry.rule.URLPattern)
		if err := g.interceptor.UnregisterInterception(entry.rule.URLPattern); err != nil {
			return fmt.Errorf("uninstall hook for %q: %w", entry.rule.URLPattern, err)
		}
		return nil
	}
	g.hooks[entry.rule.URLPattern] = list
	return nil
}

// handlerFor builds the hook body for one pattern. The candidate snapshot
// is taken per request, so in-flight requests never observe a partially
// mutated registry.
func (g *Registry) handlerFor(pattern string) ports.InterceptionHandler {
	return func(route ports.Route) {
		g.dispatcher.Dispatch(route, g.candidates(pattern))
	}
}

// candidates returns the rules for the pattern, newest registration first.
func (g *Registry) candidates(pattern string) []candidate {
	g.mu.Lock()
	defer g.mu.Unlock()

	list := g.hooks[pattern]
	out := make([]candidate, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		out = append(out, candidate{id: list[i].id, rule: list[i].rule})
	}
	return out
}
