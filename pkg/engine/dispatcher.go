package engine

import (
	"strings"
	"sync"
	"time"

	"github.com/user/routemock/pkg/ports"
	"github.com/user/routemock/pkg/rules"
)

// candidate pairs a rule with its registry id for dispatch.
type candidate struct {
	id   string
	rule rules.MockRule
}

// Dispatcher is the hook body invoked per intercepted request. It walks
// the candidate rules for the matched pattern, checks budget, method and
// predicate, and either fulfills with a synthesized response or passes
// the request through untouched. No failure inside dispatch ever
// propagates into the browser's request pipeline; anything unexpected is
// logged and resolved as pass-through so the hosting page keeps working.
type Dispatcher struct {
	counter *CallCounter
	synth   *Synthesizer
	sink    ports.TrafficSink
	logger  ports.Logger
	done    <-chan struct{}

	mu            sync.Mutex
	fulfilled     int
	passedThrough int
}

// NewDispatcher creates a Dispatcher. The done channel aborts pending
// artificial delays when the owning registry closes.
func NewDispatcher(counter *CallCounter, synth *Synthesizer, sink ports.TrafficSink, logger ports.Logger, done <-chan struct{}) *Dispatcher {
	return &Dispatcher{
		counter: counter,
		synth:   synth,
		sink:    sink,
		logger:  logger.WithComponent("dispatch"),
		done:    done,
	}
}

// Dispatch evaluates the request against the candidates, newest
// registration first, and resolves the route exactly once.
func (d *Dispatcher) Dispatch(route ports.Route, candidates []candidate) {
	var req ports.InterceptedRequest
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Recovered panic during dispatch: %v", r)
			d.passThrough(route, req, "internal error")
		}
	}()

	req = route.Request()

	for _, c := range candidates {
		if c.rule.Method != "" && !strings.EqualFold(c.rule.Method, req.Method) {
			continue
		}
		if c.rule.CallBudget > 0 && d.counter.Get(c.id) >= c.rule.CallBudget {
			d.logger.Debug("Rule %s exhausted its call budget of %d", c.id, c.rule.CallBudget)
			continue
		}
		if c.rule.Predicate != nil && !evalPredicate(c.rule.Predicate, req, d.logger) {
			continue
		}
		d.fulfill(route, req, c)
		return
	}

	d.passThrough(route, req, "no matching rule")
}

// fulfill synthesizes the response, counts the fulfillment, applies the
// artificial delay, and resolves the route. Synthesis happens before the
// increment so a failed build never counts as a fulfillment.
func (d *Dispatcher) fulfill(route ports.Route, req ports.InterceptedRequest, c candidate) {
	resp, err := d.synth.Build(c.rule.Response)
	if err != nil {
		ferr := &FulfillmentError{RuleID: c.id, Err: err}
		d.logger.Error("Falling back to pass-through: %s", ferr)
		d.passThrough(route, req, "fulfillment error")
		return
	}

	count := d.counter.Increment(c.id)
	d.logger.Debug("Rule %s fulfilled %s %s (count %d)", c.id, req.Method, req.URL, count)

	if c.rule.Response.DelayMs > 0 {
		if !d.sleep(time.Duration(c.rule.Response.DelayMs) * time.Millisecond) {
			// Registry closed mid-delay; release the request unharmed.
			d.passThrough(route, req, "registry closed")
			return
		}
	}

	if err := route.Fulfill(resp.StatusCode, resp.Headers, resp.Body); err != nil {
		d.logger.Warn("Browser rejected fulfillment for rule %s: %s", c.id, err)
		return
	}

	d.mu.Lock()
	d.fulfilled++
	d.mu.Unlock()

	d.record(ports.TrafficEvent{
		Time:       time.Now(),
		RuleID:     c.id,
		Method:     req.Method,
		URL:        req.URL,
		Fulfilled:  true,
		StatusCode: resp.StatusCode,
		DelayMs:    c.rule.Response.DelayMs,
	})
}

// passThrough forwards the request through its normal path so unmocked
// assets and endpoints keep functioning.
func (d *Dispatcher) passThrough(route ports.Route, req ports.InterceptedRequest, reason string) {
	if err := route.Continue(); err != nil {
		d.logger.Warn("Pass-through failed: %s", err)
	}

	d.mu.Lock()
	d.passedThrough++
	d.mu.Unlock()

	d.record(ports.TrafficEvent{
		Time:      time.Now(),
		Method:    req.Method,
		URL:       req.URL,
		Fulfilled: false,
		Reason:    reason,
	})
}

// sleep blocks the current request's goroutine for the artificial delay.
// Other in-flight requests run on their own goroutines and are never
// stalled. Returns false when the registry closed before the delay ended.
func (d *Dispatcher) sleep(delay time.Duration) bool {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-d.done:
		return false
	}
}

// Stats returns the totals of fulfilled and passed-through requests.
func (d *Dispatcher) Stats() (fulfilled, passedThrough int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fulfilled, d.passedThrough
}

func (d *Dispatcher) record(event ports.TrafficEvent) {
	if !d.sink.Enabled() {
		return
	}
	if err := d.sink.Record(event); err != nil {
		d.logger.Warn("Failed to record traffic event: %s", err)
	}
}

// evalPredicate evaluates a rule predicate, treating a panic as a
// non-match so user-supplied predicates cannot break the page.
func evalPredicate(p rules.Predicate, req ports.InterceptedRequest, logger ports.Logger) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Recovered panic in rule predicate: %v", r)
			ok = false
		}
	}()
	return p(req)
}
