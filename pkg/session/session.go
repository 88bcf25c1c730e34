// Package session provides the high-level API test code uses to mock
// network traffic in one browser context.
package session

import (
	"context"
	"time"

	"github.com/user/routemock/pkg/engine"
	"github.com/user/routemock/pkg/ports"
	"github.com/user/routemock/pkg/report"
	"github.com/user/routemock/pkg/rules"
)

// Session ties a rule registry to one browser context. Each scenario
// constructs its own Session; sessions are never shared across concurrent
// scenarios and hold no process-wide state.
type Session struct {
	registry *engine.Registry
	counter  *engine.CallCounter
	waiter   *engine.Waiter
	logger   ports.Logger
	pageURL  string
}

// New creates a Session dispatching through the given interceptor.
// The sink receives a transcript of every interception decision when
// enabled; pass a null sink to disable transcripts.
func New(interceptor ports.Interceptor, sink ports.TrafficSink, logger ports.Logger) *Session {
	counter := engine.NewCallCounter()
	return &Session{
		registry: engine.NewRegistry(interceptor, counter, sink, logger),
		counter:  counter,
		waiter:   engine.NewWaiter(counter),
		logger:   logger.WithComponent("session"),
	}
}

// SetPollInterval overrides the counter poll interval used by
// WaitForCount. Useful for tests that want tighter timing.
func (s *Session) SetPollInterval(interval time.Duration) {
	s.waiter = engine.NewWaiterWithInterval(s.counter, interval)
}

// SetPage records the page URL for reporting purposes.
func (s *Session) SetPage(url string) {
	s.pageURL = url
}

// AddRule registers a rule under the given id. Re-registering an id
// replaces the previous rule and resets its call record.
func (s *Session) AddRule(id string, rule rules.MockRule) error {
	return s.registry.Register(id, rule)
}

// RemoveRule uninstalls the rule; unknown ids are a no-op.
func (s *Session) RemoveRule(id string) error {
	return s.registry.Remove(id)
}

// ClearAll removes every rule so all previously mocked URLs pass through.
func (s *Session) ClearAll() error {
	return s.registry.Clear()
}

// Close clears all rules and releases the session. Pending artificial
// delays are aborted so no timer outlives the scenario.
func (s *Session) Close() error {
	return s.registry.Close()
}

// GetCount returns the fulfillment count for the rule id; unknown ids
// read as zero.
func (s *Session) GetCount(id string) int {
	return s.registry.Count(id)
}

// WaitForCount blocks until the rule has been fulfilled expected times or
// the timeout elapses, returning *engine.TimeoutError on timeout. The
// wait stops immediately when ctx is canceled.
func (s *Session) WaitForCount(ctx context.Context, id string, expected int, timeout time.Duration) error {
	return s.waiter.WaitForCount(ctx, id, expected, timeout)
}

// Summary builds a report of rule activity for this session.
func (s *Session) Summary() *report.Summary {
	infos := s.registry.Rules()
	activity := make([]report.RuleActivity, 0, len(infos))
	for _, info := range infos {
		activity = append(activity, report.RuleActivity{
			ID:      info.ID,
			Pattern: info.Pattern,
			Method:  info.Method,
			Budget:  info.Budget,
			Count:   info.Count,
		})
	}
	fulfilled, passedThrough := s.registry.Stats()
	return report.NewBuilder().
		WithPage(s.pageURL).
		WithRules(activity).
		WithTraffic(fulfilled, passedThrough).
		Build()
}

// Preset installers. Each composes a ready-made rule for a common
// scenario, registers it under its canonical id, and returns that id.

// MockEligibility installs the eligibility verification mock.
func (s *Session) MockEligibility(memberID string, eligible bool) (string, error) {
	return s.install(rules.Eligibility(memberID, eligible))
}

// MockClaims installs the claim submission mock.
func (s *Session) MockClaims(claimID, status string) (string, error) {
	return s.install(rules.Claims(claimID, status))
}

// MockPayment installs the payment mock.
func (s *Session) MockPayment(paymentID string, success bool) (string, error) {
	return s.install(rules.Payment(paymentID, success))
}

// MockAuth installs the authentication mock.
func (s *Session) MockAuth(success bool, role string) (string, error) {
	return s.install(rules.Auth(success, role))
}

// MockProviderSearch installs the provider search mock.
func (s *Session) MockProviderSearch(providers []rules.Provider) (string, error) {
	return s.install(rules.ProviderSearch(providers))
}

// MockPlanInfo installs the plan listing mock.
func (s *Session) MockPlanInfo(plans []rules.Plan) (string, error) {
	return s.install(rules.PlanInfo(plans))
}

// MockError installs a generic error injection for the path pattern.
func (s *Session) MockError(pathPattern string, code int, message string) (string, error) {
	return s.install(rules.Error(pathPattern, code, message))
}

// MockSlow installs an artificial delay for the path pattern.
func (s *Session) MockSlow(pathPattern string, delayMs int) (string, error) {
	return s.install(rules.Slow(pathPattern, delayMs))
}

// MockProtocolAction installs a header-keyed protocol action mock on a
// shared endpoint.
func (s *Session) MockProtocolAction(endpoint, actionName, rawBody string) (string, error) {
	return s.install(rules.ProtocolAction(endpoint, actionName, rawBody))
}

// MockFileUpload installs a file upload mock.
func (s *Session) MockFileUpload(path string, success bool) (string, error) {
	return s.install(rules.FileUpload(path, success))
}

func (s *Session) install(id string, rule rules.MockRule) (string, error) {
	if err := s.registry.Register(id, rule); err != nil {
		return "", err
	}
	return id, nil
}
