// Package rules defines the declarative mock rule model.
package rules

import (
	"fmt"
	"strings"

	"github.com/user/routemock/pkg/ports"
)

// Predicate decides whether a rule applies to an intercepted request.
// Predicates must be pure: they read the request and never mutate it.
type Predicate func(req ports.InterceptedRequest) bool

// MockRule is a declarative match condition plus response specification.
// A rule is owned by the registry it is registered with; callers keep no
// live reference after registration.
type MockRule struct {
	// URLPattern scopes the rule to matching request URLs. Exact string
	// or glob ('*' within a path segment, '**' across segments, '?' one
	// character). Must be non-empty.
	URLPattern string

	// Method restricts the rule to one HTTP method when non-empty.
	// Compared case-insensitively.
	Method string

	// Predicate further restricts matching when non-nil.
	Predicate Predicate

	// Response describes the synthesized reply.
	Response ResponseSpec

	// CallBudget caps the number of fulfillments this rule grants.
	// Zero means unlimited. Once exhausted the rule stays installed but
	// always passes through.
	CallBudget int
}

// Validate checks the rule invariants.
func (r MockRule) Validate() error {
	if r.URLPattern == "" {
		return fmt.Errorf("rule URL pattern must not be empty")
	}
	if r.CallBudget < 0 {
		return fmt.Errorf("rule call budget must not be negative: %d", r.CallBudget)
	}
	if r.Response.StatusCode < 0 || r.Response.StatusCode > 599 {
		return fmt.Errorf("rule status code out of range: %d", r.Response.StatusCode)
	}
	if r.Response.DelayMs < 0 {
		return fmt.Errorf("rule delay must not be negative: %d", r.Response.DelayMs)
	}
	return nil
}

// ResponseSpec describes the response to synthesize for a fulfilled rule.
type ResponseSpec struct {
	// StatusCode for the synthesized response. Zero defaults to 200.
	StatusCode int

	// Headers for the synthesized response. A content type is inferred
	// from the body variant only when the caller supplies none.
	Headers map[string]string

	// Body is the response payload. Nil yields an empty body.
	Body Body

	// DelayMs suspends fulfillment for the given duration, simulating a
	// slow backend. The delay never stalls other in-flight requests.
	DelayMs int
}

// HeaderEquals builds a predicate matching a request header value,
// header name compared case-insensitively.
func HeaderEquals(name, value string) Predicate {
	return func(req ports.InterceptedRequest) bool {
		return req.Header(name) == value
	}
}

// BodyContains builds a predicate matching a substring of the request
// body. An empty substring matches every request, following
// strings.Contains semantics.
func BodyContains(substr string) Predicate {
	return func(req ports.InterceptedRequest) bool {
		return strings.Contains(req.Body, substr)
	}
}
