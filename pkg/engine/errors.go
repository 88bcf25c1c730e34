// Package engine implements rule registration, request dispatch, response
// synthesis, and fulfillment counting for the interception harness.
package engine

import (
	"fmt"
)

// TimeoutError reports that a wait on a rule's fulfillment count exceeded
// its deadline. Observed carries the count at the moment the wait gave up,
// the primary diagnostic for a flaky or under-specified mock.
type TimeoutError struct {
	RuleID   string
	Expected int
	Observed int
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for rule %q: expected %d fulfillments, observed %d",
		e.RuleID, e.Expected, e.Observed)
}

// FulfillmentError reports that response construction failed for a rule.
// It is recovered at the dispatcher boundary: logged, converted to
// pass-through, never surfaced into the browser callback.
type FulfillmentError struct {
	RuleID string
	Err    error
}

// Error implements the error interface.
func (e *FulfillmentError) Error() string {
	return fmt.Sprintf("fulfillment failed for rule %q: %v", e.RuleID, e.Err)
}

// Unwrap returns the underlying error.
func (e *FulfillmentError) Unwrap() error {
	return e.Err
}
