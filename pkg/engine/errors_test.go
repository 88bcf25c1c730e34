package engine

import (
	"errors"
	"fmt"
	"testing"
)

func TestTimeoutError_Message(t *testing.T) {
	err := &TimeoutError{RuleID: "claims", Expected: 3, Observed: 1}
	want := `timed out waiting for rule "claims": expected 3 fulfillments, observed 1`
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestFulfillmentError_Unwrap(t *testing.T) {
	cause := errors.New("marshal body: unsupported type")
	err := &FulfillmentError{RuleID: "plans", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected cause in chain")
	}

	wrapped := fmt.Errorf("dispatch: %w", err)
	var fe *FulfillmentError
	if !errors.As(wrapped, &fe) || fe.RuleID != "plans" {
		t.Errorf("expected *FulfillmentError in chain, got %v", wrapped)
	}
}
