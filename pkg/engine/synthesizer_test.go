package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/user/routemock/pkg/rules"
)

// fixedSynthesizer pins generated ids and timestamps so body assertions
// are deterministic.
func fixedSynthesizer() *Synthesizer {
	return &Synthesizer{
		now:   func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC) },
		newID: func() string { return "fixed-id" },
	}
}

func decodeBody(t *testing.T, resp Response) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(resp.Body, &m); err != nil {
		t.Fatalf("body is not JSON: %v (%s)", err, resp.Body)
	}
	return m
}

func TestSynthesizer_Defaults(t *testing.T) {
	s := fixedSynthesizer()

	resp, err := s.Build(rules.ResponseSpec{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("zero status should default to 200, got %d", resp.StatusCode)
	}
	if len(resp.Body) != 0 {
		t.Errorf("nil body should render empty, got %q", resp.Body)
	}
	if _, ok := resp.Headers["Content-Type"]; ok {
		t.Error("no content type should be inferred for an empty body")
	}
}

func TestSynthesizer_RawBody(t *testing.T) {
	s := fixedSynthesizer()

	resp, err := s.Build(rules.ResponseSpec{
		Body: rules.RawBody{Data: "hello"},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if string(resp.Body) != "hello" {
		t.Errorf("body = %q", resp.Body)
	}
	if resp.Headers["Content-Type"] != "text/plain" {
		t.Errorf("content type = %q, want text/plain", resp.Headers["Content-Type"])
	}
}

func TestSynthesizer_ExplicitContentTypeWins(t *testing.T) {
	s := fixedSynthesizer()

	resp, err := s.Build(rules.ResponseSpec{
		Headers: map[string]string{"content-type": "application/xml"},
		Body:    rules.RawBody{ContentType: "text/html", Data: "<p/>"},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, ok := resp.Headers["Content-Type"]; ok {
		t.Error("inferred Content-Type must not override the caller's header")
	}
	if resp.Headers["content-type"] != "application/xml" {
		t.Errorf("caller header lost: %v", resp.Headers)
	}
}

func TestSynthesizer_JSONBody(t *testing.T) {
	s := fixedSynthesizer()

	resp, err := s.Build(rules.ResponseSpec{
		Body: rules.JSONBody{Value: map[string]int{"n": 42}},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if string(resp.Body) != `{"n":42}` {
		t.Errorf("body = %s", resp.Body)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("content type = %q", resp.Headers["Content-Type"])
	}
}

func TestSynthesizer_EligibilityBody(t *testing.T) {
	s := fixedSynthesizer()

	resp, err := s.Build(rules.ResponseSpec{
		Body: rules.EligibilityBody{MemberID: "M123", Eligible: true},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	m := decodeBody(t, resp)
	if m["memberId"] != "M123" || m["isEligible"] != true {
		t.Errorf("body = %v", m)
	}
	if m["transactionId"] != "fixed-id" {
		t.Errorf("transactionId = %v", m["transactionId"])
	}
	if m["checkedAt"] != "2026-03-14T09:26:53Z" {
		t.Errorf("checkedAt = %v", m["checkedAt"])
	}
}

func TestSynthesizer_PaymentBody(t *testing.T) {
	s := fixedSynthesizer()

	resp, err := s.Build(rules.ResponseSpec{
		Body: rules.PaymentBody{PaymentID: "P1", Success: false},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	m := decodeBody(t, resp)
	if m["success"] != false || m["code"] != "PAYMENT_FAILED" {
		t.Errorf("failure body = %v", m)
	}
	if _, ok := m["confirmationId"]; ok {
		t.Error("failed payment must not carry a confirmation id")
	}

	resp, err = s.Build(rules.ResponseSpec{
		Body: rules.PaymentBody{PaymentID: "P1", Success: true},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	m = decodeBody(t, resp)
	if m["success"] != true || m["confirmationId"] != "fixed-id" {
		t.Errorf("success body = %v", m)
	}
}

func TestSynthesizer_AuthBody(t *testing.T) {
	s := fixedSynthesizer()

	resp, err := s.Build(rules.ResponseSpec{
		Body: rules.AuthBody{Success: true, Role: "admin"},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	m := decodeBody(t, resp)
	if m["role"] != "admin" || m["token"] != "fixed-id" {
		t.Errorf("auth body = %v", m)
	}

	resp, err = s.Build(rules.ResponseSpec{
		Body: rules.AuthBody{Success: false},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	m = decodeBody(t, resp)
	if m["code"] != "AUTH_FAILED" {
		t.Errorf("failure body = %v", m)
	}
	if _, ok := m["token"]; ok {
		t.Error("failed login must not carry a token")
	}
}

func TestSynthesizer_ProviderSearchBody(t *testing.T) {
	s := fixedSynthesizer()

	resp, err := s.Build(rules.ResponseSpec{
		Body: rules.ProviderSearchBody{Providers: []rules.Provider{
			{ID: "p1", Name: "Dr. Sato", Specialty: "cardiology"},
		}},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	m := decodeBody(t, resp)
	if m["total"] != float64(1) {
		t.Errorf("total = %v", m["total"])
	}

	// Nil slice renders as an empty array, not null.
	resp, err = s.Build(rules.ResponseSpec{Body: rules.ProviderSearchBody{}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	m = decodeBody(t, resp)
	if providers, ok := m["providers"].([]interface{}); !ok || len(providers) != 0 {
		t.Errorf("providers = %v", m["providers"])
	}
}

func TestSynthesizer_ErrorBody(t *testing.T) {
	s := fixedSynthesizer()

	resp, err := s.Build(rules.ResponseSpec{
		StatusCode: 503,
		Body:       rules.ErrorBody{Code: 503, Message: "maintenance"},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if resp.StatusCode != 503 {
		t.Errorf("status = %d", resp.StatusCode)
	}
	m := decodeBody(t, resp)
	inner, ok := m["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("error envelope missing: %v", m)
	}
	if inner["code"] != float64(503) || inner["message"] != "maintenance" {
		t.Errorf("error body = %v", inner)
	}
}

func TestSynthesizer_ProtocolBody(t *testing.T) {
	s := fixedSynthesizer()

	resp, err := s.Build(rules.ResponseSpec{
		Body: rules.ProtocolBody{Action: "GetQuote", Payload: "<quote/>"},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if string(resp.Body) != "<quote/>" {
		t.Errorf("body = %q", resp.Body)
	}
	if resp.Headers["Content-Type"] != "text/xml" {
		t.Errorf("content type = %q", resp.Headers["Content-Type"])
	}
}

func TestSynthesizer_TimeVaryingFieldsDiffer(t *testing.T) {
	ids := []string{"id-1", "id-2"}
	s := &Synthesizer{
		now: time.Now,
		newID: func() string {
			id := ids[0]
			ids = ids[1:]
			return id
		},
	}

	spec := rules.ResponseSpec{Body: rules.ClaimBody{ClaimID: "C1", Status: "ACCEPTED"}}

	first, err := s.Build(spec)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	second, err := s.Build(spec)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	m1 := decodeBody(t, first)
	m2 := decodeBody(t, second)
	if m1["confirmationNumber"] == m2["confirmationNumber"] {
		t.Error("confirmation numbers should vary across fulfillments")
	}
	if m1["claimId"] != m2["claimId"] || m1["status"] != m2["status"] {
		t.Error("declared fields should stay identical across fulfillments")
	}
}
