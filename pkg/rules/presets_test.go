package rules

import (
	"net/http"
	"testing"

	"github.com/user/routemock/pkg/ports"
)

func TestPresets_IDsAndMatching(t *testing.T) {
	tests := []struct {
		name       string
		make       func() (string, MockRule)
		wantID     string
		wantMethod string
		wantStatus int
		matchURL   string
	}{
		{
			name: "eligibility",
			make: func() (string, MockRule) { return Eligibility("M123", true) },
			wantID: "eligibility", wantMethod: http.MethodPost, wantStatus: http.StatusOK,
			matchURL: "https://portal.test/api/eligibility/verify",
		},
		{
			name: "claims",
			make: func() (string, MockRule) { return Claims("C1", "ACCEPTED") },
			wantID: "claims", wantMethod: http.MethodPost, wantStatus: http.StatusOK,
			matchURL: "https://portal.test/api/claims/submit",
		},
		{
			name: "payment failure",
			make: func() (string, MockRule) { return Payment("P1", false) },
			wantID: "payment", wantMethod: http.MethodPost, wantStatus: http.StatusBadRequest,
			matchURL: "https://portal.test/api/payments/charge",
		},
		{
			name: "auth failure",
			make: func() (string, MockRule) { return Auth(false, "") },
			wantID: "auth", wantMethod: http.MethodPost, wantStatus: http.StatusUnauthorized,
			matchURL: "https://portal.test/api/auth/login",
		},
		{
			name: "provider search",
			make: func() (string, MockRule) { return ProviderSearch(nil) },
			wantID: "provider-search", wantMethod: http.MethodGet, wantStatus: http.StatusOK,
			matchURL: "https://portal.test/api/providers/search?specialty=cardiology",
		},
		{
			name: "plan info",
			make: func() (string, MockRule) { return PlanInfo(nil) },
			wantID: "plan-info", wantMethod: http.MethodGet, wantStatus: http.StatusOK,
			matchURL: "https://portal.test/api/plans",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, rule := tt.make()
			if id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
			if rule.Method != tt.wantMethod {
				t.Errorf("method = %q, want %q", rule.Method, tt.wantMethod)
			}
			if rule.Response.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", rule.Response.StatusCode, tt.wantStatus)
			}
			if !MatchURL(rule.URLPattern, tt.matchURL) {
				t.Errorf("pattern %q should match %q", rule.URLPattern, tt.matchURL)
			}
			if err := rule.Validate(); err != nil {
				t.Errorf("preset rule should validate: %v", err)
			}
		})
	}
}

func TestError_UsesPatternInID(t *testing.T) {
	id, rule := Error("**/api/claims/**", http.StatusServiceUnavailable, "maintenance")
	if id != "error:**/api/claims/**" {
		t.Errorf("id = %q", id)
	}
	if rule.Response.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rule.Response.StatusCode)
	}
	body, ok := rule.Response.Body.(ErrorBody)
	if !ok {
		t.Fatalf("body is %T, want ErrorBody", rule.Response.Body)
	}
	if body.Code != http.StatusServiceUnavailable || body.Message != "maintenance" {
		t.Errorf("body = %+v", body)
	}
}

func TestSlow_CarriesDelay(t *testing.T) {
	id, rule := Slow("**/api/plans*", 1500)
	if id != "slow:**/api/plans*" {
		t.Errorf("id = %q", id)
	}
	if rule.Response.DelayMs != 1500 {
		t.Errorf("delay = %d, want 1500", rule.Response.DelayMs)
	}
	if rule.Response.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", rule.Response.StatusCode)
	}
}

func TestProtocolAction_KeysOnHeader(t *testing.T) {
	_, rule := ProtocolAction("https://portal.test/soap", "GetQuote", "<quote/>")

	match := ports.InterceptedRequest{
		Headers: map[string]string{ActionHeader: "GetQuote"},
	}
	if !rule.Predicate(match) {
		t.Error("expected predicate to match the action header")
	}

	other := ports.InterceptedRequest{
		Headers: map[string]string{ActionHeader: "SubmitOrder"},
	}
	if rule.Predicate(other) {
		t.Error("expected predicate to reject a different action")
	}
}

func TestFileUpload_NamesFile(t *testing.T) {
	id, rule := FileUpload("/api/documents/upload", true)
	if id != "upload:/api/documents/upload" {
		t.Errorf("id = %q", id)
	}
	body, ok := rule.Response.Body.(UploadBody)
	if !ok {
		t.Fatalf("body is %T, want UploadBody", rule.Response.Body)
	}
	if body.FileName != "upload" {
		t.Errorf("file name = %q, want %q", body.FileName, "upload")
	}

	_, failed := FileUpload("/api/documents/upload", false)
	if failed.Response.StatusCode != http.StatusInternalServerError {
		t.Errorf("failure status = %d, want 500", failed.Response.StatusCode)
	}
}
