package rules

import (
	"net/http"
	"path"
)

// Preset factories compose a MockRule for a named business scenario.
// Each factory is stateless: two invocations with different arguments
// yield independent rules registrable under distinct ids. The returned id
// is the canonical registry id for the scenario; callers may register
// under a different id when running several variants side by side.

// ActionHeader is the request header carrying the protocol action name
// for header-keyed dispatch on a shared endpoint.
const ActionHeader = "SOAPAction"

// Eligibility mocks the eligibility verification endpoint.
func Eligibility(memberID string, eligible bool) (string, MockRule) {
	return "eligibility", MockRule{
		URLPattern: "**/api/eligibility/verify",
		Method:     http.MethodPost,
		Response: ResponseSpec{
			StatusCode: http.StatusOK,
			Body:       EligibilityBody{MemberID: memberID, Eligible: eligible},
		},
	}
}

// Claims mocks claim submission with the given resulting status.
func Claims(claimID, status string) (string, MockRule) {
	return "claims", MockRule{
		URLPattern: "**/api/claims/**",
		Method:     http.MethodPost,
		Response: ResponseSpec{
			StatusCode: http.StatusOK,
			Body:       ClaimBody{ClaimID: claimID, Status: status},
		},
	}
}

// Payment mocks the payment endpoint. Failed payments respond 400 with
// code PAYMENT_FAILED.
func Payment(paymentID string, success bool) (string, MockRule) {
	status := http.StatusOK
	if !success {
		status = http.StatusBadRequest
	}
	return "payment", MockRule{
		URLPattern: "**/api/payments/**",
		Method:     http.MethodPost,
		Response: ResponseSpec{
			StatusCode: status,
			Body:       PaymentBody{PaymentID: paymentID, Success: success},
		},
	}
}

// Auth mocks the login endpoint. Successful logins carry the given role
// and a token generated per fulfillment; failures respond 401.
func Auth(success bool, role string) (string, MockRule) {
	status := http.StatusOK
	if !success {
		status = http.StatusUnauthorized
	}
	return "auth", MockRule{
		URLPattern: "**/api/auth/login",
		Method:     http.MethodPost,
		Response: ResponseSpec{
			StatusCode: status,
			Body:       AuthBody{Success: success, Role: role},
		},
	}
}

// ProviderSearch mocks the provider directory search.
func ProviderSearch(providers []Provider) (string, MockRule) {
	return "provider-search", MockRule{
		URLPattern: "**/api/providers/search*",
		Method:     http.MethodGet,
		Response: ResponseSpec{
			StatusCode: http.StatusOK,
			Body:       ProviderSearchBody{Providers: providers},
		},
	}
}

// PlanInfo mocks the plan listing endpoint.
func PlanInfo(plans []Plan) (string, MockRule) {
	return "plan-info", MockRule{
		URLPattern: "**/api/plans*",
		Method:     http.MethodGet,
		Response: ResponseSpec{
			StatusCode: http.StatusOK,
			Body:       PlanListBody{Plans: plans},
		},
	}
}

// Error injects a generic error for the given path pattern.
func Error(pathPattern string, code int, message string) (string, MockRule) {
	return "error:" + pathPattern, MockRule{
		URLPattern: pathPattern,
		Response: ResponseSpec{
			StatusCode: code,
			Body:       ErrorBody{Code: code, Message: message},
		},
	}
}

// Slow injects an artificial delay for the given path pattern. The
// response itself is an empty JSON object.
func Slow(pathPattern string, delayMs int) (string, MockRule) {
	return "slow:" + pathPattern, MockRule{
		URLPattern: pathPattern,
		Response: ResponseSpec{
			StatusCode: http.StatusOK,
			Body:       RawBody{ContentType: "application/json", Data: "{}"},
			DelayMs:    delayMs,
		},
	}
}

// ProtocolAction mocks one action of a SOAP-like protocol where several
// actions share a single endpoint, keyed by the action header. Requests
// carrying a different action name pass through to other rules or the
// real backend.
func ProtocolAction(endpoint, actionName, rawBody string) (string, MockRule) {
	return "action:" + actionName, MockRule{
		URLPattern: endpoint,
		Method:     http.MethodPost,
		Predicate:  HeaderEquals(ActionHeader, actionName),
		Response: ResponseSpec{
			StatusCode: http.StatusOK,
			Body:       ProtocolBody{Action: actionName, Payload: rawBody},
		},
	}
}

// FileUpload mocks a file upload endpoint. Failures respond 500 with
// code UPLOAD_FAILED.
func FileUpload(uploadPath string, success bool) (string, MockRule) {
	status := http.StatusOK
	if !success {
		status = http.StatusInternalServerError
	}
	return "upload:" + uploadPath, MockRule{
		URLPattern: uploadPath,
		Method:     http.MethodPost,
		Response: ResponseSpec{
			StatusCode: status,
			Body:       UploadBody{FileName: path.Base(uploadPath), Success: success},
		},
	}
}
