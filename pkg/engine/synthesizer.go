package engine

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/routemock/pkg/rules"
)

// Response is a fully synthesized reply ready to hand to the browser.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// Synthesizer builds concrete responses from declarative specs. Bodies
// are rendered at fulfillment time, not at registration time, so fields
// like transaction ids and timestamps naturally vary across repeated
// fulfillments while all other fields stay byte-identical.
type Synthesizer struct {
	now   func() time.Time
	newID func() string
}

// NewSynthesizer creates a Synthesizer using wall-clock time and random
// identifiers.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Build renders the spec into a Response. The status defaults to 200 and
// a content type is inferred from the body variant only when the spec
// supplies none.
func (s *Synthesizer) Build(spec rules.ResponseSpec) (Response, error) {
	status := spec.StatusCode
	if status == 0 {
		status = 200
	}

	headers := make(map[string]string, len(spec.Headers)+1)
	for k, v := range spec.Headers {
		headers[k] = v
	}

	body, contentType, err := s.renderBody(spec.Body)
	if err != nil {
		return Response{}, err
	}
	if contentType != "" && !hasContentType(headers) {
		headers["Content-Type"] = contentType
	}

	return Response{
		StatusCode: status,
		Headers:    headers,
		Body:       body,
	}, nil
}

// renderBody serializes one body variant to its wire form and reports the
// content type to infer. The switch is exhaustive over rules.Body.
func (s *Synthesizer) renderBody(body rules.Body) ([]byte, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil

	case rules.RawBody:
		ct := b.ContentType
		if ct == "" {
			ct = "text/plain"
		}
		return []byte(b.Data), ct, nil

	case rules.JSONBody:
		data, err := json.Marshal(b.Value)
		if err != nil {
			return nil, "", fmt.Errorf("marshal body: %w", err)
		}
		return data, "application/json", nil

	case rules.EligibilityBody:
		return s.marshalJSON(map[string]interface{}{
			"memberId":      b.MemberID,
			"isEligible":    b.Eligible,
			"transactionId": s.newID(),
			"checkedAt":     s.timestamp(),
		})

	case rules.ClaimBody:
		return s.marshalJSON(map[string]interface{}{
			"claimId":            b.ClaimID,
			"status":             b.Status,
			"confirmationNumber": s.newID(),
			"submittedAt":        s.timestamp(),
		})

	case rules.PaymentBody:
		if !b.Success {
			return s.marshalJSON(map[string]interface{}{
				"paymentId": b.PaymentID,
				"success":   false,
				"code":      "PAYMENT_FAILED",
			})
		}
		return s.marshalJSON(map[string]interface{}{
			"paymentId":      b.PaymentID,
			"success":        true,
			"confirmationId": s.newID(),
			"processedAt":    s.timestamp(),
		})

	case rules.AuthBody:
		if !b.Success {
			return s.marshalJSON(map[string]interface{}{
				"success": false,
				"code":    "AUTH_FAILED",
			})
		}
		return s.marshalJSON(map[string]interface{}{
			"success":  true,
			"role":     b.Role,
			"token":    s.newID(),
			"issuedAt": s.timestamp(),
		})

	case rules.ProviderSearchBody:
		providers := b.Providers
		if providers == nil {
			providers = []rules.Provider{}
		}
		return s.marshalJSON(map[string]interface{}{
			"providers": providers,
			"total":     len(providers),
		})

	case rules.PlanListBody:
		plans := b.Plans
		if plans == nil {
			plans = []rules.Plan{}
		}
		return s.marshalJSON(map[string]interface{}{
			"plans": plans,
			"total": len(plans),
		})

	case rules.ErrorBody:
		return s.marshalJSON(map[string]interface{}{
			"error": map[string]interface{}{
				"code":    b.Code,
				"message": b.Message,
			},
		})

	case rules.UploadBody:
		if !b.Success {
			return s.marshalJSON(map[string]interface{}{
				"fileName": b.FileName,
				"success":  false,
				"code":     "UPLOAD_FAILED",
			})
		}
		return s.marshalJSON(map[string]interface{}{
			"fileName":   b.FileName,
			"success":    true,
			"uploadId":   s.newID(),
			"uploadedAt": s.timestamp(),
		})

	case rules.ProtocolBody:
		return []byte(b.Payload), "text/xml", nil

	default:
		return nil, "", fmt.Errorf("unsupported body variant %T", body)
	}
}

func (s *Synthesizer) marshalJSON(v interface{}) ([]byte, string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, "", fmt.Errorf("marshal body: %w", err)
	}
	return data, "application/json", nil
}

func (s *Synthesizer) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func hasContentType(headers map[string]string) bool {
	for k := range headers {
		if strings.EqualFold(k, "Content-Type") {
			return true
		}
	}
	return false
}
