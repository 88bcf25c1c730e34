package rules

// Body is the tagged union of response payload variants. Domain variants
// model the business scenarios the presets cover; RawBody and JSONBody
// cover ad-hoc mocks not yet modeled. The synthesizer handles every
// variant exhaustively and stamps time-varying fields (generated
// identifiers, timestamps) at fulfillment time.
type Body interface {
	bodyVariant()
}

// RawBody carries a pre-rendered payload used verbatim.
type RawBody struct {
	ContentType string // inferred header value; empty means text/plain
	Data        string
}

// JSONBody carries an arbitrary value serialized to JSON at fulfillment.
type JSONBody struct {
	Value interface{}
}

// EligibilityBody models an eligibility verification result.
type EligibilityBody struct {
	MemberID string
	Eligible bool
}

// ClaimBody models a claim submission result.
type ClaimBody struct {
	ClaimID string
	Status  string
}

// PaymentBody models a payment outcome. Failed payments render with
// status and error code chosen by the preset.
type PaymentBody struct {
	PaymentID string
	Success   bool
}

// AuthBody models an authentication outcome with an assigned role.
type AuthBody struct {
	Success bool
	Role    string
}

// Provider is one entry in a provider search result.
type Provider struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
	City      string `json:"city,omitempty"`
}

// ProviderSearchBody models a provider directory search result.
type ProviderSearchBody struct {
	Providers []Provider
}

// Plan is one entry in a plan listing.
type Plan struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Tier         string `json:"tier,omitempty"`
	PremiumCents int    `json:"premiumCents,omitempty"`
}

// PlanListBody models a plan listing.
type PlanListBody struct {
	Plans []Plan
}

// ErrorBody models a generic injected error.
type ErrorBody struct {
	Code    int
	Message string
}

// UploadBody models a file upload outcome.
type UploadBody struct {
	FileName string
	Success  bool
}

// ProtocolBody carries a raw protocol payload (e.g. a SOAP envelope) for
// header-keyed action dispatch on a shared endpoint.
type ProtocolBody struct {
	Action  string
	Payload string
}

func (RawBody) bodyVariant()            {}
func (JSONBody) bodyVariant()           {}
func (EligibilityBody) bodyVariant()    {}
func (ClaimBody) bodyVariant()          {}
func (PaymentBody) bodyVariant()        {}
func (AuthBody) bodyVariant()           {}
func (ProviderSearchBody) bodyVariant() {}
func (PlanListBody) bodyVariant()       {}
func (ErrorBody) bodyVariant()          {}
func (UploadBody) bodyVariant()         {}
func (ProtocolBody) bodyVariant()       {}
