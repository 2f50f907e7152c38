package models

// SmartState is the short-lived launch state parked in redis between
// the authorize redirect and the callback.
type SmartState struct {
	State         string `json:"state"`
	Issuer        string `json:"issuer"`
	Launch        string `json:"launch,omitempty"`
	CodeVerifier  string `json:"code_verifier"`
	TokenEndpoint string `json:"token_endpoint"`
}
