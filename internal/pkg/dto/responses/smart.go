package responses

type SmartAuthorizeURL struct {
	AuthorizeURL string `json:"authorize_url"`
	State        string `json:"state"`
}

type SmartSession struct {
	SessionToken string `json:"session_token"`
	PatientID    string `json:"patient_id"`
	ExpiresAt    string `json:"expires_at"`
}
