package models

import "time"

// Session binds one browser dashboard session to one SMART patient context.
type Session struct {
	SessionID   string    `json:"session_id"`
	PatientID   string    `json:"patient_id"`
	FHIRBaseURL string    `json:"fhir_base_url"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Scope       string    `json:"scope"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
