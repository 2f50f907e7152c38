package fhir_dto

import "github.com/goccy/go-json"

type FHIRBundle struct {
	ResourceType string  `json:"resourceType"`
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Total        int     `json:"total"`
	Entry        []Entry `json:"entry"`
}

type Entry struct {
	FullUrl  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource"`
}

// Envelope carries only the discriminating fields of a FHIR response.
// Decoding into it answers "Bundle or bare resource" once, at the boundary.
type Envelope struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id"`
}
