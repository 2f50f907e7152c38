package contracts

import (
	"context"

	"github.com/goccy/go-json"
)

// PatientFhirClient returns raw response bodies: Bundle-vs-resource
// interpretation belongs to the normalizer, not the transport.
type PatientFhirClient interface {
	FindPatientByID(ctx context.Context, patientID, accessToken string) (json.RawMessage, error)
	SearchPatients(ctx context.Context, params map[string]string, accessToken string) (json.RawMessage, error)
}
