package contracts

import (
	"context"

	"github.com/goccy/go-json"
)

type ObservationFhirClient interface {
	SearchBloodPressureByPatientID(ctx context.Context, patientID, accessToken string) (json.RawMessage, error)
}
