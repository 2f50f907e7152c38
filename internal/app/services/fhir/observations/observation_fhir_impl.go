package observations

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"vitaltrend-service/internal/app/contracts"
	"vitaltrend-service/internal/pkg/constvars"
	"vitaltrend-service/internal/pkg/exceptions"
	"vitaltrend-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
)

type observationFhirClient struct {
	BaseUrl string
}

func NewObservationFhirClient(baseUrl string) contracts.ObservationFhirClient {
	return &observationFhirClient{
		BaseUrl: baseUrl + "/" + constvars.ResourceObservation,
	}
}

func (c *observationFhirClient) SearchBloodPressureByPatientID(ctx context.Context, patientID, accessToken string) (json.RawMessage, error) {
	queryParams := url.Values{}
	queryParams.Add(constvars.FhirSearchParamPatient, patientID)
	queryParams.Add(constvars.FhirSearchParamCode, fmt.Sprintf("%s|%s", constvars.LoincSystem, constvars.LoincCodeBloodPressurePanel))
	queryParams.Add(constvars.FhirSearchParamSort, constvars.FhirSearchParamDate)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, fmt.Sprintf("%s?%s", c.BaseUrl, queryParams.Encode()), nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)
	if accessToken != "" {
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+accessToken)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrSearchFHIRResource(err, constvars.ResourceObservation)
	}

	if resp.StatusCode != constvars.StatusOK {
		var outcome fhir_dto.OperationOutcome
		err = json.Unmarshal(bodyBytes, &outcome)
		if err != nil {
			return nil, exceptions.ErrSearchFHIRResource(err, constvars.ResourceObservation)
		}

		if len(outcome.Issue) > 0 {
			fhirErrorIssue := fmt.Errorf("%s", outcome.Issue[0].Diagnostics)
			return nil, exceptions.ErrSearchFHIRResource(fhirErrorIssue, constvars.ResourceObservation)
		}

		return nil, exceptions.ErrSearchFHIRResource(nil, constvars.ResourceObservation)
	}

	return bodyBytes, nil
}
