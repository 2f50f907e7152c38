package patients

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

type patientFhirClient struct {
	BaseUrl string
}

func NewPatientFhirClient(baseUrl string) contracts.PatientFhirClient {
	return &patientFhirClient{
		BaseUrl: baseUrl + "/" + constvars.ResourcePatient,
	}
}

func (c *patientFhirClient) FindPatientByID(ctx context.Context, patientID, accessToken string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, fmt.Sprintf("%s/%s", c.BaseUrl, patientID), nil)
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
		return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourcePatient)
	}

	if resp.StatusCode != constvars.StatusOK {
		return nil, decodeOperationOutcome(bodyBytes, constvars.ResourcePatient)
	}

	return bodyBytes, nil
}

func (c *patientFhirClient) SearchPatients(ctx context.Context, params map[string]string, accessToken string) (json.RawMessage, error) {
	queryParams := url.Values{}
	for key, value := range params {
		queryParams.Add(key, value)
	}

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
		return nil, exceptions.ErrSearchFHIRResource(err, constvars.ResourcePatient)
	}

	if resp.StatusCode != constvars.StatusOK {
		return nil, decodeOperationOutcome(bodyBytes, constvars.ResourcePatient)
	}

	return bodyBytes, nil
}

func decodeOperationOutcome(bodyBytes []byte, resourceType string) error {
	var outcome fhir_dto.OperationOutcome
	err := json.Unmarshal(bodyBytes, &outcome)
	if err != nil {
		return exceptions.ErrGetFHIRResource(err, resourceType)
	}

	if len(outcome.Issue) > 0 {
		fhirErrorIssue := fmt.Errorf("%s", outcome.Issue[0].Diagnostics)
		return exceptions.ErrGetFHIRResource(fhirErrorIssue, resourceType)
	}

	return exceptions.ErrGetFHIRResource(nil, resourceType)
}
