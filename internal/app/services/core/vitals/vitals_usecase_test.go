package vitals

import (
	"context"
	"testing"
	"time"
	"vitaltrend-service/internal/app/config"
	"vitaltrend-service/internal/app/contracts"
	"vitaltrend-service/internal/app/models"
	"vitaltrend-service/internal/pkg/constvars"
	"vitaltrend-service/internal/pkg/dto/requests"
	"vitaltrend-service/internal/pkg/dto/responses"
	"vitaltrend-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockSessionService struct {
	mock.Mock
}

func (m *mockSessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error) {
	args := m.Called(ctx, sessionData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockSessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *mockSessionService) CreateSession(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

type mockPatientFhirClient struct {
	mock.Mock
}

func (m *mockPatientFhirClient) FindPatientByID(ctx context.Context, patientID, accessToken string) (json.RawMessage, error) {
	args := m.Called(ctx, patientID, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockPatientFhirClient) SearchPatients(ctx context.Context, params map[string]string, accessToken string) (json.RawMessage, error) {
	args := m.Called(ctx, params, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type mockObservationFhirClient struct {
	mock.Mock
}

func (m *mockObservationFhirClient) SearchBloodPressureByPatientID(ctx context.Context, patientID, accessToken string) (json.RawMessage, error) {
	args := m.Called(ctx, patientID, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type mockAlertPublisher struct {
	mock.Mock
}

func (m *mockAlertPublisher) PublishAlert(ctx context.Context, message *contracts.AlertQueueMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

type mockAuditUsecase struct {
	mock.Mock
}

func (m *mockAuditUsecase) ListEvaluations(ctx context.Context, request *requests.ListEvaluations) ([]responses.Evaluation, int, error) {
	args := m.Called(ctx, request)
	return nil, 0, args.Error(2)
}

func (m *mockAuditUsecase) RecordEvaluation(ctx context.Context, record *models.EvaluationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func newTestVitalsUsecase(
	sessionService contracts.SessionService,
	patientClient contracts.PatientFhirClient,
	observationClient contracts.ObservationFhirClient,
	alertPublisher contracts.AlertPublisher,
	auditUsecase contracts.AuditUsecase,
) *vitalsUsecase {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{SystolicAlertThreshold: 140},
	}
	return &vitalsUsecase{
		SessionService:        sessionService,
		PatientFhirClient:     patientClient,
		ObservationFhirClient: observationClient,
		AlertPublisher:        alertPublisher,
		AuditUsecase:          auditUsecase,
		Normalizer:            NewNormalizer(logger),
		Projector:             NewProjector(logger, internalConfig.App.SystolicAlertThreshold),
		InternalConfig:        internalConfig,
		Log:                   logger,
	}
}

func validSession() *models.Session {
	return &models.Session{
		SessionID:   "sess-1",
		PatientID:   "1180",
		FHIRBaseURL: "https://thas.mohw.gov.tw/v/r4/fhir",
		AccessToken: "token-abc",
		TokenType:   "Bearer",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

const patientSearchBundle = `{
	"resourceType": "Bundle",
	"id": "bundle-xyz",
	"type": "searchset",
	"total": 1,
	"entry": [
		{"fullUrl": "https://example.org/fhir/Patient/1180", "resource": {"resourceType": "Patient", "id": "1180"}}
	]
}`

func TestGetBloodPressureTrend(t *testing.T) {
	t.Run("Happy path uses the resource id for the observation query", func(t *testing.T) {
		sessionService := new(mockSessionService)
		patientClient := new(mockPatientFhirClient)
		observationClient := new(mockObservationFhirClient)
		alertPublisher := new(mockAlertPublisher)
		auditUsecase := new(mockAuditUsecase)

		sessionService.On("ParseSessionData", mock.Anything, "payload").Return(validSession(), nil)
		patientClient.On("SearchPatients", mock.Anything, map[string]string{constvars.FhirSearchParamID: "1180"}, "token-abc").
			Return(json.RawMessage(patientSearchBundle), nil)

		observationBundle := `{
			"resourceType": "Bundle",
			"id": "obs-bundle",
			"type": "searchset",
			"entry": [
				{"resource": {
					"resourceType": "Observation",
					"id": "obs-1",
					"status": "final",
					"subject": {"reference": "Patient/1180"},
					"code": {"coding": [{"system": "http://loinc.org", "code": "85354-9"}]},
					"effectiveDateTime": "2024-02-01T09:30:00Z",
					"component": [
						{"code": {"coding": [{"system": "http://loinc.org", "code": "8480-6"}]}, "valueQuantity": {"value": 128, "unit": "mmHg"}},
						{"code": {"coding": [{"system": "http://loinc.org", "code": "8462-4"}]}, "valueQuantity": {"value": 84, "unit": "mmHg"}}
					]
				}}
			]
		}`
		observationClient.On("SearchBloodPressureByPatientID", mock.Anything, "1180", "token-abc").
			Return(json.RawMessage(observationBundle), nil)
		auditUsecase.On("RecordEvaluation", mock.Anything, mock.Anything).Return(nil)

		usecase := newTestVitalsUsecase(sessionService, patientClient, observationClient, alertPublisher, auditUsecase)

		response, err := usecase.GetBloodPressureTrend(context.Background(), &requests.GetBloodPressureTrend{SessionData: "payload"})
		assert.NoError(t, err)
		assert.Equal(t, "1180", response.PatientID, "patient id must be the resource id, not bundle-xyz")
		assert.Len(t, response.Readings, 1)
		assert.Equal(t, 128.0, *response.Readings[0].Systolic)
		assert.Equal(t, 84.0, *response.Readings[0].Diastolic)
		assert.False(t, response.AlertTriggered)

		observationClient.AssertCalled(t, "SearchBloodPressureByPatientID", mock.Anything, "1180", "token-abc")
		alertPublisher.AssertNotCalled(t, "PublishAlert", mock.Anything, mock.Anything)
		auditUsecase.AssertCalled(t, "RecordEvaluation", mock.Anything, mock.Anything)
	})

	t.Run("Empty patient bundle surfaces not found", func(t *testing.T) {
		sessionService := new(mockSessionService)
		patientClient := new(mockPatientFhirClient)
		observationClient := new(mockObservationFhirClient)
		alertPublisher := new(mockAlertPublisher)
		auditUsecase := new(mockAuditUsecase)

		sessionService.On("ParseSessionData", mock.Anything, "payload").Return(validSession(), nil)
		patientClient.On("SearchPatients", mock.Anything, mock.Anything, "token-abc").
			Return(json.RawMessage(`{"resourceType": "Bundle", "id": "b1", "type": "searchset", "total": 0, "entry": []}`), nil)

		usecase := newTestVitalsUsecase(sessionService, patientClient, observationClient, alertPublisher, auditUsecase)

		_, err := usecase.GetBloodPressureTrend(context.Background(), &requests.GetBloodPressureTrend{SessionData: "payload"})
		assertCustomErrorStatus(t, err, constvars.StatusNotFound)
		observationClient.AssertNotCalled(t, "SearchBloodPressureByPatientID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Alerting latest reading publishes and records", func(t *testing.T) {
		sessionService := new(mockSessionService)
		patientClient := new(mockPatientFhirClient)
		observationClient := new(mockObservationFhirClient)
		alertPublisher := new(mockAlertPublisher)
		auditUsecase := new(mockAuditUsecase)

		sessionService.On("ParseSessionData", mock.Anything, "payload").Return(validSession(), nil)
		patientClient.On("SearchPatients", mock.Anything, mock.Anything, "token-abc").
			Return(json.RawMessage(patientSearchBundle), nil)

		observationBundle := `{
			"resourceType": "Bundle",
			"id": "obs-bundle",
			"type": "searchset",
			"entry": [
				{"resource": {
					"resourceType": "Observation",
					"id": "obs-high",
					"status": "final",
					"subject": {"reference": "Patient/1180"},
					"code": {"coding": [{"system": "http://loinc.org", "code": "85354-9"}]},
					"effectiveDateTime": "2024-03-01T09:30:00Z",
					"component": [
						{"code": {"coding": [{"system": "http://loinc.org", "code": "8480-6"}]}, "valueQuantity": {"value": 152, "unit": "mmHg"}}
					]
				}}
			]
		}`
		observationClient.On("SearchBloodPressureByPatientID", mock.Anything, "1180", "token-abc").
			Return(json.RawMessage(observationBundle), nil)
		alertPublisher.On("PublishAlert", mock.Anything, mock.MatchedBy(func(message *contracts.AlertQueueMessage) bool {
			return message.PatientID == "1180" && message.Systolic != nil && *message.Systolic == 152
		})).Return(nil)
		auditUsecase.On("RecordEvaluation", mock.Anything, mock.MatchedBy(func(record *models.EvaluationRecord) bool {
			return record.AlertTriggered && record.ReadingCount == 1
		})).Return(nil)

		usecase := newTestVitalsUsecase(sessionService, patientClient, observationClient, alertPublisher, auditUsecase)

		response, err := usecase.GetBloodPressureTrend(context.Background(), &requests.GetBloodPressureTrend{SessionData: "payload"})
		assert.NoError(t, err)
		assert.True(t, response.AlertTriggered)
		alertPublisher.AssertExpectations(t)
		auditUsecase.AssertExpectations(t)
	})

	t.Run("Broker failure does not fail the dashboard", func(t *testing.T) {
		sessionService := new(mockSessionService)
		patientClient := new(mockPatientFhirClient)
		observationClient := new(mockObservationFhirClient)
		alertPublisher := new(mockAlertPublisher)
		auditUsecase := new(mockAuditUsecase)

		sessionService.On("ParseSessionData", mock.Anything, "payload").Return(validSession(), nil)
		patientClient.On("SearchPatients", mock.Anything, mock.Anything, "token-abc").
			Return(json.RawMessage(patientSearchBundle), nil)
		observationClient.On("SearchBloodPressureByPatientID", mock.Anything, "1180", "token-abc").
			Return(json.RawMessage(`{
				"resourceType": "Bundle",
				"id": "obs-bundle",
				"type": "searchset",
				"entry": [
					{"resource": {
						"resourceType": "Observation",
						"id": "obs-high",
						"status": "final",
						"subject": {"reference": "Patient/1180"},
						"code": {"coding": [{"system": "http://loinc.org", "code": "85354-9"}]},
						"effectiveDateTime": "2024-03-01T09:30:00Z",
						"component": [
							{"code": {"coding": [{"system": "http://loinc.org", "code": "8480-6"}]}, "valueQuantity": {"value": 152, "unit": "mmHg"}}
						]
					}}
				]
			}`), nil)
		alertPublisher.On("PublishAlert", mock.Anything, mock.Anything).Return(exceptions.ErrQueuePublish(nil))
		auditUsecase.On("RecordEvaluation", mock.Anything, mock.Anything).Return(nil)

		usecase := newTestVitalsUsecase(sessionService, patientClient, observationClient, alertPublisher, auditUsecase)

		response, err := usecase.GetBloodPressureTrend(context.Background(), &requests.GetBloodPressureTrend{SessionData: "payload"})
		assert.NoError(t, err, "alerting is best effort")
		assert.True(t, response.AlertTriggered)
	})

	t.Run("Expired session is rejected before any FHIR call", func(t *testing.T) {
		sessionService := new(mockSessionService)
		patientClient := new(mockPatientFhirClient)
		observationClient := new(mockObservationFhirClient)
		alertPublisher := new(mockAlertPublisher)
		auditUsecase := new(mockAuditUsecase)

		expired := validSession()
		expired.ExpiresAt = time.Now().Add(-time.Minute)
		sessionService.On("ParseSessionData", mock.Anything, "payload").Return(expired, nil)

		usecase := newTestVitalsUsecase(sessionService, patientClient, observationClient, alertPublisher, auditUsecase)

		_, err := usecase.GetBloodPressureTrend(context.Background(), &requests.GetBloodPressureTrend{SessionData: "payload"})
		assertCustomErrorStatus(t, err, constvars.StatusUnauthorized)
		patientClient.AssertNotCalled(t, "SearchPatients", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Empty observation bundle is an empty trend, not an error", func(t *testing.T) {
		sessionService := new(mockSessionService)
		patientClient := new(mockPatientFhirClient)
		observationClient := new(mockObservationFhirClient)
		alertPublisher := new(mockAlertPublisher)
		auditUsecase := new(mockAuditUsecase)

		sessionService.On("ParseSessionData", mock.Anything, "payload").Return(validSession(), nil)
		patientClient.On("SearchPatients", mock.Anything, mock.Anything, "token-abc").
			Return(json.RawMessage(patientSearchBundle), nil)
		observationClient.On("SearchBloodPressureByPatientID", mock.Anything, "1180", "token-abc").
			Return(json.RawMessage(`{"resourceType": "Bundle", "id": "obs-bundle", "type": "searchset", "total": 0, "entry": null}`), nil)
		auditUsecase.On("RecordEvaluation", mock.Anything, mock.Anything).Return(nil)

		usecase := newTestVitalsUsecase(sessionService, patientClient, observationClient, alertPublisher, auditUsecase)

		response, err := usecase.GetBloodPressureTrend(context.Background(), &requests.GetBloodPressureTrend{SessionData: "payload"})
		assert.NoError(t, err)
		assert.Empty(t, response.Readings)
		assert.False(t, response.AlertTriggered)
	})
}
