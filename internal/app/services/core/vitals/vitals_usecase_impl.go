package vitals

import (
	"context"
	"sync"
	"time"
	"vitaltrend-service/internal/app/config"
	"vitaltrend-service/internal/app/contracts"
	"vitaltrend-service/internal/app/models"
	"vitaltrend-service/internal/pkg/constvars"
	"vitaltrend-service/internal/pkg/dto/requests"
	"vitaltrend-service/internal/pkg/dto/responses"
	"vitaltrend-service/internal/pkg/exceptions"
	"vitaltrend-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type vitalsUsecase struct {
	SessionService        contracts.SessionService
	PatientFhirClient     contracts.PatientFhirClient
	ObservationFhirClient contracts.ObservationFhirClient
	AlertPublisher        contracts.AlertPublisher
	AuditUsecase          contracts.AuditUsecase
	Normalizer            *Normalizer
	Projector             *Projector
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	vitalsUsecaseInstance contracts.VitalsUsecase
	onceVitalsUsecase     sync.Once
)

func NewVitalsUsecase(
	sessionService contracts.SessionService,
	patientFhirClient contracts.PatientFhirClient,
	observationFhirClient contracts.ObservationFhirClient,
	alertPublisher contracts.AlertPublisher,
	auditUsecase contracts.AuditUsecase,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.VitalsUsecase {
	onceVitalsUsecase.Do(func() {
		instance := &vitalsUsecase{
			SessionService:        sessionService,
			PatientFhirClient:     patientFhirClient,
			ObservationFhirClient: observationFhirClient,
			AlertPublisher:        alertPublisher,
			AuditUsecase:          auditUsecase,
			Normalizer:            NewNormalizer(logger),
			Projector:             NewProjector(logger, internalConfig.App.SystolicAlertThreshold),
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
		vitalsUsecaseInstance = instance
	})
	return vitalsUsecaseInstance
}

// GetBloodPressureTrend runs the whole dashboard sequence for one page
// load: resolve session, fetch and normalize the patient context, fetch
// and project the observation search, classify the latest reading. The
// steps are strictly sequential; there is no retry and no fan-out.
func (uc *vitalsUsecase) GetBloodPressureTrend(ctx context.Context, request *requests.GetBloodPressureTrend) (*responses.BloodPressureTrend, error) {
	session, err := uc.SessionService.ParseSessionData(ctx, request.SessionData)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}

	patientRaw, err := uc.PatientFhirClient.SearchPatients(ctx, map[string]string{
		constvars.FhirSearchParamID: session.PatientID,
	}, session.AccessToken)
	if err != nil {
		return nil, err
	}

	normalized, err := uc.Normalizer.NormalizeContextResource(patientRaw)
	if err != nil {
		return nil, err
	}
	if normalized.ResourceType != constvars.ResourcePatient {
		return nil, exceptions.ErrUnexpectedResourceType(normalized.ResourceType)
	}

	// The id used from here on is the Patient resource's own id, not
	// the search Bundle's.
	patientID := normalized.ID
	uc.Log.Info("patient context normalized",
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	observationRaw, err := uc.ObservationFhirClient.SearchBloodPressureByPatientID(ctx, patientID, session.AccessToken)
	if err != nil {
		return nil, err
	}

	resources, err := uc.Normalizer.NormalizeBundleEntries(observationRaw)
	if err != nil {
		return nil, err
	}

	observations := uc.Projector.DecodeObservations(resources)
	readings := uc.Projector.ProjectReadings(observations)
	alertTriggered := uc.Projector.ClassifyLatest(readings)

	if alertTriggered {
		uc.publishAlert(ctx, patientID, readings[len(readings)-1])
	}
	uc.recordEvaluation(ctx, patientID, len(readings), alertTriggered)

	return &responses.BloodPressureTrend{
		PatientID:      patientID,
		Readings:       mapReadingsToResponse(readings),
		AlertTriggered: alertTriggered,
	}, nil
}

// publishAlert is best effort: a broker outage must not block the
// clinician from seeing the chart that triggered the alert.
func (uc *vitalsUsecase) publishAlert(ctx context.Context, patientID string, latest Reading) {
	message := &contracts.AlertQueueMessage{
		ID:        utils.GenerateRequestID(),
		PatientID: patientID,
		Systolic:  latest.Systolic,
		Diastolic: latest.Diastolic,
		Timestamp: latest.EffectiveDateTime,
	}
	if err := uc.AlertPublisher.PublishAlert(ctx, message); err != nil {
		uc.Log.Error("failed to publish blood pressure alert",
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
	}
}

func (uc *vitalsUsecase) recordEvaluation(ctx context.Context, patientID string, readingCount int, alertTriggered bool) {
	record := &models.EvaluationRecord{
		PatientID:      patientID,
		ReadingCount:   readingCount,
		AlertTriggered: alertTriggered,
		EvaluatedAt:    time.Now().UTC(),
	}
	if err := uc.AuditUsecase.RecordEvaluation(ctx, record); err != nil {
		uc.Log.Error("failed to record evaluation audit",
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
	}
}

func mapReadingsToResponse(readings []Reading) []responses.BloodPressureReading {
	mapped := make([]responses.BloodPressureReading, 0, len(readings))
	for _, reading := range readings {
		mapped = append(mapped, responses.BloodPressureReading{
			Timestamp: reading.EffectiveDateTime,
			Systolic:  reading.Systolic,
			Diastolic: reading.Diastolic,
			SourceID:  reading.SourceID,
		})
	}
	return mapped
}
