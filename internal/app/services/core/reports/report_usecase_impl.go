package reports

import (
	"bytes"
	"context"
	"sync"
	"time"
	"vitaltrend-service/internal/app/config"
	"vitaltrend-service/internal/app/contracts"
	"vitaltrend-service/internal/pkg/constvars"
	"vitaltrend-service/internal/pkg/dto/requests"
	"vitaltrend-service/internal/pkg/dto/responses"
	"vitaltrend-service/internal/pkg/exceptions"
	"vitaltrend-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type reportDocument struct {
	Title       string                        `json:"title,omitempty"`
	GeneratedAt string                        `json:"generated_at"`
	Trend       *responses.BloodPressureTrend `json:"trend"`
}

type reportUsecase struct {
	VitalsUsecase contracts.VitalsUsecase
	Storage       contracts.Storage
	DriverConfig  *config.DriverConfig
	Log           *zap.Logger
}

var (
	reportUsecaseInstance contracts.ReportUsecase
	onceReportUsecase     sync.Once
)

func NewReportUsecase(
	vitalsUsecase contracts.VitalsUsecase,
	storage contracts.Storage,
	driverConfig *config.DriverConfig,
	logger *zap.Logger,
) contracts.ReportUsecase {
	onceReportUsecase.Do(func() {
		instance := &reportUsecase{
			VitalsUsecase: vitalsUsecase,
			Storage:       storage,
			DriverConfig:  driverConfig,
			Log:           logger,
		}
		reportUsecaseInstance = instance
	})
	return reportUsecaseInstance
}

// ExportBloodPressureReport snapshots the current trend evaluation and
// writes it to object storage as a JSON document.
func (uc *reportUsecase) ExportBloodPressureReport(ctx context.Context, request *requests.ExportBloodPressureReport) (*responses.BloodPressureReport, error) {
	trend, err := uc.VitalsUsecase.GetBloodPressureTrend(ctx, &requests.GetBloodPressureTrend{
		SessionData: request.SessionData,
	})
	if err != nil {
		return nil, err
	}

	document := &reportDocument{
		Title:       request.Title,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Trend:       trend,
	}
	body, err := json.Marshal(document)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	bucketName := uc.DriverConfig.Minio.BucketName
	objectName := utils.GenerateReportObjectName(trend.PatientID)
	_, err = uc.Storage.UploadObject(ctx, bucketName, objectName, constvars.MIMEApplicationJSON, bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, err
	}

	uc.Log.Info("blood pressure report exported",
		zap.String(constvars.LoggingPatientIDKey, trend.PatientID),
		zap.String("object_name", objectName),
	)

	return &responses.BloodPressureReport{
		ObjectName: objectName,
		Bucket:     bucketName,
	}, nil
}
