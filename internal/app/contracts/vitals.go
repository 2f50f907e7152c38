package contracts

import (
	"context"
	"vitaltrend-service/internal/pkg/dto/requests"
	"vitaltrend-service/internal/pkg/dto/responses"
)

type VitalsUsecase interface {
	GetBloodPressureTrend(ctx context.Context, request *requests.GetBloodPressureTrend) (*responses.BloodPressureTrend, error)
}

type ReportUsecase interface {
	ExportBloodPressureReport(ctx context.Context, request *requests.ExportBloodPressureReport) (*responses.BloodPressureReport, error)
}
