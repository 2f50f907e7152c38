package contracts

import (
	"context"
	"vitaltrend-service/internal/app/models"
	"vitaltrend-service/internal/pkg/dto/requests"
	"vitaltrend-service/internal/pkg/dto/responses"
)

type EvaluationRepository interface {
	InsertEvaluation(ctx context.Context, record *models.EvaluationRecord) error
	FindEvaluations(ctx context.Context, page, pageSize int) ([]models.EvaluationRecord, int, error)
}

type AuditUsecase interface {
	ListEvaluations(ctx context.Context, request *requests.ListEvaluations) ([]responses.Evaluation, int, error)
	RecordEvaluation(ctx context.Context, record *models.EvaluationRecord) error
}
