package audit

import (
	"context"
	"sync"
	"time"
	"vitaltrend-service/internal/app/contracts"
	"vitaltrend-service/internal/app/models"
	"vitaltrend-service/internal/pkg/dto/requests"
	"vitaltrend-service/internal/pkg/dto/responses"

	"go.uber.org/zap"
)

type auditUsecase struct {
	EvaluationRepository contracts.EvaluationRepository
	Log                  *zap.Logger
}

var (
	auditUsecaseInstance contracts.AuditUsecase
	onceAuditUsecase     sync.Once
)

func NewAuditUsecase(
	evaluationRepository contracts.EvaluationRepository,
	logger *zap.Logger,
) contracts.AuditUsecase {
	onceAuditUsecase.Do(func() {
		instance := &auditUsecase{
			EvaluationRepository: evaluationRepository,
			Log:                  logger,
		}
		auditUsecaseInstance = instance
	})
	return auditUsecaseInstance
}

func (uc *auditUsecase) RecordEvaluation(ctx context.Context, record *models.EvaluationRecord) error {
	if record.EvaluatedAt.IsZero() {
		record.EvaluatedAt = time.Now()
	}
	return uc.EvaluationRepository.InsertEvaluation(ctx, record)
}

func (uc *auditUsecase) ListEvaluations(ctx context.Context, request *requests.ListEvaluations) ([]responses.Evaluation, int, error) {
	records, total, err := uc.EvaluationRepository.FindEvaluations(ctx, request.Page, request.PageSize)
	if err != nil {
		return nil, 0, err
	}

	evaluations := make([]responses.Evaluation, 0, len(records))
	for _, record := range records {
		evaluations = append(evaluations, responses.Evaluation{
			ID:             record.ID.Hex(),
			PatientID:      record.PatientID,
			ReadingCount:   record.ReadingCount,
			AlertTriggered: record.AlertTriggered,
			EvaluatedAt:    record.EvaluatedAt.Format(time.RFC3339),
		})
	}

	return evaluations, total, nil
}
