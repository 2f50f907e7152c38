package audit

import (
	"context"
	"testing"
	"time"
	"vitaltrend-service/internal/app/models"
	"vitaltrend-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type mockEvaluationRepository struct {
	mock.Mock
}

func (m *mockEvaluationRepository) InsertEvaluation(ctx context.Context, record *models.EvaluationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockEvaluationRepository) FindEvaluations(ctx context.Context, page, pageSize int) ([]models.EvaluationRecord, int, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.EvaluationRecord), args.Int(1), args.Error(2)
}

func TestRecordEvaluation(t *testing.T) {
	t.Run("Fills EvaluatedAt when absent", func(t *testing.T) {
		repository := new(mockEvaluationRepository)
		repository.On("InsertEvaluation", mock.Anything, mock.MatchedBy(func(record *models.EvaluationRecord) bool {
			return !record.EvaluatedAt.IsZero()
		})).Return(nil)

		usecase := &auditUsecase{EvaluationRepository: repository, Log: zap.NewNop()}

		err := usecase.RecordEvaluation(context.Background(), &models.EvaluationRecord{PatientID: "1180"})
		assert.NoError(t, err)
		repository.AssertExpectations(t)
	})
}

func TestListEvaluations(t *testing.T) {
	t.Run("Maps records to response rows", func(t *testing.T) {
		evaluatedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
		records := []models.EvaluationRecord{
			{
				ID:             primitive.NewObjectID(),
				PatientID:      "1180",
				ReadingCount:   4,
				AlertTriggered: true,
				EvaluatedAt:    evaluatedAt,
			},
		}

		repository := new(mockEvaluationRepository)
		repository.On("FindEvaluations", mock.Anything, 1, 10).Return(records, 1, nil)

		usecase := &auditUsecase{EvaluationRepository: repository, Log: zap.NewNop()}

		evaluations, total, err := usecase.ListEvaluations(context.Background(), &requests.ListEvaluations{Page: 1, PageSize: 10})
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, evaluations, 1)
		assert.Equal(t, "1180", evaluations[0].PatientID)
		assert.True(t, evaluations[0].AlertTriggered)
		assert.Equal(t, "2026-08-01T10:00:00Z", evaluations[0].EvaluatedAt)
	})
}
