package audit

import (
	"context"
	"net/http"
	"time"
	"vitaltrend-service/internal/app/contracts"
	"vitaltrend-service/internal/pkg/constvars"
	"vitaltrend-service/internal/pkg/dto/requests"
	"vitaltrend-service/internal/pkg/exceptions"
	"vitaltrend-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type AuditController struct {
	Log          *zap.Logger
	AuditUsecase contracts.AuditUsecase
}

func NewAuditController(logger *zap.Logger, auditUsecase contracts.AuditUsecase) *AuditController {
	return &AuditController{
		Log:          logger,
		AuditUsecase: auditUsecase,
	}
}

func (ctrl *AuditController) ListEvaluations(w http.ResponseWriter, r *http.Request) {
	page, pageSize := utils.ParsePaginationParams(r)
	request := &requests.ListEvaluations{
		Page:     page,
		PageSize: pageSize,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	evaluations, total, err := ctrl.AuditUsecase.ListEvaluations(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, page, pageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.EvaluationListSuccess, pagination, evaluations)
}
