package vitals

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

type VitalsController struct {
	Log           *zap.Logger
	VitalsUsecase contracts.VitalsUsecase
}

func NewVitalsController(logger *zap.Logger, vitalsUsecase contracts.VitalsUsecase) *VitalsController {
	return &VitalsController{
		Log:           logger,
		VitalsUsecase: vitalsUsecase,
	}
}

func (ctrl *VitalsController) GetBloodPressureTrend(w http.ResponseWriter, r *http.Request) {
	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	if !ok || sessionData == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	request := &requests.GetBloodPressureTrend{
		SessionData: sessionData,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := ctrl.VitalsUsecase.GetBloodPressureTrend(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BloodPressureTrendSuccess, response)
}
