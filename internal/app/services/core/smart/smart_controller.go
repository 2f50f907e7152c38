package smart

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

type SmartController struct {
	Log          *zap.Logger
	SmartUsecase contracts.SmartUsecase
}

func NewSmartController(logger *zap.Logger, smartUsecase contracts.SmartUsecase) *SmartController {
	return &SmartController{
		Log:          logger,
		SmartUsecase: smartUsecase,
	}
}

func (ctrl *SmartController) Launch(w http.ResponseWriter, r *http.Request) {
	request := &requests.SmartLaunch{
		Issuer: r.URL.Query().Get(constvars.URLQueryParamIssuer),
		Launch: r.URL.Query().Get(constvars.URLQueryParamLaunch),
	}
	utils.SanitizeSmartLaunchRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	response, err := ctrl.SmartUsecase.BuildAuthorizeURL(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LaunchAuthorizeURLSuccess, response)
}

func (ctrl *SmartController) Callback(w http.ResponseWriter, r *http.Request) {
	request := &requests.SmartCallback{
		Code:  r.URL.Query().Get(constvars.URLQueryParamCode),
		State: r.URL.Query().Get(constvars.URLQueryParamState),
	}
	utils.SanitizeSmartCallbackRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := ctrl.SmartUsecase.ExchangeCode(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LaunchSessionSuccess, response)
}
