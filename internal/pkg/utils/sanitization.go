package utils

import (
	"strings"
	"vitaltrend-service/internal/pkg/dto/requests"
)

func SanitizeSmartLaunchRequest(request *requests.SmartLaunch) {
	request.Issuer = strings.TrimRight(strings.TrimSpace(request.Issuer), "/")
	request.Launch = strings.TrimSpace(request.Launch)
}

func SanitizeSmartCallbackRequest(request *requests.SmartCallback) {
	request.Code = strings.TrimSpace(request.Code)
	request.State = strings.TrimSpace(request.State)
}

func SanitizeExportReportRequest(request *requests.ExportBloodPressureReport) {
	request.Title = strings.TrimSpace(request.Title)
}
