package routers

import (
	"vitaltrend-service/internal/app/delivery/http/middlewares"
	"vitaltrend-service/internal/app/services/core/reports"
	"vitaltrend-service/internal/app/services/core/vitals"

	"github.com/go-chi/chi/v5"
)

func attachVitalsRoutes(router chi.Router, middlewares *middlewares.Middlewares, vitalsController *vitals.VitalsController, reportController *reports.ReportController) {
	router.With(middlewares.Authenticate).Get("/blood-pressure", vitalsController.GetBloodPressureTrend)
	router.With(middlewares.Authenticate).Post("/blood-pressure/report", reportController.ExportBloodPressureReport)
}
