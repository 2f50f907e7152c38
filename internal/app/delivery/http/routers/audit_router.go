package routers

import (
	"vitaltrend-service/internal/app/delivery/http/middlewares"
	"vitaltrend-service/internal/app/services/core/audit"

	"github.com/go-chi/chi/v5"
)

func attachAuditRoutes(router chi.Router, middlewares *middlewares.Middlewares, auditController *audit.AuditController) {
	router.With(middlewares.APIKeyAuth).Get("/evaluations", auditController.ListEvaluations)
}
