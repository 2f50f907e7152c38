package routers

import (
	"fmt"
	"net/http"
	"time"
	"vitaltrend-service/internal/app/config"
	"vitaltrend-service/internal/app/delivery/http/middlewares"
	"vitaltrend-service/internal/app/services/core/audit"
	"vitaltrend-service/internal/app/services/core/reports"
	"vitaltrend-service/internal/app/services/core/smart"
	"vitaltrend-service/internal/app/services/core/vitals"
	"vitaltrend-service/internal/pkg/constvars"
	"vitaltrend-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	smartController *smart.SmartController,
	vitalsController *vitals.VitalsController,
	reportController *reports.ReportController,
	auditController *audit.AuditController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/smart", func(r chi.Router) {
				attachSmartRoutes(r, middlewares, smartController)
			})

			r.Route("/vitals", func(r chi.Router) {
				attachVitalsRoutes(r, middlewares, vitalsController, reportController)
			})

			r.Route("/audit", func(r chi.Router) {
				attachAuditRoutes(r, middlewares, auditController)
			})

			r.Get("/health", healthHandler)
		})
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, map[string]string{"status": "ok"})
}
