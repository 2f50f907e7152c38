package routers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"vitaltrend-service/internal/app/config"
	"vitaltrend-service/internal/app/delivery/http/middlewares"
	"vitaltrend-service/internal/app/services/core/audit"
	"vitaltrend-service/internal/app/services/core/reports"
	"vitaltrend-service/internal/app/services/core/smart"
	"vitaltrend-service/internal/app/services/core/vitals"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	logger := zap.NewNop()

	internalConfig := &config.InternalConfig{
		App: config.App{
			Version:        "v1",
			EndpointPrefix: "api",
			MaxRequests:    100,
		},
		JWT: config.JWT{Secret: "test-secret"},
	}

	middlewareInstance := &middlewares.Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
	}

	router := chi.NewRouter()
	SetupRoutes(
		router,
		internalConfig,
		middlewareInstance,
		smart.NewSmartController(logger, nil),
		vitals.NewVitalsController(logger, nil),
		reports.NewReportController(logger, nil),
		audit.NewAuditController(logger, nil),
	)
	return router
}

func TestSetupRoutes(t *testing.T) {
	router := newTestRouter(t)

	t.Run("Health endpoint responds", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/health", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "ok")
	})

	t.Run("Vitals endpoint requires a session token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/vitals/blood-pressure", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Report export requires a session token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/vitals/blood-pressure/report", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Audit endpoint requires an API key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/audit/evaluations", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Unknown route is not found", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/nope", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
