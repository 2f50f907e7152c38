package routers

import (
	"time"
	"vitaltrend-service/internal/app/delivery/http/middlewares"
	"vitaltrend-service/internal/app/services/core/smart"

	"github.com/go-chi/chi/v5"
)

func attachSmartRoutes(router chi.Router, m *middlewares.Middlewares, smartController *smart.SmartController) {
	// Launch endpoints are unauthenticated by nature, so they carry a
	// stricter per-IP limiter on top of the global one.
	launchLimiter := middlewares.NewRateLimiter(10, time.Second, 5*time.Minute)

	router.With(launchLimiter.Limit).Get("/launch", smartController.Launch)
	router.With(launchLimiter.Limit).Get("/callback", smartController.Callback)
}
