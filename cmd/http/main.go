package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"vitaltrend-service/internal/app/config"
	"vitaltrend-service/internal/app/delivery/http/middlewares"
	"vitaltrend-service/internal/app/delivery/http/routers"
	"vitaltrend-service/internal/app/drivers/database"
	"vitaltrend-service/internal/app/drivers/logger"
	"vitaltrend-service/internal/app/drivers/messaging"
	"vitaltrend-service/internal/app/drivers/storage"
	"vitaltrend-service/internal/app/services/core/audit"
	"vitaltrend-service/internal/app/services/core/reports"
	"vitaltrend-service/internal/app/services/core/session"
	"vitaltrend-service/internal/app/services/core/smart"
	"vitaltrend-service/internal/app/services/core/vitals"
	"vitaltrend-service/internal/app/services/fhir/observations"
	"vitaltrend-service/internal/app/services/fhir/patients"
	"vitaltrend-service/internal/app/services/shared/alertqueue"
	"vitaltrend-service/internal/app/services/shared/redis"
	sharedstorage "vitaltrend-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	stdLog := logger.NewLogrusLogger(internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		Redis:          redisClient,
		MongoDB:        mongoDB,
		Minio:          minioClient,
		RabbitMQ:       rabbitMQ,
		Logger:         log,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	stdLog.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Warn("Error while closing application dependencies", zap.Error(err))
	}

	stdLog.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)

	// Session
	sessionTTL := time.Duration(bootstrap.InternalConfig.JWT.ExpTimeInHour) * time.Hour
	sessionService := session.NewSessionService(redisRepository, sessionTTL)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, sessionService, bootstrap.InternalConfig)

	// FHIR clients
	patientFhirClient := patients.NewPatientFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl)
	observationFhirClient := observations.NewObservationFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl)

	// Alert queue
	alertPublisher, err := alertqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.App.RabbitMQAlertQueue)
	if err != nil {
		bootstrap.Logger.Fatal("Failed to initialize alert queue", zap.Error(err))
	}

	// Audit
	evaluationMongoRepository := audit.NewEvaluationMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	auditUsecase := audit.NewAuditUsecase(evaluationMongoRepository, bootstrap.Logger)
	auditController := audit.NewAuditController(bootstrap.Logger, auditUsecase)

	// Vitals
	vitalsUsecase := vitals.NewVitalsUsecase(
		sessionService,
		patientFhirClient,
		observationFhirClient,
		alertPublisher,
		auditUsecase,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	vitalsController := vitals.NewVitalsController(bootstrap.Logger, vitalsUsecase)

	// Reports
	minioStorage := sharedstorage.NewMinioStorage(bootstrap.Minio)
	reportUsecase := reports.NewReportUsecase(vitalsUsecase, minioStorage, bootstrap.DriverConfig, bootstrap.Logger)
	reportController := reports.NewReportController(bootstrap.Logger, reportUsecase)

	// Smart
	smartUsecase := smart.NewSmartUsecase(sessionService, redisRepository, bootstrap.InternalConfig, bootstrap.Logger)
	smartController := smart.NewSmartController(bootstrap.Logger, smartUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		smartController,
		vitalsController,
		reportController,
		auditController,
	)
}
