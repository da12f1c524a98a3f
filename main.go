// File: caregrid/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"caregrid/config"
	"caregrid/database"
	bookingRepo "caregrid/database/repository/booking"
	scheduleRepo "caregrid/database/repository/schedule"
	"caregrid/handlers"
	"caregrid/middleware"
	"caregrid/routes"
	ai "caregrid/services/intelligence"
	"caregrid/services/schedule"
	"caregrid/services/storage"
	"caregrid/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	var documentStorage storage.StorageService
	if cs, err := storage.NewCloudinaryStorage(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	); err != nil {
		logger.Sugar().Warnf("main: document archiving disabled: %v", err)
	} else {
		documentStorage = cs
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	schedRepo := scheduleRepo.NewMongoScheduleRepo()
	bookRepo := bookingRepo.NewMongoBookingRepo()

	// services.
	scheduleService := &schedule.DefaultScheduleService{
		Repo:     schedRepo,
		Bookings: bookRepo,
		Cache:    utils.GetCacheClient(),
	}

	extractionCache := ai.NewRedisExtractionCache(utils.GetExtractionCacheClient(), 24*time.Hour)
	geminiClient := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	extractor := ai.NewGeminiExtractor(geminiClient, extractionCache)

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Schedule: handlers.NewScheduleHandler(scheduleService),
		Document: handlers.NewDocumentHandler(scheduleService, extractor, documentStorage),
		Voice:    handlers.NewVoiceHandler(scheduleService, extractor),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
