// File: innoviahub/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"innoviahub/config"
	"innoviahub/database"
	bookingRepoPkg "innoviahub/database/repository/booking"
	resourceRepoPkg "innoviahub/database/repository/resource"
	"innoviahub/handlers"
	"innoviahub/middleware"
	"innoviahub/routes"
	"innoviahub/services/assistant"
	"innoviahub/services/booking"
	"innoviahub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	resourceRepo := resourceRepoPkg.NewMongoResourceRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo(resourceRepo)

	setupCtx, cancelSetup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := bookingRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	if err := resourceRepo.Seed(setupCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to seed resource pool: %v", err)
	}
	cancelSetup()

	// services.
	pendingTTL := time.Duration(config.AppConfig.PendingTTLMin) * time.Minute
	pendingStore := booking.NewRedisPendingStore(utils.GetPendingCacheClient(), pendingTTL)

	historyTTL := time.Duration(config.AppConfig.HistoryTTLMin) * time.Minute
	historyStore := assistant.NewRedisHistoryStore(utils.GetHistoryCacheClient(), historyTTL)

	assistantSvc, err := assistant.NewGeminiAssistant(config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize assistant: %v", err)
	}

	actionService := &booking.DefaultActionService{
		Repo:      bookingRepo,
		Pending:   pendingStore,
		Assistant: assistantSvc,
		Logger:    logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Chat:      handlers.NewChatHandler(actionService, assistantSvc, historyStore, logger),
		Bookings:  handlers.NewBookingHandler(bookingRepo, logger),
		Resources: handlers.NewResourceHandler(resourceRepo, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetHistoryCacheClient(),
		utils.GetPendingCacheClient(),
	}, database.MongoClient)

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
