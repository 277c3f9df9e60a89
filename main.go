// File: tabletalk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tabletalk/config"
	"tabletalk/database"
	bookingRepo "tabletalk/database/repository/booking"
	"tabletalk/handlers"
	"tabletalk/middleware"
	"tabletalk/routes"
	"tabletalk/services/booking"
	ai "tabletalk/services/intelligence"
	"tabletalk/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Booking store: mongo by default, in-memory for single-binary demos.
	var repo bookingRepo.Repository
	var mongoClient *mongo.Client
	if config.AppConfig.StoreBackend == "memory" {
		repo = bookingRepo.NewMemoryBookingRepo()
	} else {
		database.InitDB()
		mongoClient = database.MongoClient
		repo = bookingRepo.NewMongoBookingRepo()
	}

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := booking.EnsureSeedData(seedCtx, repo, config.AppConfig.RestaurantName); err != nil {
		logger.Sugar().Fatalf("main: failed to seed restaurant data: %v", err)
	}
	cancelSeed()

	bookingService := &booking.DefaultBookingService{Repo: repo}
	toolRegistry := ai.NewToolRegistry(bookingService)

	// Session store: in-memory unless redis is configured.
	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	var sessions ai.SessionStore
	var redisClients []*redis.Client
	if config.AppConfig.SessionBackend == "redis" {
		client := utils.GetSessionCacheClient()
		sessions = ai.NewRedisSessionStore(client, sessionTTL)
		redisClients = append(redisClients, client)
	} else {
		sessions = ai.NewMemorySessionStore(sessionTTL)
	}

	if config.AppConfig.GeminiAPIKey == "" {
		logger.Sugar().Fatal("main: GEMINI_API_KEY is required")
	}
	model, err := ai.NewGeminiModel(
		context.Background(),
		config.AppConfig.GeminiAPIKey,
		config.AppConfig.GeminiModel,
		ai.SystemPrompt,
		toolRegistry.Catalog(),
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini model: %v", err)
	}

	assistant := ai.NewDefaultAssistantService(model, toolRegistry, sessions)
	assistant.ModelTimeout = time.Duration(config.AppConfig.ModelTimeoutSec) * time.Second
	assistant.ToolTimeout = time.Duration(config.AppConfig.BackendTimeoutSec) * time.Second

	utils.StartHealthMonitor(redisClients, mongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	assistantHandler := handlers.NewAssistantHandler(assistant)
	routes.RegisterRoutes(router, assistantHandler)

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
