package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pollution_tracker/internal/client"
	"pollution_tracker/internal/config"
	"pollution_tracker/internal/handler"
	"pollution_tracker/internal/middleware"
	"pollution_tracker/internal/notify"
	"pollution_tracker/internal/repository"
	"pollution_tracker/internal/service"
	"pollution_tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Upstream calls to OpenWeather get this much time, total, per request.
const providerTimeout = 10 * time.Second

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// --- Logger ---
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpiration)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	logRepo := repository.NewAQILogRepository(dbPool)

	// --- Initialize External Clients ---
	aqiClient, err := client.NewOpenWeatherClient(cfg.OpenWeatherAPIKey, &http.Client{Timeout: providerTimeout}, logger)
	if err != nil {
		log.Fatalf("Failed to initialize OpenWeather client: %v", err)
	}
	smsSender := client.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, cfg.SMSCountryCode, logger)
	dispatcher := notify.NewAsyncDispatcher()

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, jwtUtil)
	pollutionService := service.NewPollutionService(userRepo, logRepo, aqiClient, smsSender, dispatcher, logger)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	pollutionHandler := handler.NewPollutionHandler(pollutionService, cfg.TestSMSRecipient)

	// --- Setup Gin Router ---
	router := gin.Default()

	// Simple CORS middleware (allow all for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// --- Register Routes ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	rootGroup := router.Group("")
	authHandler.RegisterAuthRoutes(rootGroup, jwtAuthMW)
	pollutionHandler.RegisterPollutionRoutes(rootGroup)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(context.Background()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	// Let in-flight SMS dispatches finish before exiting.
	dispatcher.Wait()

	log.Println("Server exiting")
}
