package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/enterprise-service/admin-backend/database"
	"github.com/enterprise-service/admin-backend/events"
	"github.com/enterprise-service/admin-backend/handlers"
	"github.com/enterprise-service/admin-backend/metrics"
	"github.com/enterprise-service/admin-backend/middleware"
	"github.com/enterprise-service/admin-backend/services"
	"github.com/enterprise-service/admin-backend/utils"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	utils.SetupLogging(utils.GetEnvOrDefault("LOG_FORMAT", "json"), utils.GetEnvOrDefault("LOG_LEVEL", "info"))

	slog.Info("Starting Admin Backend initialization")

	// Initialize GORM database connection
	dbConfig := database.NewDatabaseConfig()
	gormDB, err := database.ConnectGormDB(dbConfig)
	if err != nil {
		slog.Error("Failed to connect to GORM database", "error", err)
		os.Exit(1)
	}

	// Token signing configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	jwtExpiry, err := time.ParseDuration(utils.GetEnvOrDefault("JWT_EXPIRY", "24h"))
	if err != nil {
		slog.Error("Invalid JWT_EXPIRY duration", "error", err)
		os.Exit(1)
	}
	authService := services.NewAuthService(jwtSecret, jwtExpiry)

	// Events side channel. The service runs without it when Redis is down.
	eventsClient := connectEvents()
	if eventsClient != nil {
		defer eventsClient.Close()
	}

	httpMetrics := metrics.NewHTTPMetrics()

	// Initialize handlers
	handler := handlers.NewHandler(gormDB, authService, eventsClient, httpMetrics)

	// Create a mux for API routes
	apiMux := http.NewServeMux()
	handler.SetupRoutes(apiMux)

	// Setup middleware chain (CORS -> metrics) around the API mux
	corsMiddleware := middleware.NewCORSMiddleware()
	apiHandler := corsMiddleware(httpMetrics.Middleware(apiMux))

	// Top-level mux keeps operational endpoints outside the API chain
	topLevelMux := http.NewServeMux()
	topLevelMux.Handle("/healthz", utils.PanicRecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		type DBHealth struct {
			Status   string `json:"status"`
			Error    string `json:"error,omitempty"`
			Database string `json:"database,omitempty"`
		}
		type HealthStatus struct {
			Status   string   `json:"status"`
			Service  string   `json:"service"`
			Database DBHealth `json:"database"`
			Events   string   `json:"events"`
		}

		status := HealthStatus{
			Status:  "healthy",
			Service: "admin-backend",
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		sqlDB, err := gormDB.DB()
		if err != nil {
			status.Database = DBHealth{Status: "unhealthy", Error: fmt.Sprintf("failed to get sql.DB: %v", err)}
			status.Status = "unhealthy"
		} else if err := sqlDB.PingContext(ctx); err != nil {
			status.Database = DBHealth{Status: "unhealthy", Error: err.Error()}
			status.Status = "unhealthy"
		} else {
			status.Database = DBHealth{Status: "healthy", Database: dbConfig.Database}
		}

		if err := eventsClient.HealthCheck(ctx); err != nil {
			status.Events = "unavailable"
		} else {
			status.Events = "healthy"
		}

		statusCode := http.StatusOK
		if status.Status != "healthy" {
			statusCode = http.StatusServiceUnavailable
		}

		utils.RespondWithJSON(w, statusCode, status)
	})))
	topLevelMux.Handle("/metrics", promhttp.Handler())
	topLevelMux.Handle("/", apiHandler)

	serverConfig := utils.DefaultServerConfig()
	server := utils.CreateServer(serverConfig, topLevelMux)

	if err := utils.StartServerWithGracefulShutdown(server, "admin-backend"); err != nil {
		os.Exit(1)
	}
}

// connectEvents builds the Redis-backed events client from REDIS_* settings.
// Connection failure is logged and tolerated.
func connectEvents() *events.Client {
	redisDB, err := strconv.Atoi(utils.GetEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		slog.Warn("Invalid REDIS_DB value, using 0", "error", err)
		redisDB = 0
	}

	client, err := events.NewClient(&events.Config{
		Addr:     utils.GetEnvOrDefault("REDIS_HOST", "localhost") + ":" + utils.GetEnvOrDefault("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	})
	if err != nil {
		slog.Warn("Events side channel unavailable, continuing without it", "error", err)
		return nil
	}

	slog.Info("Connected to events side channel")
	return client
}
