package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/haf-search-api/internal/config"
	"github.com/haf-search-api/internal/service"
	"github.com/rs/zerolog"
)

// Pool is the slice of the database pool the HTTP layer reports on
type Pool interface {
	HealthCheck(ctx context.Context) error
	Stats() sql.DBStats
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, pool Pool, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))

	// Open CORS: the middleware sits between arbitrary frontends and the
	// HAF node, so every origin is allowed
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	// Handlers
	searchHandler := NewSearchHandler(services, log)

	router.GET("/", bannerHandler)
	router.GET("/health", healthHandler(pool))
	router.GET("/metrics", metricsHandler(pool))
	router.POST("/search", searchHandler.Search)

	return router
}

// bannerHandler tells people who open the API URL in a browser where to go
func bannerHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "haf-search-api",
		"message": "This is the API backend. Point your frontend at POST /search.",
	})
}

// healthHandler reports service and store health
func healthHandler(pool Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		dbStatus := "reachable"
		code := http.StatusOK

		if err := pool.HealthCheck(c.Request.Context()); err != nil {
			status = "degraded"
			dbStatus = err.Error()
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"database":  dbStatus,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "haf-search-api",
		})
	}
}

// metricsHandler exposes connection pool statistics
func metricsHandler(pool Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := pool.Stats()
		c.JSON(http.StatusOK, gin.H{
			"pool": gin.H{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
				"wait_count":       stats.WaitCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// requestIDMiddleware tags every request for log correlation
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString("request_id")).
			Msg("Request completed")
	}
}
