// Package router wires the HTTP routes to their handlers.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"counselor-api/internal/client"
	"counselor-api/internal/handler"
	"counselor-api/internal/metrics"
	"counselor-api/internal/middleware"
	"counselor-api/internal/repository"
	"counselor-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB             repository.DynamoDBAPI
	Table          string
	S3Client       client.S3ClientInterface
	PresignUploads bool
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	BasePath       string
	JWTSecret      string
	DefaultUser    string
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(middleware.Identity(cfg.JWTSecret, cfg.DefaultUser))

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "counselor-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		// A nil table handle is a configuration error, not a
		// request-time error; report it here.
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "counselor-api"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "counselor-api"})
	})

	// Initialize repository, service and handler
	counselorRepo := repository.NewCounselorRepository(cfg.DB, cfg.Table, cfg.Metrics)
	counselorService := service.NewCounselorService(
		counselorRepo,
		cfg.S3Client,
		cfg.PresignUploads,
		cfg.Metrics,
		cfg.Logger,
	)
	counselorHandler := handler.NewCounselorHandler(counselorService, cfg.Logger)

	api := r.Group(cfg.BasePath)
	{
		api.POST("/create_counselor", counselorHandler.CreateCounselor)
		api.GET("/get_counselors", counselorHandler.GetCounselors)
		api.GET("/get_counselor/:counselorId", counselorHandler.GetCounselor)
		api.PUT("/update_counselor/:counselorId", counselorHandler.UpdateCounselor)
		api.DELETE("/delete_counselor/:counselorId", counselorHandler.DeleteCounselor)
	}

	return r
}
