package main

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Skufu/vitalsight/internal/metrics"
	"github.com/Skufu/vitalsight/internal/report"
	"github.com/Skufu/vitalsight/internal/web"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

func setupRouter(cfg *Config, reports *report.Service, db HealthChecker, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		recoverWithLogger(logger),
		requestID(),
		requestLogger(logger),
		metrics.Middleware(),
		newIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).middleware(),
		limitBodySize(1<<20), // 1MB max body
		cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.SetHTMLTemplate(template.Must(web.Templates()))
	if cfg.StaticRoot != "" {
		router.Static("/static", cfg.StaticRoot)
	}

	router.GET("/", handleIndex)
	router.POST("/predict", handlePredictForm(reports, logger))
	router.POST("/api/predict", handlePredictAPI(reports, logger))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"db":     fmt.Sprintf("unhealthy: %v", err),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"db":     "ok",
		})
	})

	return router
}

// detectStaticRoot looks for a static directory in the working directory and
// up to two parents, so the binary works from the repo root or cmd/server.
func detectStaticRoot() string {
	startDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	candidates := []string{
		startDir,
		filepath.Dir(startDir),
		filepath.Dir(filepath.Dir(startDir)),
	}

	for _, dir := range candidates {
		if dirExists(filepath.Join(dir, "static")) {
			return filepath.Join(dir, "static")
		}
	}

	return ""
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
