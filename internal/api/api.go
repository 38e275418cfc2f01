// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/api/handlers"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/api/middleware"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Inventory *service.InventoryService
	Sales     *service.SalesService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8501"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Export-URL", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api/v1")

	if services == nil {
		return router
	}

	var reporters []handlers.SourceReporter

	if services.Inventory != nil {
		reporters = append(reporters, services.Inventory)
		inventoryHandler := handlers.NewInventoryHandler(services.Inventory)
		inventoryGroup := apiGroup.Group("/inventory")
		{
			inventoryGroup.GET("/dimensions", inventoryHandler.GetDimensions)
			inventoryGroup.GET("/items", inventoryHandler.GetItems)
			inventoryGroup.GET("/summary", inventoryHandler.GetSummary)
			inventoryGroup.GET("/alerts", inventoryHandler.GetAlerts)
			inventoryGroup.GET("/breakdown", inventoryHandler.GetBreakdown)
			inventoryGroup.GET("/export", inventoryHandler.Export)
		}
	}

	if services.Sales != nil {
		reporters = append(reporters, services.Sales)
		salesHandler := handlers.NewSalesHandler(services.Sales)
		salesGroup := apiGroup.Group("/sales")
		{
			salesGroup.GET("/dimensions", salesHandler.GetDimensions)
			salesGroup.GET("/items", salesHandler.GetItems)
			salesGroup.GET("/summary", salesHandler.GetSummary)
			salesGroup.GET("/top", salesHandler.GetTop)
			salesGroup.GET("/time_series", salesHandler.GetTimeSeries)
			salesGroup.GET("/export", salesHandler.Export)
		}
	}

	sourcesHandler := handlers.NewSourcesHandler(reporters...)
	apiGroup.GET("/sources", sourcesHandler.GetSources)
	apiGroup.POST("/sources/reload", sourcesHandler.Reload)

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
