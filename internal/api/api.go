// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stylesense/backend/internal/api/handlers"
	"github.com/stylesense/backend/internal/api/middleware"
	"github.com/stylesense/backend/internal/service"
)

type Services struct {
	AnalyticsService *service.AnalyticsService
	ProductService   *service.ProductService
	OrderService     *service.OrderService
	AuthService      *service.AuthService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
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

	if services != nil {
		if services.AuthService != nil {
			authHandler := handlers.NewAuthHandler(services.AuthService)
			authGroup := apiGroup.Group("/auth")
			{
				authGroup.POST("/register", authHandler.Register)
				authGroup.POST("/login", authHandler.Login)
				authGroup.PUT("/profile", middleware.Protect(services.AuthService), authHandler.UpdateProfile)
				authGroup.PUT("/password", middleware.Protect(services.AuthService), authHandler.UpdatePassword)
			}
		}

		if services.ProductService != nil {
			productHandler := handlers.NewProductHandler(services.ProductService)
			productGroup := apiGroup.Group("/products")
			{
				productGroup.GET("", productHandler.List)
				productGroup.GET("/:id", productHandler.Get)

				if services.AuthService != nil {
					adminOnly := productGroup.Group("", middleware.Protect(services.AuthService), middleware.Admin())
					adminOnly.POST("", productHandler.Create)
					adminOnly.PUT("/:id", productHandler.Update)
					adminOnly.DELETE("/:id", productHandler.Delete)
				}
			}
		}

		if services.OrderService != nil && services.AuthService != nil {
			orderHandler := handlers.NewOrderHandler(services.OrderService)
			orderGroup := apiGroup.Group("/orders", middleware.Protect(services.AuthService))
			{
				orderGroup.POST("", orderHandler.Create)
				orderGroup.GET("", middleware.Admin(), orderHandler.List)
				orderGroup.PUT("/:id/status", middleware.Admin(), orderHandler.UpdateStatus)
			}
		}

		if services.AnalyticsService != nil {
			analyticsHandler := handlers.NewAnalyticsHandler(services.AnalyticsService)
			analyticsGroup := apiGroup.Group("/analytics")
			{
				analyticsGroup.GET("/predict", analyticsHandler.GetPredictions)
				analyticsGroup.GET("/stats", analyticsHandler.GetStats)
			}
		}
	}

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
