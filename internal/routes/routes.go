// Package routes defines HTTP routes for the auth service.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/webstack-labs/auth-service/internal/config"
	"github.com/webstack-labs/auth-service/internal/handlers"
	"github.com/webstack-labs/auth-service/internal/middleware"
)

// Setup configures all HTTP routes for the application.
func Setup(router *gin.Engine, authHandler *handlers.AuthHandler, healthHandler *handlers.HealthHandler, cfg *config.Config, registry *prometheus.Registry) {
	router.Use(middleware.CSRF(cfg.AllowedOrigins))

	router.GET("/health", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	router.GET("/", authHandler.Welcome)
	router.POST("/users", authHandler.Register)
	router.POST("/sessions", authHandler.Login)
	router.DELETE("/sessions", authHandler.Logout)
	router.GET("/profile", authHandler.Profile)
	router.POST("/reset_password", authHandler.GetResetPasswordToken)
	router.PUT("/reset_password", authHandler.UpdatePassword)
}
