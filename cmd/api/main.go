// Package main is the entry point for the auth service.
package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/webstack-labs/auth-service/internal/config"
	"github.com/webstack-labs/auth-service/internal/handlers"
	"github.com/webstack-labs/auth-service/internal/logging"
	"github.com/webstack-labs/auth-service/internal/metrics"
	"github.com/webstack-labs/auth-service/internal/models"
	"github.com/webstack-labs/auth-service/internal/repository"
	"github.com/webstack-labs/auth-service/internal/routes"
	"github.com/webstack-labs/auth-service/internal/service"
	redisclient "github.com/webstack-labs/auth-service/pkg/redis"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	log := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel), "auth-service", cfg.RedactedFields)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	redisClient, err := redisclient.NewClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	authMetrics := metrics.New(registry)

	userRepo := repository.NewUserRepository(db)
	hasher := service.NewBcryptHasher(0)
	sessions := service.NewSessionManager(userRepo, redisClient, cfg.SessionTTL)
	resets := service.NewResetTokens(userRepo, hasher)
	authService := service.NewAuthService(userRepo, hasher, sessions, resets, authMetrics, log)

	cookies := handlers.NewCookieHelper(cfg.Cookie, int(cfg.SessionTTL.Seconds()))
	authHandler := handlers.NewAuthHandler(authService, cookies, log)
	healthHandler := handlers.NewHealthHandler()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	routes.Setup(router, authHandler, healthHandler, cfg, registry)

	log.Info("starting auth service", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
