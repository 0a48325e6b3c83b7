package main

import (
	"log/slog"
	"os"

	"github.com/maskhan/convert_backend/internal/adapters/database/leveldbstore"
	portsrepo "github.com/maskhan/convert_backend/internal/core/ports/repositories"
	"github.com/maskhan/convert_backend/internal/core/services"
	"github.com/maskhan/convert_backend/internal/handlers"
	"github.com/maskhan/convert_backend/internal/middleware"
	"github.com/maskhan/convert_backend/internal/platform/merchant"
	"github.com/maskhan/convert_backend/internal/utils"
	"github.com/maskhan/convert_backend/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// @title Convert Backend API
// @version 1.0
// @description Locked quote engine for crypto, pulsa and e-wallet conversions.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	merchantCfg := merchant.Load(cfg.MerchantConfigPath, logger)

	// Open the local durable ledger store
	ledgerRepo, err := leveldbstore.NewLedgerRepository(cfg.LedgerDBPath)
	if err != nil {
		logger.Error("Failed to open ledger store", slog.String("path", cfg.LedgerDBPath), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := ledgerRepo.Close(); cerr != nil {
			logger.Error("Error closing ledger store", slog.String("error", cerr.Error()))
		}
	}()
	logger.Info("Ledger store opened.", slog.String("path", cfg.LedgerDBPath))

	repos := portsrepo.RepositoryProvider{LedgerRepo: ledgerRepo}
	serviceContainer := services.NewServiceContainer(cfg, merchantCfg, repos, logger)

	posthogClient := utils.InitializePosthogClient(cfg.PostHogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	r.Use(middleware.PosthogMiddleware(posthogClient))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
