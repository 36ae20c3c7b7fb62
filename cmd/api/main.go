package main

import (
	"github.com/Selvam-T/POS-sub000/internal/application/service"
	"github.com/Selvam-T/POS-sub000/internal/config"
	"github.com/Selvam-T/POS-sub000/internal/infrastructure/database"
	"github.com/Selvam-T/POS-sub000/internal/infrastructure/repository"
	"github.com/Selvam-T/POS-sub000/internal/presentation/http/handler"
	"github.com/Selvam-T/POS-sub000/internal/presentation/http/routes"
	"github.com/Selvam-T/POS-sub000/pkg/logger"
	"github.com/Selvam-T/POS-sub000/pkg/printer"
	"github.com/Selvam-T/POS-sub000/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Setup(cfg.App.Env, cfg.App.Debug)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Open the receipt database (migrations run inside)
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open receipt database")
	}

	// Seed default data
	if err := database.SeedAdmin(db, cfg); err != nil {
		log.Warn().Err(err).Msg("Failed to seed default admin cashier")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	txManager := database.NewTxManager(db)
	receiptRepo := repository.NewReceiptRepository(db)
	counterRepo := repository.NewCounterRepository(db)
	cashierRepo := repository.NewCashierRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize printer, falling back to null printer")
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	allocator := service.NewNumberAllocator(counterRepo)
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.CharWidth, cfg.App.Name)
	checkoutService := service.NewCheckoutService(txManager, receiptRepo, allocator, printerService)
	receiptService := service.NewReceiptService(txManager, receiptRepo, allocator)
	authService := service.NewAuthService(cashierRepo, jwtManager)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Checkout: handler.NewCheckoutHandler(checkoutService, receiptService),
		Receipt:  handler.NewReceiptHandler(receiptService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Str("env", cfg.App.Env).Msgf("Starting %s server", cfg.App.Name)

	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
