package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/rcifuentes/caja-api/internal/application/service"
	"github.com/rcifuentes/caja-api/internal/config"
	"github.com/rcifuentes/caja-api/internal/infrastructure/posclient"
	"github.com/rcifuentes/caja-api/internal/infrastructure/session"
	"github.com/rcifuentes/caja-api/internal/presentation/http/handler"
	"github.com/rcifuentes/caja-api/internal/presentation/http/routes"
	"github.com/rcifuentes/caja-api/pkg/currency"
	"github.com/rcifuentes/caja-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize JWT manager (tokens are minted by the back office with the
	// same shared secret; this side only validates)
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize the sale service client
	pos := posclient.New(cfg.Pos.BaseURL, cfg.Pos.ServiceToken, cfg.Pos.Timeout)

	// Initialize in-memory checkout sessions and the currency formatter
	sessions := session.NewStore()
	money := currency.NewFormatter(cfg.Checkout.CurrencyLocale)

	// Initialize services
	checkoutService := service.NewCheckoutService(pos, sessions, money)
	catalogService := service.NewCatalogService(pos, cfg.Checkout.SearchDebounce)
	tillService := service.NewTillService(pos, sessions)

	// Initialize handlers
	handlers := &routes.Handlers{
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Till:     handler.NewTillHandler(tillService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)
	log.Printf("Sale service: %s", cfg.Pos.BaseURL)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
