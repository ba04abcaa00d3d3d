package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rcifuentes/caja-api/internal/config"
	"github.com/rcifuentes/caja-api/internal/presentation/http/handler"
	"github.com/rcifuentes/caja-api/internal/presentation/http/middleware"
	"github.com/rcifuentes/caja-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Checkout *handler.CheckoutHandler
	Catalog  *handler.CatalogHandler
	Till     *handler.TillHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-cashier rate limiter
		rateLimiterCfg := middleware.DefaultRateLimiterConfig()
		rateLimiterCfg.RequestsPerSecond = float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration)
		rateLimiterCfg.BurstSize = deps.Cfg.RateLimit.Requests
		rateLimiter := middleware.NewCashierRateLimiter(rateLimiterCfg)
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Catalog
	protected.GET("/products/search", h.Catalog.Search)

	// Cart
	registerCartRoutes(protected, h)

	// Checkout fields and confirmation
	registerCheckoutRoutes(protected, h)

	// Till
	registerTillRoutes(protected, h)
}

func registerCartRoutes(protected *gin.RouterGroup, h *Handlers) {
	cart := protected.Group("/cart")
	{
		cart.GET("", h.Checkout.GetCart)
		cart.POST("/items", h.Checkout.AddItem)
		cart.POST("/scan", h.Checkout.Scan)
		cart.POST("/items/:id/quantity", h.Checkout.AdjustQuantity)
	}
}

func registerCheckoutRoutes(protected *gin.RouterGroup, h *Handlers) {
	checkout := protected.Group("/checkout")
	{
		checkout.PUT("/sale-type", h.Checkout.SetSaleType)
		checkout.PUT("/payment-method", h.Checkout.SetPaymentMethod)
		checkout.PUT("/amount-paid", h.Checkout.SetAmountPaid)
		checkout.PUT("/transaction-info", h.Checkout.SetTransactionInfo)
		checkout.POST("/validate", h.Checkout.Validate)
		checkout.POST("/confirm", h.Checkout.Confirm)
	}
}

func registerTillRoutes(protected *gin.RouterGroup, h *Handlers) {
	till := protected.Group("/till")
	{
		// Closing the till is destructive; only the cashier role may do it.
		till.POST("/close", middleware.RequireRole("cashier"), h.Till.Close)
	}
}
