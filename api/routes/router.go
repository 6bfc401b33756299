// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"venuepay/internal/authority"
	"venuepay/internal/checkout"
	"venuepay/internal/drafts"
	"venuepay/internal/gateway"
	"venuepay/internal/notifications"
	"venuepay/internal/offers"
	"venuepay/internal/payments"
	"venuepay/internal/shared/config"
	"venuepay/internal/shared/database"
	"venuepay/pkg/cache"
	"venuepay/pkg/logger"
	"venuepay/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config      *config.Config
	db          *database.DB
	publisher   notifications.Publisher
	rateLimiter *ratelimit.RateLimiter
	logger      *logger.Logger
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher, rateLimiter *ratelimit.RateLimiter) *Router {
	return &Router{
		config:      cfg,
		db:          db,
		publisher:   publisher,
		rateLimiter: rateLimiter,
		logger:      logger.GetDefault(),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupCheckoutRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "venuepay-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "venuepay-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupCheckoutRoutes wires the full booking-to-payment pipeline: draft
// store, offer resolver, payment preparer, gateway adapter and the
// orchestrator on top of them.
func (r *Router) setupCheckoutRoutes(rg *gin.RouterGroup) {
	cacheService := cache.NewService(r.db.GetRedisClient())
	authorityClient := authority.NewClient(r.config.Authority, r.logger)

	draftRepo := drafts.NewRepository(cacheService, r.config.Redis.DraftTTL, r.config.Redis.SummaryTTL)
	draftController := drafts.NewController(draftRepo)
	drafts.SetupDraftRoutes(rg, draftController)

	offerService := offers.NewService(authorityClient)
	paymentRepo := payments.NewRepository(r.db.GetPostgreSQL())
	paymentService := payments.NewService(authorityClient, paymentRepo, r.logger)
	gatewayAdapter := gateway.NewAdapter(r.config.Razorpay, authorityClient, cacheService, r.logger)

	checkoutService := checkout.NewService(
		draftRepo,
		offerService,
		paymentService,
		paymentRepo,
		gatewayAdapter,
		authorityClient,
		cacheService,
		r.publisher,
		r.logger,
		r.config.AdvancePayment.FallbackPercentage,
	)
	checkoutController := checkout.NewController(checkoutService)

	var paymentLimiter gin.HandlerFunc
	if r.rateLimiter != nil {
		paymentLimiter = ratelimit.PaymentMiddleware(r.rateLimiter)
	}
	checkout.SetupCheckoutRoutes(rg, checkoutController, paymentLimiter)
}
