package checkout

import (
	"venuepay/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCheckoutRoutes configures all checkout-related routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, controller *Controller, paymentLimiter gin.HandlerFunc) {
	checkout := rg.Group("/checkout")
	checkout.Use(middleware.JWTAuth())
	{
		checkout.GET("/:draftId/quote", controller.GetQuote)
		checkout.POST("/coupon", controller.ApplyCoupon)
		checkout.DELETE("/coupon", controller.RemoveCoupon)
	}

	payment := checkout.Group("/payment")
	if paymentLimiter != nil {
		payment.Use(paymentLimiter)
	}
	{
		payment.POST("", controller.HandlePayment)
		payment.POST("/complete", controller.CompletePayment)
		payment.POST("/fail", controller.FailPayment)
	}
}
