package checkout

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"venuepay/internal/drafts"
	"venuepay/internal/gateway"
	"venuepay/internal/offers"
	"venuepay/internal/payments"
	"venuepay/internal/shared/middleware"
	"venuepay/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func userID(ctx *gin.Context) (string, bool) {
	v, exists := ctx.Get(middleware.ContextUserID)
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetQuote handles GET /api/v1/checkout/:draftId/quote
func (c *Controller) GetQuote(ctx *gin.Context) {
	quote, err := c.service.Quote(ctx.Request.Context(), middleware.BearerToken(ctx), ctx.Param("draftId"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Quote resolved", quote, nil)
}

// ApplyCoupon handles POST /api/v1/checkout/coupon
func (c *Controller) ApplyCoupon(ctx *gin.Context) {
	var req ApplyCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, response.ValidationErrors(err))
		return
	}

	quote, err := c.service.ApplyCoupon(ctx.Request.Context(), middleware.BearerToken(ctx), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Coupon applied", quote, nil)
}

// RemoveCoupon handles DELETE /api/v1/checkout/coupon
func (c *Controller) RemoveCoupon(ctx *gin.Context) {
	var req RemoveCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, response.ValidationErrors(err))
		return
	}

	quote, err := c.service.RemoveCoupon(ctx.Request.Context(), middleware.BearerToken(ctx), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Coupon removed", quote, nil)
}

// HandlePayment handles POST /api/v1/checkout/payment
func (c *Controller) HandlePayment(ctx *gin.Context) {
	uid, ok := userID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req HandlePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, response.ValidationErrors(err))
		return
	}

	session, err := c.service.HandlePayment(ctx.Request.Context(), middleware.BearerToken(ctx), uid, req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Payment session opened", session, nil)
}

// CompletePayment handles POST /api/v1/checkout/payment/complete
func (c *Controller) CompletePayment(ctx *gin.Context) {
	uid, ok := userID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CompletePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, response.ValidationErrors(err))
		return
	}

	outcome, err := c.service.CompletePayment(ctx.Request.Context(), middleware.BearerToken(ctx), uid, req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Checkout completed", outcome, nil)
}

// FailPayment handles POST /api/v1/checkout/payment/fail
func (c *Controller) FailPayment(ctx *gin.Context) {
	var req FailPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, response.ValidationErrors(err))
		return
	}

	result, err := c.service.FailPayment(ctx.Request.Context(), middleware.BearerToken(ctx), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Failure recorded", result, nil)
}

// respondError maps orchestrator errors to HTTP responses. The distinction
// that matters most: retryable failures say "try again", verification and
// finalization failures say "contact support".
func (c *Controller) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, drafts.ErrDraftNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking draft not found", nil, nil)
	case errors.Is(err, offers.ErrCouponNotFound):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Coupon code not found or not applicable", nil, nil)
	case errors.Is(err, offers.ErrBelowMinPurchase):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Purchase amount is below the offer minimum", nil, nil)
	case errors.Is(err, gateway.ErrSessionActive):
		response.RespondJSON(ctx, "error", http.StatusConflict, MsgSessionActive, nil, nil)
	case errors.Is(err, ErrAlreadyConfirmed):
		response.RespondJSON(ctx, "error", http.StatusConflict, "This payment was already processed", nil, nil)
	case errors.Is(err, payments.ErrPreparationFailed),
		errors.Is(err, gateway.ErrOrderCreation),
		errors.Is(err, gateway.ErrConfiguration):
		response.RespondJSON(ctx, "error", http.StatusBadGateway, MsgPreparationFailed, nil, err.Error())
	case errors.Is(err, payments.ErrVerificationFailed):
		response.RespondJSON(ctx, "error", http.StatusBadGateway, MsgVerificationFailed, nil, nil)
	case errors.Is(err, ErrFinalizationFailed):
		response.RespondJSON(ctx, "error", http.StatusBadGateway, MsgFinalizationFailed, nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Something went wrong", nil, err.Error())
	}
}
