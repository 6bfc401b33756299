package checkout

import (
	"venuepay/internal/gateway"
	"venuepay/internal/payments"
)

// ApplyCouponRequest applies a user-entered coupon code to a draft
type ApplyCouponRequest struct {
	DraftID    string `json:"draft_id" binding:"required"`
	CouponCode string `json:"coupon_code" binding:"required"`
}

// RemoveCouponRequest clears the coupon slot on a draft
type RemoveCouponRequest struct {
	DraftID string `json:"draft_id" binding:"required"`
}

// HandlePaymentRequest starts one payment attempt for a draft
type HandlePaymentRequest struct {
	DraftID     string `json:"draft_id" binding:"required"`
	PaymentType string `json:"payment_type" binding:"required,oneof=full advance"`
}

// CompletePaymentRequest delivers the gateway confirmation for processing
type CompletePaymentRequest struct {
	DraftID      string                       `json:"draft_id" binding:"required"`
	PaymentType  string                       `json:"payment_type" binding:"required,oneof=full advance"`
	Confirmation payments.GatewayConfirmation `json:"confirmation" binding:"required"`
}

// FailPaymentRequest delivers the gateway failure callback, which covers both
// genuine errors and user cancellations
type FailPaymentRequest struct {
	DraftID string          `json:"draft_id" binding:"required"`
	Failure gateway.Failure `json:"failure"`
}
