package authority

import (
	"context"
	"net/http"

	"venuepay/internal/payments"
)

// GatewayOrder is the backend-created Razorpay order consumed by the
// checkout widget. Amount is in minor units (paise).
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// createOrderRequest mirrors POST /payments/create-razorpay-order
type createOrderRequest struct {
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
}

// PreparePayment asks the authority to allocate a payment intent. Works with
// or without an existing booking id.
func (c *Client) PreparePayment(ctx context.Context, token string, req payments.PrepareRequest) (*payments.PaymentIntent, error) {
	var intent payments.PaymentIntent
	err := c.do(ctx, http.MethodPost, "/payments/prepare", token, req, &intent, c.defaultTimeout)
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

// CreateGatewayOrder creates one gateway order. A single attempt: the
// gateway adapter owns the retry policy.
func (c *Client) CreateGatewayOrder(ctx context.Context, token string, amountMinor int64, currency string) (*GatewayOrder, error) {
	req := createOrderRequest{Amount: amountMinor, Currency: currency}
	var order GatewayOrder
	err := c.do(ctx, http.MethodPost, "/payments/create-razorpay-order", token, req, &order, c.defaultTimeout)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifyPayment forwards the gateway confirmation and amount breakdown for
// server-side verification. Uses the critical timeout: this call decides
// whether a paid user sees success or a support message.
func (c *Client) VerifyPayment(ctx context.Context, token string, req payments.VerifyRequest) error {
	return c.do(ctx, http.MethodPost, "/payments/verify", token, req, nil, c.criticalTimeout)
}
