// Package gateway adapts the checkout flow to the Razorpay-style payment
// widget: it preflights configuration, creates the gateway order, hands the
// caller a ready-to-open option set and verifies confirmations.
package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"venuepay/internal/authority"
	"venuepay/internal/payments"
	"venuepay/internal/shared/config"
	"venuepay/internal/shared/constants"
	"venuepay/pkg/cache"
	"venuepay/pkg/logger"
)

// Session states
const (
	StateIdle         = "idle"
	StateInitializing = "initializing"
	StateAwaitingUser = "awaiting_user"
	StateSucceeded    = "succeeded"
	StateCancelled    = "cancelled"
	StateFailed       = "failed"
)

// OrderAPI creates gateway orders on the backend authority
type OrderAPI interface {
	CreateGatewayOrder(ctx context.Context, token string, amountMinor int64, currency string) (*authority.GatewayOrder, error)
}

// CheckoutOptions is everything the client needs to open the payment widget
type CheckoutOptions struct {
	KeyID       string `json:"key_id"`
	OrderID     string `json:"order_id"`
	Amount      int64  `json:"amount"` // minor units
	Currency    string `json:"currency"`
	Name        string `json:"name"`
	Description string `json:"description"`

	PrefillName    string `json:"prefill_name,omitempty"`
	PrefillEmail   string `json:"prefill_email,omitempty"`
	PrefillContact string `json:"prefill_contact,omitempty"`
}

// Session is one payment attempt from initialization to a terminal state
type Session struct {
	State   string          `json:"state"`
	DraftID string          `json:"draft_id"`
	Options CheckoutOptions `json:"options"`
}

// Adapter owns gateway sessions. At most one live session per draft,
// enforced with a Redis lock.
type Adapter struct {
	cfg    config.RazorpayConfig
	orders OrderAPI
	cache  cache.Service
	logger *logger.Logger
}

// NewAdapter creates a new gateway adapter
func NewAdapter(cfg config.RazorpayConfig, orders OrderAPI, cacheService cache.Service, log *logger.Logger) *Adapter {
	return &Adapter{
		cfg:    cfg,
		orders: orders,
		cache:  cacheService,
		logger: log,
	}
}

// Begin opens a payment session for the draft: preflight the configuration,
// take the per-draft session lock, create the gateway order and return the
// widget options in the awaiting-user state. The caller must Release the
// session once it reaches a terminal state.
func (a *Adapter) Begin(ctx context.Context, token, draftID string, intent *payments.PaymentIntent) (*Session, error) {
	if a.cfg.KeyID == "" {
		return nil, fmt.Errorf("%w: missing gateway key id", ErrConfiguration)
	}
	if intent == nil || intent.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment intent has no positive amount", ErrConfiguration)
	}

	lockKey := constants.BuildSessionLockKey(draftID)
	acquired, err := a.cache.SetNX(ctx, lockKey, intent.OrderID, constants.TTL_SESSION_LOCK)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire payment session lock: %w", err)
	}
	if !acquired {
		return nil, ErrSessionActive
	}

	order, err := a.createOrderWithRetry(ctx, token, intent.Amount*100, intent.Currency)
	if err != nil {
		a.Release(ctx, draftID)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreation, err)
	}
	// The widget silently refuses to open on a blank order id, so fail loudly here instead
	if order.ID == "" {
		a.Release(ctx, draftID)
		return nil, fmt.Errorf("%w: gateway returned an empty order id", ErrConfiguration)
	}

	return &Session{
		State:   StateAwaitingUser,
		DraftID: draftID,
		Options: CheckoutOptions{
			KeyID:          a.cfg.KeyID,
			OrderID:        order.ID,
			Amount:         order.Amount,
			Currency:       order.Currency,
			Name:           "VenuePay",
			Description:    "Venue booking payment",
			PrefillName:    intent.BillingName,
			PrefillEmail:   intent.BillingEmail,
			PrefillContact: intent.BillingPhone,
		},
	}, nil
}

// createOrderWithRetry retries order creation only on transport failures and
// upstream 502/503/504 responses, with doubling backoff. Validation and auth
// errors fail immediately.
func (a *Adapter) createOrderWithRetry(ctx context.Context, token string, amountMinor int64, currency string) (*authority.GatewayOrder, error) {
	backoff := a.cfg.RetryBackoff
	attempts := a.cfg.OrderRetries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		order, err := a.orders.CreateGatewayOrder(ctx, token, amountMinor, currency)
		if err == nil {
			return order, nil
		}
		lastErr = err

		if !authority.IsTransport(err) && !authority.IsRetryableStatus(err) {
			return nil, err
		}
		if attempt == attempts {
			break
		}

		a.logger.WarnWithContext(ctx, "gateway order creation failed, retrying", map[string]interface{}{
			"attempt": attempt,
			"backoff": backoff.String(),
			"error":   err.Error(),
		})

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, lastErr
}

// Release drops the per-draft session lock. Idempotent.
func (a *Adapter) Release(ctx context.Context, draftID string) {
	if err := a.cache.Delete(ctx, constants.BuildSessionLockKey(draftID)); err != nil {
		a.logger.WarnWithContext(ctx, "failed to release payment session lock", map[string]interface{}{
			"draft_id": draftID,
			"error":    err.Error(),
		})
	}
}

// VerifySignature checks the confirmation's HMAC-SHA256 signature over
// "order_id|payment_id" against the gateway key secret. This is a local
// tamper check; the authority performs its own verification afterwards.
func (a *Adapter) VerifySignature(conf payments.GatewayConfirmation) error {
	if conf.OrderID == "" || conf.PaymentID == "" || conf.Signature == "" {
		return fmt.Errorf("%w: incomplete confirmation", ErrSignatureMismatch)
	}

	mac := hmac.New(sha256.New, []byte(a.cfg.KeySecret))
	mac.Write([]byte(conf.OrderID + "|" + conf.PaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(conf.Signature)) {
		return ErrSignatureMismatch
	}
	return nil
}
