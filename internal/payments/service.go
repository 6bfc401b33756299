package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venuepay/internal/pricing"
	"venuepay/pkg/logger"
)

var (
	// ErrPreparationFailed means no payment was attempted; safe to retry.
	ErrPreparationFailed = errors.New("payment preparation failed")

	// ErrVerificationFailed means the payment succeeded at the gateway but
	// server-side verification failed. Never invite a blind retry: re-paying
	// risks a double charge. The user is told to contact support.
	ErrVerificationFailed = errors.New("payment verification failed")
)

// PrepareRequest asks the authority to allocate a payment intent. The
// booking id is informational to the server, not required for issuance.
type PrepareRequest struct {
	BookingID *string `json:"booking_id,omitempty"`
	Amount    int64   `json:"amount"`
	Currency  string  `json:"currency"`
	Language  string  `json:"language"`
}

// VerifyRequest forwards the gateway confirmation plus the amount-breakdown
// snapshot to the authority's verification endpoint.
type VerifyRequest struct {
	Confirmation GatewayConfirmation `json:"confirmation"`
	BookingID    *string             `json:"booking_id"`
	Breakdown    pricing.Breakdown   `json:"breakdown"`
	PaymentType  string              `json:"payment_type"`
}

// PaymentAPI is the slice of the backend authority this service needs
type PaymentAPI interface {
	PreparePayment(ctx context.Context, token string, req PrepareRequest) (*PaymentIntent, error)
	VerifyPayment(ctx context.Context, token string, req VerifyRequest) error
}

// Service interface defines the contract for payment preparation and verification
type Service interface {
	// Prepare issues a fresh intent. Called once per user-initiated payment
	// attempt; stale intents are never reused across retries.
	Prepare(ctx context.Context, token string, req PrepareRequest) (*PaymentIntent, error)

	// Verify persists the payment server-side and writes the local ledger row
	Verify(ctx context.Context, token, userID string, req VerifyRequest) (*PaymentRecord, error)
}

type service struct {
	api    PaymentAPI
	repo   Repository
	logger *logger.Logger
}

// NewService creates a new payment service instance
func NewService(api PaymentAPI, repo Repository, log *logger.Logger) Service {
	return &service{
		api:    api,
		repo:   repo,
		logger: log,
	}
}

func (s *service) Prepare(ctx context.Context, token string, req PrepareRequest) (*PaymentIntent, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrPreparationFailed)
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}

	intent, err := s.api.PreparePayment(ctx, token, req)
	if err != nil {
		// Surface the server's message verbatim where it supplies one
		return nil, fmt.Errorf("%w: %v", ErrPreparationFailed, err)
	}
	if intent.OrderID == "" {
		return nil, fmt.Errorf("%w: authority returned no order id", ErrPreparationFailed)
	}

	s.logger.LogPaymentPrepared(ctx, intent.OrderID, intent.Amount, intent.Currency)
	return intent, nil
}

func (s *service) Verify(ctx context.Context, token, userID string, req VerifyRequest) (*PaymentRecord, error) {
	if err := s.api.VerifyPayment(ctx, token, req); err != nil {
		s.logger.LogVerificationFailed(ctx, req.Confirmation.PaymentID, req.Confirmation.OrderID, err)
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	record := &PaymentRecord{
		GatewayPaymentID: req.Confirmation.PaymentID,
		GatewayOrderID:   req.Confirmation.OrderID,
		BookingID:        req.BookingID,
		UserID:           userID,
		AmountTotal:      req.Breakdown.Total,
		AmountPaid:       req.Breakdown.Paid,
		BaseRental:       req.Breakdown.BaseRental,
		AddOns:           req.Breakdown.AddOns,
		Banner:           req.Breakdown.Banner,
		Stage:            req.Breakdown.Stage,
		Transport:        req.Breakdown.Transport,
		Currency:         "INR",
		PaymentType:      req.PaymentType,
		Status:           StatusVerified,
		VerifiedAt:       time.Now(),
	}

	// The authority is the system of record; a local ledger write failure
	// must not fail a payment that is already verified.
	if err := s.repo.CreateRecord(ctx, record); err != nil {
		s.logger.ErrorWithContext(ctx, "failed to write local payment ledger row", err, map[string]interface{}{
			"payment_id": req.Confirmation.PaymentID,
		})
	}

	bookingID := ""
	if req.BookingID != nil {
		bookingID = *req.BookingID
	}
	s.logger.LogPaymentVerified(ctx, req.Confirmation.PaymentID, req.Confirmation.OrderID, bookingID)

	return record, nil
}
