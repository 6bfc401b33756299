package offers

import (
	"context"
	"errors"
	"fmt"

	"venuepay/internal/pricing"
)

var (
	// ErrCouponNotFound is a recoverable error: the coupon input is cleared,
	// the booking draft stays intact.
	ErrCouponNotFound = errors.New("coupon code not found or not applicable")

	// ErrBelowMinPurchase is returned when the eligible amount is below the
	// offer's minimum purchase threshold.
	ErrBelowMinPurchase = errors.New("purchase amount below offer minimum")
)

// OfferAPI is the slice of the backend authority this resolver needs.
// Defined here to avoid a dependency on the concrete client (and to keep
// tests on fakes).
type OfferAPI interface {
	// CheckOffer looks up a coupon code (or, with an empty code, discovers
	// the best applicable promotional offer) against the eligible amount.
	CheckOffer(ctx context.Context, token, couponCode string, purchaseAmount int64) (*Offer, error)

	// RecordUsage writes an offer usage row to the authority's ledger
	RecordUsage(ctx context.Context, token string, usage UsageRecord) error
}

// UsageRecord is one ledger entry, keyed to the resolved booking and the
// original pre-discount purchase amount.
type UsageRecord struct {
	OfferID        string `json:"offer_id"`
	OfferType      string `json:"offer_type"`
	CouponCode     string `json:"coupon_code,omitempty"`
	PurchaseAmount int64  `json:"purchase_amount"`
	BookingID      string `json:"booking_id,omitempty"`
}

// Service interface defines the contract for offer/coupon resolution
type Service interface {
	CheckCoupon(ctx context.Context, token, code string, eligibleAmount int64) (*Offer, error)
	DiscoverOffer(ctx context.Context, token string, eligibleAmount int64) (*Offer, error)
	Applicable(offer *Offer, eligibleAmount int64) bool
	Describe(offer *Offer, purchaseAmount, baseRental int64) DiscountDescriptor
	RecordUsage(ctx context.Context, token string, usage UsageRecord) error
}

type service struct {
	api OfferAPI
}

// NewService creates a new offer resolver
func NewService(api OfferAPI) Service {
	return &service{api: api}
}

// CheckCoupon resolves a user-entered coupon code against the eligible
// (base-rental only) amount. An unknown or inapplicable code surfaces as
// ErrCouponNotFound, never as a fatal failure.
func (s *service) CheckCoupon(ctx context.Context, token, code string, eligibleAmount int64) (*Offer, error) {
	if code == "" {
		return nil, ErrCouponNotFound
	}

	offer, err := s.api.CheckOffer(ctx, token, code, eligibleAmount)
	if err != nil {
		return nil, fmt.Errorf("coupon lookup failed: %w", err)
	}
	if offer == nil {
		return nil, ErrCouponNotFound
	}

	if !s.Applicable(offer, eligibleAmount) {
		return nil, ErrBelowMinPurchase
	}

	return offer, nil
}

// DiscoverOffer asks the authority for the best applicable promotional offer
func (s *service) DiscoverOffer(ctx context.Context, token string, eligibleAmount int64) (*Offer, error) {
	offer, err := s.api.CheckOffer(ctx, token, "", eligibleAmount)
	if err != nil {
		return nil, fmt.Errorf("offer discovery failed: %w", err)
	}
	if offer == nil || !s.Applicable(offer, eligibleAmount) {
		return nil, nil
	}
	return offer, nil
}

// Applicable enforces the minimum-purchase rule
func (s *service) Applicable(offer *Offer, eligibleAmount int64) bool {
	if offer == nil {
		return false
	}
	if offer.MinPurchaseAmount > 0 && eligibleAmount < offer.MinPurchaseAmount {
		return false
	}
	return true
}

// Describe resolves an offer into a concrete discount against a purchase
// amount. Coupon discounts are computed against the base rental only; the
// calculator applies the hard cap later, but the descriptor is already
// bounded here so it can be displayed truthfully.
func (s *service) Describe(offer *Offer, purchaseAmount, baseRental int64) DiscountDescriptor {
	eligible := purchaseAmount
	if offer.IsCoupon() {
		eligible = baseRental
	}

	var amount int64
	switch offer.DiscountType {
	case DiscountTypePercentage:
		amount = pricing.RoundHalfUp(float64(eligible) * offer.DiscountValue / 100)
	case DiscountTypeFixed:
		amount = int64(offer.DiscountValue)
	}

	if offer.MaxDiscountAmount > 0 && amount > offer.MaxDiscountAmount {
		amount = offer.MaxDiscountAmount
	}
	if amount > eligible {
		amount = eligible
	}
	if amount < 0 {
		amount = 0
	}

	return DiscountDescriptor{
		DiscountAmount: amount,
		Applied: AppliedOffer{
			ID:            offer.ID,
			Type:          offer.Type,
			Title:         offer.Title,
			DiscountType:  offer.DiscountType,
			DiscountValue: offer.DiscountValue,
			CouponCode:    offer.CouponCode,
		},
	}
}

// RecordUsage forwards one usage row to the authority's ledger
func (s *service) RecordUsage(ctx context.Context, token string, usage UsageRecord) error {
	return s.api.RecordUsage(ctx, token, usage)
}
