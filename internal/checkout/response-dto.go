package checkout

import (
	"venuepay/internal/drafts"
	"venuepay/internal/gateway"
	"venuepay/internal/offers"
	"venuepay/internal/pricing"
)

// Navigation targets after a completed checkout
const (
	NavigateHome         = "home"
	NavigateLiveTickets  = "live_tickets"
	NavigateSurpriseGift = "surprise_gift"
)

// QuoteResponse is the fully resolved amount picture for a draft
type QuoteResponse struct {
	DraftID string      `json:"draft_id"`
	Kind    drafts.Kind `json:"kind"`

	OriginalTotal int64 `json:"original_total"`
	FinalAmount   int64 `json:"final_amount"`

	OfferDiscount  int64 `json:"offer_discount"`
	CouponDiscount int64 `json:"coupon_discount"`

	AdvanceEnabled bool  `json:"advance_enabled"`
	AdvanceAmount  int64 `json:"advance_amount"`

	AppliedOffer  *drafts.AppliedOfferSnapshot `json:"applied_offer,omitempty"`
	AppliedCoupon *drafts.AppliedOfferSnapshot `json:"applied_coupon,omitempty"`

	// AvailableOffer is the best promotional offer the draft qualifies for
	// while its offer slot is still empty, surfaced for display only
	AvailableOffer *offers.Offer `json:"available_offer,omitempty"`

	Breakdown pricing.Breakdown `json:"breakdown"`
}

// PaymentSessionResponse hands the client everything needed to open the
// gateway widget
type PaymentSessionResponse struct {
	Session *gateway.Session `json:"session"`
	Amount  int64            `json:"amount"` // whole INR actually charged
}

// NavigationOutcome tells the client where to land after a terminal checkout
type NavigationOutcome struct {
	Target       string      `json:"target"`
	Success      bool        `json:"success"`
	BookingID    string      `json:"booking_id,omitempty"`
	OrderID      string      `json:"order_id,omitempty"`
	Kind         drafts.Kind `json:"kind,omitempty"`
	SurpriseGift bool        `json:"surprise_gift,omitempty"`
	Message      string      `json:"message,omitempty"`
}

// FailureResponse is the terminal answer to a gateway failure callback.
// Cancelled responses carry no message: a user who backed out gets no alert.
type FailureResponse struct {
	Cancelled bool   `json:"cancelled"`
	Category  string `json:"category,omitempty"`
	Message   string `json:"message,omitempty"`
}
