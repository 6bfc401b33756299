package pricing

import (
	"math"

	"venuepay/internal/drafts"
)

// Event-type discounts and the weekend surcharge stack multiplicatively:
// the surcharge is computed on the already event-type-discounted base.
const (
	birthdayDiscountRate   = 0.05
	babyshowerDiscountRate = 0.03
	weekendSurchargeRate   = 0.05
)

// RoundHalfUp rounds to the nearest whole currency unit, half away from zero.
// All amounts in this service are paise-free integer INR.
func RoundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// EligibleAmount is the subset of the total against which promotional-offer
// minimums and discounts are computed. Add-ons are excluded per policy.
func EligibleAmount(d *drafts.BookingDraft) int64 {
	return d.BaseRental + d.StageAmount + d.BannerAmount + d.TransportEstimate
}

// ComputeTotal computes the raw undiscounted total for a draft: the eligible
// base adjusted for event type and weekend surcharge, plus add-ons.
func ComputeTotal(d *drafts.BookingDraft) int64 {
	base := float64(EligibleAmount(d))

	switch d.EventType {
	case "birthday":
		base = base * (1 - birthdayDiscountRate)
	case "babyshower":
		base = base * (1 - babyshowerDiscountRate)
	}

	if d.IsWeekendStart() {
		base = base * (1 + weekendSurchargeRate)
	}

	return RoundHalfUp(base) + d.AddOnsAmount
}

// FinalAmount computes the final payable total for a draft with the given
// discounts applied.
//
// The draft's TotalAmount already embeds any offer discount decided earlier
// in the flow, so the pre-discount original total is reconstructed by adding
// the discount amounts back before subtracting both again. Recomputation is
// therefore stable no matter how many times the screen re-renders.
func FinalAmount(d *drafts.BookingDraft, discounts Discounts) int64 {
	// Live shows are exempt from all offer/coupon discounting
	if d.IsLiveShow() {
		return d.TotalAmount
	}

	original := OriginalTotal(d, discounts)

	offerDiscount := discounts.OfferAmount
	if offerDiscount < 0 {
		offerDiscount = 0
	}
	if offerDiscount > original {
		offerDiscount = original
	}

	// Coupons never discount add-ons, stage, banner, or transport
	couponDiscount := discounts.CouponAmount
	if couponDiscount < 0 {
		couponDiscount = 0
	}
	if couponDiscount > d.BaseRental {
		couponDiscount = d.BaseRental
	}

	final := original - offerDiscount - couponDiscount
	if final < 0 {
		final = 0
	}
	return final
}

// OriginalTotal reconstructs the pre-discount total from a draft whose
// TotalAmount already has the given discounts subtracted.
func OriginalTotal(d *drafts.BookingDraft, discounts Discounts) int64 {
	original := d.TotalAmount
	if discounts.OfferAmount > 0 {
		original += discounts.OfferAmount
	}
	if discounts.CouponAmount > 0 {
		original += discounts.CouponAmount
	}
	return original
}

// AdvanceAmount derives the advance payable from the final amount per the
// policy. A disabled or malformed policy falls back to fallbackPct (50% in
// production config). The advance never exceeds the full amount.
func AdvanceAmount(finalAmount int64, policy *AdvancePaymentPolicy, fallbackPct float64) int64 {
	var advance int64

	switch {
	case policy == nil || !policy.Enabled:
		advance = RoundHalfUp(float64(finalAmount) * fallbackPct / 100)
	case policy.Type == PolicyTypePercentage && policy.Percentage > 0:
		advance = RoundHalfUp(float64(finalAmount) * policy.Percentage / 100)
	case policy.Type == PolicyTypeFixed && policy.FixedAmount > 0:
		// Fixed advances are not scaled by booking size
		advance = policy.FixedAmount
	default:
		advance = RoundHalfUp(float64(finalAmount) * fallbackPct / 100)
	}

	if advance > finalAmount {
		advance = finalAmount
	}
	if advance < 0 {
		advance = 0
	}
	return advance
}

// PayableAmount selects the amount actually charged for the chosen payment type
func PayableAmount(finalAmount int64, paymentType string, policy *AdvancePaymentPolicy, fallbackPct float64) int64 {
	if paymentType == drafts.PaymentTypeAdvance {
		return AdvanceAmount(finalAmount, policy, fallbackPct)
	}
	return finalAmount
}

// BuildBreakdown assembles the amount snapshot forwarded to verification
func BuildBreakdown(d *drafts.BookingDraft, total, paid int64) Breakdown {
	return Breakdown{
		Total:      total,
		Paid:       paid,
		BaseRental: d.BaseRental,
		AddOns:     d.AddOnsAmount,
		Banner:     d.BannerAmount,
		Stage:      d.StageAmount,
		Transport:  d.TransportEstimate,
	}
}
