package pricing

// Advance payment policy types as served by the authority's settings endpoint
const (
	PolicyTypePercentage = "percentage"
	PolicyTypeFixed      = "fixed"
)

// AdvancePaymentPolicy governs whether "advance" is offered as a payment-type
// choice and how its amount is derived. Fetched once per screen session.
type AdvancePaymentPolicy struct {
	Enabled     bool    `json:"enabled"`
	Type        string  `json:"type"` // "percentage" or "fixed"
	Percentage  float64 `json:"percentage,omitempty"`
	FixedAmount int64   `json:"fixed_amount,omitempty"`
}

// Discounts carries the at-most-one promotional offer and at-most-one coupon
// active against a draft. Amounts are whole INR, already resolved by the
// offer resolver.
type Discounts struct {
	OfferAmount  int64
	CouponAmount int64
}

// Breakdown is the amount snapshot forwarded to payment verification
type Breakdown struct {
	Total      int64 `json:"total_amount"`
	Paid       int64 `json:"paid_amount"`
	BaseRental int64 `json:"base_rental"`
	AddOns     int64 `json:"addons_amount"`
	Banner     int64 `json:"banner_amount"`
	Stage      int64 `json:"stage_amount"`
	Transport  int64 `json:"transport_amount"`
}
