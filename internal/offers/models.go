package offers

// Offer types. A coupon offer and a non-coupon promotional offer occupy
// separate slots and may both be active at once.
const (
	TypeCoupon   = "coupon"
	TypeFestival = "festival"
	TypeBirthday = "birthday"
	TypeReferral = "referral"
)

// Discount value semantics
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Offer is a backend-defined discount rule, either a promotional offer or a
// coupon resolved from a user-entered code.
type Offer struct {
	ID                string  `json:"id"`
	Type              string  `json:"type"`
	Title             string  `json:"title"`
	DiscountType      string  `json:"discount_type"`
	DiscountValue     float64 `json:"discount_value"`
	CouponCode        string  `json:"coupon_code,omitempty"`
	MinPurchaseAmount int64   `json:"min_purchase_amount,omitempty"`
	MaxDiscountAmount int64   `json:"max_discount_amount,omitempty"`
}

// IsCoupon reports whether the offer occupies the coupon slot
func (o *Offer) IsCoupon() bool {
	return o.Type == TypeCoupon
}

// AppliedOffer is the snapshot of an offer inside a DiscountDescriptor
type AppliedOffer struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	Title         string  `json:"title"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	CouponCode    string  `json:"coupon_code,omitempty"`
}

// DiscountDescriptor is a resolved discount against a concrete purchase amount
type DiscountDescriptor struct {
	DiscountAmount int64        `json:"discount_amount"`
	Applied        AppliedOffer `json:"applied_offer"`
}
