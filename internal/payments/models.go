package payments

import (
	"time"

	"github.com/google/uuid"
)

// PaymentIntent is the server-issued intent consumed by exactly one gateway
// session. Immutable once issued; a new amount requires a new intent.
type PaymentIntent struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Language string `json:"language"`

	BillingName    string `json:"billing_name,omitempty"`
	BillingEmail   string `json:"billing_email,omitempty"`
	BillingPhone   string `json:"billing_phone,omitempty"`
	BillingAddress string `json:"billing_address,omitempty"`
}

// GatewayConfirmation is the opaque proof-of-payment returned by the gateway
// widget, forwarded verbatim to server-side verification.
type GatewayConfirmation struct {
	PaymentID string `json:"razorpay_payment_id"`
	OrderID   string `json:"razorpay_order_id"`
	Signature string `json:"razorpay_signature"`
}

// Payment record statuses
const (
	StatusVerified = "VERIFIED"
	StatusFailed   = "FAILED"
)

// PaymentRecord is the durable local ledger row written after server-side
// verification succeeds. A succeeded payment is never lost even if every
// downstream best-effort step fails.
type PaymentRecord struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	GatewayPaymentID string    `gorm:"uniqueIndex;not null" json:"gateway_payment_id"`
	GatewayOrderID   string    `gorm:"index;not null" json:"gateway_order_id"`
	BookingID        *string   `gorm:"index" json:"booking_id,omitempty"` // null for rack orders
	UserID           string    `gorm:"index" json:"user_id"`

	AmountTotal int64  `gorm:"not null" json:"amount_total"`
	AmountPaid  int64  `gorm:"not null" json:"amount_paid"`
	BaseRental  int64  `json:"base_rental"`
	AddOns      int64  `json:"addons_amount"`
	Banner      int64  `json:"banner_amount"`
	Stage       int64  `json:"stage_amount"`
	Transport   int64  `json:"transport_amount"`
	Currency    string `gorm:"type:varchar(3);default:'INR'" json:"currency"`

	PaymentType string `gorm:"type:varchar(10)" json:"payment_type"` // full or advance
	Status      string `gorm:"type:varchar(20);default:'VERIFIED'" json:"status"`

	VerifiedAt time.Time `json:"verified_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the table name for PaymentRecord
func (PaymentRecord) TableName() string {
	return "payment_records"
}

// CheckoutOutcome records the terminal result of one orchestrator run,
// including which best-effort steps failed.
type CheckoutOutcome struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	GatewayPaymentID string    `gorm:"index;not null" json:"gateway_payment_id"`
	BookingID        string    `gorm:"index" json:"booking_id"`
	OrderID          string    `json:"order_id,omitempty"` // rack order id
	BookingKind      string    `gorm:"type:varchar(10)" json:"booking_kind"`
	NavigationTarget string    `gorm:"type:varchar(30)" json:"navigation_target"`
	SurpriseGift     bool      `json:"surprise_gift"`
	FailedSteps      string    `gorm:"type:text" json:"failed_steps,omitempty"` // comma-separated step names
	CreatedAt        time.Time `json:"created_at"`
}

// TableName sets the table name for CheckoutOutcome
func (CheckoutOutcome) TableName() string {
	return "checkout_outcomes"
}
