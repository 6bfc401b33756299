package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Outcome event types
const (
	EventCheckoutCompleted = "checkout.completed"
	EventCheckoutFailed    = "checkout.failed"
)

// OutcomeEvent is the message published to the checkout-outcomes topic after
// every terminal orchestrator run. Consumers drive analytics and follow-up
// messaging from it.
type OutcomeEvent struct {
	ID               uuid.UUID `json:"id"`
	Type             string    `json:"type"`
	GatewayPaymentID string    `json:"gateway_payment_id,omitempty"`
	BookingID        string    `json:"booking_id,omitempty"`
	OrderID          string    `json:"order_id,omitempty"`
	UserID           string    `json:"user_id,omitempty"`
	BookingKind      string    `json:"booking_kind,omitempty"`
	AmountPaid       int64     `json:"amount_paid,omitempty"`
	PaymentType      string    `json:"payment_type,omitempty"`
	SurpriseGift     bool      `json:"surprise_gift,omitempty"`
	FailedSteps      []string  `json:"failed_steps,omitempty"`
	Reason           string    `json:"reason,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// NewOutcomeEvent creates an event with an id and timestamp assigned
func NewOutcomeEvent(eventType string) *OutcomeEvent {
	return &OutcomeEvent{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now(),
	}
}

// ToJSON serializes the event for the wire
func (e *OutcomeEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all events for one payment to the same partition so
// consumers see them in order. Falls back to booking id for cancellations
// that never produced a payment.
func (e *OutcomeEvent) PartitionKey() string {
	if e.GatewayPaymentID != "" {
		return e.GatewayPaymentID
	}
	if e.BookingID != "" {
		return e.BookingID
	}
	return e.ID.String()
}
