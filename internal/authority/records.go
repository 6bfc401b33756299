package authority

import (
	"context"
	"net/http"

	"venuepay/internal/drafts"
)

// ProgramParticipantPayload registers a paid program or live-show
// participant against the resolved booking
type ProgramParticipantPayload struct {
	BookingID    string `json:"booking_id"`
	ProgramID    string `json:"program_id,omitempty"`
	ProgramType  string `json:"program_type,omitempty"`  // yoga, zumba, live
	Subscription string `json:"subscription,omitempty"`  // monthly, quarterly, single
	Tickets      int    `json:"tickets"`
	AmountPaid   int64  `json:"amount_paid"`
	PaymentID    string `json:"payment_id"`
	ContactName  string `json:"contact_name,omitempty"`
}

// ProgramParticipantRef identifies the created participant row
type ProgramParticipantRef struct {
	ID string `json:"id"`
}

// CreateProgramParticipant records a program or live-show purchase.
// Booking-fatal.
func (c *Client) CreateProgramParticipant(ctx context.Context, token string, payload ProgramParticipantPayload) (*ProgramParticipantRef, error) {
	var ref ProgramParticipantRef
	err := c.do(ctx, http.MethodPost, "/program_participants/add", token, payload, &ref, c.criticalTimeout)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// RackOrderPayload is the decoration-rack purchase request. The order
// record captures any rack-level offer applied at purchase time.
type RackOrderPayload struct {
	Items        []drafts.RackCartItem        `json:"items"`
	AmountPaid   int64                        `json:"amount_paid"`
	PaymentID    string                       `json:"payment_id"`
	AppliedOffer *drafts.AppliedOfferSnapshot `json:"applied_offer,omitempty"`
	DeliverySlot string                       `json:"delivery_slot,omitempty"`
}

// RackOrderRef is the created rack order. SurpriseGift marks orders that
// qualified for the surprise-gift flow.
type RackOrderRef struct {
	OrderID      string `json:"order_id"`
	SurpriseGift bool   `json:"surprise_gift"`
}

// CreateRackOrder records a rack purchase. Booking-fatal.
func (c *Client) CreateRackOrder(ctx context.Context, token string, payload RackOrderPayload) (*RackOrderRef, error) {
	var ref RackOrderRef
	err := c.do(ctx, http.MethodPost, "/racks/orders", token, payload, &ref, c.criticalTimeout)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// VehicleBookingPayload attaches guest transport to a booking
type VehicleBookingPayload struct {
	BookingID      string  `json:"booking_id"`
	VehicleID      string  `json:"vehicle_id"`
	PickupAddress  string  `json:"pickup_address"`
	DropAddress    string  `json:"drop_address"`
	DistanceKM     float64 `json:"distance_km"`
	FareAmount     int64   `json:"fare_amount"`
	DriverBata     int64   `json:"driver_bata,omitempty"`
	PassengerCount int     `json:"passenger_count"`
}

// CreateVehicleBooking records the transport request. Best-effort.
func (c *Client) CreateVehicleBooking(ctx context.Context, token string, payload VehicleBookingPayload) error {
	return c.do(ctx, http.MethodPost, "/vehicles/bookings", token, payload, nil, c.defaultTimeout)
}
