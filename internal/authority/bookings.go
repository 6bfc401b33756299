package authority

import (
	"context"
	"fmt"
	"net/http"

	"venuepay/internal/drafts"
)

// BookingItem is one priced line item on the booking payload
type BookingItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// BookingPayload is the full create-booking request
type BookingPayload struct {
	VenueID         string              `json:"venue_id"`
	SpaceID         string              `json:"space_id"`
	BookingType     string              `json:"booking_type"`
	StartAt         string              `json:"start_at"`
	EndAt           string              `json:"end_at"`
	Attendees       int                 `json:"attendees"`
	EventType       string              `json:"event_type,omitempty"`
	TotalAmount     int64               `json:"total_amount"`
	SpecialRequests string              `json:"special_requests,omitempty"`
	Items           []BookingItem       `json:"items,omitempty"`
	CustomItems     []BookingItem       `json:"custom_items,omitempty"`
	BannerURL       string              `json:"banner_url,omitempty"`
	StageURL        string              `json:"stage_url,omitempty"`
	Guests          []drafts.GuestEntry `json:"guests,omitempty"`
}

// BookingRef identifies a booking on the authority
type BookingRef struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// CreateBooking creates the booking row server-side. Booking-fatal to the
// orchestrator when it fails, so it runs on the critical timeout.
func (c *Client) CreateBooking(ctx context.Context, token string, payload BookingPayload) (*BookingRef, error) {
	var ref BookingRef
	err := c.do(ctx, http.MethodPost, "/bookings", token, payload, &ref, c.criticalTimeout)
	if err != nil {
		return nil, err
	}
	if ref.ID == "" {
		return nil, fmt.Errorf("authority created booking without an id")
	}
	return &ref, nil
}

// GetBooking fetches an existing booking, used by edit-mode balance payments
func (c *Client) GetBooking(ctx context.Context, token, bookingID string) (*BookingRef, error) {
	var ref BookingRef
	err := c.do(ctx, http.MethodGet, "/bookings/"+bookingID, token, nil, &ref, c.defaultTimeout)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// NotifyGuests asks the authority to send guest transport notifications
func (c *Client) NotifyGuests(ctx context.Context, token, bookingID string) error {
	return c.do(ctx, http.MethodPost, "/bookings/"+bookingID+"/notify-guests", token, nil, nil, c.defaultTimeout)
}
