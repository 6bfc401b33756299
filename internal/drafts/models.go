package drafts

import (
	"strings"
	"time"
)

// Kind is the resolved booking kind. It is derived once at draft-load time
// so the rest of the pipeline never probes optional fields ad hoc.
type Kind string

const (
	KindRegular Kind = "regular"
	KindProgram Kind = "program"
	KindRack    Kind = "rack"
)

// Booking type discriminators carried by the upstream selection flow
const (
	BookingTypeDaily  = "daily"
	BookingTypeOneDay = "one_day"

	// Live-show bookings carry a "live-" prefixed booking type
	liveShowPrefix = "live-"
)

// Payment type choices
const (
	PaymentTypeFull    = "full"
	PaymentTypeAdvance = "advance"
)

// AppliedOfferSnapshot is the discount snapshot embedded in a draft by the
// upstream flow. DiscountAmount is already subtracted from TotalAmount.
type AppliedOfferSnapshot struct {
	OfferID        string  `json:"offer_id"`
	OfferType      string  `json:"offer_type"`
	Title          string  `json:"title"`
	DiscountType   string  `json:"discount_type"` // "percentage" or "fixed"
	DiscountValue  float64 `json:"discount_value"`
	CouponCode     string  `json:"coupon_code,omitempty"`
	DiscountAmount int64   `json:"discount_amount"`
}

// GuestEntry is one row of the optional guest list
type GuestEntry struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	NeedsTransport bool   `json:"needs_transport"`
	PickupPoint    string `json:"pickup_point,omitempty"`
}

// VehicleRequest describes an optional vehicle booking riding along with the draft
type VehicleRequest struct {
	VehicleID      string  `json:"vehicle_id"`
	PickupAddress  string  `json:"pickup_address"`
	DropAddress    string  `json:"drop_address"`
	DistanceKM     float64 `json:"distance_km"`
	FareAmount     int64   `json:"fare_amount"`
	DriverBata     int64   `json:"driver_bata,omitempty"`
	PassengerCount int     `json:"passenger_count"`
}

// PendingAudio references an audio note recorded before payment, uploaded
// only after the booking exists
type PendingAudio struct {
	LocalPath       string `json:"local_path"`
	DurationSeconds int    `json:"duration_seconds"`
}

// RackCartItem is one retail item in a rack-order cart
type RackCartItem struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// BookingDraft is the unpersisted-on-server description of an intended
// booking. It seeds the amount calculator and the post-payment orchestrator
// and is cleared from the store only after a successful checkout.
//
// All monetary amounts are whole INR.
type BookingDraft struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	VenueID string `json:"venue_id"`
	SpaceID string `json:"space_id"`

	BookingType    string `json:"booking_type"`
	IsRackOrder    bool   `json:"is_rack_order"`
	IsProgram      bool   `json:"is_program"`
	ProgramType    string `json:"program_type,omitempty"` // yoga, zumba, live
	Subscription   string `json:"subscription,omitempty"` // monthly, quarterly, single
	TicketQuantity int    `json:"ticket_quantity,omitempty"`

	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Attendees int       `json:"attendees"`
	EventType string    `json:"event_type,omitempty"` // birthday, babyshower, ...

	BaseRental        int64 `json:"base_rental"`
	AddOnsAmount      int64 `json:"addons_amount"`
	StageAmount       int64 `json:"stage_amount"`
	BannerAmount      int64 `json:"banner_amount"`
	TransportEstimate int64 `json:"transport_estimate"`

	// TotalAmount already embeds any offer discount decided upstream
	TotalAmount int64 `json:"total_amount"`

	SpecialRequests string `json:"special_requests,omitempty"`
	BannerURL       string `json:"banner_url,omitempty"`
	StageURL        string `json:"stage_url,omitempty"`
	ContactPhone    string `json:"contact_phone,omitempty"`

	// Edit-mode balance payments reuse an existing booking
	EditBookingID string `json:"edit_booking_id,omitempty"`
	// Live-show ticket purchases reuse the show's source booking
	SourceBookingID string `json:"source_booking_id,omitempty"`

	Guests       []GuestEntry          `json:"guests,omitempty"`
	Vehicle      *VehicleRequest       `json:"vehicle,omitempty"`
	PendingAudio *PendingAudio         `json:"pending_audio,omitempty"`
	RackCart     []RackCartItem        `json:"rack_cart,omitempty"`
	AppliedOffer *AppliedOfferSnapshot `json:"applied_offer,omitempty"`

	// AppliedCoupon occupies the coupon slot, independent of AppliedOffer.
	// Its DiscountAmount is already subtracted from TotalAmount, same as the
	// offer slot.
	AppliedCoupon *AppliedOfferSnapshot `json:"applied_coupon,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Kind resolves the draft's booking kind. Rack wins over program: a rack
// order never creates a venue booking even when flagged as a program.
func (d *BookingDraft) Kind() Kind {
	switch {
	case d.IsRackOrder:
		return KindRack
	case d.IsProgram || d.IsLiveShow():
		return KindProgram
	default:
		return KindRegular
	}
}

// IsLiveShow reports whether the draft is a live-show ticket purchase
func (d *BookingDraft) IsLiveShow() bool {
	return strings.HasPrefix(d.BookingType, liveShowPrefix)
}

// IsEditMode reports whether the draft pays a balance against an existing booking
func (d *BookingDraft) IsEditMode() bool {
	return d.EditBookingID != ""
}

// IsWeekendStart reports whether the booking starts on Saturday or Sunday
func (d *BookingDraft) IsWeekendStart() bool {
	wd := d.StartAt.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// BookingSummary is the post-payment bookkeeping consumed by the landing
// screen's toast
type BookingSummary struct {
	BookingID   string    `json:"booking_id"`
	Reference   string    `json:"reference"`
	Status      string    `json:"status"`
	AmountPaid  int64     `json:"amount_paid"`
	PaymentType string    `json:"payment_type"`
	Kind        Kind      `json:"kind"`
	CreatedAt   time.Time `json:"created_at"`
}
