package authority

import (
	"context"
	"net/http"
)

// WhatsApp confirmation templates, selected by booking kind
const (
	TemplateBookingConfirmation  = "booking_confirmation"
	TemplateLiveShowConfirmation = "live_show_confirmation"
)

// confirmationMessageRequest mirrors POST /notifications/wa-test
type confirmationMessageRequest struct {
	Phone     string `json:"phone"`
	BookingID string `json:"booking_id,omitempty"`
	OrderID   string `json:"order_id,omitempty"`
	Template  string `json:"template"`
}

// SendConfirmationMessage triggers the post-payment WhatsApp confirmation
// with the given template. Unauthenticated endpoint; best-effort.
func (c *Client) SendConfirmationMessage(ctx context.Context, phone, bookingID, orderID, template string) error {
	req := confirmationMessageRequest{
		Phone:     phone,
		BookingID: bookingID,
		OrderID:   orderID,
		Template:  template,
	}
	return c.do(ctx, http.MethodPost, "/notifications/wa-test", "", req, nil, c.defaultTimeout)
}
