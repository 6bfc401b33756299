package authority

import (
	"context"
	"net/http"

	"venuepay/internal/pricing"
)

// settingsResponse is the subset of GET /settings this service reads
type settingsResponse struct {
	AdvancePayment *pricing.AdvancePaymentPolicy `json:"advance_payment"`
}

// GetAdvancePaymentSettings fetches the advance-payment policy. Served
// without auth; callers cache it per screen session.
func (c *Client) GetAdvancePaymentSettings(ctx context.Context) (*pricing.AdvancePaymentPolicy, error) {
	var resp settingsResponse
	if err := c.do(ctx, http.MethodGet, "/settings", "", nil, &resp, c.defaultTimeout); err != nil {
		return nil, err
	}
	if resp.AdvancePayment == nil {
		// A missing policy is treated as disabled; the calculator falls back
		return &pricing.AdvancePaymentPolicy{Enabled: false}, nil
	}
	return resp.AdvancePayment, nil
}
