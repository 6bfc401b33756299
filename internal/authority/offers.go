package authority

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"venuepay/internal/offers"
)

// checkOfferResponse mirrors GET /offers/check
type checkOfferResponse struct {
	HasOffer  bool          `json:"has_offer"`
	BestOffer *offers.Offer `json:"best_offer,omitempty"`
}

// CheckOffer looks up a coupon code against the purchase-eligible amount.
// With an empty code it discovers the best applicable promotional offer.
// A miss is reported as (nil, nil), not an error.
func (c *Client) CheckOffer(ctx context.Context, token, couponCode string, purchaseAmount int64) (*offers.Offer, error) {
	query := url.Values{}
	if couponCode != "" {
		query.Set("coupon_code", couponCode)
	}
	query.Set("purchase_amount", fmt.Sprintf("%d", purchaseAmount))

	var resp checkOfferResponse
	err := c.do(ctx, http.MethodGet, "/offers/check?"+query.Encode(), token, nil, &resp, c.defaultTimeout)
	if err != nil {
		return nil, err
	}
	if !resp.HasOffer {
		return nil, nil
	}
	return resp.BestOffer, nil
}

// RecordUsage writes one usage row to the authority's offer ledger
func (c *Client) RecordUsage(ctx context.Context, token string, usage offers.UsageRecord) error {
	return c.do(ctx, http.MethodPost, "/offers/apply", token, usage, nil, c.defaultTimeout)
}
