package offers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOfferAPI struct {
	offer   *Offer
	err     error
	usages  []UsageRecord
	lastReq struct {
		couponCode     string
		purchaseAmount int64
	}
}

func (f *fakeOfferAPI) CheckOffer(ctx context.Context, token, couponCode string, purchaseAmount int64) (*Offer, error) {
	f.lastReq.couponCode = couponCode
	f.lastReq.purchaseAmount = purchaseAmount
	return f.offer, f.err
}

func (f *fakeOfferAPI) RecordUsage(ctx context.Context, token string, usage UsageRecord) error {
	f.usages = append(f.usages, usage)
	return f.err
}

func TestCheckCouponEmptyCode(t *testing.T) {
	svc := NewService(&fakeOfferAPI{})
	_, err := svc.CheckCoupon(context.Background(), "tok", "", 5000)
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestCheckCouponUnknownCode(t *testing.T) {
	api := &fakeOfferAPI{offer: nil}
	svc := NewService(api)

	_, err := svc.CheckCoupon(context.Background(), "tok", "NOPE", 5000)
	assert.ErrorIs(t, err, ErrCouponNotFound)
	assert.Equal(t, "NOPE", api.lastReq.couponCode)
}

func TestCheckCouponBelowMinimum(t *testing.T) {
	api := &fakeOfferAPI{offer: &Offer{
		ID:                "o1",
		Type:              TypeCoupon,
		DiscountType:      DiscountTypePercentage,
		DiscountValue:     10,
		MinPurchaseAmount: 10000,
	}}
	svc := NewService(api)

	_, err := svc.CheckCoupon(context.Background(), "tok", "SAVE10", 5000)
	assert.ErrorIs(t, err, ErrBelowMinPurchase)
}

func TestCheckCouponSuccess(t *testing.T) {
	api := &fakeOfferAPI{offer: &Offer{
		ID:            "o1",
		Type:          TypeCoupon,
		CouponCode:    "SAVE10",
		DiscountType:  DiscountTypePercentage,
		DiscountValue: 10,
	}}
	svc := NewService(api)

	offer, err := svc.CheckCoupon(context.Background(), "tok", "SAVE10", 5000)
	require.NoError(t, err)
	assert.Equal(t, "o1", offer.ID)
}

func TestCheckCouponAPIFailure(t *testing.T) {
	api := &fakeOfferAPI{err: errors.New("upstream down")}
	svc := NewService(api)

	_, err := svc.CheckCoupon(context.Background(), "tok", "SAVE10", 5000)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCouponNotFound)
}

func TestDiscoverOfferSkipsInapplicable(t *testing.T) {
	api := &fakeOfferAPI{offer: &Offer{
		ID:                "o2",
		Type:              TypeFestival,
		DiscountType:      DiscountTypeFixed,
		DiscountValue:     500,
		MinPurchaseAmount: 10000,
	}}
	svc := NewService(api)

	offer, err := svc.DiscoverOffer(context.Background(), "tok", 5000)
	require.NoError(t, err)
	assert.Nil(t, offer)
	assert.Equal(t, "", api.lastReq.couponCode)
}

func TestDescribePercentageOnBaseRentalForCoupons(t *testing.T) {
	svc := NewService(&fakeOfferAPI{})
	offer := &Offer{
		ID:            "o1",
		Type:          TypeCoupon,
		DiscountType:  DiscountTypePercentage,
		DiscountValue: 10,
	}

	// Coupons discount the base rental, not the whole purchase
	desc := svc.Describe(offer, 20000, 8000)
	assert.Equal(t, int64(800), desc.DiscountAmount)
}

func TestDescribePercentageOnPurchaseForPromos(t *testing.T) {
	svc := NewService(&fakeOfferAPI{})
	offer := &Offer{
		ID:            "o2",
		Type:          TypeFestival,
		DiscountType:  DiscountTypePercentage,
		DiscountValue: 5,
	}

	desc := svc.Describe(offer, 20000, 8000)
	assert.Equal(t, int64(1000), desc.DiscountAmount)
}

func TestDescribeRespectsMaxDiscount(t *testing.T) {
	svc := NewService(&fakeOfferAPI{})
	offer := &Offer{
		ID:                "o3",
		Type:              TypeFestival,
		DiscountType:      DiscountTypePercentage,
		DiscountValue:     50,
		MaxDiscountAmount: 1500,
	}

	desc := svc.Describe(offer, 20000, 8000)
	assert.Equal(t, int64(1500), desc.DiscountAmount)
}

func TestDescribeFixedClampedToEligible(t *testing.T) {
	svc := NewService(&fakeOfferAPI{})
	offer := &Offer{
		ID:            "o4",
		Type:          TypeCoupon,
		DiscountType:  DiscountTypeFixed,
		DiscountValue: 5000,
	}

	desc := svc.Describe(offer, 20000, 3000)
	assert.Equal(t, int64(3000), desc.DiscountAmount)
}

func TestRecordUsageForwards(t *testing.T) {
	api := &fakeOfferAPI{}
	svc := NewService(api)

	err := svc.RecordUsage(context.Background(), "tok", UsageRecord{
		OfferID:        "o1",
		OfferType:      TypeCoupon,
		CouponCode:     "SAVE10",
		PurchaseAmount: 10000,
		BookingID:      "b1",
	})
	require.NoError(t, err)
	require.Len(t, api.usages, 1)
	assert.Equal(t, int64(10000), api.usages[0].PurchaseAmount)
}
