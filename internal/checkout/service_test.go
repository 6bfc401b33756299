package checkout

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venuepay/internal/authority"
	"venuepay/internal/drafts"
	"venuepay/internal/gateway"
	"venuepay/internal/notifications"
	"venuepay/internal/offers"
	"venuepay/internal/payments"
	"venuepay/internal/pricing"
	"venuepay/internal/shared/config"
	"venuepay/pkg/cache"
	"venuepay/pkg/logger"
)

// ---- fakes ----

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(b, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = b
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

func (f *fakeCache) Exists(ctx context.Context, key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

func (f *fakeCache) MGet(ctx context.Context, keys []string, dest interface{}) error { return nil }

func (f *fakeCache) MSet(ctx context.Context, items map[string]interface{}, ttl time.Duration) error {
	return nil
}

func (f *fakeCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := f.Get(ctx, key, dest); err == nil {
		return nil
	}
	v, err := fetcher()
	if err != nil {
		return err
	}
	if err := f.Set(ctx, key, v, ttl); err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dest)
}

func (f *fakeCache) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	f.data[key] = b
	return true, nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

type fakeDraftRepo struct {
	mu        sync.Mutex
	drafts    map[string]*drafts.BookingDraft
	summaries map[string]*drafts.BookingSummary
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{
		drafts:    make(map[string]*drafts.BookingDraft),
		summaries: make(map[string]*drafts.BookingSummary),
	}
}

func (f *fakeDraftRepo) Load(ctx context.Context, draftID string) (*drafts.BookingDraft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drafts[draftID]
	if !ok {
		return nil, drafts.ErrDraftNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDraftRepo) Save(ctx context.Context, draft *drafts.BookingDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *draft
	f.drafts[draft.ID] = &copied
	return nil
}

func (f *fakeDraftRepo) Clear(ctx context.Context, draftID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.drafts, draftID)
	return nil
}

func (f *fakeDraftRepo) SaveSummary(ctx context.Context, userID string, summary *drafts.BookingSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaries[userID] = summary
	return nil
}

func (f *fakeDraftRepo) TakeSummary(ctx context.Context, userID string) (*drafts.BookingSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.summaries[userID]
	if !ok {
		return nil, drafts.ErrSummaryNotFound
	}
	delete(f.summaries, userID)
	return s, nil
}

type fakeOfferService struct {
	offer        *offers.Offer
	discover     *offers.Offer
	lastEligible int64
	usages       []offers.UsageRecord
}

func (f *fakeOfferService) CheckCoupon(ctx context.Context, token, code string, eligibleAmount int64) (*offers.Offer, error) {
	f.lastEligible = eligibleAmount
	if f.offer == nil || f.offer.CouponCode != code {
		return nil, offers.ErrCouponNotFound
	}
	if f.offer.MinPurchaseAmount > 0 && eligibleAmount < f.offer.MinPurchaseAmount {
		return nil, offers.ErrBelowMinPurchase
	}
	return f.offer, nil
}

func (f *fakeOfferService) DiscoverOffer(ctx context.Context, token string, eligibleAmount int64) (*offers.Offer, error) {
	return f.discover, nil
}

func (f *fakeOfferService) Applicable(offer *offers.Offer, eligibleAmount int64) bool {
	return offer != nil
}

func (f *fakeOfferService) Describe(offer *offers.Offer, purchaseAmount, baseRental int64) offers.DiscountDescriptor {
	eligible := purchaseAmount
	if offer.IsCoupon() {
		eligible = baseRental
	}
	amount := pricing.RoundHalfUp(float64(eligible) * offer.DiscountValue / 100)
	return offers.DiscountDescriptor{
		DiscountAmount: amount,
		Applied: offers.AppliedOffer{
			ID:            offer.ID,
			Type:          offer.Type,
			DiscountType:  offer.DiscountType,
			DiscountValue: offer.DiscountValue,
			CouponCode:    offer.CouponCode,
		},
	}
}

func (f *fakeOfferService) RecordUsage(ctx context.Context, token string, usage offers.UsageRecord) error {
	f.usages = append(f.usages, usage)
	return nil
}

type fakePaymentService struct {
	prepareCalls int
	verifyErr    error
	verified     []payments.VerifyRequest
}

func (f *fakePaymentService) Prepare(ctx context.Context, token string, req payments.PrepareRequest) (*payments.PaymentIntent, error) {
	f.prepareCalls++
	return &payments.PaymentIntent{
		OrderID:  fmt.Sprintf("intent-%d", f.prepareCalls),
		Amount:   req.Amount,
		Currency: req.Currency,
	}, nil
}

func (f *fakePaymentService) Verify(ctx context.Context, token, userID string, req payments.VerifyRequest) (*payments.PaymentRecord, error) {
	if f.verifyErr != nil {
		return nil, fmt.Errorf("%w: %v", payments.ErrVerificationFailed, f.verifyErr)
	}
	f.verified = append(f.verified, req)
	return &payments.PaymentRecord{GatewayPaymentID: req.Confirmation.PaymentID}, nil
}

type fakeLedger struct {
	outcomes []*payments.CheckoutOutcome
}

func (f *fakeLedger) CreateRecord(ctx context.Context, record *payments.PaymentRecord) error {
	return nil
}

func (f *fakeLedger) GetByGatewayPaymentID(ctx context.Context, paymentID string) (*payments.PaymentRecord, error) {
	return nil, nil
}

func (f *fakeLedger) ExistsByGatewayPaymentID(ctx context.Context, paymentID string) (bool, error) {
	return false, nil
}

func (f *fakeLedger) SaveOutcome(ctx context.Context, outcome *payments.CheckoutOutcome) error {
	f.outcomes = append(f.outcomes, outcome)
	return nil
}

func (f *fakeLedger) GetOutcomeByBookingID(ctx context.Context, bookingID string) (*payments.CheckoutOutcome, error) {
	return nil, nil
}

type fakeAuthority struct {
	policy *pricing.AdvancePaymentPolicy

	bookingErr   error
	bookings     []authority.BookingPayload
	fetched      []string
	participants []authority.ProgramParticipantPayload
	rackOrders   []authority.RackOrderPayload
	vehicles     []authority.VehicleBookingPayload
	notified     []string
	messages     []string
	templates    []string

	notifyErr  error
	vehicleErr error

	surpriseGift bool
}

func (f *fakeAuthority) GetAdvancePaymentSettings(ctx context.Context) (*pricing.AdvancePaymentPolicy, error) {
	if f.policy == nil {
		return &pricing.AdvancePaymentPolicy{Enabled: false}, nil
	}
	return f.policy, nil
}

func (f *fakeAuthority) CreateBooking(ctx context.Context, token string, payload authority.BookingPayload) (*authority.BookingRef, error) {
	if f.bookingErr != nil {
		return nil, f.bookingErr
	}
	f.bookings = append(f.bookings, payload)
	return &authority.BookingRef{ID: "booking-1", Reference: "VP-1001", Status: "confirmed"}, nil
}

func (f *fakeAuthority) GetBooking(ctx context.Context, token, bookingID string) (*authority.BookingRef, error) {
	f.fetched = append(f.fetched, bookingID)
	return &authority.BookingRef{ID: bookingID, Reference: "VP-EDIT", Status: "confirmed"}, nil
}

func (f *fakeAuthority) CreateProgramParticipant(ctx context.Context, token string, payload authority.ProgramParticipantPayload) (*authority.ProgramParticipantRef, error) {
	f.participants = append(f.participants, payload)
	return &authority.ProgramParticipantRef{ID: "participant-1"}, nil
}

func (f *fakeAuthority) CreateRackOrder(ctx context.Context, token string, payload authority.RackOrderPayload) (*authority.RackOrderRef, error) {
	f.rackOrders = append(f.rackOrders, payload)
	return &authority.RackOrderRef{OrderID: "rack-1", SurpriseGift: f.surpriseGift}, nil
}

func (f *fakeAuthority) CreateVehicleBooking(ctx context.Context, token string, payload authority.VehicleBookingPayload) error {
	if f.vehicleErr != nil {
		return f.vehicleErr
	}
	f.vehicles = append(f.vehicles, payload)
	return nil
}

func (f *fakeAuthority) UploadAudioNote(ctx context.Context, token, bookingID, fileName string, audio io.Reader) error {
	return nil
}

func (f *fakeAuthority) NotifyGuests(ctx context.Context, token, bookingID string) error {
	if f.notifyErr != nil {
		return f.notifyErr
	}
	f.notified = append(f.notified, bookingID)
	return nil
}

func (f *fakeAuthority) SendConfirmationMessage(ctx context.Context, phone, bookingID, orderID, template string) error {
	f.messages = append(f.messages, phone)
	f.templates = append(f.templates, template)
	return nil
}

type fakePublisher struct {
	events []*notifications.OutcomeEvent
}

func (f *fakePublisher) PublishOutcome(ctx context.Context, event *notifications.OutcomeEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeOrderAPI struct{}

func (fakeOrderAPI) CreateGatewayOrder(ctx context.Context, token string, amountMinor int64, currency string) (*authority.GatewayOrder, error) {
	return &authority.GatewayOrder{ID: "order_abc", Amount: amountMinor, Currency: currency}, nil
}

// ---- harness ----

const testKeySecret = "secret"

type harness struct {
	svc       Service
	drafts    *fakeDraftRepo
	offers    *fakeOfferService
	payments  *fakePaymentService
	ledger    *fakeLedger
	api       *fakeAuthority
	publisher *fakePublisher
	cache     *fakeCache
}

func newHarness() *harness {
	h := &harness{
		drafts:    newFakeDraftRepo(),
		offers:    &fakeOfferService{},
		payments:  &fakePaymentService{},
		ledger:    &fakeLedger{},
		api:       &fakeAuthority{},
		publisher: &fakePublisher{},
		cache:     newFakeCache(),
	}
	adapter := gateway.NewAdapter(config.RazorpayConfig{
		KeyID:        "rzp_test_key",
		KeySecret:    testKeySecret,
		OrderRetries: 2,
		RetryBackoff: time.Millisecond,
	}, fakeOrderAPI{}, h.cache, logger.New())

	h.svc = NewService(h.drafts, h.offers, h.payments, h.ledger, adapter, h.api, h.cache, h.publisher, logger.New(), 50)
	return h
}

func regularDraft() *drafts.BookingDraft {
	d := &drafts.BookingDraft{
		ID:          "draft-1",
		UserID:      "user-1",
		VenueID:     "venue-1",
		SpaceID:     "space-1",
		BookingType: drafts.BookingTypeOneDay,
		StartAt:     time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		EndAt:       time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC),
		Attendees:   40,
		BaseRental:  10000,
	}
	d.TotalAmount = 10000
	return d
}

func confirmationFor(paymentID string) payments.GatewayConfirmation {
	orderID := "order_abc"
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return payments.GatewayConfirmation{
		PaymentID: paymentID,
		OrderID:   orderID,
		Signature: hex.EncodeToString(mac.Sum(nil)),
	}
}

func completeRequest(paymentID string) CompletePaymentRequest {
	return CompletePaymentRequest{
		DraftID:      "draft-1",
		PaymentType:  drafts.PaymentTypeFull,
		Confirmation: confirmationFor(paymentID),
	}
}

// ---- tests ----

func TestQuoteResolvesAmounts(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.drafts.Save(context.Background(), regularDraft()))

	quote, err := h.svc.Quote(context.Background(), "tok", "draft-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), quote.FinalAmount)
	assert.Equal(t, int64(10000), quote.OriginalTotal)
	// Disabled policy still yields the fallback advance for display
	assert.Equal(t, int64(5000), quote.AdvanceAmount)
	assert.False(t, quote.AdvanceEnabled)
}

func TestApplyAndRemoveCouponRoundTrips(t *testing.T) {
	h := newHarness()
	h.offers.offer = &offers.Offer{
		ID:            "o1",
		Type:          offers.TypeCoupon,
		CouponCode:    "SAVE10",
		DiscountType:  offers.DiscountTypePercentage,
		DiscountValue: 10,
	}
	require.NoError(t, h.drafts.Save(context.Background(), regularDraft()))

	quote, err := h.svc.ApplyCoupon(context.Background(), "tok", ApplyCouponRequest{DraftID: "draft-1", CouponCode: "SAVE10"})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), quote.CouponDiscount)
	assert.Equal(t, int64(9000), quote.FinalAmount)
	assert.Equal(t, int64(10000), quote.OriginalTotal)

	// Applying twice does not stack
	quote, err = h.svc.ApplyCoupon(context.Background(), "tok", ApplyCouponRequest{DraftID: "draft-1", CouponCode: "SAVE10"})
	require.NoError(t, err)
	assert.Equal(t, int64(9000), quote.FinalAmount)

	quote, err = h.svc.RemoveCoupon(context.Background(), "tok", RemoveCouponRequest{DraftID: "draft-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), quote.FinalAmount)
	assert.Nil(t, quote.AppliedCoupon)
}

func TestApplyCouponUnknownCodeLeavesDraftIntact(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.drafts.Save(context.Background(), regularDraft()))

	_, err := h.svc.ApplyCoupon(context.Background(), "tok", ApplyCouponRequest{DraftID: "draft-1", CouponCode: "NOPE"})
	assert.ErrorIs(t, err, offers.ErrCouponNotFound)

	d, err := h.drafts.Load(context.Background(), "draft-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), d.TotalAmount)
	assert.Nil(t, d.AppliedCoupon)
}

func TestApplyCouponRejectedForLiveShows(t *testing.T) {
	h := newHarness()
	d := regularDraft()
	d.BookingType = "live-standup"
	require.NoError(t, h.drafts.Save(context.Background(), d))

	_, err := h.svc.ApplyCoupon(context.Background(), "tok", ApplyCouponRequest{DraftID: "draft-1", CouponCode: "SAVE10"})
	assert.ErrorIs(t, err, offers.ErrCouponNotFound)
}

func TestHandlePaymentIssuesFreshIntentEachAttempt(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.drafts.Save(context.Background(), regularDraft()))

	resp, err := h.svc.HandlePayment(context.Background(), "tok", "user-1", HandlePaymentRequest{DraftID: "draft-1", PaymentType: drafts.PaymentTypeFull})
	require.NoError(t, err)
	assert.Equal(t, gateway.StateAwaitingUser, resp.Session.State)
	assert.Equal(t, int64(10000), resp.Amount)
	assert.Equal(t, 1, h.payments.prepareCalls)

	// Second attempt after releasing the first session gets a new intent
	_, err = h.svc.FailPayment(context.Background(), "tok", FailPaymentRequest{DraftID: "draft-1", Failure: gateway.Failure{Description: "cancelled"}})
	require.NoError(t, err)

	_, err = h.svc.HandlePayment(context.Background(), "tok", "user-1", HandlePaymentRequest{DraftID: "draft-1", PaymentType: drafts.PaymentTypeFull})
	require.NoError(t, err)
	assert.Equal(t, 2, h.payments.prepareCalls)
}

func TestHandlePaymentAdvanceUsesPolicy(t *testing.T) {
	h := newHarness()
	h.api.policy = &pricing.AdvancePaymentPolicy{Enabled: true, Type: pricing.PolicyTypePercentage, Percentage: 30}
	require.NoError(t, h.drafts.Save(context.Background(), regularDraft()))

	resp, err := h.svc.HandlePayment(context.Background(), "tok", "user-1", HandlePaymentRequest{DraftID: "draft-1", PaymentType: drafts.PaymentTypeAdvance})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), resp.Amount)
}

func TestCompletePaymentHappyPath(t *testing.T) {
	h := newHarness()
	d := regularDraft()
	d.Guests = []drafts.GuestEntry{{Name: "A", Phone: "123"}}
	d.ContactPhone = "9999"
	require.NoError(t, h.drafts.Save(context.Background(), d))

	outcome, err := h.svc.CompletePayment(context.Background(), "tok", "user-1", completeRequest("pay_1"))
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, NavigateHome, outcome.Target)
	assert.Equal(t, "booking-1", outcome.BookingID)

	// Booking was created and the guests notified
	require.Len(t, h.api.bookings, 1)
	assert.Equal(t, []string{"booking-1"}, h.api.notified)
	assert.Equal(t, []string{"9999"}, h.api.messages)

	// Verification ran with the full breakdown, against the created booking
	require.Len(t, h.payments.verified, 1)
	assert.Equal(t, int64(10000), h.payments.verified[0].Breakdown.Paid)
	require.NotNil(t, h.payments.verified[0].BookingID)
	assert.Equal(t, "booking-1", *h.payments.verified[0].BookingID)

	// Draft cleared only after everything fatal succeeded; summary pending
	_, err = h.drafts.Load(context.Background(), "draft-1")
	assert.ErrorIs(t, err, drafts.ErrDraftNotFound)
	summary, err := h.drafts.TakeSummary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "booking-1", summary.BookingID)
	assert.Equal(t, "VP-1001", summary.Reference)

	// Outcome row and event recorded
	require.Len(t, h.ledger.outcomes, 1)
	require.Len(t, h.publisher.events, 1)
	assert.Equal(t, notifications.EventCheckoutCompleted, h.publisher.events[0].Type)
	assert.Equal(t, int64(10000), h.publisher.events[0].AmountPaid)

	// Regular bookings get the plain confirmation template
	assert.Equal(t, []string{authority.TemplateBookingConfirmation}, h.api.templates)
}

func TestCompletePaymentVerificationFailureKeepsDraft(t *testing.T) {
	h := newHarness()
	h.payments.verifyErr = errors.New("signature rejected upstream")
	require.NoError(t, h.drafts.Save(context.Background(), regularDraft()))

	_, err := h.svc.CompletePayment(context.Background(), "tok", "user-1", completeRequest("pay_1"))
	assert.ErrorIs(t, err, payments.ErrVerificationFailed)

	// The booking was already created when verification failed; it stands,
	// and the draft survives for support follow-up
	require.Len(t, h.api.bookings, 1)
	_, loadErr := h.drafts.Load(context.Background(), "draft-1")
	assert.NoError(t, loadErr)

	// The guard was dropped, so a later reattempt can verify again
	h.payments.verifyErr = nil
	_, err = h.svc.CompletePayment(context.Background(), "tok", "user-1", completeRequest("pay_1"))
	assert.NoError(t, err)
}

func TestCompletePaymentTamperedSignature(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.drafts.Save(context.Background(), regularDraft()))

	req := completeRequest("pay_1")
	req.Confirmation.Signature = "deadbeef"

	_, err := h.svc.CompletePayment(context.Background(), "tok", "user-1", req)
	assert.ErrorIs(t, err, payments.ErrVerificationFailed)
	assert.Empty(t, h.payments.verified)
}

func TestCompletePaymentRunsOncePerPaymentID(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.drafts.Save(context.Background(), regularDraft()))

	_, err := h.svc.CompletePayment(context.Background(), "tok", "user-1", completeRequest("pay_1"))
	require.NoError(t, err)

	_, err = h.svc.CompletePayment(context.Background(), "tok", "user-1", completeRequest("pay_1"))
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	assert.Len(t, h.api.bookings, 1)
}

func TestCompletePaymentRackOrderSurpriseGift(t *testing.T) {
	h := newHarness()
	h.api.surpriseGift = true
	d := regularDraft()
	d.IsRackOrder = true
	d.RackCart = []drafts.RackCartItem{{ItemID: "i1", Name: "Balloons", Quantity: 2, Price: 500}}
	require.NoError(t, h.drafts.Save(context.Background(), d))

	outcome, err := h.svc.CompletePayment(context.Background(), "tok", "user-1", completeRequest("pay_1"))
	require.NoError(t, err)
	assert.Equal(t, NavigateSurpriseGift, outcome.Target)
	assert.Equal(t, "rack-1", outcome.OrderID)
	assert.True(t, outcome.SurpriseGift)
	assert.Empty(t, h.api.bookings)
	require.Len(t, h.api.rackOrders, 1)

	// Rack orders carry no booking reference into verification
	require.Len(t, h.payments.verified, 1)
	assert.Nil(t, h.payments.verified[0].BookingID)
}

func TestCompletePaymentLiveShowNavigatesToTickets(t *testing.T) {
	h := newHarness()
	d := regularDraft()
	d.BookingType = "live-standup"
	d.SourceBookingID = "show-1"
	d.TicketQuantity = 2
	d.TotalAmount = 1200
	require.NoError(t, h.drafts.Save(context.Background(), d))

	outcome, err := h.svc.CompletePayment(context.Background(), "tok", "user-1", completeRequest("pay_1"))
	require.NoError(t, err)
	assert.Equal(t, NavigateLiveTickets, outcome.Target)

	// The show's source booking is reused, never recreated
	assert.Empty(t, h.api.bookings)
	require.Len(t, h.payments.verified, 1)
	require.NotNil(t, h.payments.verified[0].BookingID)
	assert.Equal(t, "show-1", *h.payments.verified[0].BookingID)

	require.Len(t, h.api.participants, 1)
	assert.Equal(t, "show-1", h.api.participants[0].BookingID)
	assert.Equal(t, "space-1", h.api.participants[0].ProgramID)
	assert.Equal(t, 2, h.api.participants[0].Tickets)
	assert.Equal(t, int64(1200), h.api.participants[0].AmountPaid)
}

func TestCompletePaymentBestEffortFailureStillSucceeds(t *testing.T) {
	h := newHarness()
	h.api.notifyErr = errors.New("sms gateway down")
	d := regularDraft()
	d.Guests = []drafts.GuestEntry{{Name: "A", Phone: "123"}}
	require.NoError(t, h.drafts.Save(context.Background(), d))

	outcome, err := h.svc.CompletePayment(context.Background(), "tok", "user-1", completeRequest("pay_1"))
	require.NoError(t, err)
	assert.True(t, outcome.Success)

	require.Len(t, h.ledger.outcomes, 1)
	assert.Contains(t, h.ledger.outcomes[0].FailedSteps, "notify_guests")
}

func TestCompletePaymentBookingFatal(t *testing.T) {
	h := newHarness()
	h.api.bookingErr = errors.New("booking service down")
	require.NoError(t, h.drafts.Save(context.Background(), regularDraft()))

	_, err := h.svc.CompletePayment(context.Background(), "tok", "user-1", completeRequest("pay_1"))
	assert.ErrorIs(t, err, ErrFinalizationFailed)

	// Draft kept, failed outcome recorded
	_, loadErr := h.drafts.Load(context.Background(), "draft-1")
	assert.NoError(t, loadErr)
	require.Len(t, h.publisher.events, 1)
	assert.Equal(t, notifications.EventCheckoutFailed, h.publisher.events[0].Type)
}

func TestCompletePaymentRecordsOfferUsage(t *testing.T) {
	h := newHarness()
	d := regularDraft()
	d.AppliedCoupon = &drafts.AppliedOfferSnapshot{
		OfferID:        "o1",
		OfferType:      offers.TypeCoupon,
		CouponCode:     "SAVE10",
		DiscountAmount: 1000,
	}
	d.TotalAmount = 9000
	require.NoError(t, h.drafts.Save(context.Background(), d))

	_, err := h.svc.CompletePayment(context.Background(), "tok", "user-1", completeRequest("pay_1"))
	require.NoError(t, err)

	require.Len(t, h.offers.usages, 1)
	assert.Equal(t, "o1", h.offers.usages[0].OfferID)
	assert.Equal(t, int64(10000), h.offers.usages[0].PurchaseAmount)
	assert.Equal(t, "booking-1", h.offers.usages[0].BookingID)
}

func TestCompletePaymentRackSkipsOfferUsage(t *testing.T) {
	h := newHarness()
	d := regularDraft()
	d.IsRackOrder = true
	d.RackCart = []drafts.RackCartItem{{ItemID: "i1", Name: "Balloons", Quantity: 2, Price: 500}}
	d.AppliedOffer = &drafts.AppliedOfferSnapshot{
		OfferID:        "o2",
		OfferType:      offers.TypeFestival,
		DiscountAmount: 200,
	}
	d.TotalAmount = 800
	require.NoError(t, h.drafts.Save(context.Background(), d))

	_, err := h.svc.CompletePayment(context.Background(), "tok", "user-1", completeRequest("pay_1"))
	require.NoError(t, err)

	// The order record carries the applied offer instead of a ledger row
	assert.Empty(t, h.offers.usages)
	require.Len(t, h.api.rackOrders, 1)
	require.NotNil(t, h.api.rackOrders[0].AppliedOffer)
	assert.Equal(t, "o2", h.api.rackOrders[0].AppliedOffer.OfferID)
}

func TestCompletePaymentLiveShowSkipsOfferUsage(t *testing.T) {
	h := newHarness()
	d := regularDraft()
	d.BookingType = "live-standup"
	d.SourceBookingID = "show-1"
	d.AppliedCoupon = &drafts.AppliedOfferSnapshot{
		OfferID:        "o1",
		OfferType:      offers.TypeCoupon,
		CouponCode:     "SAVE10",
		DiscountAmount: 100,
	}
	require.NoError(t, h.drafts.Save(context.Background(), d))

	_, err := h.svc.CompletePayment(context.Background(), "tok", "user-1", completeRequest("pay_1"))
	require.NoError(t, err)
	assert.Empty(t, h.offers.usages)
}

func TestCompletePaymentProgramCreatesBooking(t *testing.T) {
	h := newHarness()
	d := regularDraft()
	d.IsProgram = true
	d.ProgramType = "yoga"
	d.Subscription = "monthly"
	require.NoError(t, h.drafts.Save(context.Background(), d))

	outcome, err := h.svc.CompletePayment(context.Background(), "tok", "user-1", completeRequest("pay_1"))
	require.NoError(t, err)
	assert.Equal(t, NavigateHome, outcome.Target)

	// A non-live program gets a real booking; the participant references it
	require.Len(t, h.api.bookings, 1)
	require.Len(t, h.api.participants, 1)
	assert.Equal(t, "booking-1", h.api.participants[0].BookingID)
	assert.Equal(t, "yoga", h.api.participants[0].ProgramType)
	assert.Equal(t, "monthly", h.api.participants[0].Subscription)
	assert.Equal(t, 1, h.api.participants[0].Tickets)
}

func TestCompletePaymentEditModeReusesBooking(t *testing.T) {
	h := newHarness()
	d := regularDraft()
	d.EditBookingID = "booking-9"
	require.NoError(t, h.drafts.Save(context.Background(), d))

	outcome, err := h.svc.CompletePayment(context.Background(), "tok", "user-1", completeRequest("pay_1"))
	require.NoError(t, err)
	assert.Equal(t, "booking-9", outcome.BookingID)

	// The existing booking is fetched, never recreated
	assert.Equal(t, []string{"booking-9"}, h.api.fetched)
	assert.Empty(t, h.api.bookings)
	require.Len(t, h.payments.verified, 1)
	require.NotNil(t, h.payments.verified[0].BookingID)
	assert.Equal(t, "booking-9", *h.payments.verified[0].BookingID)

	summary, err := h.drafts.TakeSummary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "VP-EDIT", summary.Reference)
}

func TestCompletePaymentLiveShowConfirmationTemplate(t *testing.T) {
	h := newHarness()
	d := regularDraft()
	d.BookingType = "live-standup"
	d.SourceBookingID = "show-1"
	d.ContactPhone = "9999"
	require.NoError(t, h.drafts.Save(context.Background(), d))

	_, err := h.svc.CompletePayment(context.Background(), "tok", "user-1", completeRequest("pay_1"))
	require.NoError(t, err)
	assert.Equal(t, []string{authority.TemplateLiveShowConfirmation}, h.api.templates)
}

func TestQuoteDerivesMissingTotal(t *testing.T) {
	h := newHarness()
	d := regularDraft()
	d.TotalAmount = 0
	d.EventType = "birthday"
	d.StartAt = time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC) // Saturday
	d.EndAt = time.Date(2026, 3, 7, 18, 0, 0, 0, time.UTC)
	require.NoError(t, h.drafts.Save(context.Background(), d))

	quote, err := h.svc.Quote(context.Background(), "tok", "draft-1")
	require.NoError(t, err)
	// 5% birthday discount, then 5% weekend surcharge on the discounted base
	assert.Equal(t, int64(9975), quote.FinalAmount)

	// The derived total is written back so later loads see a priced draft
	saved, err := h.drafts.Load(context.Background(), "draft-1")
	require.NoError(t, err)
	assert.Equal(t, int64(9975), saved.TotalAmount)
}

func TestQuoteSurfacesAvailableOffer(t *testing.T) {
	h := newHarness()
	h.offers.discover = &offers.Offer{
		ID:            "o3",
		Type:          offers.TypeFestival,
		DiscountType:  offers.DiscountTypePercentage,
		DiscountValue: 5,
	}
	require.NoError(t, h.drafts.Save(context.Background(), regularDraft()))

	quote, err := h.svc.Quote(context.Background(), "tok", "draft-1")
	require.NoError(t, err)
	require.NotNil(t, quote.AvailableOffer)
	assert.Equal(t, "o3", quote.AvailableOffer.ID)

	// A draft with its offer slot already filled gets no suggestion
	d := regularDraft()
	d.AppliedOffer = &drafts.AppliedOfferSnapshot{OfferID: "o2", DiscountAmount: 500}
	d.TotalAmount = 9500
	require.NoError(t, h.drafts.Save(context.Background(), d))

	quote, err = h.svc.Quote(context.Background(), "tok", "draft-1")
	require.NoError(t, err)
	assert.Nil(t, quote.AvailableOffer)
}

func TestApplyCouponLooksUpBaseRentalOnly(t *testing.T) {
	h := newHarness()
	h.offers.offer = &offers.Offer{
		ID:            "o1",
		Type:          offers.TypeCoupon,
		CouponCode:    "SAVE10",
		DiscountType:  offers.DiscountTypePercentage,
		DiscountValue: 10,
	}
	d := regularDraft()
	d.StageAmount = 2000
	d.BannerAmount = 1000
	d.TotalAmount = 13000
	require.NoError(t, h.drafts.Save(context.Background(), d))

	_, err := h.svc.ApplyCoupon(context.Background(), "tok", ApplyCouponRequest{DraftID: "draft-1", CouponCode: "SAVE10"})
	require.NoError(t, err)

	// Stage and banner amounts never count toward coupon eligibility
	assert.Equal(t, int64(10000), h.offers.lastEligible)
}

func TestFailPaymentCancellationIsSilent(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.drafts.Save(context.Background(), regularDraft()))

	resp, err := h.svc.FailPayment(context.Background(), "tok", FailPaymentRequest{
		DraftID: "draft-1",
		Failure: gateway.Failure{Description: "Payment cancelled by user"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)
	assert.Empty(t, resp.Message)

	// The draft survives so the user can resume
	_, loadErr := h.drafts.Load(context.Background(), "draft-1")
	assert.NoError(t, loadErr)
}

func TestFailPaymentGenuineErrorGetsMessage(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.drafts.Save(context.Background(), regularDraft()))

	resp, err := h.svc.FailPayment(context.Background(), "tok", FailPaymentRequest{
		DraftID: "draft-1",
		Failure: gateway.Failure{Description: "network unreachable"},
	})
	require.NoError(t, err)
	assert.False(t, resp.Cancelled)
	assert.Equal(t, gateway.FailureNetwork, resp.Category)
	assert.NotEmpty(t, resp.Message)
	assert.NotContains(t, resp.Message, "contact support")
}

func TestFailPaymentReleasesSessionLock(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.drafts.Save(context.Background(), regularDraft()))

	_, err := h.svc.HandlePayment(context.Background(), "tok", "user-1", HandlePaymentRequest{DraftID: "draft-1", PaymentType: drafts.PaymentTypeFull})
	require.NoError(t, err)

	_, err = h.svc.FailPayment(context.Background(), "tok", FailPaymentRequest{
		DraftID: "draft-1",
		Failure: gateway.Failure{Description: "cancelled"},
	})
	require.NoError(t, err)

	// A new session can start immediately after the failure callback
	_, err = h.svc.HandlePayment(context.Background(), "tok", "user-1", HandlePaymentRequest{DraftID: "draft-1", PaymentType: drafts.PaymentTypeFull})
	assert.NoError(t, err)
}
