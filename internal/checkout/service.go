// Package checkout orchestrates the booking-to-payment pipeline: amount
// resolution, coupon application, payment session handling and the
// post-payment side-effect sequence.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"venuepay/internal/authority"
	"venuepay/internal/drafts"
	"venuepay/internal/gateway"
	"venuepay/internal/notifications"
	"venuepay/internal/offers"
	"venuepay/internal/payments"
	"venuepay/internal/pricing"
	"venuepay/internal/shared/constants"
	"venuepay/pkg/cache"
	"venuepay/pkg/logger"
)

// Authority is the slice of the backend client the orchestrator needs
type Authority interface {
	GetAdvancePaymentSettings(ctx context.Context) (*pricing.AdvancePaymentPolicy, error)
	CreateBooking(ctx context.Context, token string, payload authority.BookingPayload) (*authority.BookingRef, error)
	GetBooking(ctx context.Context, token, bookingID string) (*authority.BookingRef, error)
	CreateProgramParticipant(ctx context.Context, token string, payload authority.ProgramParticipantPayload) (*authority.ProgramParticipantRef, error)
	CreateRackOrder(ctx context.Context, token string, payload authority.RackOrderPayload) (*authority.RackOrderRef, error)
	CreateVehicleBooking(ctx context.Context, token string, payload authority.VehicleBookingPayload) error
	UploadAudioNote(ctx context.Context, token, bookingID, fileName string, audio io.Reader) error
	NotifyGuests(ctx context.Context, token, bookingID string) error
	SendConfirmationMessage(ctx context.Context, phone, bookingID, orderID, template string) error
}

// Service interface defines the contract for checkout orchestration
type Service interface {
	// Quote resolves the full amount picture for a draft
	Quote(ctx context.Context, token, draftID string) (*QuoteResponse, error)

	// ApplyCoupon resolves and applies a coupon code to the draft's coupon
	// slot. An invalid code leaves the draft untouched.
	ApplyCoupon(ctx context.Context, token string, req ApplyCouponRequest) (*QuoteResponse, error)

	// RemoveCoupon clears the coupon slot, restoring the coupon's discount
	// back into the draft total
	RemoveCoupon(ctx context.Context, token string, req RemoveCouponRequest) (*QuoteResponse, error)

	// HandlePayment issues a fresh payment intent and opens a gateway session
	HandlePayment(ctx context.Context, token, userID string, req HandlePaymentRequest) (*PaymentSessionResponse, error)

	// CompletePayment verifies the confirmation and runs the post-payment
	// side-effect sequence exactly once per gateway payment id
	CompletePayment(ctx context.Context, token, userID string, req CompletePaymentRequest) (*NavigationOutcome, error)

	// FailPayment handles the gateway failure callback. Cancellations are
	// silent; genuine failures map to a categorized message. The draft
	// survives either way.
	FailPayment(ctx context.Context, token string, req FailPaymentRequest) (*FailureResponse, error)
}

type service struct {
	drafts    drafts.Repository
	offers    offers.Service
	payments  payments.Service
	ledger    payments.Repository
	gateway   *gateway.Adapter
	api       Authority
	cache     cache.Service
	publisher notifications.Publisher
	logger    *logger.Logger

	advanceFallbackPct float64
}

// NewService creates a new checkout orchestrator
func NewService(
	draftRepo drafts.Repository,
	offerService offers.Service,
	paymentService payments.Service,
	ledger payments.Repository,
	gatewayAdapter *gateway.Adapter,
	api Authority,
	cacheService cache.Service,
	publisher notifications.Publisher,
	log *logger.Logger,
	advanceFallbackPct float64,
) Service {
	return &service{
		drafts:             draftRepo,
		offers:             offerService,
		payments:           paymentService,
		ledger:             ledger,
		gateway:            gatewayAdapter,
		api:                api,
		cache:              cacheService,
		publisher:          publisher,
		logger:             log,
		advanceFallbackPct: advanceFallbackPct,
	}
}

// discountsFor reads the two discount slots off the draft
func discountsFor(d *drafts.BookingDraft) pricing.Discounts {
	var disc pricing.Discounts
	if d.AppliedOffer != nil {
		disc.OfferAmount = d.AppliedOffer.DiscountAmount
	}
	if d.AppliedCoupon != nil {
		disc.CouponAmount = d.AppliedCoupon.DiscountAmount
	}
	return disc
}

// advancePolicy fetches the advance-payment policy, cached per screen
// session. An unreachable settings endpoint degrades to the disabled policy
// so the percentage fallback applies.
func (s *service) advancePolicy(ctx context.Context) *pricing.AdvancePaymentPolicy {
	var policy pricing.AdvancePaymentPolicy
	err := s.cache.GetOrSet(ctx, constants.KEY_POLICY_CACHE, constants.TTL_POLICY_CACHE, func() (interface{}, error) {
		return s.api.GetAdvancePaymentSettings(ctx)
	}, &policy)
	if err != nil {
		s.logger.WarnWithContext(ctx, "advance payment settings unavailable, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return &pricing.AdvancePaymentPolicy{Enabled: false}
	}
	return &policy
}

// loadDraft loads the draft and derives its total when the upstream
// selection flow saved it unpriced. The derived total embeds any discount
// snapshots so the reconstruction rule holds either way.
func (s *service) loadDraft(ctx context.Context, draftID string) (*drafts.BookingDraft, error) {
	d, err := s.drafts.Load(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if d.TotalAmount == 0 {
		if computed := pricing.ComputeTotal(d); computed > 0 {
			disc := discountsFor(d)
			d.TotalAmount = computed - disc.OfferAmount - disc.CouponAmount
			if d.TotalAmount < 0 {
				d.TotalAmount = 0
			}
			if err := s.drafts.Save(ctx, d); err != nil {
				return nil, fmt.Errorf("failed to save priced draft: %w", err)
			}
		}
	}
	return d, nil
}

func (s *service) buildQuote(ctx context.Context, token string, d *drafts.BookingDraft) *QuoteResponse {
	disc := discountsFor(d)
	final := pricing.FinalAmount(d, disc)
	policy := s.advancePolicy(ctx)
	advance := pricing.AdvanceAmount(final, policy, s.advanceFallbackPct)

	// Surface the best applicable promotional offer for display while the
	// offer slot is still empty. Discovery failures never fail the quote.
	var available *offers.Offer
	if d.Kind() == drafts.KindRegular && !d.IsLiveShow() && d.AppliedOffer == nil {
		offer, err := s.offers.DiscoverOffer(ctx, token, pricing.EligibleAmount(d))
		if err != nil {
			s.logger.WarnWithContext(ctx, "offer discovery failed", map[string]interface{}{
				"draft_id": d.ID,
				"error":    err.Error(),
			})
		} else {
			available = offer
		}
	}

	return &QuoteResponse{
		DraftID:        d.ID,
		Kind:           d.Kind(),
		OriginalTotal:  pricing.OriginalTotal(d, disc),
		FinalAmount:    final,
		OfferDiscount:  disc.OfferAmount,
		CouponDiscount: disc.CouponAmount,
		AdvanceEnabled: policy.Enabled,
		AdvanceAmount:  advance,
		AppliedOffer:   d.AppliedOffer,
		AppliedCoupon:  d.AppliedCoupon,
		AvailableOffer: available,
		Breakdown:      pricing.BuildBreakdown(d, final, final),
	}
}

func (s *service) Quote(ctx context.Context, token, draftID string) (*QuoteResponse, error) {
	d, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return s.buildQuote(ctx, token, d), nil
}

func (s *service) ApplyCoupon(ctx context.Context, token string, req ApplyCouponRequest) (*QuoteResponse, error) {
	d, err := s.loadDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	if d.IsLiveShow() {
		return nil, offers.ErrCouponNotFound
	}

	// Coupons are looked up against the base rental alone; stage, banner
	// and transport never count toward coupon eligibility.
	offer, err := s.offers.CheckCoupon(ctx, token, req.CouponCode, d.BaseRental)
	if err != nil {
		return nil, err
	}

	// Re-applying replaces the existing coupon: restore its discount first
	if d.AppliedCoupon != nil {
		d.TotalAmount += d.AppliedCoupon.DiscountAmount
		d.AppliedCoupon = nil
	}

	desc := s.offers.Describe(offer, pricing.EligibleAmount(d), d.BaseRental)
	d.AppliedCoupon = &drafts.AppliedOfferSnapshot{
		OfferID:        desc.Applied.ID,
		OfferType:      desc.Applied.Type,
		Title:          desc.Applied.Title,
		DiscountType:   desc.Applied.DiscountType,
		DiscountValue:  desc.Applied.DiscountValue,
		CouponCode:     desc.Applied.CouponCode,
		DiscountAmount: desc.DiscountAmount,
	}
	d.TotalAmount -= desc.DiscountAmount

	if err := s.drafts.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to save draft with coupon: %w", err)
	}
	return s.buildQuote(ctx, token, d), nil
}

func (s *service) RemoveCoupon(ctx context.Context, token string, req RemoveCouponRequest) (*QuoteResponse, error) {
	d, err := s.loadDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}

	if d.AppliedCoupon != nil {
		d.TotalAmount += d.AppliedCoupon.DiscountAmount
		d.AppliedCoupon = nil
		if err := s.drafts.Save(ctx, d); err != nil {
			return nil, fmt.Errorf("failed to save draft without coupon: %w", err)
		}
	}
	return s.buildQuote(ctx, token, d), nil
}

func (s *service) HandlePayment(ctx context.Context, token, userID string, req HandlePaymentRequest) (*PaymentSessionResponse, error) {
	d, err := s.loadDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}

	disc := discountsFor(d)
	final := pricing.FinalAmount(d, disc)
	payable := pricing.PayableAmount(final, req.PaymentType, s.advancePolicy(ctx), s.advanceFallbackPct)

	var bookingID *string
	if d.IsEditMode() {
		bookingID = &d.EditBookingID
	}

	// A fresh intent per attempt: intents are never reused across retries
	intent, err := s.payments.Prepare(ctx, token, payments.PrepareRequest{
		BookingID: bookingID,
		Amount:    payable,
		Currency:  "INR",
	})
	if err != nil {
		return nil, err
	}

	session, err := s.gateway.Begin(ctx, token, d.ID, intent)
	if err != nil {
		return nil, err
	}

	return &PaymentSessionResponse{Session: session, Amount: payable}, nil
}

// bookingTarget is the outcome of the orchestrator's first step: the booking
// every later step keys against. Empty for rack orders, which defer to the
// order record instead.
type bookingTarget struct {
	BookingID string
	Reference string
}

// resolveBookingTarget creates or reuses the booking before anything else
// runs. Edit-mode fetches the existing booking rather than recreating it;
// live-show ticket purchases reuse the show's source booking; rack orders
// carry no booking at all.
func (s *service) resolveBookingTarget(ctx context.Context, token string, d *drafts.BookingDraft) (*bookingTarget, error) {
	switch {
	case d.Kind() == drafts.KindRack:
		return &bookingTarget{}, nil

	case d.IsLiveShow():
		bookingID := d.SourceBookingID
		if bookingID == "" {
			bookingID = d.SpaceID
		}
		return &bookingTarget{BookingID: bookingID}, nil

	case d.IsEditMode():
		ref, err := s.api.GetBooking(ctx, token, d.EditBookingID)
		if err != nil {
			return nil, fmt.Errorf("%w: booking lookup: %v", ErrFinalizationFailed, err)
		}
		return &bookingTarget{BookingID: ref.ID, Reference: ref.Reference}, nil

	default:
		ref, err := s.api.CreateBooking(ctx, token, s.bookingPayload(d))
		if err != nil {
			return nil, fmt.Errorf("%w: booking: %v", ErrFinalizationFailed, err)
		}
		return &bookingTarget{BookingID: ref.ID, Reference: ref.Reference}, nil
	}
}

func (s *service) CompletePayment(ctx context.Context, token, userID string, req CompletePaymentRequest) (*NavigationOutcome, error) {
	defer s.gateway.Release(ctx, req.DraftID)

	// Local tamper check before anything else. A bad signature is a
	// verification failure: same support path, no retry invitation.
	if err := s.gateway.VerifySignature(req.Confirmation); err != nil {
		s.logger.LogVerificationFailed(ctx, req.Confirmation.PaymentID, req.Confirmation.OrderID, err)
		return nil, fmt.Errorf("%w: %v", payments.ErrVerificationFailed, err)
	}

	// One orchestrator run per gateway payment id, across instances
	guardKey := constants.BuildConfirmationGuardKey(req.Confirmation.PaymentID)
	acquired, err := s.cache.SetNX(ctx, guardKey, req.DraftID, constants.TTL_CONFIRMATION_GUARD)
	if err != nil {
		return nil, fmt.Errorf("failed to take confirmation guard: %w", err)
	}
	if !acquired {
		return nil, ErrAlreadyConfirmed
	}

	d, err := s.loadDraft(ctx, req.DraftID)
	if err != nil {
		s.releaseGuard(ctx, guardKey)
		return nil, err
	}

	disc := discountsFor(d)
	final := pricing.FinalAmount(d, disc)
	paid := pricing.PayableAmount(final, req.PaymentType, s.advancePolicy(ctx), s.advanceFallbackPct)
	breakdown := pricing.BuildBreakdown(d, final, paid)

	// The booking exists before its payment is verified against it. Nothing
	// durable happened yet on failure, so the guard is dropped.
	target, err := s.resolveBookingTarget(ctx, token, d)
	if err != nil {
		s.releaseGuard(ctx, guardKey)
		s.recordOutcome(ctx, d, req, &NavigationOutcome{Target: NavigateHome, Kind: d.Kind()}, nil, paid, err)
		return nil, err
	}

	// Ledger rows key to the resolved booking. Rack orders and live-show
	// reuse have their own ledger semantics server-side and are skipped.
	var failedSteps []string
	if d.Kind() != drafts.KindRack && !d.IsLiveShow() {
		failedSteps = s.recordOfferUsage(ctx, token, d, target.BookingID, failedSteps)
	}

	var verifyBookingID *string
	if target.BookingID != "" {
		verifyBookingID = &target.BookingID
	}

	// Server-side verification is the point of no return for user messaging
	if _, err := s.payments.Verify(ctx, token, userID, payments.VerifyRequest{
		Confirmation: req.Confirmation,
		BookingID:    verifyBookingID,
		Breakdown:    breakdown,
		PaymentType:  req.PaymentType,
	}); err != nil {
		// Drop the guard so support-driven reprocessing is possible later.
		// The created booking stands; the draft is kept for support.
		s.releaseGuard(ctx, guardKey)
		return nil, err
	}

	outcome, failedSteps, err := s.finalize(ctx, token, d, req, paid, target, failedSteps)
	if err != nil {
		s.recordOutcome(ctx, d, req, outcome, failedSteps, paid, err)
		return nil, err
	}

	summary := &drafts.BookingSummary{
		BookingID:   outcome.BookingID,
		Reference:   target.Reference,
		Status:      "confirmed",
		AmountPaid:  paid,
		PaymentType: req.PaymentType,
		Kind:        d.Kind(),
		CreatedAt:   time.Now(),
	}
	if err := s.drafts.SaveSummary(ctx, d.UserID, summary); err != nil {
		s.logger.LogSideEffectFailed(ctx, "save_summary", outcome.BookingID, err)
		failedSteps = append(failedSteps, "save_summary")
	}

	// The draft dies only now, after every fatal step succeeded
	if err := s.drafts.Clear(ctx, d.ID); err != nil {
		s.logger.LogSideEffectFailed(ctx, "clear_draft", outcome.BookingID, err)
		failedSteps = append(failedSteps, "clear_draft")
	}

	s.recordOutcome(ctx, d, req, outcome, failedSteps, paid, nil)
	s.logger.LogCheckoutCompleted(ctx, outcome.BookingID, string(d.Kind()), paid)

	return outcome, nil
}

// finalize runs the kind-specific post-verification sequence. The returned
// outcome is partial when err is non-nil.
func (s *service) finalize(ctx context.Context, token string, d *drafts.BookingDraft, req CompletePaymentRequest, paid int64, target *bookingTarget, failedSteps []string) (*NavigationOutcome, []string, error) {
	outcome := &NavigationOutcome{
		Target:    NavigateHome,
		Success:   true,
		Kind:      d.Kind(),
		BookingID: target.BookingID,
	}

	switch d.Kind() {
	case drafts.KindRack:
		// Order creation is the rack purchase's terminal record; a paid
		// cart with no order row has no navigable outcome, so this step
		// stays fatal here.
		ref, err := s.api.CreateRackOrder(ctx, token, authority.RackOrderPayload{
			Items:        d.RackCart,
			AmountPaid:   paid,
			PaymentID:    req.Confirmation.PaymentID,
			AppliedOffer: d.AppliedOffer,
		})
		if err != nil {
			return outcome, failedSteps, fmt.Errorf("%w: rack order: %v", ErrFinalizationFailed, err)
		}
		outcome.OrderID = ref.OrderID
		outcome.SurpriseGift = ref.SurpriseGift
		if ref.SurpriseGift {
			outcome.Target = NavigateSurpriseGift
		}

	case drafts.KindProgram:
		tickets := d.TicketQuantity
		if tickets < 1 {
			tickets = 1
		}
		if _, err := s.api.CreateProgramParticipant(ctx, token, authority.ProgramParticipantPayload{
			BookingID:    target.BookingID,
			ProgramID:    d.SpaceID,
			ProgramType:  d.ProgramType,
			Subscription: d.Subscription,
			Tickets:      tickets,
			AmountPaid:   paid,
			PaymentID:    req.Confirmation.PaymentID,
		}); err != nil {
			return outcome, failedSteps, fmt.Errorf("%w: program participant: %v", ErrFinalizationFailed, err)
		}
		if d.IsLiveShow() {
			outcome.Target = NavigateLiveTickets
		}

	default:
		failedSteps = s.runBestEffort(ctx, token, d, target.BookingID, failedSteps)
	}

	if d.ContactPhone != "" {
		template := authority.TemplateBookingConfirmation
		if d.IsLiveShow() {
			template = authority.TemplateLiveShowConfirmation
		}
		if err := s.api.SendConfirmationMessage(ctx, d.ContactPhone, outcome.BookingID, outcome.OrderID, template); err != nil {
			s.logger.LogSideEffectFailed(ctx, "confirmation_message", outcome.BookingID, err)
			failedSteps = append(failedSteps, "confirmation_message")
		}
	}

	return outcome, failedSteps, nil
}

// runBestEffort runs the regular-booking side effects that never fail the
// checkout: vehicle booking, audio note upload, guest notifications.
func (s *service) runBestEffort(ctx context.Context, token string, d *drafts.BookingDraft, bookingID string, failedSteps []string) []string {
	if d.Vehicle != nil {
		err := s.api.CreateVehicleBooking(ctx, token, authority.VehicleBookingPayload{
			BookingID:      bookingID,
			VehicleID:      d.Vehicle.VehicleID,
			PickupAddress:  d.Vehicle.PickupAddress,
			DropAddress:    d.Vehicle.DropAddress,
			DistanceKM:     d.Vehicle.DistanceKM,
			FareAmount:     d.Vehicle.FareAmount,
			DriverBata:     d.Vehicle.DriverBata,
			PassengerCount: d.Vehicle.PassengerCount,
		})
		if err != nil {
			s.logger.LogSideEffectFailed(ctx, "vehicle_booking", bookingID, err)
			failedSteps = append(failedSteps, "vehicle_booking")
		}
	}

	if d.PendingAudio != nil {
		if err := s.uploadAudio(ctx, token, d, bookingID); err != nil {
			s.logger.LogSideEffectFailed(ctx, "audio_upload", bookingID, err)
			failedSteps = append(failedSteps, "audio_upload")
		}
	}

	if len(d.Guests) > 0 {
		if err := s.api.NotifyGuests(ctx, token, bookingID); err != nil {
			s.logger.LogSideEffectFailed(ctx, "notify_guests", bookingID, err)
			failedSteps = append(failedSteps, "notify_guests")
		}
	}

	return failedSteps
}

func (s *service) uploadAudio(ctx context.Context, token string, d *drafts.BookingDraft, bookingID string) error {
	f, err := os.Open(d.PendingAudio.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to open audio note: %w", err)
	}
	defer f.Close()
	return s.api.UploadAudioNote(ctx, token, bookingID, filepath.Base(d.PendingAudio.LocalPath), f)
}

func (s *service) recordOfferUsage(ctx context.Context, token string, d *drafts.BookingDraft, bookingID string, failedSteps []string) []string {
	original := pricing.OriginalTotal(d, discountsFor(d))

	for _, snap := range []*drafts.AppliedOfferSnapshot{d.AppliedOffer, d.AppliedCoupon} {
		if snap == nil {
			continue
		}
		err := s.offers.RecordUsage(ctx, token, offers.UsageRecord{
			OfferID:        snap.OfferID,
			OfferType:      snap.OfferType,
			CouponCode:     snap.CouponCode,
			PurchaseAmount: original,
			BookingID:      bookingID,
		})
		if err != nil {
			s.logger.LogSideEffectFailed(ctx, "offer_usage", bookingID, err)
			failedSteps = append(failedSteps, "offer_usage")
		}
	}
	return failedSteps
}

// recordOutcome persists the terminal result and publishes the outcome
// event. Both are best-effort bookkeeping.
func (s *service) recordOutcome(ctx context.Context, d *drafts.BookingDraft, req CompletePaymentRequest, outcome *NavigationOutcome, failedSteps []string, paid int64, finalErr error) {
	record := &payments.CheckoutOutcome{
		GatewayPaymentID: req.Confirmation.PaymentID,
		BookingID:        outcome.BookingID,
		OrderID:          outcome.OrderID,
		BookingKind:      string(d.Kind()),
		NavigationTarget: outcome.Target,
		SurpriseGift:     outcome.SurpriseGift,
		FailedSteps:      strings.Join(failedSteps, ","),
	}
	if err := s.ledger.SaveOutcome(ctx, record); err != nil {
		s.logger.ErrorWithContext(ctx, "failed to persist checkout outcome", err, map[string]interface{}{
			"payment_id": req.Confirmation.PaymentID,
		})
	}

	eventType := notifications.EventCheckoutCompleted
	reason := ""
	if finalErr != nil {
		eventType = notifications.EventCheckoutFailed
		reason = finalErr.Error()
	}
	event := notifications.NewOutcomeEvent(eventType)
	event.GatewayPaymentID = req.Confirmation.PaymentID
	event.BookingID = outcome.BookingID
	event.OrderID = outcome.OrderID
	event.UserID = d.UserID
	event.BookingKind = string(d.Kind())
	event.AmountPaid = paid
	event.PaymentType = req.PaymentType
	event.SurpriseGift = outcome.SurpriseGift
	event.FailedSteps = failedSteps
	event.Reason = reason

	if err := s.publisher.PublishOutcome(ctx, event); err != nil {
		s.logger.ErrorWithContext(ctx, "failed to publish checkout outcome event", err, map[string]interface{}{
			"payment_id": req.Confirmation.PaymentID,
		})
	}
}

func (s *service) releaseGuard(ctx context.Context, guardKey string) {
	if err := s.cache.Delete(ctx, guardKey); err != nil {
		s.logger.WarnWithContext(ctx, "failed to release confirmation guard", map[string]interface{}{
			"key":   guardKey,
			"error": err.Error(),
		})
	}
}

func (s *service) FailPayment(ctx context.Context, token string, req FailPaymentRequest) (*FailureResponse, error) {
	s.gateway.Release(ctx, req.DraftID)

	if gateway.IsCancellation(req.Failure.Description) {
		// Silent and resumable: no alert, the draft stays where it was
		s.logger.LogGatewayCancelled(ctx, req.DraftID)
		return &FailureResponse{Cancelled: true}, nil
	}

	category := gateway.Classify(req.Failure)
	s.logger.WarnWithContext(ctx, "gateway payment failed", map[string]interface{}{
		"draft_id":    req.DraftID,
		"category":    category,
		"code":        req.Failure.Code,
		"description": req.Failure.Description,
	})

	return &FailureResponse{
		Cancelled: false,
		Category:  category,
		Message:   gateway.MessageFor(category),
	}, nil
}

func (s *service) bookingPayload(d *drafts.BookingDraft) authority.BookingPayload {
	return authority.BookingPayload{
		VenueID:         d.VenueID,
		SpaceID:         d.SpaceID,
		BookingType:     d.BookingType,
		StartAt:         d.StartAt.Format(time.RFC3339),
		EndAt:           d.EndAt.Format(time.RFC3339),
		Attendees:       d.Attendees,
		EventType:       d.EventType,
		TotalAmount:     pricing.FinalAmount(d, discountsFor(d)),
		SpecialRequests: d.SpecialRequests,
		BannerURL:       d.BannerURL,
		StageURL:        d.StageURL,
		Guests:          d.Guests,
	}
}

// DraftNotFound reports whether err means the draft is gone
func DraftNotFound(err error) bool {
	return errors.Is(err, drafts.ErrDraftNotFound)
}
