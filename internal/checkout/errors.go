package checkout

import "errors"

var (
	// ErrAlreadyConfirmed means this gateway confirmation was already
	// processed. The orchestrator runs at most once per payment id.
	ErrAlreadyConfirmed = errors.New("payment confirmation already processed")

	// ErrFinalizationFailed means the payment verified but a booking-fatal
	// post-payment step failed. The user's money is safe server-side; the
	// draft is kept so support can finish the booking.
	ErrFinalizationFailed = errors.New("booking finalization failed after payment")
)

// User-facing messages. The verification-failure message must never invite a
// retry: the charge already went through at the gateway and paying again
// would double-charge.
const (
	MsgVerificationFailed = "Your payment was received but could not be verified. Please contact support with your payment reference; do not pay again."
	MsgFinalizationFailed = "Your payment is confirmed but we could not finish creating your booking. Please contact support with your payment reference."
	MsgPreparationFailed  = "We could not start your payment. Please try again."
	MsgSessionActive      = "A payment is already in progress for this booking."
)
