package gateway

import (
	"errors"
	"strings"
)

var (
	// ErrConfiguration means the checkout session could never have opened:
	// missing key id, empty order id, or a malformed option set.
	ErrConfiguration = errors.New("gateway configuration invalid")

	// ErrSessionActive means another payment session already holds the lock
	// for this draft.
	ErrSessionActive = errors.New("a payment session is already active for this booking")

	// ErrOrderCreation means the gateway order could not be created after
	// exhausting the retry budget. No money moved; safe to retry.
	ErrOrderCreation = errors.New("gateway order creation failed")

	// ErrSignatureMismatch means the confirmation's signature does not match
	// the order/payment pair. Treated as verification failure downstream.
	ErrSignatureMismatch = errors.New("gateway signature mismatch")
)

// Failure categories for terminal widget errors
const (
	FailureNetwork       = "network"
	FailureConfiguration = "configuration"
	FailureInvalidOrder  = "invalid_order"
	FailureTimeout       = "timeout"
	FailureGeneric       = "generic"
)

// failureMessages maps a category to the user-facing alert body. Cancellations
// never reach these: a user who backed out gets no alert at all.
var failureMessages = map[string]string{
	FailureNetwork:       "Network issue while contacting the payment gateway. Please check your connection and try again.",
	FailureConfiguration: "The payment could not be started due to a configuration problem. Please try again later.",
	FailureInvalidOrder:  "This payment order is no longer valid. Please restart the payment.",
	FailureTimeout:       "The payment gateway took too long to respond. Please try again.",
	FailureGeneric:       "The payment could not be completed. Please try again.",
}

// Failure is the terminal error payload delivered by the checkout widget
type Failure struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// IsCancellation reports whether the widget failure is really the user
// backing out. Gateways report dismissal through the same failure callback
// as genuine errors, distinguishable only by the description text.
func IsCancellation(description string) bool {
	desc := strings.ToLower(description)
	return strings.Contains(desc, "cancelled") || strings.Contains(desc, "dismissed")
}

// Classify buckets a widget failure into a category by inspecting its code
// and description.
func Classify(f Failure) string {
	text := strings.ToLower(f.Code + " " + f.Description)
	switch {
	case strings.Contains(text, "network") || strings.Contains(text, "connection") || strings.Contains(text, "offline"):
		return FailureNetwork
	case strings.Contains(text, "timeout") || strings.Contains(text, "timed out"):
		return FailureTimeout
	case strings.Contains(text, "key") || strings.Contains(text, "config") || strings.Contains(text, "authentication"):
		return FailureConfiguration
	case strings.Contains(text, "order"):
		return FailureInvalidOrder
	default:
		return FailureGeneric
	}
}

// MessageFor returns the alert body for a failure category
func MessageFor(category string) string {
	if msg, ok := failureMessages[category]; ok {
		return msg
	}
	return failureMessages[FailureGeneric]
}
