package constants

import "time"

// Redis Key Configuration
// This file centralizes all Redis keys and TTL values for the venuepay service
// Pattern: venuepay:{module}:{operation}:{identifier}

// ================== TTL DURATIONS ==================

const (
	// Drafts live until the user pays or walks away
	TTL_DRAFT = 24 * time.Hour

	// Booking summaries wait for the landing screen to consume them
	TTL_SUMMARY = 48 * time.Hour

	// Advance-payment policy is fetched once per screen session
	TTL_POLICY_CACHE = 30 * time.Minute

	// A payment session lock covers the longest plausible gateway dwell time
	TTL_SESSION_LOCK = 20 * time.Minute

	// One-shot orchestrator guard per gateway confirmation
	TTL_CONFIRMATION_GUARD = 48 * time.Hour
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "venuepay"
)

// ================== DRAFTS MODULE ==================

const (
	KEY_DRAFT   = CACHE_PREFIX + ":drafts:draft:"        // + draft-id
	KEY_SUMMARY = CACHE_PREFIX + ":drafts:summary:user:" // + user-id
)

// ================== CHECKOUT MODULE ==================

const (
	KEY_POLICY_CACHE       = CACHE_PREFIX + ":checkout:advance_policy"
	KEY_SESSION_LOCK       = CACHE_PREFIX + ":gateway:session:draft:" // + draft-id
	KEY_CONFIRMATION_GUARD = CACHE_PREFIX + ":checkout:confirmed:"    // + gateway-payment-id
)

// ================== HELPER FUNCTIONS ==================

func BuildDraftKey(draftID string) string {
	return KEY_DRAFT + draftID
}

func BuildSummaryKey(userID string) string {
	return KEY_SUMMARY + userID
}

func BuildSessionLockKey(draftID string) string {
	return KEY_SESSION_LOCK + draftID
}

func BuildConfirmationGuardKey(paymentID string) string {
	return KEY_CONFIRMATION_GUARD + paymentID
}
