package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venuepay/internal/shared/constants"
	"venuepay/pkg/cache"
)

var (
	// ErrDraftNotFound is returned when no draft exists for the given id
	ErrDraftNotFound = errors.New("booking draft not found")
	// ErrSummaryNotFound is returned when no booking summary is pending
	ErrSummaryNotFound = errors.New("booking summary not found")
)

// Repository is the only component allowed to touch draft storage.
// Everything else works on the BookingDraft value it returns.
type Repository interface {
	Load(ctx context.Context, draftID string) (*BookingDraft, error)
	Save(ctx context.Context, draft *BookingDraft) error
	Clear(ctx context.Context, draftID string) error

	// Post-payment booking summary, consumed once by the landing screen
	SaveSummary(ctx context.Context, userID string, summary *BookingSummary) error
	TakeSummary(ctx context.Context, userID string) (*BookingSummary, error)
}

type repository struct {
	cache      cache.Service
	draftTTL   time.Duration
	summaryTTL time.Duration
}

// NewRepository creates a Redis-backed draft repository
func NewRepository(cacheService cache.Service, draftTTL, summaryTTL time.Duration) Repository {
	return &repository{
		cache:      cacheService,
		draftTTL:   draftTTL,
		summaryTTL: summaryTTL,
	}
}

func (r *repository) Load(ctx context.Context, draftID string) (*BookingDraft, error) {
	var draft BookingDraft
	err := r.cache.Get(ctx, constants.BuildDraftKey(draftID), &draft)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return &draft, nil
}

func (r *repository) Save(ctx context.Context, draft *BookingDraft) error {
	if draft.ID == "" {
		return errors.New("draft id is required")
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now()
	}
	if err := r.cache.Set(ctx, constants.BuildDraftKey(draft.ID), draft, r.draftTTL); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (r *repository) Clear(ctx context.Context, draftID string) error {
	if err := r.cache.Delete(ctx, constants.BuildDraftKey(draftID)); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

func (r *repository) SaveSummary(ctx context.Context, userID string, summary *BookingSummary) error {
	if err := r.cache.Set(ctx, constants.BuildSummaryKey(userID), summary, r.summaryTTL); err != nil {
		return fmt.Errorf("failed to save booking summary: %w", err)
	}
	return nil
}

// TakeSummary reads and deletes the pending summary so the landing toast
// shows at most once
func (r *repository) TakeSummary(ctx context.Context, userID string) (*BookingSummary, error) {
	var summary BookingSummary
	err := r.cache.Get(ctx, constants.BuildSummaryKey(userID), &summary)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("failed to load booking summary: %w", err)
	}

	// Best effort: a stale summary expires on its own TTL anyway
	_ = r.cache.Delete(ctx, constants.BuildSummaryKey(userID))

	return &summary, nil
}
