package drafts

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venuepay/internal/shared/constants"
	"venuepay/pkg/cache"
)

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

func newTestRepo() (Repository, *fakeCache) {
	fc := newFakeCache()
	return NewRepository(fc, constants.TTL_DRAFT, constants.TTL_SUMMARY), fc
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	repo, _ := newTestRepo()
	draft := &BookingDraft{
		ID:          "draft-1",
		UserID:      "user-1",
		BaseRental:  10000,
		TotalAmount: 10000,
		Guests:      []GuestEntry{{Name: "A", Phone: "123"}},
	}

	require.NoError(t, repo.Save(context.Background(), draft))

	loaded, err := repo.Load(context.Background(), "draft-1")
	require.NoError(t, err)
	assert.Equal(t, draft.ID, loaded.ID)
	assert.Equal(t, int64(10000), loaded.TotalAmount)
	require.Len(t, loaded.Guests, 1)
	assert.False(t, loaded.CreatedAt.IsZero())
}

func TestSaveRequiresID(t *testing.T) {
	repo, _ := newTestRepo()
	assert.Error(t, repo.Save(context.Background(), &BookingDraft{}))
}

func TestLoadMissingDraft(t *testing.T) {
	repo, _ := newTestRepo()
	_, err := repo.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestClearRemovesDraft(t *testing.T) {
	repo, fc := newTestRepo()
	require.NoError(t, repo.Save(context.Background(), &BookingDraft{ID: "draft-1"}))

	require.NoError(t, repo.Clear(context.Background(), "draft-1"))
	assert.False(t, fc.Exists(context.Background(), constants.BuildDraftKey("draft-1")))

	_, err := repo.Load(context.Background(), "draft-1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestTakeSummaryConsumesOnce(t *testing.T) {
	repo, _ := newTestRepo()
	require.NoError(t, repo.SaveSummary(context.Background(), "user-1", &BookingSummary{
		BookingID:  "booking-1",
		Status:     "confirmed",
		AmountPaid: 5000,
	}))

	summary, err := repo.TakeSummary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "booking-1", summary.BookingID)

	// The toast shows at most once
	_, err = repo.TakeSummary(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrSummaryNotFound)
}

func TestKindResolution(t *testing.T) {
	assert.Equal(t, KindRegular, (&BookingDraft{}).Kind())
	assert.Equal(t, KindProgram, (&BookingDraft{IsProgram: true}).Kind())
	assert.Equal(t, KindProgram, (&BookingDraft{BookingType: "live-standup"}).Kind())
	// Rack wins even when the program flag is set
	assert.Equal(t, KindRack, (&BookingDraft{IsRackOrder: true, IsProgram: true}).Kind())
}

func TestIsLiveShow(t *testing.T) {
	assert.True(t, (&BookingDraft{BookingType: "live-concert"}).IsLiveShow())
	assert.False(t, (&BookingDraft{BookingType: BookingTypeOneDay}).IsLiveShow())
	assert.False(t, (&BookingDraft{BookingType: "alive-show"}).IsLiveShow())
}

func TestIsWeekendStart(t *testing.T) {
	assert.True(t, (&BookingDraft{StartAt: time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)}).IsWeekendStart())
	assert.True(t, (&BookingDraft{StartAt: time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)}).IsWeekendStart())
	assert.False(t, (&BookingDraft{StartAt: time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)}).IsWeekendStart())
}

func TestIsEditMode(t *testing.T) {
	assert.True(t, (&BookingDraft{EditBookingID: "b1"}).IsEditMode())
	assert.False(t, (&BookingDraft{}).IsEditMode())
}
