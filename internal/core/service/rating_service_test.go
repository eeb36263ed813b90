package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratemystore/rating-system/internal/core/domain"
)

type ratingKey struct {
	userID  string
	storeID string
}

type stubRatingRepo struct {
	ratings map[ratingKey]*domain.Rating
	statsFn func(storeID string) (*domain.RatingStats, error)
}

func newStubRatingRepo() *stubRatingRepo {
	return &stubRatingRepo{ratings: make(map[ratingKey]*domain.Rating)}
}

func (r *stubRatingRepo) Upsert(_ context.Context, userID, storeID string, value int, now time.Time) (*domain.Rating, error) {
	key := ratingKey{userID, storeID}
	if existing, ok := r.ratings[key]; ok {
		existing.Value = value
		existing.UpdatedAt = now
		clone := *existing
		return &clone, nil
	}
	rating := &domain.Rating{
		UserID:    userID,
		StoreID:   storeID,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.ratings[key] = rating
	clone := *rating
	return &clone, nil
}

func (r *stubRatingRepo) FindByUserAndStore(_ context.Context, userID, storeID string) (*domain.Rating, error) {
	if rating, ok := r.ratings[ratingKey{userID, storeID}]; ok {
		clone := *rating
		return &clone, nil
	}
	return nil, domain.ErrRatingNotFound
}

func (r *stubRatingRepo) ListForUser(_ context.Context, userID string) ([]*domain.Rating, error) {
	var out []*domain.Rating
	for _, rating := range r.ratings {
		if rating.UserID == userID {
			clone := *rating
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubRatingRepo) ListForStore(_ context.Context, storeID string) ([]*domain.Rating, error) {
	var out []*domain.Rating
	for _, rating := range r.ratings {
		if rating.StoreID == storeID {
			clone := *rating
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubRatingRepo) Delete(_ context.Context, userID, storeID string) (bool, error) {
	key := ratingKey{userID, storeID}
	if _, ok := r.ratings[key]; !ok {
		return false, nil
	}
	delete(r.ratings, key)
	return true, nil
}

func (r *stubRatingRepo) Stats(_ context.Context, storeID string) (*domain.RatingStats, error) {
	if r.statsFn != nil {
		return r.statsFn(storeID)
	}
	var sum, count int64
	for _, rating := range r.ratings {
		if rating.StoreID == storeID {
			sum += int64(rating.Value)
			count++
		}
	}
	if count == 0 {
		return &domain.RatingStats{}, nil
	}
	return &domain.RatingStats{Average: float64(sum) / float64(count), Count: count}, nil
}

type stubStatsCache struct {
	entries     map[string]*domain.RatingStats
	gets        int
	sets        int
	invalidated []string
}

func newStubStatsCache() *stubStatsCache {
	return &stubStatsCache{entries: make(map[string]*domain.RatingStats)}
}

func (c *stubStatsCache) Get(_ context.Context, storeID string) (*domain.RatingStats, error) {
	c.gets++
	if stats, ok := c.entries[storeID]; ok {
		clone := *stats
		return &clone, nil
	}
	return nil, nil
}

func (c *stubStatsCache) Set(_ context.Context, storeID string, stats *domain.RatingStats) error {
	c.sets++
	clone := *stats
	c.entries[storeID] = &clone
	return nil
}

func (c *stubStatsCache) Invalidate(_ context.Context, storeID string) error {
	c.invalidated = append(c.invalidated, storeID)
	delete(c.entries, storeID)
	return nil
}

type stubDispatcher struct {
	events []domain.RatingEvent
}

func (d *stubDispatcher) Enqueue(event domain.RatingEvent) {
	d.events = append(d.events, event)
}

func TestRatingService_Submit_InsertThenUpdate(t *testing.T) {
	repo := newStubRatingRepo()
	svc := NewRatingService(repo, nil, nil, zerolog.Nop())

	first, err := svc.Submit(context.Background(), "user_1", "store_1", 4)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if first.Value != 4 {
		t.Fatalf("unexpected value: %d", first.Value)
	}

	second, err := svc.Submit(context.Background(), "user_1", "store_1", 2)
	if err != nil {
		t.Fatalf("resubmit returned error: %v", err)
	}
	if second.Value != 2 {
		t.Fatalf("expected updated value 2, got %d", second.Value)
	}
	if second.CreatedAt != first.CreatedAt {
		t.Fatalf("resubmission must not reset created_at")
	}
	if len(repo.ratings) != 1 {
		t.Fatalf("expected a single row per (user, store), got %d", len(repo.ratings))
	}
}

func TestRatingService_Submit_RangeEnforced(t *testing.T) {
	svc := NewRatingService(newStubRatingRepo(), nil, nil, zerolog.Nop())

	for _, value := range []int{0, 6, -1} {
		if _, err := svc.Submit(context.Background(), "user_1", "store_1", value); err != domain.ErrInvalidRating {
			t.Fatalf("expected ErrInvalidRating for %d, got %v", value, err)
		}
	}
	for _, value := range []int{domain.MinRating, domain.MaxRating} {
		if _, err := svc.Submit(context.Background(), "user_1", "store_1", value); err != nil {
			t.Fatalf("expected %d to be accepted, got %v", value, err)
		}
	}
}

func TestRatingService_Submit_MissingIDs(t *testing.T) {
	svc := NewRatingService(newStubRatingRepo(), nil, nil, zerolog.Nop())

	if _, err := svc.Submit(context.Background(), "", "store_1", 3); err != domain.ErrMissingField {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), "user_1", "", 3); err != domain.ErrMissingField {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}

func TestRatingService_Delete(t *testing.T) {
	repo := newStubRatingRepo()
	svc := NewRatingService(repo, nil, nil, zerolog.Nop())

	if _, err := svc.Submit(context.Background(), "user_1", "store_1", 5); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := svc.Delete(context.Background(), "user_1", "store_1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), "user_1", "store_1"); err != domain.ErrRatingNotFound {
		t.Fatalf("expected ErrRatingNotFound on second delete, got %v", err)
	}
}

func TestRatingService_StatsFor_UnratedStore(t *testing.T) {
	svc := NewRatingService(newStubRatingRepo(), nil, nil, zerolog.Nop())

	stats, err := svc.StatsFor(context.Background(), "store_none")
	if err != nil {
		t.Fatalf("StatsFor returned error: %v", err)
	}
	if stats.Average != 0 || stats.Count != 0 {
		t.Fatalf("expected {0, 0} for unrated store, got %+v", stats)
	}
}

func TestRatingService_StatsFor_CacheMissThenHit(t *testing.T) {
	repo := newStubRatingRepo()
	cache := newStubStatsCache()
	svc := NewRatingService(repo, cache, nil, zerolog.Nop())

	if _, err := svc.Submit(context.Background(), "user_1", "store_1", 4); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.Submit(context.Background(), "user_2", "store_1", 2); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	stats, err := svc.StatsFor(context.Background(), "store_1")
	if err != nil {
		t.Fatalf("StatsFor returned error: %v", err)
	}
	if stats.Average != 3 || stats.Count != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if cache.sets != 1 {
		t.Fatalf("expected miss to repopulate cache, sets=%d", cache.sets)
	}

	// A second read must be served from the cache, not the repository.
	repo.statsFn = func(string) (*domain.RatingStats, error) {
		t.Fatalf("repository queried on warm cache")
		return nil, nil
	}
	again, err := svc.StatsFor(context.Background(), "store_1")
	if err != nil {
		t.Fatalf("StatsFor returned error: %v", err)
	}
	if again.Average != 3 || again.Count != 2 {
		t.Fatalf("unexpected cached stats: %+v", again)
	}
}

func TestRatingService_MutationsInvalidateCacheAndEnqueue(t *testing.T) {
	cache := newStubStatsCache()
	dispatcher := &stubDispatcher{}
	svc := NewRatingService(newStubRatingRepo(), cache, dispatcher, zerolog.Nop())

	if _, err := svc.Submit(context.Background(), "user_1", "store_1", 5); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := svc.Delete(context.Background(), "user_1", "store_1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if len(cache.invalidated) != 2 {
		t.Fatalf("expected 2 invalidations, got %d", len(cache.invalidated))
	}
	if len(dispatcher.events) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(dispatcher.events))
	}
	if dispatcher.events[0].Action != domain.RatingSubmitted {
		t.Fatalf("unexpected first action: %s", dispatcher.events[0].Action)
	}
	if dispatcher.events[1].Action != domain.RatingDeleted {
		t.Fatalf("unexpected second action: %s", dispatcher.events[1].Action)
	}
}
