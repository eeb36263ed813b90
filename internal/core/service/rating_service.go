package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratemystore/rating-system/internal/api/metrics"
	"github.com/ratemystore/rating-system/internal/core/domain"
	"github.com/ratemystore/rating-system/internal/core/ports"
)

// StatsCache abstracts the per-store aggregate cache (Redis). Cache failures
// are non-fatal; the ledger query runs instead.
type StatsCache interface {
	Get(ctx context.Context, storeID string) (*domain.RatingStats, error)
	Set(ctx context.Context, storeID string, stats *domain.RatingStats) error
	Invalidate(ctx context.Context, storeID string) error
}

// RatingService enforces the one-rating-per-user-per-store invariant on top
// of the atomic upsert provided by the repository.
type RatingService struct {
	repo       ports.RatingRepository
	cache      StatsCache
	dispatcher ports.ActivityDispatcher
	logger     zerolog.Logger
}

func NewRatingService(repo ports.RatingRepository, cache StatsCache, dispatcher ports.ActivityDispatcher, logger zerolog.Logger) *RatingService {
	return &RatingService{repo: repo, cache: cache, dispatcher: dispatcher, logger: logger}
}

// Submit upserts the caller's rating for the store in a single storage
// operation: first submission inserts, resubmission replaces the value and
// bumps updated_at. Concurrent submissions by the same user cannot create a
// second row.
func (s *RatingService) Submit(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error) {
	if userID == "" || storeID == "" {
		return nil, domain.ErrMissingField
	}
	if !domain.ValidRating(value) {
		return nil, domain.ErrInvalidRating
	}

	now := time.Now().UTC()
	rating, err := s.repo.Upsert(ctx, userID, storeID, value, now)
	if err != nil {
		s.logger.Error().Err(err).Str("store_id", storeID).Msg("rating upsert failed")
		return nil, err
	}

	s.afterMutation(ctx, domain.RatingEvent{
		UserID:    userID,
		StoreID:   storeID,
		Action:    domain.RatingSubmitted,
		Value:     value,
		Timestamp: now,
	})

	s.logger.Info().Str("user_id", userID).Str("store_id", storeID).Int("rating", value).Msg("rating submitted")
	return rating, nil
}

func (s *RatingService) ListForUser(ctx context.Context, userID string) ([]*domain.Rating, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *RatingService) ListForStore(ctx context.Context, storeID string) ([]*domain.Rating, error) {
	return s.repo.ListForStore(ctx, storeID)
}

// Delete removes the caller's rating for the store. Deletion is idempotent
// at the storage layer; the service reports ErrRatingNotFound when nothing
// was removed so the boundary can answer 404.
func (s *RatingService) Delete(ctx context.Context, userID, storeID string) error {
	removed, err := s.repo.Delete(ctx, userID, storeID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrRatingNotFound
	}

	s.afterMutation(ctx, domain.RatingEvent{
		UserID:    userID,
		StoreID:   storeID,
		Action:    domain.RatingDeleted,
		Timestamp: time.Now().UTC(),
	})

	s.logger.Info().Str("user_id", userID).Str("store_id", storeID).Msg("rating deleted")
	return nil
}

// StatsFor returns the store's mean and count, {0,0} when unrated. Warm
// results come from the cache; misses fall through to a single aggregate
// query and repopulate it.
func (s *RatingService) StatsFor(ctx context.Context, storeID string) (*domain.RatingStats, error) {
	if s.cache != nil {
		if stats, err := s.cache.Get(ctx, storeID); err == nil && stats != nil {
			metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
			return stats, nil
		}
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
	}

	stats, err := s.repo.Stats(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, storeID, stats); err != nil {
			s.logger.Warn().Err(err).Str("store_id", storeID).Msg("stats cache set failed")
		}
	}
	return stats, nil
}

// afterMutation invalidates the aggregate cache and queues the audit event.
// Neither failure is surfaced to the rating caller.
func (s *RatingService) afterMutation(ctx context.Context, event domain.RatingEvent) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, event.StoreID); err != nil {
			s.logger.Warn().Err(err).Str("store_id", event.StoreID).Msg("stats cache invalidation failed")
		}
	}
	if s.dispatcher != nil {
		s.dispatcher.Enqueue(event)
	}
	metrics.RatingMutationsTotal.WithLabelValues(event.Action).Inc()
}
