package ports

import (
	"context"

	"github.com/ratemystore/rating-system/internal/core/domain"
)

// RatingService is the consistency layer over the rating ledger.
type RatingService interface {
	// Submit validates the value and upserts the caller's rating for the
	// store. Resubmission replaces the previous value in place.
	Submit(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Rating, error)
	ListForStore(ctx context.Context, storeID string) ([]*domain.Rating, error)
	// Delete removes the caller's rating; domain.ErrRatingNotFound when none
	// existed.
	Delete(ctx context.Context, userID, storeID string) error
	// StatsFor returns the store's aggregate, {0,0} when unrated.
	StatsFor(ctx context.Context, storeID string) (*domain.RatingStats, error)
}
