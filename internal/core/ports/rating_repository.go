package ports

import (
	"context"
	"time"

	"github.com/ratemystore/rating-system/internal/core/domain"
)

// RatingRepository defines persistence for the rating ledger.
type RatingRepository interface {
	// Upsert atomically inserts or updates the single rating row keyed on
	// (userID, storeID) in one storage operation. created_at is set only on
	// insert; updated_at always. Returns the post-image.
	Upsert(ctx context.Context, userID, storeID string, value int, now time.Time) (*domain.Rating, error)
	FindByUserAndStore(ctx context.Context, userID, storeID string) (*domain.Rating, error)
	// ListForUser returns the user's ratings newest-first, each joined with
	// the store's name and address.
	ListForUser(ctx context.Context, userID string) ([]*domain.Rating, error)
	// ListForStore returns a store's ratings newest-first, each joined with
	// the rater's name and email.
	ListForStore(ctx context.Context, storeID string) ([]*domain.Rating, error)
	// Delete removes the rating if present and reports whether a row was
	// removed. Deleting an absent rating is not an error here.
	Delete(ctx context.Context, userID, storeID string) (bool, error)
	// Stats computes the mean and count of a store's ratings in a single
	// query; a store with no ratings yields {0, 0}.
	Stats(ctx context.Context, storeID string) (*domain.RatingStats, error)
}
