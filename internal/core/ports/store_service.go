package ports

import (
	"context"

	"github.com/ratemystore/rating-system/internal/core/domain"
)

// CreateStoreInput carries the store creation form fields. OwnerID is the
// authenticated caller, never client-supplied.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID string
}

// StoreService manages store listings. Mutating operations apply the
// ownership rule: the store's owner or an admin, everyone else is refused
// with domain.ErrForbidden.
type StoreService interface {
	Create(ctx context.Context, input CreateStoreInput) (*domain.Store, error)
	Get(ctx context.Context, id string) (*domain.Store, error)
	List(ctx context.Context, filter ListStoresFilter) ([]*domain.Store, error)
	Update(ctx context.Context, id, callerID, callerRole string, update StoreUpdate) (*domain.Store, error)
	Delete(ctx context.Context, id, callerID, callerRole string) error
	// ListRatings returns the store's ratings with rater identity attached;
	// restricted to the owner or an admin.
	ListRatings(ctx context.Context, storeID, callerID, callerRole string) ([]*domain.Rating, error)
}
