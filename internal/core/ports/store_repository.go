package ports

import (
	"context"

	"github.com/ratemystore/rating-system/internal/core/domain"
)

// ListStoresFilter carries the query parameters for listing stores.
type ListStoresFilter struct {
	Name     string // optional: partial, case-insensitive match
	Address  string // optional: partial, case-insensitive match
	SortBy   string // "name" (default) or "average_rating"
	SortDesc bool
}

// StoreUpdate holds the mutable store fields; empty strings keep the
// current value.
type StoreUpdate struct {
	Name    string
	Email   string
	Address string
}

// StoreRepository defines persistence for store listings. Read operations
// return stores with their rating aggregates populated.
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) (*domain.Store, error)
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	List(ctx context.Context, filter ListStoresFilter) ([]*domain.Store, error)
	Update(ctx context.Context, id string, update StoreUpdate) (*domain.Store, error)
	Delete(ctx context.Context, id string) error
}
