package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ratemystore/rating-system/internal/core/domain"
	"github.com/ratemystore/rating-system/internal/core/ports"
)

// StoreService manages store listings. Role gating (admin or store_owner may
// create) happens at the route; the ownership rule on mutations is enforced
// here because it needs the resource's owner.
type StoreService struct {
	stores  ports.StoreRepository
	ratings ports.RatingRepository
	logger  zerolog.Logger
}

func NewStoreService(stores ports.StoreRepository, ratings ports.RatingRepository, logger zerolog.Logger) *StoreService {
	return &StoreService{stores: stores, ratings: ratings, logger: logger}
}

func (s *StoreService) Create(ctx context.Context, input ports.CreateStoreInput) (*domain.Store, error) {
	if input.Name == "" || input.Address == "" || input.OwnerID == "" {
		return nil, domain.ErrMissingField
	}

	store, err := s.stores.Create(ctx, &domain.Store{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		OwnerID: input.OwnerID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("store_id", store.ID).Str("owner_id", store.OwnerID).Msg("store created")
	return store, nil
}

func (s *StoreService) Get(ctx context.Context, id string) (*domain.Store, error) {
	return s.stores.FindByID(ctx, id)
}

func (s *StoreService) List(ctx context.Context, filter ports.ListStoresFilter) ([]*domain.Store, error) {
	return s.stores.List(ctx, filter)
}

func (s *StoreService) Update(ctx context.Context, id, callerID, callerRole string, update ports.StoreUpdate) (*domain.Store, error) {
	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !store.CanBeManagedBy(callerID, callerRole) {
		return nil, domain.ErrForbidden
	}
	return s.stores.Update(ctx, id, update)
}

func (s *StoreService) Delete(ctx context.Context, id, callerID, callerRole string) error {
	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !store.CanBeManagedBy(callerID, callerRole) {
		return domain.ErrForbidden
	}

	if err := s.stores.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("store_id", id).Str("deleted_by", callerID).Msg("store deleted")
	return nil
}

// ListRatings exposes a store's individual ratings, rater identity included,
// to the store's owner or an admin only.
func (s *StoreService) ListRatings(ctx context.Context, storeID, callerID, callerRole string) ([]*domain.Rating, error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !store.CanBeManagedBy(callerID, callerRole) {
		return nil, domain.ErrForbidden
	}
	return s.ratings.ListForStore(ctx, storeID)
}
