package domain

import "time"

// Store is a rateable business listing owned by a store_owner (or admin).
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Aggregate fields populated by read queries.
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}

// CanBeManagedBy implements the ownership rule: the owning user may manage
// the store, and admins may manage any store.
func (s *Store) CanBeManagedBy(userID, role string) bool {
	return role == RoleAdmin || s.OwnerID == userID
}
