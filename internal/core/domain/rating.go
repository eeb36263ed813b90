package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// ValidRating reports whether value is inside the accepted range.
func ValidRating(value int) bool {
	return value >= MinRating && value <= MaxRating
}

// Rating is one user's score for one store. At most one exists per
// (UserID, StoreID) pair; resubmission updates the row in place.
type Rating struct {
	UserID    string    `json:"user_id" bson:"user_id"`
	StoreID   string    `json:"store_id" bson:"store_id"`
	Value     int       `json:"rating" bson:"rating"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`

	// Joined presentation fields, populated by list queries only.
	StoreName    string `json:"store_name,omitempty" bson:"store_name,omitempty"`
	StoreAddress string `json:"store_address,omitempty" bson:"store_address,omitempty"`
	UserName     string `json:"user_name,omitempty" bson:"user_name,omitempty"`
	UserEmail    string `json:"user_email,omitempty" bson:"user_email,omitempty"`
}

// RatingStats summarises all current ratings for a store.
// Average is exactly 0 when Count is 0.
type RatingStats struct {
	Average float64 `json:"average_rating"`
	Count   int64   `json:"total_ratings"`
}

// RatingEvent is an audit record of a rating mutation, persisted
// asynchronously by the activity workers.
type RatingEvent struct {
	UserID    string    `json:"user_id"`
	StoreID   string    `json:"store_id"`
	Action    string    `json:"action"` // "submitted" or "deleted"
	Value     int       `json:"rating,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	RatingSubmitted = "submitted"
	RatingDeleted   = "deleted"
)
