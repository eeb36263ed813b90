package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ratemystore/rating-system/internal/core/domain"
	"github.com/ratemystore/rating-system/internal/core/ports"
)

// ActivityRepository persists rating events to the rating_events audit
// collection.
type ActivityRepository struct {
	db *mongo.Database
}

func NewActivityRepository(db *mongo.Database) ports.ActivityRepository {
	return &ActivityRepository{db: db}
}

// Insert appends one rating event to the audit feed.
func (r *ActivityRepository) Insert(ctx context.Context, event *domain.RatingEvent) error {
	doc := bson.M{
		"user_id":      event.UserID,
		"store_id":     event.StoreID,
		"action":       event.Action,
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.Action == domain.RatingSubmitted {
		doc["rating"] = event.Value
	}

	_, err := r.db.Collection("rating_events").InsertOne(ctx, doc)
	return err
}
