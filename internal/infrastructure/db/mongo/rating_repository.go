package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ratemystore/rating-system/internal/core/domain"
)

const collectionRatings = "ratings"

// RatingRepository implements ports.RatingRepository using MongoDB.
// Ratings are keyed by the (user_id, store_id) pair, guarded by a unique
// compound index.
type RatingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{col: db.Collection(collectionRatings)}
}

type mongoRating struct {
	UserID    primitive.ObjectID `bson:"user_id"`
	StoreID   primitive.ObjectID `bson:"store_id"`
	Value     int                `bson:"rating"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`

	// Populated by the $lookup list pipelines only.
	StoreName    string `bson:"store_name,omitempty"`
	StoreAddress string `bson:"store_address,omitempty"`
	UserName     string `bson:"user_name,omitempty"`
	UserEmail    string `bson:"user_email,omitempty"`
}

func (m *mongoRating) toDomain() *domain.Rating {
	return &domain.Rating{
		UserID:       m.UserID.Hex(),
		StoreID:      m.StoreID.Hex(),
		Value:        m.Value,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		StoreName:    m.StoreName,
		StoreAddress: m.StoreAddress,
		UserName:     m.UserName,
		UserEmail:    m.UserEmail,
	}
}

func ratingKey(userID, storeID string) (primitive.ObjectID, primitive.ObjectID, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, domain.ErrUserNotFound
	}
	sid, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, domain.ErrStoreNotFound
	}
	return uid, sid, nil
}

// Upsert inserts or replaces the single rating for (userID, storeID) in one
// atomic FindOneAndUpdate round trip. The engine's conflict resolution on the
// unique key means two concurrent submissions can never produce two rows or
// lose an update.
func (r *RatingRepository) Upsert(ctx context.Context, userID, storeID string, value int, now time.Time) (*domain.Rating, error) {
	uid, sid, err := ratingKey(userID, storeID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": uid, "store_id": sid}
	update := bson.M{
		"$set":         bson.M{"rating": value, "updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var mr mongoRating
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mr); err != nil {
		return nil, fmt.Errorf("upsert rating: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *RatingRepository) FindByUserAndStore(ctx context.Context, userID, storeID string) (*domain.Rating, error) {
	uid, sid, err := ratingKey(userID, storeID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoRating
	if err := r.col.FindOne(ctx, bson.M{"user_id": uid, "store_id": sid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, fmt.Errorf("find rating: %w", err)
	}
	return mr.toDomain(), nil
}

// ListForUser returns the user's ratings newest-first, joined with each
// store's display name and address in a single aggregation round trip.
func (r *RatingRepository) ListForUser(ctx context.Context, userID string) ([]*domain.Rating, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": uid}}},
		{{Key: "$sort", Value: bson.M{"created_at": -1}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionStores,
			"localField":   "store_id",
			"foreignField": "_id",
			"as":           "store",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$store", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$addFields", Value: bson.M{
			"store_name":    "$store.name",
			"store_address": "$store.address",
		}}},
		{{Key: "$project", Value: bson.M{"store": 0}}},
	}

	return r.aggregate(ctx, pipeline)
}

// ListForStore returns a store's ratings newest-first, joined with each
// rater's name and email.
func (r *RatingRepository) ListForStore(ctx context.Context, storeID string) ([]*domain.Rating, error) {
	sid, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return nil, domain.ErrStoreNotFound
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"store_id": sid}}},
		{{Key: "$sort", Value: bson.M{"created_at": -1}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "rater",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$rater", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$addFields", Value: bson.M{
			"user_name":  "$rater.name",
			"user_email": "$rater.email",
		}}},
		{{Key: "$project", Value: bson.M{"rater": 0}}},
	}

	return r.aggregate(ctx, pipeline)
}

func (r *RatingRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]*domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer cursor.Close(ctx)

	ratings := make([]*domain.Rating, 0)
	for cursor.Next(ctx) {
		var mr mongoRating
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode rating: %w", err)
		}
		ratings = append(ratings, mr.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}

// Delete removes the rating if present. Absence is reported, not an error,
// so the operation stays idempotent at this layer.
func (r *RatingRepository) Delete(ctx context.Context, userID, storeID string) (bool, error) {
	uid, sid, err := ratingKey(userID, storeID)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"user_id": uid, "store_id": sid})
	if err != nil {
		return false, fmt.Errorf("delete rating: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// Stats computes the store's mean and count in one aggregation. A store with
// no ratings yields {Average: 0, Count: 0}, never NaN.
func (r *RatingRepository) Stats(ctx context.Context, storeID string) (*domain.RatingStats, error) {
	sid, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return &domain.RatingStats{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"store_id": sid}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("rating stats: %w", err)
	}
	defer cursor.Close(ctx)

	var row struct {
		Average float64 `bson:"average"`
		Count   int64   `bson:"count"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode rating stats: %w", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("rating stats: %w", err)
	}

	return &domain.RatingStats{Average: row.Average, Count: row.Count}, nil
}

// EnsureIndexes creates the unique (user_id, store_id) index that backs the
// one-rating-per-user-per-store invariant, plus the store listing index.
func (r *RatingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "store_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "store_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
