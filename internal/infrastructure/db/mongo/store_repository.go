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
	"github.com/ratemystore/rating-system/internal/core/ports"
)

const collectionStores = "stores"

// StoreRepository implements ports.StoreRepository using MongoDB. Read
// queries join the ratings collection so every returned store carries its
// current average and count.
type StoreRepository struct {
	col *mongo.Collection
}

func NewStoreRepository(db *mongo.Database) *StoreRepository {
	return &StoreRepository{col: db.Collection(collectionStores)}
}

type mongoStore struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email,omitempty"`
	Address   string             `bson:"address"`
	OwnerID   primitive.ObjectID `bson:"owner_id"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`

	AverageRating float64 `bson:"average_rating,omitempty"`
	TotalRatings  int64   `bson:"total_ratings,omitempty"`
}

func (m *mongoStore) toDomain() *domain.Store {
	return &domain.Store{
		ID:            m.ID.Hex(),
		Name:          m.Name,
		Email:         m.Email,
		Address:       m.Address,
		OwnerID:       m.OwnerID.Hex(),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		AverageRating: m.AverageRating,
		TotalRatings:  m.TotalRatings,
	}
}

func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	owner, err := primitive.ObjectIDFromHex(store.OwnerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoStore{
		Name:      store.Name,
		Email:     store.Email,
		Address:   store.Address,
		OwnerID:   owner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert store: %w", err)
	}

	created := *store
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.CreatedAt = now
	created.UpdatedAt = now
	return &created, nil
}

// statsStages joins ratings and derives average_rating/total_ratings,
// defaulting the average to 0 for unrated stores.
func statsStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionRatings,
			"localField":   "_id",
			"foreignField": "store_id",
			"as":           "ratings",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"average_rating": bson.M{"$ifNull": bson.A{bson.M{"$avg": "$ratings.rating"}, 0}},
			"total_ratings":  bson.M{"$size": "$ratings"},
		}}},
		{{Key: "$project", Value: bson.M{"ratings": 0}}},
	}
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStoreNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{{{Key: "$match", Value: bson.M{"_id": oid}}}}
	pipeline = append(pipeline, statsStages()...)

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("find store: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("find store: %w", err)
		}
		return nil, domain.ErrStoreNotFound
	}

	var ms mongoStore
	if err := cursor.Decode(&ms); err != nil {
		return nil, fmt.Errorf("decode store: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *StoreRepository) List(ctx context.Context, filter ports.ListStoresFilter) ([]*domain.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{}
	if filter.Name != "" {
		match["name"] = bson.M{"$regex": filter.Name, "$options": "i"}
	}
	if filter.Address != "" {
		match["address"] = bson.M{"$regex": filter.Address, "$options": "i"}
	}

	sortField := "name"
	if filter.SortBy == "average_rating" {
		sortField = "average_rating"
	}
	order := 1
	if filter.SortDesc {
		order = -1
	}

	pipeline := mongo.Pipeline{{{Key: "$match", Value: match}}}
	pipeline = append(pipeline, statsStages()...)
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: sortField, Value: order}}}})

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer cursor.Close(ctx)

	stores := make([]*domain.Store, 0)
	for cursor.Next(ctx) {
		var ms mongoStore
		if err := cursor.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode store: %w", err)
		}
		stores = append(stores, ms.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

// Update applies the non-empty fields; empty strings keep the stored value.
func (r *StoreRepository) Update(ctx context.Context, id string, update ports.StoreUpdate) (*domain.Store, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStoreNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != "" {
		set["name"] = update.Name
	}
	if update.Email != "" {
		set["email"] = update.Email
	}
	if update.Address != "" {
		set["address"] = update.Address
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ms mongoStore
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("update store: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrStoreNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrStoreNotFound
	}
	return nil
}

// EnsureIndexes creates the owner lookup index.
func (r *StoreRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	return err
}
