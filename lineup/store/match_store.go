package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/futbolformaciones/lineup-service/shared/models"
)

// MatchStore is the MongoDB data store for match results.
type MatchStore struct {
	collection *mongo.Collection
}

// NewMatchStore creates a new MatchStore instance.
func NewMatchStore(collection *mongo.Collection) *MatchStore {
	return &MatchStore{collection: collection}
}

// Create inserts a new match document.
func (ms *MatchStore) Create(ctx context.Context, m *models.Match) error {
	if _, err := ms.collection.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to create match %q vs %q: %w", m.LocalName, m.VisitingName, err)
	}
	return nil
}

// GetByID retrieves a match by id. Returns mongo.ErrNoDocuments when the
// match does not exist.
func (ms *MatchStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Match, error) {
	var m models.Match
	if err := ms.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns matches sorted by date descending, optionally filtered by
// state.
func (ms *MatchStore) List(ctx context.Context, state string, limit int64) ([]models.Match, error) {
	filter := bson.M{}
	if state != "" {
		filter["estado"] = state
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "fecha", Value: -1}}).
		SetLimit(limit)

	cursor, err := ms.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find matches: %w", err)
	}
	defer cursor.Close(ctx)

	matches := []models.Match{}
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}
	return matches, nil
}

// Replace persists the whole match document.
func (ms *MatchStore) Replace(ctx context.Context, m *models.Match) error {
	res, err := ms.collection.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return fmt.Errorf("failed to replace match %s: %w", m.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("match %s not found for replace: %w", m.ID.Hex(), mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes a match document.
func (ms *MatchStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := ms.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("match %s not found for delete: %w", id.Hex(), mongo.ErrNoDocuments)
	}
	return nil
}
