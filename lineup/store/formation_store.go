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

// FormationStore is the MongoDB data store for match-roster aggregates.
// Formations are only ever written as whole documents.
type FormationStore struct {
	collection *mongo.Collection
}

// NewFormationStore creates a new FormationStore instance.
func NewFormationStore(collection *mongo.Collection) *FormationStore {
	return &FormationStore{collection: collection}
}

// Create inserts a new formation document.
func (fs *FormationStore) Create(ctx context.Context, f *models.Formation) error {
	if _, err := fs.collection.InsertOne(ctx, f); err != nil {
		return fmt.Errorf("failed to create formation %q: %w", f.Name, err)
	}
	return nil
}

// GetByID retrieves a formation by id. Returns mongo.ErrNoDocuments when
// the formation does not exist.
func (fs *FormationStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Formation, error) {
	var f models.Formation
	if err := fs.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns formations sorted by date descending, optionally filtered
// by the active flag, paginated with limit/page. The second return value
// is the total number of matching documents.
func (fs *FormationStore) List(ctx context.Context, active *bool, limit, page int64) ([]models.Formation, int64, error) {
	filter := bson.M{}
	if active != nil {
		filter["activa"] = *active
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "fecha", Value: -1}}).
		SetLimit(limit).
		SetSkip((page - 1) * limit)

	cursor, err := fs.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find formations: %w", err)
	}
	defer cursor.Close(ctx)

	formations := []models.Formation{}
	if err := cursor.All(ctx, &formations); err != nil {
		return nil, 0, fmt.Errorf("failed to decode formations: %w", err)
	}

	total, err := fs.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count formations: %w", err)
	}
	return formations, total, nil
}

// Replace persists the whole aggregate in one write. This is the single
// point of atomicity for every mutation; there is no version token, so
// concurrent writers to the same formation race and the last write wins.
func (fs *FormationStore) Replace(ctx context.Context, f *models.Formation) error {
	res, err := fs.collection.ReplaceOne(ctx, bson.M{"_id": f.ID}, f)
	if err != nil {
		return fmt.Errorf("failed to replace formation %s: %w", f.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("formation %s not found for replace: %w", f.ID.Hex(), mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes a formation document.
func (fs *FormationStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := fs.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete formation %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("formation %s not found for delete: %w", id.Hex(), mongo.ErrNoDocuments)
	}
	return nil
}
