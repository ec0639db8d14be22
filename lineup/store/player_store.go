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

// PlayerStore is the MongoDB data store for roster players.
type PlayerStore struct {
	collection *mongo.Collection
}

// NewPlayerStore creates a new PlayerStore instance.
func NewPlayerStore(collection *mongo.Collection) *PlayerStore {
	return &PlayerStore{collection: collection}
}

// Create inserts a new player document.
func (ps *PlayerStore) Create(ctx context.Context, player *models.Player) error {
	if _, err := ps.collection.InsertOne(ctx, player); err != nil {
		return fmt.Errorf("failed to create player %s: %w", player.Name, err)
	}
	return nil
}

// GetByID retrieves a player by id. Returns mongo.ErrNoDocuments when the
// player does not exist.
func (ps *PlayerStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Player, error) {
	var player models.Player
	if err := ps.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&player); err != nil {
		return nil, err
	}
	return &player, nil
}

// GetByIDs retrieves the players whose ids are in the given set. Missing
// ids are silently absent from the result.
func (ps *PlayerStore) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := ps.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find players by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var players []models.Player
	if err := cursor.All(ctx, &players); err != nil {
		return nil, fmt.Errorf("failed to decode players: %w", err)
	}
	return players, nil
}

// ListActive returns all active players sorted by name.
func (ps *PlayerStore) ListActive(ctx context.Context) ([]models.Player, error) {
	return ps.list(ctx, bson.M{"activo": true}, options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}}))
}

// ListByTeam returns all active players of one team sorted by name.
func (ps *PlayerStore) ListByTeam(ctx context.Context, team string) ([]models.Player, error) {
	filter := bson.M{"equipo": team, "activo": true}
	return ps.list(ctx, filter, options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}}))
}

// TopScorers returns the active players with at least one career goal,
// ordered by goals descending and name ascending.
func (ps *PlayerStore) TopScorers(ctx context.Context, limit int64) ([]models.Player, error) {
	filter := bson.M{"activo": true, "goles": bson.M{"$gt": 0}}
	opts := options.Find().
		SetSort(bson.D{{Key: "goles", Value: -1}, {Key: "nombre", Value: 1}}).
		SetLimit(limit)
	return ps.list(ctx, filter, opts)
}

func (ps *PlayerStore) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Player, error) {
	cursor, err := ps.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find players: %w", err)
	}
	defer cursor.Close(ctx)

	players := []models.Player{}
	if err := cursor.All(ctx, &players); err != nil {
		return nil, fmt.Errorf("failed to decode players: %w", err)
	}
	return players, nil
}

// Update replaces the whole player document.
func (ps *PlayerStore) Update(ctx context.Context, player *models.Player) error {
	res, err := ps.collection.ReplaceOne(ctx, bson.M{"_id": player.ID}, player)
	if err != nil {
		return fmt.Errorf("failed to update player %s: %w", player.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("player %s not found for update: %w", player.ID.Hex(), mongo.ErrNoDocuments)
	}
	return nil
}

// Deactivate soft-deletes a player; the document stays behind for
// historical formation references.
func (ps *PlayerStore) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := ps.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"activo": false}})
	if err != nil {
		return fmt.Errorf("failed to deactivate player %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("player %s not found for deactivation: %w", id.Hex(), mongo.ErrNoDocuments)
	}
	return nil
}

// NumberTaken reports whether another active player in the same team
// already wears the given shirt number. The exclude id makes updates skip
// the record being edited.
func (ps *PlayerStore) NumberTaken(ctx context.Context, team string, number int, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"numero": number,
		"equipo": team,
		"activo": true,
	}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	err := ps.collection.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check shirt number %d for team %s: %w", number, team, err)
	}
	return true, nil
}

// ApplyCareerDelta atomically increments a player's career totals. Used by
// the reconciliation path, so deltas may be negative when a stat line is
// corrected downwards.
func (ps *PlayerStore) ApplyCareerDelta(ctx context.Context, id primitive.ObjectID, delta models.StatsDelta, addAppearance bool) error {
	inc := bson.M{
		"goles":             delta.Goals,
		"asistencias":       delta.Assists,
		"tarjetasAmarillas": delta.YellowCards,
		"tarjetasRojas":     delta.RedCards,
	}
	if addAppearance {
		inc["partidosJugados"] = 1
	}
	res, err := ps.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": inc})
	if err != nil {
		return fmt.Errorf("failed to apply career delta for player %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("player %s not found for career delta: %w", id.Hex(), mongo.ErrNoDocuments)
	}
	return nil
}
