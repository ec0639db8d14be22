package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/futbolformaciones/lineup-service/shared/models"
)

// Store contracts consumed by the services. The lineup/store package
// provides the MongoDB implementations; tests substitute in-memory fakes.
// Not-found conditions are reported as mongo.ErrNoDocuments (possibly
// wrapped) so services can translate them uniformly.

type PlayerStore interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Player, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Player, error)
	ListActive(ctx context.Context) ([]models.Player, error)
	ListByTeam(ctx context.Context, team string) ([]models.Player, error)
	TopScorers(ctx context.Context, limit int64) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	NumberTaken(ctx context.Context, team string, number int, exclude primitive.ObjectID) (bool, error)
	ApplyCareerDelta(ctx context.Context, id primitive.ObjectID, delta models.StatsDelta, addAppearance bool) error
}

type FormationStore interface {
	Create(ctx context.Context, f *models.Formation) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Formation, error)
	List(ctx context.Context, active *bool, limit, page int64) ([]models.Formation, int64, error)
	Replace(ctx context.Context, f *models.Formation) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MatchStore interface {
	Create(ctx context.Context, m *models.Match) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Match, error)
	List(ctx context.Context, state string, limit int64) ([]models.Match, error)
	Replace(ctx context.Context, m *models.Match) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
