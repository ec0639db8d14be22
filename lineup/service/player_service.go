package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/futbolformaciones/lineup-service/lineup/cache"
	"github.com/futbolformaciones/lineup-service/shared/models"
)

// PlayerInput carries the writable player fields for create and update.
type PlayerInput struct {
	Name          string
	Number        int
	Team          string
	Position      models.Position
	PhotoURL      string
	Goals         int
	Assists       int
	MatchesPlayed int
}

// PlayerService encapsulates the business logic for roster players.
type PlayerService struct {
	players PlayerStore
	cache   *cache.PlayerCache // nil when Redis is unavailable
	logger  zerolog.Logger
}

// NewPlayerService creates a new PlayerService instance.
func NewPlayerService(players PlayerStore, playerCache *cache.PlayerCache, logger zerolog.Logger) *PlayerService {
	return &PlayerService{
		players: players,
		cache:   playerCache,
		logger:  logger,
	}
}

// CreatePlayer registers a new player after checking that the shirt number
// is free within the team's active players.
func (s *PlayerService) CreatePlayer(ctx context.Context, in PlayerInput) (*models.Player, error) {
	if !models.ValidTeam(in.Team) {
		return nil, fmt.Errorf("%w: team must be %q or %q", ErrValidation, models.TeamRed, models.TeamBlue)
	}
	if in.Number > 0 {
		taken, err := s.players.NumberTaken(ctx, in.Team, in.Number, primitive.NilObjectID)
		if err != nil {
			return nil, fmt.Errorf("checking shirt number: %w", err)
		}
		if taken {
			return nil, ErrNumberTaken
		}
	}

	now := time.Now()
	player := &models.Player{
		ID:            primitive.NewObjectID(),
		Name:          in.Name,
		Number:        in.Number,
		Team:          in.Team,
		Position:      in.Position,
		PhotoURL:      in.PhotoURL,
		Goals:         in.Goals,
		Assists:       in.Assists,
		MatchesPlayed: in.MatchesPlayed,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.players.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("service failed to create player: %w", err)
	}

	s.invalidateCache(ctx)
	s.logger.Info().Str("player", player.ID.Hex()).Str("name", player.Name).Msg("player created")
	return player, nil
}

// UpdatePlayer overwrites the writable fields of an existing player, again
// enforcing shirt-number uniqueness but excluding the player itself.
func (s *PlayerService) UpdatePlayer(ctx context.Context, id primitive.ObjectID, in PlayerInput) (*models.Player, error) {
	player, err := s.players.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("service failed to load player: %w", err)
	}

	team := player.Team
	if in.Team != "" {
		if !models.ValidTeam(in.Team) {
			return nil, fmt.Errorf("%w: team must be %q or %q", ErrValidation, models.TeamRed, models.TeamBlue)
		}
		team = in.Team
	}
	if in.Number > 0 && in.Number != player.Number {
		taken, err := s.players.NumberTaken(ctx, team, in.Number, id)
		if err != nil {
			return nil, fmt.Errorf("checking shirt number: %w", err)
		}
		if taken {
			return nil, ErrNumberTaken
		}
	}

	player.Name = in.Name
	player.Number = in.Number
	player.Team = team
	player.Position = in.Position
	player.PhotoURL = in.PhotoURL
	player.Goals = in.Goals
	player.Assists = in.Assists
	player.MatchesPlayed = in.MatchesPlayed
	player.UpdatedAt = time.Now()

	if err := s.players.Update(ctx, player); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("service failed to update player: %w", err)
	}

	s.invalidateCache(ctx)
	return player, nil
}

// DeletePlayer soft-deletes a player. The record stays behind so past
// formations keep resolving their references.
func (s *PlayerService) DeletePlayer(ctx context.Context, id primitive.ObjectID) error {
	if err := s.players.Deactivate(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("service failed to delete player: %w", err)
	}
	s.invalidateCache(ctx)
	return nil
}

// GetPlayer retrieves a single player.
func (s *PlayerService) GetPlayer(ctx context.Context, id primitive.ObjectID) (*models.Player, error) {
	player, err := s.players.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("service failed to get player: %w", err)
	}
	return player, nil
}

// ListPlayers returns all active players, served from cache when possible.
func (s *PlayerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	if s.cache != nil {
		if players, ok := s.cache.GetActive(ctx); ok {
			return players, nil
		}
	}
	players, err := s.players.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("service failed to list players: %w", err)
	}
	if s.cache != nil {
		s.cache.SetActive(ctx, players)
	}
	return players, nil
}

// ListPlayersByTeam returns all active players of one team.
func (s *PlayerService) ListPlayersByTeam(ctx context.Context, team string) ([]models.Player, error) {
	if !models.ValidTeam(team) {
		return nil, fmt.Errorf("%w: team must be %q or %q", ErrValidation, models.TeamRed, models.TeamBlue)
	}
	if s.cache != nil {
		if players, ok := s.cache.GetTeam(ctx, team); ok {
			return players, nil
		}
	}
	players, err := s.players.ListByTeam(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("service failed to list players for team %s: %w", team, err)
	}
	if s.cache != nil {
		s.cache.SetTeam(ctx, team, players)
	}
	return players, nil
}

// TopScorers returns the best career scorers, at most limit entries.
func (s *PlayerService) TopScorers(ctx context.Context, limit int64) ([]models.Player, error) {
	if limit <= 0 {
		limit = 10
	}
	players, err := s.players.TopScorers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service failed to list top scorers: %w", err)
	}
	return players, nil
}

// AddGoals adds amount to a player's career goals.
func (s *PlayerService) AddGoals(ctx context.Context, id primitive.ObjectID, amount int) (*models.Player, error) {
	return s.addCareer(ctx, id, models.StatsDelta{Goals: amount})
}

// AddAssists adds amount to a player's career assists.
func (s *PlayerService) AddAssists(ctx context.Context, id primitive.ObjectID, amount int) (*models.Player, error) {
	return s.addCareer(ctx, id, models.StatsDelta{Assists: amount})
}

func (s *PlayerService) addCareer(ctx context.Context, id primitive.ObjectID, delta models.StatsDelta) (*models.Player, error) {
	if err := s.players.ApplyCareerDelta(ctx, id, delta, false); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("service failed to update career totals: %w", err)
	}
	s.invalidateCache(ctx)
	return s.GetPlayer(ctx, id)
}

func (s *PlayerService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
