package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/futbolformaciones/lineup-service/shared/models"
)

// MatchService manages the lightweight match records: result, lifecycle
// state and the goal/assist event log. Every logged goal or assist also
// bumps the scorer's career totals.
type MatchService struct {
	matches MatchStore
	players PlayerStore
	logger  zerolog.Logger
}

// NewMatchService creates a new MatchService instance.
func NewMatchService(matches MatchStore, players PlayerStore, logger zerolog.Logger) *MatchService {
	return &MatchService{
		matches: matches,
		players: players,
		logger:  logger,
	}
}

// CreateMatch validates and persists a new match.
func (s *MatchService) CreateMatch(ctx context.Context, m *models.Match) (*models.Match, error) {
	switch {
	case m.LocalName == "":
		return nil, fmt.Errorf("%w: local team name is required", ErrValidation)
	case m.VisitingName == "":
		return nil, fmt.Errorf("%w: visiting team name is required", ErrValidation)
	case m.LocalGoals < 0 || m.VisitingGoals < 0:
		return nil, fmt.Errorf("%w: score must not be negative", ErrValidation)
	}
	if m.State == "" {
		m.State = models.MatchStateScheduled
	}
	if !models.ValidMatchState(m.State) {
		return nil, fmt.Errorf("%w: unknown state %q", ErrValidation, m.State)
	}

	now := time.Now()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Date.IsZero() {
		m.Date = now
	}

	if err := s.matches.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("service failed to create match: %w", err)
	}
	s.logger.Info().Str("match", m.ID.Hex()).Msg("match created")
	return m, nil
}

// ListMatches returns matches newest first, optionally filtered by state.
func (s *MatchService) ListMatches(ctx context.Context, state string, limit int64) ([]models.Match, error) {
	if state != "" && !models.ValidMatchState(state) {
		return nil, fmt.Errorf("%w: unknown state %q", ErrValidation, state)
	}
	if limit <= 0 {
		limit = 20
	}
	matches, err := s.matches.List(ctx, state, limit)
	if err != nil {
		return nil, fmt.Errorf("service failed to list matches: %w", err)
	}
	return matches, nil
}

// GetMatch retrieves one match.
func (s *MatchService) GetMatch(ctx context.Context, id primitive.ObjectID) (*models.Match, error) {
	return s.get(ctx, id)
}

// SetResult overwrites the match score.
func (s *MatchService) SetResult(ctx context.Context, id primitive.ObjectID, local, visiting int) (*models.Match, error) {
	return s.mutate(ctx, id, func(m *models.Match) error {
		return m.SetResult(local, visiting)
	})
}

// SetState moves the match through its lifecycle.
func (s *MatchService) SetState(ctx context.Context, id primitive.ObjectID, state string) (*models.Match, error) {
	if !models.ValidMatchState(state) {
		return nil, fmt.Errorf("%w: unknown state %q", ErrValidation, state)
	}
	return s.mutate(ctx, id, func(m *models.Match) error {
		m.State = state
		return nil
	})
}

// AddGoal logs a goal event and credits the scorer's career total. Own
// goals are logged but never credited.
func (s *MatchService) AddGoal(ctx context.Context, id, playerID primitive.ObjectID, minute int, goalType string) (*models.Match, error) {
	if err := s.checkPlayer(ctx, playerID); err != nil {
		return nil, err
	}
	m, err := s.mutate(ctx, id, func(m *models.Match) error {
		return m.AddGoal(playerID, minute, goalType)
	})
	if err != nil {
		return nil, err
	}
	if goalType != models.GoalTypeOwnGoal {
		s.creditScorer(ctx, playerID, models.StatsDelta{Goals: 1})
	}
	return m, nil
}

// AddAssist logs an assist event and credits the player's career total.
func (s *MatchService) AddAssist(ctx context.Context, id, playerID primitive.ObjectID, minute int) (*models.Match, error) {
	if err := s.checkPlayer(ctx, playerID); err != nil {
		return nil, err
	}
	m, err := s.mutate(ctx, id, func(m *models.Match) error {
		return m.AddAssist(playerID, minute)
	})
	if err != nil {
		return nil, err
	}
	s.creditScorer(ctx, playerID, models.StatsDelta{Assists: 1})
	return m, nil
}

// DeleteMatch removes the match document.
func (s *MatchService) DeleteMatch(ctx context.Context, id primitive.ObjectID) error {
	if err := s.matches.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("service failed to delete match: %w", err)
	}
	return nil
}

func (s *MatchService) mutate(ctx context.Context, id primitive.ObjectID, fn func(*models.Match) error) (*models.Match, error) {
	m, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(m); err != nil {
		return nil, err
	}
	m.UpdatedAt = time.Now()
	if err := s.matches.Replace(ctx, m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("service failed to save match: %w", err)
	}
	return m, nil
}

func (s *MatchService) get(ctx context.Context, id primitive.ObjectID) (*models.Match, error) {
	m, err := s.matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("service failed to load match: %w", err)
	}
	return m, nil
}

func (s *MatchService) checkPlayer(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.players.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("service failed to load player: %w", err)
	}
	return nil
}

// creditScorer mirrors the formation reconciliation rule: the event log is
// already persisted, so a failed career update is logged, not returned.
func (s *MatchService) creditScorer(ctx context.Context, id primitive.ObjectID, delta models.StatsDelta) {
	if err := s.players.ApplyCareerDelta(ctx, id, delta, false); err != nil {
		s.logger.Error().Err(err).Str("player", id.Hex()).Msg("failed to update career totals")
	}
}
