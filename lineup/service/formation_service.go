package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/futbolformaciones/lineup-service/shared/models"
)

var timeOfDayRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// TeamSummary aggregates the per-match numbers of one lineup.
type TeamSummary struct {
	Players int `json:"jugadores"`
	Goals   int `json:"goles"`
	Assists int `json:"asistencias"`
}

// RosterSummary is the statistics block returned alongside a formation.
type RosterSummary struct {
	Local    TeamSummary `json:"local"`
	Visiting TeamSummary `json:"visitante"`
	Total    TeamSummary `json:"total"`
}

// FormationListResult is one page of formations plus the overall count.
type FormationListResult struct {
	Formations []models.Formation
	Total      int64
}

// FormationService owns the formation aggregate: lifecycle, lineup
// mutations and reconciliation of per-match stats into career totals.
type FormationService struct {
	formations FormationStore
	players    PlayerStore
	logger     zerolog.Logger
}

// NewFormationService creates a new FormationService instance.
func NewFormationService(formations FormationStore, players PlayerStore, logger zerolog.Logger) *FormationService {
	return &FormationService{
		formations: formations,
		players:    players,
		logger:     logger,
	}
}

// CreateFormation validates and persists a new formation. When the payload
// already embeds nonzero per-match stats the formation starts finished and
// the stats are credited to the players' career totals once.
func (s *FormationService) CreateFormation(ctx context.Context, f *models.Formation) (*models.Formation, error) {
	if err := validateFormation(f); err != nil {
		return nil, err
	}

	now := time.Now()
	f.ID = primitive.NewObjectID()
	f.Active = true
	f.CreatedAt = now
	f.UpdatedAt = now
	if f.Date.IsZero() {
		f.Date = now
	}
	if f.State == "" {
		if hasEmbeddedStats(f) {
			f.State = models.StateFinished
		} else {
			f.State = models.StateScheduled
		}
	}

	if err := s.formations.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("service failed to create formation: %w", err)
	}

	s.applyEmbeddedStats(ctx, f)
	s.logger.Info().Str("formation", f.ID.Hex()).Str("name", f.Name).Msg("formation created")
	return f, nil
}

// UpdateFormation replaces the formation wholesale, keeping CreatedAt, and
// credits the difference between the old and new per-match stat lines to
// each player's career totals.
func (s *FormationService) UpdateFormation(ctx context.Context, id primitive.ObjectID, next *models.Formation) (*models.Formation, error) {
	prev, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateFormation(next); err != nil {
		return nil, err
	}

	next.ID = id
	next.CreatedAt = prev.CreatedAt
	next.UpdatedAt = time.Now()
	if next.State == "" {
		next.State = prev.State
	}
	if next.MVP == nil {
		next.MVP = prev.MVP
	}

	if err := s.formations.Replace(ctx, next); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFormationNotFound
		}
		return nil, fmt.Errorf("service failed to update formation: %w", err)
	}

	s.reconcileStats(ctx, prev, next)
	return next, nil
}

// DeleteFormation removes the formation document. Career totals already
// credited are deliberately left untouched.
func (s *FormationService) DeleteFormation(ctx context.Context, id primitive.ObjectID) error {
	if err := s.formations.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrFormationNotFound
		}
		return fmt.Errorf("service failed to delete formation: %w", err)
	}
	return nil
}

// GetFormation retrieves one formation.
func (s *FormationService) GetFormation(ctx context.Context, id primitive.ObjectID) (*models.Formation, error) {
	return s.get(ctx, id)
}

// ListFormations returns one page of formations, newest first.
func (s *FormationService) ListFormations(ctx context.Context, active *bool, limit, page int64) (*FormationListResult, error) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	formations, total, err := s.formations.List(ctx, active, limit, page)
	if err != nil {
		return nil, fmt.Errorf("service failed to list formations: %w", err)
	}
	return &FormationListResult{Formations: formations, Total: total}, nil
}

// Summarize aggregates the per-match numbers of both lineups.
func (s *FormationService) Summarize(f *models.Formation) RosterSummary {
	var sum RosterSummary
	sum.Local = summarizeLineup(&f.Teams.Local)
	sum.Visiting = summarizeLineup(&f.Teams.Visiting)
	sum.Total = TeamSummary{
		Players: sum.Local.Players + sum.Visiting.Players,
		Goals:   sum.Local.Goals + sum.Visiting.Goals,
		Assists: sum.Local.Assists + sum.Visiting.Assists,
	}
	return sum
}

func summarizeLineup(t *models.TeamLineup) TeamSummary {
	sum := TeamSummary{Players: len(t.Players)}
	for _, p := range t.Players {
		sum.Goals += p.Stats.Goals
		sum.Assists += p.Stats.Assists
	}
	return sum
}

// ReferencedPlayers loads the player documents referenced by either lineup,
// each id once. Players deleted since the formation was built are absent.
func (s *FormationService) ReferencedPlayers(ctx context.Context, f *models.Formation) ([]models.Player, error) {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, side := range models.Sides {
		team, _ := f.Lineup(side)
		for _, p := range team.Players {
			if _, ok := seen[p.PlayerID]; ok {
				continue
			}
			seen[p.PlayerID] = struct{}{}
			ids = append(ids, p.PlayerID)
		}
	}
	players, err := s.players.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("service failed to resolve lineup players: %w", err)
	}
	return players, nil
}

// AvailablePlayers returns the active players not yet placed in either
// lineup of the formation.
func (s *FormationService) AvailablePlayers(ctx context.Context, id primitive.ObjectID) ([]models.Player, error) {
	f, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	placed := make(map[primitive.ObjectID]struct{})
	for _, side := range models.Sides {
		team, _ := f.Lineup(side)
		for _, p := range team.Players {
			placed[p.PlayerID] = struct{}{}
		}
	}

	all, err := s.players.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("service failed to list players: %w", err)
	}

	available := make([]models.Player, 0, len(all))
	for _, p := range all {
		if _, ok := placed[p.ID]; !ok {
			available = append(available, p)
		}
	}
	return available, nil
}

// AddPlayer places an existing player into one side's lineup.
func (s *FormationService) AddPlayer(ctx context.Context, id primitive.ObjectID, side models.Side, playerID primitive.ObjectID, pos *models.Position, number int) (*models.Formation, error) {
	if _, err := s.players.GetByID(ctx, playerID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("service failed to load player: %w", err)
	}
	return s.mutate(ctx, id, func(f *models.Formation) error {
		return f.AddPlayer(side, playerID, pos, number)
	})
}

// RemovePlayer drops a player from one side's lineup.
func (s *FormationService) RemovePlayer(ctx context.Context, id primitive.ObjectID, side models.Side, playerID primitive.ObjectID) (*models.Formation, error) {
	return s.mutate(ctx, id, func(f *models.Formation) error {
		return f.RemovePlayer(side, playerID)
	})
}

// UpdatePosition moves a lineup player on the pitch.
func (s *FormationService) UpdatePosition(ctx context.Context, id primitive.ObjectID, side models.Side, playerID primitive.ObjectID, pos models.Position) (*models.Formation, error) {
	return s.mutate(ctx, id, func(f *models.Formation) error {
		return f.UpdatePosition(side, playerID, pos)
	})
}

// RatePlayer records one user's score for a lineup player and refreshes
// the formation's MVP.
func (s *FormationService) RatePlayer(ctx context.Context, id primitive.ObjectID, side models.Side, playerID primitive.ObjectID, userID, userName string, score int) (*models.Formation, error) {
	return s.mutate(ctx, id, func(f *models.Formation) error {
		if err := f.AddRating(side, playerID, userID, userName, score, time.Now()); err != nil {
			return err
		}
		f.ComputeMVP()
		return nil
	})
}

// RecomputeMVP re-derives the MVP from the current ratings and persists it.
func (s *FormationService) RecomputeMVP(ctx context.Context, id primitive.ObjectID) (*models.Formation, error) {
	return s.mutate(ctx, id, func(f *models.Formation) error {
		f.ComputeMVP()
		return nil
	})
}

// Substitute swaps an outgoing and incoming player within one lineup.
func (s *FormationService) Substitute(ctx context.Context, id primitive.ObjectID, side models.Side, outID, inID primitive.ObjectID, minute int, reason string) (*models.Formation, error) {
	return s.mutate(ctx, id, func(f *models.Formation) error {
		return f.Substitute(side, outID, inID, minute, reason)
	})
}

// UpdatePlayerStats merges a partial stat line over one lineup player and
// credits the resulting delta to that player's career totals. Editing stats
// never grants an extra appearance.
func (s *FormationService) UpdatePlayerStats(ctx context.Context, id primitive.ObjectID, side models.Side, playerID primitive.ObjectID, patch models.StatsPatch) (*models.Formation, error) {
	f, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	team, err := f.Lineup(side)
	if err != nil {
		return nil, err
	}
	entry := team.Player(playerID)
	if entry == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrPlayerNotInTeam, playerID.Hex())
	}
	prev := entry.Stats

	if err := f.UpdatePlayerStats(side, playerID, patch); err != nil {
		return nil, err
	}
	if err := s.save(ctx, f); err != nil {
		return nil, err
	}

	if delta := entry.Stats.Delta(prev); !delta.IsZero() {
		s.creditPlayer(ctx, playerID, delta, false)
	}
	return f, nil
}

// mutate loads the formation, applies fn in memory and persists the whole
// document. Concurrent edits are last-write-wins, same as the rest of the
// aggregate.
func (s *FormationService) mutate(ctx context.Context, id primitive.ObjectID, fn func(*models.Formation) error) (*models.Formation, error) {
	f, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(f); err != nil {
		return nil, err
	}
	if err := s.save(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FormationService) get(ctx context.Context, id primitive.ObjectID) (*models.Formation, error) {
	f, err := s.formations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFormationNotFound
		}
		return nil, fmt.Errorf("service failed to load formation: %w", err)
	}
	return f, nil
}

func (s *FormationService) save(ctx context.Context, f *models.Formation) error {
	f.UpdatedAt = time.Now()
	if err := s.formations.Replace(ctx, f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrFormationNotFound
		}
		return fmt.Errorf("service failed to save formation: %w", err)
	}
	return nil
}

// validateFormation checks the payload constraints shared by create and
// update. Aggregate-level rules (sides, duplicates) live on the model.
func validateFormation(f *models.Formation) error {
	switch {
	case f.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case len(f.Name) > 100:
		return fmt.Errorf("%w: name must not exceed 100 characters", ErrValidation)
	case len(f.Description) > 500:
		return fmt.Errorf("%w: description must not exceed 500 characters", ErrValidation)
	case f.Time != "" && !timeOfDayRe.MatchString(f.Time):
		return fmt.Errorf("%w: time must be HH:MM", ErrValidation)
	case len(f.Location) > 100:
		return fmt.Errorf("%w: location must not exceed 100 characters", ErrValidation)
	}
	if f.State != "" {
		switch f.State {
		case models.StateScheduled, models.StateInProgress, models.StateFinished:
		default:
			return fmt.Errorf("%w: unknown state %q", ErrValidation, f.State)
		}
	}
	for _, side := range models.Sides {
		team, _ := f.Lineup(side)
		if team.Name == "" {
			return fmt.Errorf("%w: %s team name is required", ErrValidation, side)
		}
		if len(team.Name) > 50 {
			return fmt.Errorf("%w: %s team name must not exceed 50 characters", ErrValidation, side)
		}
		if team.Color == "" {
			return fmt.Errorf("%w: %s team color is required", ErrValidation, side)
		}
		seen := make(map[primitive.ObjectID]struct{}, len(team.Players))
		for _, p := range team.Players {
			if _, dup := seen[p.PlayerID]; dup {
				return fmt.Errorf("%w: player %s appears twice in %s lineup", ErrValidation, p.PlayerID.Hex(), side)
			}
			seen[p.PlayerID] = struct{}{}
			if err := p.Stats.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}
