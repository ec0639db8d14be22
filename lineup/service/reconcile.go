package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/futbolformaciones/lineup-service/shared/models"
)

// Career reconciliation. Whenever a formation write changes a player's
// per-match stat line, the difference is applied to that player's career
// totals so the two stay in step without ever replaying history.
//
// Reconciliation runs after the formation document is already persisted
// and never fails the request: a missing player is logged and skipped.

// hasEmbeddedStats reports whether any lineup entry of the formation
// carries a nonzero per-match stat line. A creation payload with stats
// describes a match already played, which flips the default state.
func hasEmbeddedStats(f *models.Formation) bool {
	for _, side := range models.Sides {
		team, _ := f.Lineup(side)
		for _, p := range team.Players {
			if !p.Stats.IsZero() {
				return true
			}
		}
	}
	return false
}

// applyEmbeddedStats credits the stat lines a freshly created formation
// already carries. Each credited player also gains one appearance; this is
// the only path that does.
func (s *FormationService) applyEmbeddedStats(ctx context.Context, f *models.Formation) {
	for _, side := range models.Sides {
		team, _ := f.Lineup(side)
		for _, p := range team.Players {
			if p.Stats.IsZero() {
				continue
			}
			s.creditPlayer(ctx, p.PlayerID, p.Stats.Delta(models.MatchStats{}), true)
		}
	}
}

// reconcileStats walks both lineups of prev and next and credits each
// player with the difference of their stat lines. Players present only in
// next are credited from zero; players dropped from the lineup keep what
// they already earned.
func (s *FormationService) reconcileStats(ctx context.Context, prev, next *models.Formation) {
	for _, side := range models.Sides {
		prevTeam, _ := prev.Lineup(side)
		nextTeam, _ := next.Lineup(side)
		for _, p := range nextTeam.Players {
			var before models.MatchStats
			if old := prevTeam.Player(p.PlayerID); old != nil {
				before = old.Stats
			}
			delta := p.Stats.Delta(before)
			if delta.IsZero() {
				continue
			}
			s.creditPlayer(ctx, p.PlayerID, delta, false)
		}
	}
}

// creditPlayer applies one delta to a player's career totals. A player that
// no longer exists is skipped with a warning so one stale reference cannot
// poison the whole formation write.
func (s *FormationService) creditPlayer(ctx context.Context, id primitive.ObjectID, delta models.StatsDelta, addAppearance bool) {
	if err := s.players.ApplyCareerDelta(ctx, id, delta, addAppearance); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Warn().Str("player", id.Hex()).Msg("skipping career update for unknown player")
			return
		}
		s.logger.Error().Err(err).Str("player", id.Hex()).Msg("failed to update career totals")
	}
}
