package models

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Side selects one of the two fixed team slots of a formation. The wire
// values match what the front-end sends ("local" / "visitante").
type Side string

const (
	SideLocal    Side = "local"
	SideVisiting Side = "visitante"
)

// Sides lists both slots in scan order. ComputeMVP and the reconciliation
// walk depend on local coming first.
var Sides = []Side{SideLocal, SideVisiting}

// Formation lifecycle states.
const (
	StateScheduled  = "programado"
	StateInProgress = "en_curso"
	StateFinished   = "finalizado"
)

// MinRatingsForMVP is the minimum number of ratings a player needs before
// being considered for match MVP.
const MinRatingsForMVP = 3

// Rating is one user's score for a lineup player. A user rates a player at
// most once; rating again replaces the previous score and timestamp.
type Rating struct {
	UserID   string    `bson:"usuarioId" json:"usuarioId"`
	UserName string    `bson:"usuarioNombre" json:"usuarioNombre"`
	Score    int       `bson:"puntuacion" json:"puntuacion"`
	RatedAt  time.Time `bson:"fecha" json:"fecha"`
}

// Substitution records one player leaving the pitch for another. The list
// on a lineup is append-only and entries are never edited.
type Substitution struct {
	PlayerOut primitive.ObjectID `bson:"jugadorSale" json:"jugadorSale"`
	PlayerIn  primitive.ObjectID `bson:"jugadorEntra" json:"jugadorEntra"`
	Minute    int                `bson:"minuto" json:"minuto"`
	Reason    string             `bson:"motivo,omitempty" json:"motivo,omitempty"`
}

// LineupPlayer is a player's slot within one team's in-match lineup. A nil
// Position means the slot has not been placed on the pitch yet.
type LineupPlayer struct {
	PlayerID      primitive.ObjectID `bson:"jugadorId" json:"jugadorId"`
	Number        int                `bson:"numero,omitempty" json:"numero,omitempty"`
	Position      *Position          `bson:"posicion,omitempty" json:"posicion,omitempty"`
	Starter       bool               `bson:"esTitular" json:"esTitular"`
	Stats         MatchStats         `bson:"estadisticas" json:"estadisticas"`
	Ratings       []Rating           `bson:"calificaciones" json:"calificaciones"`
	AverageRating float64            `bson:"promedioCalificacion" json:"promedioCalificacion"`
}

// recalcAverage recomputes the rating average, rounded to two decimals,
// zero when there are no ratings.
func (p *LineupPlayer) recalcAverage() {
	if len(p.Ratings) == 0 {
		p.AverageRating = 0
		return
	}
	sum := 0
	for _, r := range p.Ratings {
		sum += r.Score
	}
	p.AverageRating = math.Round(float64(sum)/float64(len(p.Ratings))*100) / 100
}

// TeamLineup is one side's roster within a formation. It has no identity of
// its own; it lives and dies inside the formation document.
type TeamLineup struct {
	Name          string         `bson:"nombre" json:"nombre"`
	Color         string         `bson:"color" json:"color"`
	Players       []LineupPlayer `bson:"jugadores" json:"jugadores"`
	Substitutions []Substitution `bson:"sustitucionesRealizadas" json:"sustitucionesRealizadas"`
}

// Player returns the lineup entry for the given player id, nil if absent.
func (t *TeamLineup) Player(id primitive.ObjectID) *LineupPlayer {
	for i := range t.Players {
		if t.Players[i].PlayerID == id {
			return &t.Players[i]
		}
	}
	return nil
}

// Teams holds both fixed lineup slots of a formation.
type Teams struct {
	Local    TeamLineup `bson:"local" json:"local"`
	Visiting TeamLineup `bson:"visitante" json:"visitante"`
}

// Score is the overall match result.
type Score struct {
	Local    int `bson:"local" json:"local"`
	Visiting int `bson:"visitante" json:"visitante"`
}

// MVP identifies the best rated player of a formation.
type MVP struct {
	PlayerID primitive.ObjectID `bson:"jugadorId" json:"jugadorId"`
	Side     Side               `bson:"equipo" json:"equipo"`
	Average  float64            `bson:"promedioCalificacion" json:"promedioCalificacion"`
}

// Formation is the match-roster aggregate: one match with both in-match
// team lineups embedded. It is always loaded, mutated in memory and
// persisted as a whole document.
type Formation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"nombre" json:"nombre"`
	Description string             `bson:"descripcion,omitempty" json:"descripcion,omitempty"`
	Date        time.Time          `bson:"fecha" json:"fecha"`
	Time        string             `bson:"hora" json:"hora"`
	Location    string             `bson:"lugar,omitempty" json:"lugar,omitempty"`
	Teams       Teams              `bson:"equipos" json:"equipos"`
	Score       Score              `bson:"resultado" json:"resultado"`
	MVP         *MVP               `bson:"mvp,omitempty" json:"mvp,omitempty"`
	State       string             `bson:"estado" json:"estado"`
	Active      bool               `bson:"activa" json:"activa"`
	CreatedBy   string             `bson:"creadaPor,omitempty" json:"creadaPor,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Lineup returns the lineup for the given side.
func (f *Formation) Lineup(side Side) (*TeamLineup, error) {
	switch side {
	case SideLocal:
		return &f.Teams.Local, nil
	case SideVisiting:
		return &f.Teams.Visiting, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSide, side)
	}
}

// AddPlayer appends a new lineup entry for playerID on the given side. The
// entry starts as a starter with zeroed stats and no ratings.
func (f *Formation) AddPlayer(side Side, playerID primitive.ObjectID, pos *Position, number int) error {
	team, err := f.Lineup(side)
	if err != nil {
		return err
	}
	if team.Player(playerID) != nil {
		return ErrDuplicatePlayer
	}
	team.Players = append(team.Players, LineupPlayer{
		PlayerID: playerID,
		Number:   number,
		Position: pos,
		Starter:  true,
	})
	return nil
}

// RemovePlayer drops playerID from the side's lineup. Removing a player
// that is not there is a no-op; repeated deletes are safe.
func (f *Formation) RemovePlayer(side Side, playerID primitive.ObjectID) error {
	team, err := f.Lineup(side)
	if err != nil {
		return err
	}
	kept := team.Players[:0]
	for _, p := range team.Players {
		if p.PlayerID != playerID {
			kept = append(kept, p)
		}
	}
	team.Players = kept
	return nil
}

// UpdatePosition replaces the player's pitch position wholesale.
func (f *Formation) UpdatePosition(side Side, playerID primitive.ObjectID, pos Position) error {
	team, err := f.Lineup(side)
	if err != nil {
		return err
	}
	p := team.Player(playerID)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrPlayerNotInTeam, playerID.Hex())
	}
	p.Position = &pos
	return nil
}

// AddRating records userID's score for a lineup player and recomputes the
// player's average. A repeat rating from the same user overwrites the
// previous score and timestamp instead of appending.
func (f *Formation) AddRating(side Side, playerID primitive.ObjectID, userID, userName string, score int, now time.Time) error {
	if score < 1 || score > 10 {
		return fmt.Errorf("%w: got %d", ErrScoreOutOfRange, score)
	}
	team, err := f.Lineup(side)
	if err != nil {
		return err
	}
	p := team.Player(playerID)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrPlayerNotInTeam, playerID.Hex())
	}
	for i := range p.Ratings {
		if p.Ratings[i].UserID == userID {
			p.Ratings[i].Score = score
			p.Ratings[i].RatedAt = now
			p.recalcAverage()
			return nil
		}
	}
	p.Ratings = append(p.Ratings, Rating{
		UserID:   userID,
		UserName: userName,
		Score:    score,
		RatedAt:  now,
	})
	p.recalcAverage()
	return nil
}

// ComputeMVP scans both lineups, local first, and records the player with
// the strictly highest average among those with at least MinRatingsForMVP
// ratings. Ties keep the earlier candidate. When nobody is eligible a
// previously recorded MVP is kept as-is.
func (f *Formation) ComputeMVP() {
	var best *LineupPlayer
	var bestSide Side
	for _, side := range Sides {
		team, _ := f.Lineup(side)
		for i := range team.Players {
			p := &team.Players[i]
			if len(p.Ratings) < MinRatingsForMVP {
				continue
			}
			if best == nil || p.AverageRating > best.AverageRating {
				best = p
				bestSide = side
			}
		}
	}
	if best != nil {
		f.MVP = &MVP{
			PlayerID: best.PlayerID,
			Side:     bestSide,
			Average:  best.AverageRating,
		}
	}
}

// Substitute swaps the starter flags of the outgoing and incoming players
// and appends a substitution record. If the incoming player has no pitch
// position yet it inherits the outgoing player's. Minute ordering against
// earlier substitutions is not validated, and substituting a player that
// already went off is allowed; the list is a log, not a state machine.
func (f *Formation) Substitute(side Side, outID, inID primitive.ObjectID, minute int, reason string) error {
	if minute < 0 || minute > 120 {
		return fmt.Errorf("%w: got %d", ErrMinuteOutOfRange, minute)
	}
	team, err := f.Lineup(side)
	if err != nil {
		return err
	}
	out := team.Player(outID)
	if out == nil {
		return fmt.Errorf("%w: outgoing player %s", ErrPlayerNotInTeam, outID.Hex())
	}
	in := team.Player(inID)
	if in == nil {
		return fmt.Errorf("%w: incoming player %s", ErrPlayerNotInTeam, inID.Hex())
	}

	out.Starter = false
	in.Starter = true
	if in.Position == nil && out.Position != nil {
		pos := *out.Position
		in.Position = &pos
	}

	team.Substitutions = append(team.Substitutions, Substitution{
		PlayerOut: outID,
		PlayerIn:  inID,
		Minute:    minute,
		Reason:    reason,
	})
	return nil
}

// UpdatePlayerStats merges the patch over the player's current per-match
// stat line. Fields absent from the patch keep their value.
func (f *Formation) UpdatePlayerStats(side Side, playerID primitive.ObjectID, patch StatsPatch) error {
	team, err := f.Lineup(side)
	if err != nil {
		return err
	}
	p := team.Player(playerID)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrPlayerNotInTeam, playerID.Hex())
	}
	merged := patch.Apply(p.Stats)
	if err := merged.Validate(); err != nil {
		return err
	}
	p.Stats = merged
	return nil
}
