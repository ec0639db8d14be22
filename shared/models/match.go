package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Match lifecycle states. Unlike formations, a match can also be cancelled.
const (
	MatchStateScheduled  = "programado"
	MatchStateInProgress = "en_curso"
	MatchStateFinished   = "finalizado"
	MatchStateCancelled  = "cancelado"
)

// ValidMatchState reports whether state is a known match state.
func ValidMatchState(state string) bool {
	switch state {
	case MatchStateScheduled, MatchStateInProgress, MatchStateFinished, MatchStateCancelled:
		return true
	}
	return false
}

// Goal event types.
const (
	GoalTypeGoal    = "gol"
	GoalTypeOwnGoal = "autogol"
)

// GoalEvent is one goal scored during a match.
type GoalEvent struct {
	PlayerID primitive.ObjectID `bson:"jugadorId" json:"jugadorId"`
	Minute   int                `bson:"minuto" json:"minuto"`
	Type     string             `bson:"tipo" json:"tipo"`
}

// AssistEvent is one assist given during a match.
type AssistEvent struct {
	PlayerID primitive.ObjectID `bson:"jugadorId" json:"jugadorId"`
	Minute   int                `bson:"minuto" json:"minuto"`
}

// MatchLineupPlayer is a positioned player reference within a match lineup.
type MatchLineupPlayer struct {
	PlayerID primitive.ObjectID `bson:"jugadorId" json:"jugadorId"`
	Position *Position          `bson:"posicion,omitempty" json:"posicion,omitempty"`
}

// MatchLineup is the position-only roster a match carries per side.
type MatchLineup struct {
	Players []MatchLineupPlayer `bson:"jugadores" json:"jugadores"`
}

// Match is a lightweight match result: team names, score, state and an
// event log of goals and assists. Richer in-match data (ratings, stats,
// substitutions) lives on Formation.
type Match struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LocalName      string             `bson:"nombreEquipoLocal" json:"nombreEquipoLocal"`
	VisitingName   string             `bson:"nombreEquipoVisitante" json:"nombreEquipoVisitante"`
	LocalGoals     int                `bson:"golesLocal" json:"golesLocal"`
	VisitingGoals  int                `bson:"golesVisitante" json:"golesVisitante"`
	Date           time.Time          `bson:"fecha" json:"fecha"`
	State          string             `bson:"estado" json:"estado"`
	LocalLineup    MatchLineup        `bson:"formacionLocal" json:"formacionLocal"`
	VisitingLineup MatchLineup        `bson:"formacionVisitante" json:"formacionVisitante"`
	Goals          []GoalEvent        `bson:"golesDetalle" json:"golesDetalle"`
	Assists        []AssistEvent      `bson:"asistenciasDetalle" json:"asistenciasDetalle"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SetResult overwrites the score.
func (m *Match) SetResult(local, visiting int) error {
	if local < 0 || visiting < 0 {
		return fmt.Errorf("%w: score must not be negative", ErrStatsOutOfRange)
	}
	m.LocalGoals = local
	m.VisitingGoals = visiting
	return nil
}

// AddGoal appends a goal event.
func (m *Match) AddGoal(playerID primitive.ObjectID, minute int, goalType string) error {
	if minute < 0 || minute > 120 {
		return fmt.Errorf("%w: got %d", ErrMinuteOutOfRange, minute)
	}
	if goalType == "" {
		goalType = GoalTypeGoal
	}
	if goalType != GoalTypeGoal && goalType != GoalTypeOwnGoal {
		return fmt.Errorf("%w: unknown goal type %q", ErrStatsOutOfRange, goalType)
	}
	m.Goals = append(m.Goals, GoalEvent{PlayerID: playerID, Minute: minute, Type: goalType})
	return nil
}

// AddAssist appends an assist event.
func (m *Match) AddAssist(playerID primitive.ObjectID, minute int) error {
	if minute < 0 || minute > 120 {
		return fmt.Errorf("%w: got %d", ErrMinuteOutOfRange, minute)
	}
	m.Assists = append(m.Assists, AssistEvent{PlayerID: playerID, Minute: minute})
	return nil
}
