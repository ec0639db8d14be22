package models

import "fmt"

// MatchStats is a player's stat line scoped to a single match. It is a
// snapshot embedded in the formation document, separate from the career
// totals on Player.
type MatchStats struct {
	Goals         int `bson:"goles" json:"goles"`
	Assists       int `bson:"asistencias" json:"asistencias"`
	YellowCards   int `bson:"tarjetasAmarillas" json:"tarjetasAmarillas"`
	RedCards      int `bson:"tarjetasRojas" json:"tarjetasRojas"`
	MinutesPlayed int `bson:"minutosJugados" json:"minutosJugados"`
}

// IsZero reports whether every counter, minutes included, is zero.
func (s MatchStats) IsZero() bool {
	return s == MatchStats{}
}

// Validate checks the per-match bounds.
func (s MatchStats) Validate() error {
	switch {
	case s.Goals < 0:
		return fmt.Errorf("%w: goals must not be negative", ErrStatsOutOfRange)
	case s.Assists < 0:
		return fmt.Errorf("%w: assists must not be negative", ErrStatsOutOfRange)
	case s.YellowCards < 0 || s.YellowCards > 2:
		return fmt.Errorf("%w: yellow cards must be between 0 and 2", ErrStatsOutOfRange)
	case s.RedCards < 0 || s.RedCards > 1:
		return fmt.Errorf("%w: red cards must be 0 or 1", ErrStatsOutOfRange)
	case s.MinutesPlayed < 0 || s.MinutesPlayed > 120:
		return fmt.Errorf("%w: minutes played must be between 0 and 120", ErrStatsOutOfRange)
	}
	return nil
}

// Delta returns the field-wise difference s - prev for the counters that
// feed a player's career totals. MinutesPlayed has no career counterpart
// and is excluded.
func (s MatchStats) Delta(prev MatchStats) StatsDelta {
	return StatsDelta{
		Goals:       s.Goals - prev.Goals,
		Assists:     s.Assists - prev.Assists,
		YellowCards: s.YellowCards - prev.YellowCards,
		RedCards:    s.RedCards - prev.RedCards,
	}
}

// StatsDelta is an increment (possibly negative) applied to a player's
// career totals during reconciliation.
type StatsDelta struct {
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
}

// IsZero reports whether applying the delta would change nothing.
func (d StatsDelta) IsZero() bool {
	return d == StatsDelta{}
}

// StatsPatch is a partial stat line; nil fields keep their current value.
// It mirrors the partial objects the front-end sends when editing a single
// player's in-match numbers.
type StatsPatch struct {
	Goals         *int `json:"goles"`
	Assists       *int `json:"asistencias"`
	YellowCards   *int `json:"tarjetasAmarillas"`
	RedCards      *int `json:"tarjetasRojas"`
	MinutesPlayed *int `json:"minutosJugados"`
}

// Apply merges the patch over s and returns the result.
func (p StatsPatch) Apply(s MatchStats) MatchStats {
	if p.Goals != nil {
		s.Goals = *p.Goals
	}
	if p.Assists != nil {
		s.Assists = *p.Assists
	}
	if p.YellowCards != nil {
		s.YellowCards = *p.YellowCards
	}
	if p.RedCards != nil {
		s.RedCards = *p.RedCards
	}
	if p.MinutesPlayed != nil {
		s.MinutesPlayed = *p.MinutesPlayed
	}
	return s
}
