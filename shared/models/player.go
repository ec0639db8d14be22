package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team affiliations for roster players. The front-end only knows these two.
const (
	TeamRed  = "rojo"
	TeamBlue = "azul"
)

// ValidTeam reports whether team is one of the fixed affiliations.
func ValidTeam(team string) bool {
	return team == TeamRed || team == TeamBlue
}

// Position is a spot on the pitch, both axes expressed as a percentage of
// the field size.
type Position struct {
	X float64 `bson:"x" json:"x" validate:"min=0,max=100"`
	Y float64 `bson:"y" json:"y" validate:"min=0,max=100"`
}

// Player is a roster member. Goals, assists and cards are career totals
// accumulated across all recorded matches; per-match numbers live on the
// formation documents a player appears in.
//
// Deleting a player only flips Active so historical formations keep
// resolving their references.
type Player struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"nombre" json:"nombre"`
	Number        int                `bson:"numero,omitempty" json:"numero,omitempty"`
	Team          string             `bson:"equipo" json:"equipo"`
	Position      Position           `bson:"posicion" json:"posicion"`
	Goals         int                `bson:"goles" json:"goles"`
	Assists       int                `bson:"asistencias" json:"asistencias"`
	MatchesPlayed int                `bson:"partidosJugados" json:"partidosJugados"`
	YellowCards   int                `bson:"tarjetasAmarillas" json:"tarjetasAmarillas"`
	RedCards      int                `bson:"tarjetasRojas" json:"tarjetasRojas"`
	PhotoURL      string             `bson:"fotoUrl,omitempty" json:"fotoUrl,omitempty"`
	Active        bool               `bson:"activo" json:"activo"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
