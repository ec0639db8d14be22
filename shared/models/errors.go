package models

import "errors"

// Domain errors raised by aggregate mutations. The HTTP layer maps these to
// status codes, so callers should compare with errors.Is.
var (
	ErrUnknownSide      = errors.New("unknown team side")
	ErrDuplicatePlayer  = errors.New("player is already in this team")
	ErrPlayerNotInTeam  = errors.New("player not found in team")
	ErrScoreOutOfRange  = errors.New("rating score must be between 1 and 10")
	ErrMinuteOutOfRange = errors.New("minute must be between 0 and 120")
	ErrStatsOutOfRange  = errors.New("match statistics out of range")
)
