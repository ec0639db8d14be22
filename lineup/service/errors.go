package service

import "errors"

// Service-level errors, mapped to HTTP status codes by the API layer.
// Domain errors raised inside the aggregate (unknown side, duplicate
// player, out-of-range values) pass through from shared/models untouched.
var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrFormationNotFound = errors.New("formation not found")
	ErrMatchNotFound     = errors.New("match not found")
	ErrNumberTaken       = errors.New("shirt number already taken in this team")
	ErrValidation        = errors.New("validation failed")
)
