package service

import "errors"

// Sentinel errors shared across services and the HTTP status mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Conflicts
	ErrDuplicateGameID      = errors.New("this game ID is already present, use a different one")
	ErrAlreadyScheduled     = errors.New("matches already scheduled for this tournament")
	ErrAlreadyCompleted     = errors.New("tournament is already completed")
	ErrDuplicateUsername    = errors.New("username is already taken")
	ErrDuplicateRosterEntry = errors.New("player is already on a team in this tournament")
	ErrMatchAlreadyDecided  = errors.New("match winner has already been recorded")

	// Precondition failures
	ErrInsufficientTeams = errors.New("not enough teams to create matches")
	ErrNoNewMatches      = errors.New("no new matches could be scheduled")
	ErrInvalidFilter     = errors.New("invalid search filter")
	ErrPlayerNotInMatch  = errors.New("player is not part of this match")

	// Authentication and authorization
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("operation not allowed for the current user")
)
