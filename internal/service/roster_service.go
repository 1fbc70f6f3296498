package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AdamBeresnev/tournament-hub/internal/league"
	"github.com/AdamBeresnev/tournament-hub/internal/store"
	"github.com/jmoiron/sqlx"
)

type RosterService struct {
	db    *sqlx.DB
	store *store.TournamentStore
}

func NewRosterService(db *sqlx.DB, store *store.TournamentStore) *RosterService {
	return &RosterService{db: db, store: store}
}

// AddPlayer puts a player on a team in a tournament with a zero score. A
// player can be on at most one team per tournament, enforced by the unique
// index on (tournament_id, username).
func (s *RosterService) AddPlayer(ctx context.Context, tournamentID, teamCode, username string) (*league.RosterEntry, error) {
	tournament, err := s.store.GetTournament(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}

	entry := &league.RosterEntry{
		TournamentID: tournament.ID,
		TeamCode:     teamCode,
		Username:     username,
	}
	if err := s.store.CreateRosterEntry(ctx, entry); err != nil {
		if store.IsUniqueViolation(err, "rosters.tournament_id, rosters.username") {
			return nil, ErrDuplicateRosterEntry
		}
		return nil, fmt.Errorf("failed to add roster entry: %w", err)
	}
	return entry, nil
}

func (s *RosterService) ListRoster(ctx context.Context, tournamentID string) ([]league.RosterEntry, error) {
	entries, err := s.store.GetRoster(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	return entries, nil
}
