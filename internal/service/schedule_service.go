package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AdamBeresnev/tournament-hub/internal/league"
	"github.com/AdamBeresnev/tournament-hub/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ScheduleService struct {
	db    *sqlx.DB
	store *store.TournamentStore
}

func NewScheduleService(db *sqlx.DB, store *store.TournamentStore) *ScheduleService {
	return &ScheduleService{db: db, store: store}
}

// ScheduleMatches pairs unused players from different teams into a batch of
// matches. The status read, the used-player set and the insert all happen in
// one transaction, so either the whole batch lands or none of it does, and a
// concurrent call cannot double-schedule the same players.
//
// Scheduling is allowed as long as the tournament is still Upcoming; a repeat
// call only pairs players absent from every prior match, which is how roster
// additions after a first round get their matches.
func (s *ScheduleService) ScheduleMatches(ctx context.Context, tournamentID string) ([]league.Match, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	tournament, err := s.store.GetTournamentTx(ctx, tx, tournamentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	if tournament.Status != league.TournamentUpcoming {
		return nil, ErrAlreadyScheduled
	}

	existing, err := s.store.GetMatchesTx(ctx, tx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing matches: %w", err)
	}
	used := make(map[string]bool)
	for _, m := range existing {
		used[m.Player1Username] = true
		used[m.Player2Username] = true
	}

	entries, err := s.store.GetRosterTx(ctx, tx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}

	roster := buildTeamRoster(entries)
	if roster.teamCount() < 2 {
		return nil, ErrInsufficientTeams
	}

	pairings := generatePairings(roster, used)
	if len(pairings) == 0 {
		return nil, ErrNoNewMatches
	}

	matches := make([]league.Match, 0, len(pairings))
	for _, pair := range pairings {
		matches = append(matches, league.Match{
			ID:              uuid.New(),
			TournamentID:    tournament.ID,
			Player1Username: pair[0],
			Player2Username: pair[1],
			CreatedAt:       time.Now().UTC(),
		})
	}

	if err := s.store.CreateMatches(ctx, tx, matches); err != nil {
		return nil, fmt.Errorf("failed to schedule matches: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to schedule matches: %w", err)
	}

	return matches, nil
}
