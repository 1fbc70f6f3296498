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

type MatchService struct {
	db    *sqlx.DB
	store *store.TournamentStore
}

func NewMatchService(db *sqlx.DB, store *store.TournamentStore) *MatchService {
	return &MatchService{db: db, store: store}
}

func (s *MatchService) ListMatches(ctx context.Context, tournamentID string) ([]league.Match, error) {
	matches, err := s.store.GetMatches(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// RecordResult sets the match winner and adds the win points to the winner's
// roster score in one transaction. A decided match stays decided.
func (s *MatchService) RecordResult(ctx context.Context, matchID string, winnerUsername string, points int) (*league.Match, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := s.store.GetMatchTx(ctx, tx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	if match.IsDecided() {
		return nil, ErrMatchAlreadyDecided
	}
	if !match.HasPlayer(winnerUsername) {
		return nil, ErrPlayerNotInMatch
	}

	match.WinnerUsername = &winnerUsername
	if err := s.store.UpdateMatchWinnerTx(ctx, tx, match); err != nil {
		return nil, fmt.Errorf("failed to record result: %w", err)
	}

	affected, err := s.store.AddScoreTx(ctx, tx, match.TournamentID.String(), winnerUsername, points)
	if err != nil {
		return nil, fmt.Errorf("failed to update score: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("winner %s has no roster entry: %w", winnerUsername, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to record result: %w", err)
	}
	return match, nil
}
