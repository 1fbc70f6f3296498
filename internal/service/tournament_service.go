package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/AdamBeresnev/tournament-hub/internal/league"
	"github.com/AdamBeresnev/tournament-hub/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TournamentService struct {
	db    *sqlx.DB
	store *store.TournamentStore

	// today is swappable so the date-boundary behavior is testable.
	today func() league.Date
}

func NewTournamentService(db *sqlx.DB, store *store.TournamentStore) *TournamentService {
	return &TournamentService{db: db, store: store, today: league.Today}
}

type TournamentInput struct {
	Name   string
	GameID int64
	Date   league.Date
}

var searchableFields = map[string]bool{
	"name":   true,
	"gameid": true,
	"status": true,
}

func (s *TournamentService) CreateTournament(ctx context.Context, input TournamentInput, ownerUsername string) (*league.Tournament, error) {
	tournament := &league.Tournament{
		ID:            uuid.New(),
		Name:          input.Name,
		GameID:        input.GameID,
		Date:          input.Date,
		Status:        league.DeriveStatus(input.Date, s.today()),
		OwnerUsername: ownerUsername,
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.store.CreateTournament(ctx, tx, tournament); err != nil {
		if store.IsUniqueViolation(err, "tournaments.game_id") {
			return nil, ErrDuplicateGameID
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.store.GetTournament(ctx, tournament.ID.String())
}

// ListTournaments filters by substring on one of name, gameid, status and
// always orders by date ascending. Field and search must come together.
func (s *TournamentService) ListTournaments(ctx context.Context, field, search string) ([]league.Tournament, error) {
	var filter *store.TournamentFilter
	if search != "" && field != "" {
		field = strings.ToLower(field)
		if !searchableFields[field] {
			return nil, ErrInvalidFilter
		}
		if field != "gameid" {
			// name and status match case-insensitively against LOWER(col)
			search = strings.ToLower(search)
		}
		filter = &store.TournamentFilter{Field: field, Search: search}
	}

	tournaments, err := s.store.ListTournaments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, id string) (*league.Tournament, error) {
	tournament, err := s.store.GetTournament(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return tournament, nil
}

// UpdateTournament replaces name, game ID and date, then re-derives the
// status from the new date. Only the owner may update.
func (s *TournamentService) UpdateTournament(ctx context.Context, id string, input TournamentInput, requester string) (*league.Tournament, error) {
	tournament, err := s.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tournament.IsOwnedBy(requester) {
		return nil, ErrForbidden
	}

	tournament.Name = input.Name
	tournament.GameID = input.GameID
	tournament.Date = input.Date
	tournament.Status = league.DeriveStatus(input.Date, s.today())

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.store.UpdateTournament(ctx, tx, tournament); err != nil {
		if store.IsUniqueViolation(err, "tournaments.game_id") {
			return nil, ErrDuplicateGameID
		}
		return nil, fmt.Errorf("failed to update tournament: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return tournament, nil
}

func (s *TournamentService) DeleteTournament(ctx context.Context, id string, requester string) error {
	tournament, err := s.GetTournament(ctx, id)
	if err != nil {
		return err
	}
	if !tournament.IsOwnedBy(requester) {
		return ErrForbidden
	}

	// Rosters and matches go with it via ON DELETE CASCADE.
	affected, err := s.store.DeleteTournament(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CompleteTournament is the explicit administrative transition to Completed.
// The status engine never derives Completed from dates, so this is the only
// way a tournament reaches that state.
func (s *TournamentService) CompleteTournament(ctx context.Context, id string, requester string) (*league.Tournament, error) {
	tournament, err := s.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tournament.IsOwnedBy(requester) {
		return nil, ErrForbidden
	}
	if tournament.Status == league.TournamentCompleted {
		return nil, ErrAlreadyCompleted
	}

	if err := s.store.UpdateTournamentStatus(ctx, id, league.TournamentCompleted); err != nil {
		return nil, fmt.Errorf("failed to complete tournament: %w", err)
	}
	tournament.Status = league.TournamentCompleted
	return tournament, nil
}
