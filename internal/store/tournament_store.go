package store

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/tournament-hub/internal/league"
	"github.com/jmoiron/sqlx"
)

type TournamentStore struct {
	db *sqlx.DB
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

// TournamentFilter narrows ListTournaments to rows whose field contains the
// search term. Field must be one of name, gameid, status.
type TournamentFilter struct {
	Field  string
	Search string
}

func (s *TournamentStore) CreateTournament(ctx context.Context, tx *sqlx.Tx, tournament *league.Tournament) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO tournaments (id, name, game_id, date, status, owner_username)
        VALUES (:id, :name, :game_id, :date, :status, :owner_username)`, tournament)
	return err
}

func (s *TournamentStore) GetTournament(ctx context.Context, id string) (*league.Tournament, error) {
	var tournament league.Tournament
	err := s.db.GetContext(ctx, &tournament, "SELECT * FROM tournaments WHERE id = ?", id)
	return &tournament, err
}

func (s *TournamentStore) GetTournamentTx(ctx context.Context, tx *sqlx.Tx, id string) (*league.Tournament, error) {
	var tournament league.Tournament
	err := tx.GetContext(ctx, &tournament, "SELECT * FROM tournaments WHERE id = ?", id)
	return &tournament, err
}

func (s *TournamentStore) ListTournaments(ctx context.Context, filter *TournamentFilter) ([]league.Tournament, error) {
	query := "SELECT * FROM tournaments"
	var args []interface{}

	if filter != nil {
		switch filter.Field {
		case "name":
			query += " WHERE LOWER(name) LIKE ?"
		case "gameid":
			query += " WHERE CAST(game_id AS TEXT) LIKE ?"
		case "status":
			query += " WHERE LOWER(status) LIKE ?"
		default:
			return nil, fmt.Errorf("unknown search field %q", filter.Field)
		}
		args = append(args, "%"+filter.Search+"%")
	}

	query += " ORDER BY date ASC"

	tournaments := []league.Tournament{}
	err := s.db.SelectContext(ctx, &tournaments, query, args...)
	return tournaments, err
}

func (s *TournamentStore) UpdateTournament(ctx context.Context, tx *sqlx.Tx, tournament *league.Tournament) error {
	_, err := tx.NamedExecContext(ctx, `UPDATE tournaments
        SET name = :name, game_id = :game_id, date = :date, status = :status
        WHERE id = :id`, tournament)
	return err
}

func (s *TournamentStore) UpdateTournamentStatus(ctx context.Context, id string, status league.TournamentStatus) error {
	_, err := s.db.ExecContext(ctx, "UPDATE tournaments SET status = ? WHERE id = ?", status, id)
	return err
}

func (s *TournamentStore) DeleteTournament(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tournaments WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *TournamentStore) CreateMatches(ctx context.Context, tx *sqlx.Tx, matches []league.Match) error {
	if len(matches) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO matches (id, tournament_id, player1_username, player2_username, winner_username, created_at)
        VALUES (:id, :tournament_id, :player1_username, :player2_username, :winner_username, :created_at)`, matches)
	return err
}

func (s *TournamentStore) GetMatches(ctx context.Context, tournamentID string) ([]league.Match, error) {
	matches := []league.Match{}
	err := s.db.SelectContext(ctx, &matches, "SELECT * FROM matches WHERE tournament_id = ? ORDER BY created_at ASC, id ASC", tournamentID)
	return matches, err
}

func (s *TournamentStore) GetMatchesTx(ctx context.Context, tx *sqlx.Tx, tournamentID string) ([]league.Match, error) {
	matches := []league.Match{}
	err := tx.SelectContext(ctx, &matches, "SELECT * FROM matches WHERE tournament_id = ? ORDER BY created_at ASC, id ASC", tournamentID)
	return matches, err
}

func (s *TournamentStore) GetMatchTx(ctx context.Context, tx *sqlx.Tx, id string) (*league.Match, error) {
	var match league.Match
	err := tx.GetContext(ctx, &match, "SELECT * FROM matches WHERE id = ?", id)
	return &match, err
}

func (s *TournamentStore) UpdateMatchWinnerTx(ctx context.Context, tx *sqlx.Tx, match *league.Match) error {
	_, err := tx.NamedExecContext(ctx, "UPDATE matches SET winner_username = :winner_username WHERE id = :id", match)
	return err
}

func (s *TournamentStore) CreateRosterEntry(ctx context.Context, entry *league.RosterEntry) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO rosters (tournament_id, team_code, username, score)
        VALUES (:tournament_id, :team_code, :username, :score)`, entry)
	return err
}

// GetRoster returns entries grouped by team code, insertion order within a
// team. This is the order the leaderboard reports players in.
func (s *TournamentStore) GetRoster(ctx context.Context, tournamentID string) ([]league.RosterEntry, error) {
	entries := []league.RosterEntry{}
	err := s.db.SelectContext(ctx, &entries, "SELECT * FROM rosters WHERE tournament_id = ? ORDER BY team_code ASC, rowid ASC", tournamentID)
	return entries, err
}

// GetRosterTx returns entries in raw insertion order, which is the order the
// scheduler builds its team list from.
func (s *TournamentStore) GetRosterTx(ctx context.Context, tx *sqlx.Tx, tournamentID string) ([]league.RosterEntry, error) {
	entries := []league.RosterEntry{}
	err := tx.SelectContext(ctx, &entries, "SELECT * FROM rosters WHERE tournament_id = ? ORDER BY rowid ASC", tournamentID)
	return entries, err
}

func (s *TournamentStore) AddScoreTx(ctx context.Context, tx *sqlx.Tx, tournamentID, username string, points int) (int64, error) {
	res, err := tx.ExecContext(ctx, "UPDATE rosters SET score = score + ? WHERE tournament_id = ? AND username = ?", points, tournamentID, username)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
