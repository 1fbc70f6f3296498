package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/AdamBeresnev/tournament-hub/internal/league"
	"github.com/AdamBeresnev/tournament-hub/internal/store"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	// A named memory database per test: shared across the pool's
	// connections, invisible to other tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := sqlx.Connect("sqlite3", dsn)
	require.NoError(t, err, "Failed to connect to in-memory DB")

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database
}

var testGameID int64 = 1000

func seedTournament(t *testing.T, db *sqlx.DB, status league.TournamentStatus, owner string) *league.Tournament {
	t.Helper()

	testGameID++
	tournament := &league.Tournament{
		ID:            uuid.New(),
		Name:          "Spring Cup",
		GameID:        testGameID,
		Date:          league.NewDate(2030, 4, 1),
		Status:        status,
		OwnerUsername: owner,
	}

	tournamentStore := store.NewTournamentStore(db)
	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, tournamentStore.CreateTournament(context.Background(), tx, tournament))
	require.NoError(t, tx.Commit())

	return tournament
}

func seedRoster(t *testing.T, db *sqlx.DB, tournamentID uuid.UUID, teamCode string, usernames ...string) {
	t.Helper()

	tournamentStore := store.NewTournamentStore(db)
	for _, username := range usernames {
		err := tournamentStore.CreateRosterEntry(context.Background(), &league.RosterEntry{
			TournamentID: tournamentID,
			TeamCode:     teamCode,
			Username:     username,
		})
		require.NoError(t, err)
	}
}

func TestScheduleMatchesPairsAcrossTeams(t *testing.T) {
	db := setupTestDB(t)

	tournamentStore := store.NewTournamentStore(db)
	scheduleService := NewScheduleService(db, tournamentStore)
	ctx := context.Background()

	tournament := seedTournament(t, db, league.TournamentUpcoming, "owner")
	seedRoster(t, db, tournament.ID, "T1", "a", "b")
	seedRoster(t, db, tournament.ID, "T2", "c", "d")

	matches, err := scheduleService.ScheduleMatches(ctx, tournament.ID.String())
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "a", matches[0].Player1Username)
	assert.Equal(t, "c", matches[0].Player2Username)
	assert.Equal(t, "b", matches[1].Player1Username)
	assert.Equal(t, "d", matches[1].Player2Username)

	var persisted []league.Match
	require.NoError(t, db.Select(&persisted, "SELECT * FROM matches WHERE tournament_id = ?", tournament.ID))
	assert.Len(t, persisted, 2)

	// Scheduling does not advance the status, the date does that.
	fetched, err := tournamentStore.GetTournament(ctx, tournament.ID.String())
	require.NoError(t, err)
	assert.Equal(t, league.TournamentUpcoming, fetched.Status)

	// Everyone is paired, so a repeat call has nothing to do.
	_, err = scheduleService.ScheduleMatches(ctx, tournament.ID.String())
	assert.ErrorIs(t, err, ErrNoNewMatches)
}

func TestScheduleMatchesTournamentNotFound(t *testing.T) {
	db := setupTestDB(t)

	scheduleService := NewScheduleService(db, store.NewTournamentStore(db))

	_, err := scheduleService.ScheduleMatches(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScheduleMatchesRejectsNonUpcoming(t *testing.T) {
	db := setupTestDB(t)

	scheduleService := NewScheduleService(db, store.NewTournamentStore(db))
	ctx := context.Background()

	for _, status := range []league.TournamentStatus{league.TournamentOngoing, league.TournamentCompleted} {
		tournament := seedTournament(t, db, status, "owner")
		seedRoster(t, db, tournament.ID, "T1", "a")
		seedRoster(t, db, tournament.ID, "T2", "b")

		_, err := scheduleService.ScheduleMatches(ctx, tournament.ID.String())
		assert.ErrorIs(t, err, ErrAlreadyScheduled, "status %s", status)

		var count int
		require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM matches WHERE tournament_id = ?", tournament.ID))
		assert.Zero(t, count)
	}
}

func TestScheduleMatchesInsufficientTeams(t *testing.T) {
	db := setupTestDB(t)

	scheduleService := NewScheduleService(db, store.NewTournamentStore(db))
	ctx := context.Background()

	empty := seedTournament(t, db, league.TournamentUpcoming, "owner")
	_, err := scheduleService.ScheduleMatches(ctx, empty.ID.String())
	assert.ErrorIs(t, err, ErrInsufficientTeams)

	oneTeam := seedTournament(t, db, league.TournamentUpcoming, "owner")
	seedRoster(t, db, oneTeam.ID, "T1", "a", "b", "c")
	_, err = scheduleService.ScheduleMatches(ctx, oneTeam.ID.String())
	assert.ErrorIs(t, err, ErrInsufficientTeams)

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM matches"))
	assert.Zero(t, count, "no matches may be persisted on a failed schedule")
}

func TestScheduleMatchesRepeatCallPairsNewPlayers(t *testing.T) {
	db := setupTestDB(t)

	scheduleService := NewScheduleService(db, store.NewTournamentStore(db))
	ctx := context.Background()

	tournament := seedTournament(t, db, league.TournamentUpcoming, "owner")
	seedRoster(t, db, tournament.ID, "T1", "a")
	seedRoster(t, db, tournament.ID, "T2", "b")
	seedRoster(t, db, tournament.ID, "T3", "c")

	matches, err := scheduleService.ScheduleMatches(ctx, tournament.ID.String())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "a", matches[0].Player1Username)
	assert.Equal(t, "b", matches[0].Player2Username)

	// c is stranded: the only team with unused players.
	_, err = scheduleService.ScheduleMatches(ctx, tournament.ID.String())
	assert.ErrorIs(t, err, ErrNoNewMatches)

	// A late roster addition gives c an opponent on the next call.
	seedRoster(t, db, tournament.ID, "T4", "d")
	matches, err = scheduleService.ScheduleMatches(ctx, tournament.ID.String())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "c", matches[0].Player1Username)
	assert.Equal(t, "d", matches[0].Player2Username)
}
