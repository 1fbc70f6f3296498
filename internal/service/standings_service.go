package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/AdamBeresnev/tournament-hub/internal/league"
	"github.com/AdamBeresnev/tournament-hub/internal/store"
	"github.com/jmoiron/sqlx"
)

type StandingsService struct {
	db    *sqlx.DB
	store *store.TournamentStore
}

func NewStandingsService(db *sqlx.DB, store *store.TournamentStore) *StandingsService {
	return &StandingsService{db: db, store: store}
}

// Standings groups the roster by team, sums player scores and ranks teams by
// total descending. Ties keep the order teams were first encountered in the
// fetch (team code ascending), which is why the sort must be stable.
func (s *StandingsService) Standings(ctx context.Context, tournamentID string) ([]league.TeamStanding, error) {
	entries, err := s.store.GetRoster(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}
	return aggregateStandings(entries), nil
}

func aggregateStandings(entries []league.RosterEntry) []league.TeamStanding {
	standings := []league.TeamStanding{}
	indexByTeam := make(map[string]int)

	for _, e := range entries {
		i, seen := indexByTeam[e.TeamCode]
		if !seen {
			i = len(standings)
			indexByTeam[e.TeamCode] = i
			standings = append(standings, league.TeamStanding{TeamCode: e.TeamCode})
		}
		standings[i].Players = append(standings[i].Players, league.PlayerScore{
			Username: e.Username,
			Score:    e.Score,
		})
		standings[i].TotalScore += e.Score
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].TotalScore > standings[j].TotalScore
	})
	return standings
}
