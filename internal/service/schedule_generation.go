package service

import "github.com/AdamBeresnev/tournament-hub/internal/league"

// teamRoster groups roster entries by team while remembering the order team
// codes were first seen. Pairing order is a documented contract, so grouping
// cannot rely on map iteration order.
type teamRoster struct {
	codes   []string
	members map[string][]string
}

func buildTeamRoster(entries []league.RosterEntry) *teamRoster {
	r := &teamRoster{members: make(map[string][]string)}
	for _, e := range entries {
		if _, seen := r.members[e.TeamCode]; !seen {
			r.codes = append(r.codes, e.TeamCode)
		}
		r.members[e.TeamCode] = append(r.members[e.TeamCode], e.Username)
	}
	return r
}

func (r *teamRoster) teamCount() int {
	return len(r.codes)
}

// availableTeams returns the codes of teams that still have at least one
// player not in used, preserving first-seen order.
func (r *teamRoster) availableTeams(used map[string]bool) []string {
	var available []string
	for _, code := range r.codes {
		for _, username := range r.members[code] {
			if !used[username] {
				available = append(available, code)
				break
			}
		}
	}
	return available
}

func (r *teamRoster) firstUnused(code string, used map[string]bool) (string, bool) {
	for _, username := range r.members[code] {
		if !used[username] {
			return username, true
		}
	}
	return "", false
}

// generatePairings repeatedly takes the first two teams with unused players
// and pairs their first unused members. Every iteration marks two players
// used, so the loop terminates once fewer than two teams have anyone left.
func generatePairings(roster *teamRoster, used map[string]bool) [][2]string {
	var pairings [][2]string
	for {
		available := roster.availableTeams(used)
		if len(available) < 2 {
			return pairings
		}

		player1, ok1 := roster.firstUnused(available[0], used)
		player2, ok2 := roster.firstUnused(available[1], used)
		if !ok1 || !ok2 {
			return pairings
		}

		pairings = append(pairings, [2]string{player1, player2})
		used[player1] = true
		used[player2] = true
	}
}
