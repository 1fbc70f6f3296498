package league

import "github.com/google/uuid"

// RosterEntry is one player's membership in a team. Teams have no table of
// their own, they are the grouping of roster rows sharing a team code.
type RosterEntry struct {
	TournamentID uuid.UUID `db:"tournament_id" json:"tournamentID"`
	TeamCode     string    `db:"team_code" json:"teamCode"`
	Username     string    `db:"username" json:"username"`
	Score        int       `db:"score" json:"score"`
}

type PlayerScore struct {
	Username string `json:"playerUsername"`
	Score    int    `json:"score"`
}

type TeamStanding struct {
	TeamCode   string        `json:"teamCode"`
	TotalScore int           `json:"totalScore"`
	Players    []PlayerScore `json:"players"`
}
