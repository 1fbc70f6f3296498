package league

import (
	"time"

	"github.com/google/uuid"
)

type Match struct {
	ID              uuid.UUID `db:"id" json:"id"`
	TournamentID    uuid.UUID `db:"tournament_id" json:"tournamentID"`
	Player1Username string    `db:"player1_username" json:"player1Username"`
	Player2Username string    `db:"player2_username" json:"player2Username"`
	WinnerUsername  *string   `db:"winner_username" json:"winnerUsername"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

func (m *Match) IsDecided() bool {
	return m.WinnerUsername != nil
}

func (m *Match) HasPlayer(username string) bool {
	return m.Player1Username == username || m.Player2Username == username
}
