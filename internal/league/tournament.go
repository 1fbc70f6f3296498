package league

import (
	"time"

	"github.com/google/uuid"
)

type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "Upcoming"
	TournamentOngoing   TournamentStatus = "Ongoing"
	TournamentCompleted TournamentStatus = "Completed"
)

type Tournament struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	Name          string           `db:"name" json:"name"`
	GameID        int64            `db:"game_id" json:"gameID"`
	Date          Date             `db:"date" json:"date"`
	Status        TournamentStatus `db:"status" json:"status"`
	OwnerUsername string           `db:"owner_username" json:"ownerUsername"`
	CreatedAt     time.Time        `db:"created_at" json:"createdAt"`
}

// DeriveStatus compares calendar dates only. A tournament scheduled for a
// future date is Upcoming; on the day itself (and after) it is Ongoing.
// Completed is never derived here, it is set by an explicit completion action.
func DeriveStatus(scheduled, asOf Date) TournamentStatus {
	if scheduled.After(asOf) {
		return TournamentUpcoming
	}
	return TournamentOngoing
}

func (t *Tournament) IsOwnedBy(username string) bool {
	return t.OwnerUsername == username
}
