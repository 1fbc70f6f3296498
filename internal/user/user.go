package users

import (
	"time"

	"github.com/google/uuid"
)

type ContextKey string

const UserKey ContextKey = "user"

// Username is the identity the scheduling core pairs on, so it is unique
// across the whole system, not per tournament.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Username     string    `db:"username" json:"username"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	Provider     *string   `db:"provider" json:"-"`
	ProviderID   *string   `db:"provider_id" json:"-"`
	AvatarURL    *string   `db:"avatar_url" json:"avatarURL"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
