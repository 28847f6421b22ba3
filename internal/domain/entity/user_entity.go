package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// PasswordHash is a bcrypt hash; it is empty for accounts created through
// an OAuth provider, and credential login is refused for those accounts.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	AvatarURL    string    `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
