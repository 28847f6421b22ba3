package entity

import (
	"time"
)

// Collection is a user-owned named list of external image references.
// Images holds opaque Unsplash photo ids in insertion order; an id appears
// at most once per collection. Every collection belongs to exactly one user.
type Collection struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
