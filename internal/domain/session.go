package domain

import "time"

// Session is one user's working calculator state.
type Session struct {
	ID        string
	Recipe    Recipe
	Revision  int // bumped on every stored change
	StartedAt time.Time
	UpdatedAt time.Time
}
