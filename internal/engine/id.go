package engine

import "github.com/google/uuid"

// generateID creates a random session ID.
func generateID() string {
	return uuid.NewString()
}
