package utils

import "github.com/google/uuid"

// NewID returns a collision-resistant identifier for rooms, files,
// messages and relay participants.
func NewID() string {
	return uuid.NewString()
}
