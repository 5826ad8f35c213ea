package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/driftroom/backend/utils"
)

// PasswordHashCost is the bcrypt cost used for room passwords.
const PasswordHashCost = 12

type Room struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	ExpiresAt    time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	Files        []File    `gorm:"constraint:OnDelete:CASCADE" json:"files,omitempty"`
	Messages     []Message `gorm:"constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

// BeforeCreate assigns an identifier when none was set.
func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = utils.NewID()
	}
	return nil
}

// SetPassword hashes and stores the room password. An empty password
// leaves the room open.
func (r *Room) SetPassword(password string) error {
	if password == "" {
		r.PasswordHash = ""
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return err
	}
	r.PasswordHash = string(hash)
	return nil
}

// ValidatePassword reports whether the supplied password grants access.
// Rooms without a stored hash accept any input.
func (r *Room) ValidatePassword(password string) bool {
	if r.PasswordHash == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(r.PasswordHash), []byte(password)) == nil
}

// HasPassword reports whether the room is password-gated. External-facing
// projections expose this instead of the hash itself.
func (r *Room) HasPassword() bool {
	return r.PasswordHash != ""
}

// Expired reports whether the room is past its expiry at the given instant.
func (r *Room) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
