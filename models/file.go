package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/driftroom/backend/utils"
)

type File struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	RoomID      string    `gorm:"size:36;not null;index" json:"room_id"`
	Filename    string    `gorm:"size:255;not null" json:"filename"`
	FileSize    int64     `gorm:"not null" json:"file_size"`
	MimeType    string    `gorm:"size:255;not null" json:"mime_type"`
	StoragePath string    `gorm:"size:512;not null" json:"storage_path"`
	// EncryptedKey holds the client-side encryption key blob, opaque to
	// the server.
	EncryptedKey string    `gorm:"type:text" json:"encrypted_key,omitempty"`
	ExpiresAt    time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = utils.NewID()
	}
	return nil
}

// Expired reports whether the file is past its own expiry. File expiry is
// independent of the owning room's expiry.
func (f *File) Expired(now time.Time) bool {
	return now.After(f.ExpiresAt)
}
