package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/driftroom/backend/utils"
)

type Message struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	RoomID     string    `gorm:"size:36;not null;index" json:"room_id"`
	SenderName string    `gorm:"size:255;not null" json:"sender_name"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	// FileID is cleared, not cascaded, when the referenced file is deleted.
	FileID    *string   `gorm:"size:36" json:"file_id,omitempty"`
	File      *File     `gorm:"foreignKey:FileID;constraint:OnDelete:SET NULL" json:"file,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = utils.NewID()
	}
	return nil
}
