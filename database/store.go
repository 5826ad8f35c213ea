package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/driftroom/backend/models"
)

// DefaultFileTTL is the retention horizon applied to files uploaded without
// an explicit TTL. It is independent of the owning room's expiry.
const DefaultFileTTL = 24 * time.Hour

// ErrInvalidExpiryHours is returned when a room TTL outside the allowed
// choices is requested.
var ErrInvalidExpiryHours = errors.New("invalid expiry hours")

// allowedExpiryHours are the room TTL choices offered to users.
var allowedExpiryHours = map[int]bool{1: true, 6: true, 12: true, 24: true}

// CreateRoom creates a room expiring expiryHours from now. A non-empty
// password is stored only as a bcrypt hash.
func CreateRoom(name string, expiryHours int, password string) (*models.Room, error) {
	if !allowedExpiryHours[expiryHours] {
		return nil, ErrInvalidExpiryHours
	}

	room := models.Room{
		Name:      name,
		ExpiresAt: time.Now().Add(time.Duration(expiryHours) * time.Hour),
	}
	if err := room.SetPassword(password); err != nil {
		return nil, err
	}

	if err := DB.Create(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// GetRoom fetches a room by ID. Returns gorm.ErrRecordNotFound when the
// room does not exist or has been swept.
func GetRoom(id string) (*models.Room, error) {
	var room models.Room
	if err := DB.First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// ValidateRoomPassword checks the supplied password against the room's
// stored hash. Rooms without a password accept any input. A lookup miss is
// reported as invalid, never as an error, so the endpoint cannot leak room
// existence.
func ValidateRoomPassword(roomID, password string) (bool, error) {
	room, err := GetRoom(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return room.ValidatePassword(password), nil
}

// DeleteExpiredRooms removes every room whose expiry has passed, cascading
// to its files and messages. The cascade runs in one transaction so a crash
// cannot leave a room deleted while its children survive. Safe to call
// concurrently and repeatedly.
func DeleteExpiredRooms() error {
	now := time.Now()
	return DB.Transaction(func(tx *gorm.DB) error {
		expired := tx.Model(&models.Room{}).Select("id").Where("expires_at < ?", now)

		if err := tx.Where("room_id IN (?)", expired).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id IN (?)", expired).Delete(&models.File{}).Error; err != nil {
			return err
		}
		return tx.Where("expires_at < ?", now).Delete(&models.Room{}).Error
	})
}

// CreateFile records file metadata. The blob itself must already sit at
// storagePath; this layer never touches file bytes. A zero ttl falls back
// to DefaultFileTTL.
func CreateFile(roomID, filename string, size int64, mimeType, storagePath, encryptedKey string, ttl time.Duration) (*models.File, error) {
	if ttl <= 0 {
		ttl = DefaultFileTTL
	}

	file := models.File{
		RoomID:       roomID,
		Filename:     filename,
		FileSize:     size,
		MimeType:     mimeType,
		StoragePath:  storagePath,
		EncryptedKey: encryptedKey,
		ExpiresAt:    time.Now().Add(ttl),
	}

	if err := DB.Create(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// GetFile fetches a file record by ID.
func GetFile(id string) (*models.File, error) {
	var file models.File
	if err := DB.First(&file, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// GetFilesByRoom lists a room's files, newest first.
func GetFilesByRoom(roomID string) ([]models.File, error) {
	var files []models.File
	if err := DB.Where("room_id = ?", roomID).Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// DeleteExpiredFiles removes every file whose own expiry has passed. Any
// message referencing a deleted file gets its reference cleared in the same
// transaction, never left dangling. Deleting the underlying blob is the
// object store's concern, not handled here.
func DeleteExpiredFiles() error {
	now := time.Now()
	return DB.Transaction(func(tx *gorm.DB) error {
		expired := tx.Model(&models.File{}).Select("id").Where("expires_at < ?", now)

		if err := tx.Model(&models.Message{}).Where("file_id IN (?)", expired).
			Update("file_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("expires_at < ?", now).Delete(&models.File{}).Error
	})
}

// CreateMessage records a chat message, optionally referencing a file.
func CreateMessage(roomID, senderName, content string, fileID *string) (*models.Message, error) {
	message := models.Message{
		RoomID:     roomID,
		SenderName: senderName,
		Content:    content,
		FileID:     fileID,
	}

	if err := DB.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// GetMessagesByRoom lists a room's messages, newest first.
func GetMessagesByRoom(roomID string) ([]models.Message, error) {
	var messages []models.Message
	if err := DB.Where("room_id = ?", roomID).Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
