package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/driftroom/backend/database"
	"github.com/driftroom/backend/storage"
)

// signedURLTTL bounds how long a download link stays valid.
const signedURLTTL = 15 * time.Minute

// objectStore backs uploads and signed downloads. Set once at startup.
var objectStore *storage.DiskStore

// InitStorage wires the object store the file endpoints use.
func InitStorage(store *storage.DiskStore) {
	objectStore = store
}

type CreateFileInput struct {
	RoomID       string `json:"room_id" binding:"required"`
	Filename     string `json:"filename" binding:"required" example:"itinerary.pdf"`
	FileSize     int64  `json:"file_size" binding:"required"`
	MimeType     string `json:"mime_type" binding:"required" example:"application/pdf"`
	StoragePath  string `json:"storage_path" binding:"required"`
	EncryptedKey string `json:"encrypted_key"`
	TTLHours     int    `json:"ttl_hours" example:"24"`
}

// CreateFile godoc
// @Summary Record uploaded file metadata
// @Description Records metadata for a blob already placed in object storage; the record expires independently of the room
// @Tags files
// @Accept json
// @Produce json
// @Param file body CreateFileInput true "File metadata"
// @Success 201 {object} map[string]interface{} "File created"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/files [post]
func CreateFile(c *gin.Context) {
	var input CreateFileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := database.CreateFile(input.RoomID, input.Filename, input.FileSize,
		input.MimeType, input.StoragePath, input.EncryptedKey,
		time.Duration(input.TTLHours)*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"file": file})
}

// UploadFile godoc
// @Summary Upload a file blob
// @Description Stores the blob in object storage and records its metadata in one call
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param room_id formData string true "Room ID"
// @Param file formData file true "File content"
// @Success 201 {object} map[string]interface{} "File created"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/files/upload [post]
func UploadFile(c *gin.Context) {
	roomID := c.PostForm("room_id")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room_id is required"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	src, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}

	path, err := objectStore.Put(data, header.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	ttlHours, _ := strconv.Atoi(c.PostForm("ttl_hours"))
	file, err := database.CreateFile(roomID, header.Filename, int64(len(data)),
		mimeType, path, c.PostForm("encrypted_key"),
		time.Duration(ttlHours)*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"file": file})
}

// GetFilesByRoom godoc
// @Summary List a room's files
// @Tags files
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} map[string]interface{} "Files, newest first"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/rooms/{id}/files [get]
func GetFilesByRoom(c *gin.Context) {
	files, err := database.GetFilesByRoom(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch files"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}

// GetFile godoc
// @Summary Get a file record
// @Tags files
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} map[string]interface{} "File"
// @Failure 404 {object} map[string]string "File not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/files/{id} [get]
func GetFile(c *gin.Context) {
	file, err := database.GetFile(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"file": file})
}

// GetFileURL godoc
// @Summary Get a time-limited download URL
// @Tags files
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} map[string]string "Signed URL"
// @Failure 404 {object} map[string]string "File not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/files/{id}/url [post]
func GetFileURL(c *gin.Context) {
	file, err := database.GetFile(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch file"})
		return
	}

	url, err := objectStore.SignedURL(file.StoragePath, signedURLTTL)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// DownloadFile godoc
// @Summary Download a blob through a signed URL
// @Tags files
// @Produce octet-stream
// @Param path path string true "Storage path"
// @Param expires query int true "Expiry unix timestamp"
// @Param sig query string true "HMAC signature"
// @Success 200 {file} binary "File content"
// @Failure 403 {object} map[string]string "Invalid or expired token"
// @Failure 404 {object} map[string]string "File not found"
// @Router /api/download/{path} [get]
func DownloadFile(c *gin.Context) {
	path := c.Param("path")
	expires, err := strconv.ParseInt(c.Query("expires"), 10, 64)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid download token"})
		return
	}

	if err := objectStore.VerifyToken(path, expires, c.Query("sig")); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid download token"})
		return
	}

	data, err := objectStore.Get(path)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", data)
}
