package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/driftroom/backend/database"
	"github.com/driftroom/backend/models"
)

type CreateRoomInput struct {
	Name        string `json:"name" binding:"required" example:"Weekend Trip Photos"`
	ExpiryHours string `json:"expiry_hours" binding:"required,oneof=1 6 12 24" example:"24"`
	Password    string `json:"password" example:"hunter2"`
}

type ValidatePasswordInput struct {
	Password string `json:"password" example:"hunter2"`
}

// roomResponse is the external-facing projection of a room. The password
// hash never leaves the server.
func roomResponse(room *models.Room) gin.H {
	return gin.H{
		"id":           room.ID,
		"name":         room.Name,
		"expires_at":   room.ExpiresAt,
		"created_at":   room.CreatedAt,
		"has_password": room.HasPassword(),
	}
}

// CreateRoom godoc
// @Summary Create an ephemeral room
// @Description Creates a room that expires after the chosen number of hours, optionally password-protected
// @Tags rooms
// @Accept json
// @Produce json
// @Param room body CreateRoomInput true "Room Creation"
// @Success 201 {object} map[string]interface{} "Room created successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/rooms [post]
func CreateRoom(c *gin.Context) {
	var input CreateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hours, err := strconv.Atoi(input.ExpiryHours)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expiry hours"})
		return
	}

	room, err := database.CreateRoom(input.Name, hours, input.Password)
	if err != nil {
		if errors.Is(err, database.ErrInvalidExpiryHours) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expiry hours"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"room": roomResponse(room)})
}

// GetRoom godoc
// @Summary Get a room
// @Description Returns the room projection, with a has_password flag instead of the hash
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} map[string]interface{} "Room"
// @Failure 404 {object} map[string]string "Room not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/rooms/{id} [get]
func GetRoom(c *gin.Context) {
	room, err := database.GetRoom(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"room": roomResponse(room)})
}

// ValidateRoomPassword godoc
// @Summary Validate a room password
// @Description Returns valid=true for rooms without a password; a missing room is reported as invalid
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param password body ValidatePasswordInput true "Password"
// @Success 200 {object} map[string]bool "Validation result"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/rooms/{id}/validate-password [post]
func ValidateRoomPassword(c *gin.Context) {
	var input ValidatePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	valid, err := database.ValidateRoomPassword(c.Param("id"), input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": valid})
}
