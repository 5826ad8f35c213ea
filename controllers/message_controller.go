package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driftroom/backend/database"
)

type CreateMessageInput struct {
	RoomID     string  `json:"room_id" binding:"required"`
	SenderName string  `json:"sender_name" binding:"required" example:"alice"`
	Content    string  `json:"content" binding:"required" example:"check out this file"`
	FileID     *string `json:"file_id"`
}

// CreateMessage godoc
// @Summary Post a chat message
// @Description Persists a message; clients relay the new_message event themselves over the event channel
// @Tags messages
// @Accept json
// @Produce json
// @Param message body CreateMessageInput true "Message"
// @Success 201 {object} map[string]interface{} "Message created"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/messages [post]
func CreateMessage(c *gin.Context) {
	var input CreateMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := database.CreateMessage(input.RoomID, input.SenderName, input.Content, input.FileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// GetMessagesByRoom godoc
// @Summary List a room's messages
// @Tags messages
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} map[string]interface{} "Messages, newest first"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/rooms/{id}/messages [get]
func GetMessagesByRoom(c *gin.Context) {
	messages, err := database.GetMessagesByRoom(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
