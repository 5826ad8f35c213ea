package websocket

import (
	"encoding/json"
	"log"
)

// handleEvent dispatches one inbound relay event. A malformed payload is
// logged and dropped; the connection stays open.
func (c *Client) handleEvent(raw []byte) {
	var evt inboundEvent
	if err := json.Unmarshal(raw, &evt); err != nil {
		log.Printf("error unmarshaling event: %v", err)
		return
	}

	switch evt.Type {
	case EventJoinRoom:
		if evt.RoomID == "" || evt.UserID == "" {
			log.Printf("join_room missing roomId or userId, dropping")
			return
		}
		c.hub.Join(c, evt.RoomID, evt.UserID, evt.UserName)

	case EventLeaveRoom:
		c.hub.Leave(evt.RoomID, evt.UserID)

	case EventTypingStart:
		c.hub.TypingStart(evt.RoomID, evt.UserID)

	case EventTypingStop:
		c.hub.TypingStop(evt.RoomID, evt.UserID)

	case EventNewMessage, EventFileUploaded:
		// Relay-only informational events: the persisted row was already
		// written through the REST layer, the raw payload is passed through
		// to everyone else in the room.
		c.hub.Broadcast(evt.RoomID, raw, c)

	default:
		log.Printf("unknown event type: %s", evt.Type)
	}
}
