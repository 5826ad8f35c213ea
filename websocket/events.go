package websocket

// Inbound and outbound event types on the relay channel.
const (
	EventJoinRoom         = "join_room"
	EventLeaveRoom        = "leave_room"
	EventTypingStart      = "typing_start"
	EventTypingStop       = "typing_stop"
	EventNewMessage       = "new_message"
	EventFileUploaded     = "file_uploaded"
	EventParticipantCount = "participant_count"
	EventTypingUsers      = "typing_users"
)

// inboundEvent is the envelope shared by all client-sent events. Payload
// fields beyond the envelope are passed through untouched for relay-only
// events.
type inboundEvent struct {
	Type     string `json:"type"`
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type participantCountEvent struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	Count  int    `json:"count"`
}

type typingUsersEvent struct {
	Type   string   `json:"type"`
	RoomID string   `json:"roomId"`
	Users  []string `json:"users"`
}
