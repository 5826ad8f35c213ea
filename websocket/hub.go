package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// roomState holds all in-memory state scoped to one room. Every mutation
// happens under its mutex; different rooms never contend with each other.
type roomState struct {
	mu sync.Mutex

	// Active participants: participantID -> connection. At most one
	// connection per participant; a rejoin replaces the old entry.
	participants map[string]*Client

	// Pending typing expiry timers, keyed by participantID.
	typing map[string]*typingEntry

	// dead is set when the state is dropped from the hub's rooms map. A
	// join that fetched the state before the last leave released it must
	// not land here; it retries against a fresh state instead.
	dead bool
}

// Hub tracks live relay connections and fans events out per room.
type Hub struct {
	// mu guards the rooms map only, never the per-room state.
	mu    sync.RWMutex
	rooms map[string]*roomState
}

// NewHub creates a hub with no live state. Presence and typing are not
// persisted; clients resynchronize by rejoining after a restart.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]*roomState),
	}
}

func (h *Hub) room(roomID string) *roomState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[roomID]
}

func (h *Hub) roomOrCreate(roomID string) *roomState {
	h.mu.Lock()
	defer h.mu.Unlock()
	rs, ok := h.rooms[roomID]
	if !ok {
		rs = &roomState{
			participants: make(map[string]*Client),
			typing:       make(map[string]*typingEntry),
		}
		h.rooms[roomID] = rs
	}
	return rs
}

// dropRoomIfEmpty releases a room's in-memory state once its active set is
// empty. The persisted room row is untouched; only the sweep deletes rows.
func (h *Hub) dropRoomIfEmpty(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	rs, ok := h.rooms[roomID]
	if !ok {
		return
	}
	rs.mu.Lock()
	if len(rs.participants) == 0 {
		rs.dead = true
		delete(h.rooms, roomID)
	}
	rs.mu.Unlock()
}

// Join admits a connection for (roomID, participantID). An existing
// connection for the same pair is superseded: it simply drops out of the
// bookkeeping, its transport is not force-closed here. The updated
// participant count is broadcast to everyone in the room, the joiner
// included.
func (h *Hub) Join(c *Client, roomID, participantID, name string) {
	// A connection is scoped to one room at a time.
	if c.roomID != "" && (c.roomID != roomID || c.participantID != participantID) {
		h.detach(c)
	}

	c.roomID = roomID
	c.participantID = participantID
	c.displayName = name

	// The state fetched here may be released by a concurrent last leave
	// before we lock it; admit detects that and we retry against a fresh
	// state. A dead state is never in the rooms map, so this terminates.
	for {
		rs := h.roomOrCreate(roomID)
		if rs.admit(roomID, c) {
			break
		}
	}

	log.Printf("participant %s (%s) joined room %s", participantID, name, roomID)
}

// admit records the connection and broadcasts the new count. Reports false
// when the state was already dropped from the hub.
func (rs *roomState) admit(roomID string, c *Client) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.dead {
		return false
	}
	rs.participants[c.participantID] = c
	rs.broadcastCountLocked(roomID)
	return true
}

// Leave removes the participant from the room's active set. Unknown rooms
// and participants are a no-op.
func (h *Hub) Leave(roomID, participantID string) {
	rs := h.room(roomID)
	if rs == nil {
		return
	}

	rs.mu.Lock()
	_, ok := rs.participants[participantID]
	var empty bool
	if ok {
		empty = rs.removeParticipantLocked(roomID, participantID)
	}
	rs.mu.Unlock()

	if empty {
		h.dropRoomIfEmpty(roomID)
	}
}

// Disconnect handles a closing transport. Ownership of the (room,
// participant) pair is resolved by connection identity, so a socket that
// was superseded by a rejoin unwinds without touching its replacement.
func (h *Hub) Disconnect(c *Client) {
	h.detach(c)
}

func (h *Hub) detach(c *Client) {
	if c.roomID == "" {
		return
	}

	rs := h.room(c.roomID)
	if rs == nil {
		return
	}

	rs.mu.Lock()
	var empty bool
	if rs.participants[c.participantID] == c {
		empty = rs.removeParticipantLocked(c.roomID, c.participantID)
		log.Printf("participant %s disconnected from room %s", c.participantID, c.roomID)
	}
	rs.mu.Unlock()

	if empty {
		h.dropRoomIfEmpty(c.roomID)
	}
}

// removeParticipantLocked drops the participant and their typing entry,
// then broadcasts the new presence (and typing set, if it changed) to the
// remaining connections. Reports whether the room emptied out.
func (rs *roomState) removeParticipantLocked(roomID, participantID string) bool {
	delete(rs.participants, participantID)

	// A participant must never be reported as typing after leaving.
	typingChanged := false
	if e, ok := rs.typing[participantID]; ok {
		e.timer.Stop()
		delete(rs.typing, participantID)
		typingChanged = true
	}

	if len(rs.participants) == 0 {
		return true
	}

	rs.broadcastCountLocked(roomID)
	if typingChanged {
		rs.broadcastTypingLocked(roomID)
	}
	return false
}

// Count returns the number of distinct participants in the room's active
// set.
func (h *Hub) Count(roomID string) int {
	rs := h.room(roomID)
	if rs == nil {
		return 0
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.participants)
}

// Broadcast delivers payload to every connection in the room, skipping
// exclude when non-nil. Delivery per recipient is independent and
// best-effort; closed or slow transports are skipped silently.
func (h *Hub) Broadcast(roomID string, payload []byte, exclude *Client) {
	rs := h.room(roomID)
	if rs == nil {
		return
	}
	rs.mu.Lock()
	rs.broadcastLocked(payload, exclude)
	rs.mu.Unlock()
}

// broadcastLocked enqueues payload on every participant's send queue while
// the room lock is held, which preserves in-room delivery order.
func (rs *roomState) broadcastLocked(payload []byte, exclude *Client) {
	for _, client := range rs.participants {
		if client == exclude {
			continue
		}
		client.trySend(payload)
	}
}

func (rs *roomState) broadcastCountLocked(roomID string) {
	payload, err := json.Marshal(participantCountEvent{
		Type:   EventParticipantCount,
		RoomID: roomID,
		Count:  len(rs.participants),
	})
	if err != nil {
		log.Printf("error marshaling participant count: %v", err)
		return
	}
	rs.broadcastLocked(payload, nil)
}

// broadcastTypingLocked sends each recipient the current typing set with
// their own name filtered out. The exclusion is computed per recipient, the
// set itself keeps every typist.
func (rs *roomState) broadcastTypingLocked(roomID string) {
	type typist struct {
		participantID string
		name          string
	}
	typists := make([]typist, 0, len(rs.typing))
	for participantID := range rs.typing {
		if c, ok := rs.participants[participantID]; ok {
			typists = append(typists, typist{participantID, c.displayName})
		}
	}

	for _, recipient := range rs.participants {
		names := make([]string, 0, len(typists))
		for _, t := range typists {
			if t.participantID == recipient.participantID {
				continue
			}
			names = append(names, t.name)
		}

		payload, err := json.Marshal(typingUsersEvent{
			Type:   EventTypingUsers,
			RoomID: roomID,
			Users:  names,
		})
		if err != nil {
			log.Printf("error marshaling typing users: %v", err)
			return
		}
		recipient.trySend(payload)
	}
}

// Global hub instance
var hub *Hub

// InitHub initializes the global hub
func InitHub() {
	hub = NewHub()
}
