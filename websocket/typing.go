package websocket

import "time"

// typingExpiry is the sliding window after which a silent typist drops out
// of the typing set on its own. A variable so tests can shorten it.
var typingExpiry = 3 * time.Second

// typingEntry is the pending expiry timer for one typing participant. A
// scheduled callback is tied to the signal that armed it by the entry's
// identity plus the generation counter; a timer that fires after an
// intervening stop, refresh or rejoin fails that check and does nothing.
type typingEntry struct {
	timer *time.Timer
	gen   uint64
}

// TypingStart moves the participant to the typing state, or slides the
// expiry window if they already are. Only the idle-to-typing transition
// changes the set, so only it triggers a broadcast. Signals for rooms or
// participants the hub does not know are a no-op.
func (h *Hub) TypingStart(roomID, participantID string) {
	rs := h.room(roomID)
	if rs == nil {
		return
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if _, ok := rs.participants[participantID]; !ok {
		return
	}

	if e, ok := rs.typing[participantID]; ok {
		e.timer.Stop()
		e.gen++
		gen := e.gen
		e.timer = time.AfterFunc(typingExpiry, func() {
			h.expireTyping(roomID, participantID, e, gen)
		})
		return
	}

	e := &typingEntry{gen: 1}
	gen := e.gen
	e.timer = time.AfterFunc(typingExpiry, func() {
		h.expireTyping(roomID, participantID, e, gen)
	})
	rs.typing[participantID] = e

	rs.broadcastTypingLocked(roomID)
}

// TypingStop cancels the pending timer and returns the participant to
// idle. Stopping a participant who is not typing is a no-op.
func (h *Hub) TypingStop(roomID, participantID string) {
	rs := h.room(roomID)
	if rs == nil {
		return
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	e, ok := rs.typing[participantID]
	if !ok {
		return
	}
	e.timer.Stop()
	delete(rs.typing, participantID)

	rs.broadcastTypingLocked(roomID)
}

// expireTyping is the timer callback. It takes the same room lock as every
// other typing mutation, then checks it still acts on the entry that armed
// it: the pointer comparison rejects a callback surviving from a previous
// entry (whose generations restart at 1), the generation rejects one from
// an earlier arming of the same entry. Either way a racing stop, leave or
// refresh wins.
func (h *Hub) expireTyping(roomID, participantID string, armed *typingEntry, gen uint64) {
	rs := h.room(roomID)
	if rs == nil {
		return
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	e, ok := rs.typing[participantID]
	if !ok || e != armed || e.gen != gen {
		return
	}
	delete(rs.typing, participantID)

	rs.broadcastTypingLocked(roomID)
}

// TypingUsers returns the display names currently typing in the room, in
// no particular order.
func (h *Hub) TypingUsers(roomID string) []string {
	rs := h.room(roomID)
	if rs == nil {
		return nil
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	names := make([]string, 0, len(rs.typing))
	for participantID := range rs.typing {
		if c, ok := rs.participants[participantID]; ok {
			names = append(names, c.displayName)
		}
	}
	return names
}
