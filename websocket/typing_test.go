package websocket

import (
	"testing"
	"time"
)

// shortTypingExpiry rebinds the sliding window for a test.
func shortTypingExpiry(t *testing.T, d time.Duration) {
	t.Helper()
	prev := typingExpiry
	typingExpiry = d
	t.Cleanup(func() { typingExpiry = prev })
}

func typingNames(t *testing.T, c *Client) []string {
	t.Helper()
	evt := recvEvent(t, c)
	if evt["type"] != EventTypingUsers {
		t.Fatalf("type = %v, want %s", evt["type"], EventTypingUsers)
	}
	raw, ok := evt["users"].([]interface{})
	if !ok {
		t.Fatalf("users missing or wrong type: %v", evt["users"])
	}
	names := make([]string, 0, len(raw))
	for _, v := range raw {
		names = append(names, v.(string))
	}
	return names
}

func TestTypingStartExcludesOwnNamePerRecipient(t *testing.T) {
	h := NewHub()

	a := newTestClient(h)
	b := newTestClient(h)
	h.Join(a, "room1", "user-a", "A")
	h.Join(b, "room1", "user-b", "B")
	drain(a)
	drain(b)

	h.TypingStart("room1", "user-a")

	if got := typingNames(t, b); len(got) != 1 || got[0] != "A" {
		t.Errorf("typing users delivered to B = %v, want [A]", got)
	}
	if got := typingNames(t, a); len(got) != 0 {
		t.Errorf("typing users delivered to A = %v, want []", got)
	}
}

func TestTypingStopReturnsToIdle(t *testing.T) {
	h := NewHub()

	a := newTestClient(h)
	b := newTestClient(h)
	h.Join(a, "room1", "user-a", "A")
	h.Join(b, "room1", "user-b", "B")
	h.TypingStart("room1", "user-a")
	drain(a)
	drain(b)

	h.TypingStop("room1", "user-a")

	if got := typingNames(t, b); len(got) != 0 {
		t.Errorf("typing users after stop = %v, want []", got)
	}
	if got := h.TypingUsers("room1"); len(got) != 0 {
		t.Errorf("TypingUsers() = %v, want empty", got)
	}
}

func TestTypingStopUnknownIsNoop(t *testing.T) {
	h := NewHub()

	h.TypingStop("no-such-room", "user-a")

	a := newTestClient(h)
	h.Join(a, "room1", "user-a", "A")
	drain(a)

	h.TypingStop("room1", "user-a")
	if len(a.send) != 0 {
		t.Errorf("stop of idle participant broadcast %d events, want 0", len(a.send))
	}
}

func TestTypingExpiresAfterSilence(t *testing.T) {
	shortTypingExpiry(t, 50*time.Millisecond)
	h := NewHub()

	a := newTestClient(h)
	b := newTestClient(h)
	h.Join(a, "room1", "user-a", "A")
	h.Join(b, "room1", "user-b", "B")
	h.TypingStart("room1", "user-a")
	drain(a)
	drain(b)

	time.Sleep(200 * time.Millisecond)

	if got := typingNames(t, b); len(got) != 0 {
		t.Errorf("typing users after expiry = %v, want []", got)
	}
}

func TestExplicitStopCancelsPendingTimer(t *testing.T) {
	shortTypingExpiry(t, 50*time.Millisecond)
	h := NewHub()

	a := newTestClient(h)
	b := newTestClient(h)
	h.Join(a, "room1", "user-a", "A")
	h.Join(b, "room1", "user-b", "B")
	drain(a)
	drain(b)

	h.TypingStart("room1", "user-a")
	h.TypingStop("room1", "user-a")
	drain(b)

	time.Sleep(200 * time.Millisecond)

	// The cancelled timer must not produce a third broadcast.
	if len(b.send) != 0 {
		t.Errorf("stale timer produced %d extra broadcasts, want 0", len(b.send))
	}
}

func TestTypingRefreshSlidesWindowWithoutRebroadcast(t *testing.T) {
	shortTypingExpiry(t, 200*time.Millisecond)
	h := NewHub()

	a := newTestClient(h)
	b := newTestClient(h)
	h.Join(a, "room1", "user-a", "A")
	h.Join(b, "room1", "user-b", "B")
	drain(a)
	drain(b)

	h.TypingStart("room1", "user-a")
	if got := typingNames(t, b); len(got) != 1 {
		t.Fatalf("typing users = %v, want [A]", got)
	}

	// Refresh inside the window: the set is unchanged, so nothing is
	// rebroadcast, but the expiry slides.
	time.Sleep(120 * time.Millisecond)
	h.TypingStart("room1", "user-a")
	if len(b.send) != 0 {
		t.Fatalf("refresh rebroadcast %d events, want 0", len(b.send))
	}

	// Past the original deadline but inside the refreshed one.
	time.Sleep(130 * time.Millisecond)
	if len(b.send) != 0 {
		t.Fatal("window did not slide: expiry fired on the original deadline")
	}

	time.Sleep(200 * time.Millisecond)
	if got := typingNames(t, b); len(got) != 0 {
		t.Errorf("typing users after refreshed expiry = %v, want []", got)
	}
}

func TestStaleTimerFromPreviousEntryIsIgnored(t *testing.T) {
	h := NewHub()

	a := newTestClient(h)
	b := newTestClient(h)
	h.Join(a, "room1", "user-a", "A")
	h.Join(b, "room1", "user-b", "B")

	// First typing spell: grab the entry its timer callback captured.
	h.TypingStart("room1", "user-a")
	rs := h.room("room1")
	rs.mu.Lock()
	old := rs.typing["user-a"]
	old.timer.Stop()
	rs.mu.Unlock()

	// A leaves mid-typing and rejoins, then starts typing again. The new
	// entry's generation restarts at 1, matching the old callback's.
	h.Leave("room1", "user-a")
	h.Join(a, "room1", "user-a", "A")
	h.TypingStart("room1", "user-a")
	drain(a)
	drain(b)

	// The old spell's callback finally runs. It must not expire the new
	// entry, generations match or not.
	h.expireTyping("room1", "user-a", old, old.gen)

	if got := h.TypingUsers("room1"); len(got) != 1 || got[0] != "A" {
		t.Errorf("TypingUsers() = %v, want [A]", got)
	}
	if len(b.send) != 0 {
		t.Errorf("stale callback broadcast %d events, want 0", len(b.send))
	}
}

func TestDisconnectRemovesTypist(t *testing.T) {
	h := NewHub()

	a := newTestClient(h)
	b := newTestClient(h)
	h.Join(a, "room1", "user-a", "A")
	h.Join(b, "room1", "user-b", "B")
	h.TypingStart("room1", "user-a")
	drain(a)
	drain(b)

	h.Disconnect(a)

	evt := recvEvent(t, b)
	if evt["type"] != EventParticipantCount || evt["count"] != float64(1) {
		t.Errorf("got %v, want participant_count 1", evt)
	}
	if got := typingNames(t, b); len(got) != 0 {
		t.Errorf("typing users after disconnect = %v, want []", got)
	}
	if got := h.TypingUsers("room1"); len(got) != 0 {
		t.Errorf("TypingUsers() = %v, want empty", got)
	}
}

func TestTypingStartUnknownParticipantIsNoop(t *testing.T) {
	h := NewHub()

	h.TypingStart("no-such-room", "user-a")

	a := newTestClient(h)
	h.Join(a, "room1", "user-a", "A")
	drain(a)

	h.TypingStart("room1", "never-joined")
	if len(a.send) != 0 {
		t.Errorf("typing_start for unknown participant broadcast %d events, want 0", len(a.send))
	}
	if got := h.TypingUsers("room1"); len(got) != 0 {
		t.Errorf("TypingUsers() = %v, want empty", got)
	}
}
