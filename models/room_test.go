package models

import (
	"testing"
	"time"
)

func TestRoomPassword(t *testing.T) {
	var room Room
	if err := room.SetPassword("secret"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}

	if room.PasswordHash == "secret" {
		t.Error("password stored in plaintext")
	}
	if !room.HasPassword() {
		t.Error("HasPassword() = false after SetPassword")
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct password", "secret", true},
		{"wrong password", "Secret", false},
		{"empty password", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := room.ValidatePassword(tt.password); got != tt.want {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestRoomWithoutPasswordAcceptsAnyInput(t *testing.T) {
	var room Room
	if err := room.SetPassword(""); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}

	if room.HasPassword() {
		t.Error("HasPassword() = true for open room")
	}
	for _, password := range []string{"", "anything"} {
		if !room.ValidatePassword(password) {
			t.Errorf("ValidatePassword(%q) = false for open room, want true", password)
		}
	}
}

func TestRoomExpired(t *testing.T) {
	now := time.Now()
	room := Room{ExpiresAt: now.Add(time.Hour)}

	if room.Expired(now) {
		t.Error("Expired() = true before expiry")
	}
	if !room.Expired(now.Add(2 * time.Hour)) {
		t.Error("Expired() = false after expiry")
	}
}

func TestFileExpired(t *testing.T) {
	now := time.Now()
	file := File{ExpiresAt: now.Add(24 * time.Hour)}

	if file.Expired(now) {
		t.Error("Expired() = true before expiry")
	}
	if !file.Expired(now.Add(25 * time.Hour)) {
		t.Error("Expired() = false after expiry")
	}
}
