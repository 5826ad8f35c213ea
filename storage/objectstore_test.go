package storage

import (
	"errors"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(t.TempDir(), "test-secret")
	if err != nil {
		t.Fatalf("NewDiskStore() error = %v", err)
	}
	return store
}

func TestPutGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Put([]byte("hello"), "notes.txt")
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if filepath.Ext(path) != ".txt" {
		t.Errorf("Put() path = %q, want .txt extension", path)
	}

	data, err := store.Get(path)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Get() = %q, want %q", data, "hello")
	}
}

func TestPutIgnoresDirectoryComponents(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Put([]byte("x"), "../../etc/passwd")
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if strings.Contains(path, "..") || strings.Contains(path, "/") {
		t.Errorf("Put() path %q escapes the storage dir", path)
	}
}

func TestGetMissingObject(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Get("nope"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Get() error = %v, want ErrObjectNotFound", err)
	}
}

func TestSignedURLVerifies(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Put([]byte("data"), "doc.pdf")
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	signed, err := store.SignedURL(path, time.Minute)
	if err != nil {
		t.Fatalf("SignedURL() error = %v", err)
	}

	u, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("parse signed URL: %v", err)
	}
	expires, err := strconv.ParseInt(u.Query().Get("expires"), 10, 64)
	if err != nil {
		t.Fatalf("parse expires: %v", err)
	}
	sig := u.Query().Get("sig")

	if err := store.VerifyToken(path, expires, sig); err != nil {
		t.Errorf("VerifyToken() error = %v, want nil", err)
	}

	// Tampered signature is rejected.
	if err := store.VerifyToken(path, expires, sig+"ff"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("VerifyToken() with bad sig error = %v, want ErrInvalidToken", err)
	}

	// Shifting the expiry invalidates the signature too.
	if err := store.VerifyToken(path, expires+1000, sig); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("VerifyToken() with shifted expiry error = %v, want ErrInvalidToken", err)
	}
}

func TestSignedURLExpires(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Put([]byte("data"), "doc.pdf")
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	expires := time.Now().Add(-time.Minute).Unix()
	sig := store.sign(path, expires)
	if err := store.VerifyToken(path, expires, sig); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("VerifyToken() past expiry error = %v, want ErrInvalidToken", err)
	}
}

func TestSignedURLMissingObject(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.SignedURL("nope", time.Minute); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("SignedURL() error = %v, want ErrObjectNotFound", err)
	}
}
