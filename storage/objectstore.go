// Package storage provides the object-store port behind file blobs. The
// lifecycle and relay cores never touch it; only the REST layer records
// the paths it returns. Expired blobs whose records were swept are left
// for an out-of-band reaper.
package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/driftroom/backend/utils"
)

// ObjectStore is the port the REST layer uploads through.
type ObjectStore interface {
	// Put writes the blob and returns the opaque storage path to record.
	Put(data []byte, filename string) (string, error)

	// Get reads a blob back by its storage path.
	Get(path string) ([]byte, error)

	// SignedURL returns a time-limited retrieval URL for the path.
	SignedURL(path string, ttl time.Duration) (string, error)
}

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidToken   = errors.New("invalid or expired download token")
)

// DiskStore keeps blobs on the local filesystem and signs download URLs
// with an HMAC token.
type DiskStore struct {
	baseDir string
	secret  []byte
}

func NewDiskStore(baseDir, urlSecret string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &DiskStore{baseDir: baseDir, secret: []byte(urlSecret)}, nil
}

// Put stores the blob under a generated name; the original filename only
// contributes its extension so path traversal is impossible.
func (s *DiskStore) Put(data []byte, filename string) (string, error) {
	path := utils.NewID() + filepath.Ext(filepath.Base(filename))
	if err := os.WriteFile(filepath.Join(s.baseDir, path), data, 0o644); err != nil {
		return "", fmt.Errorf("write object: %w", err)
	}
	return path, nil
}

func (s *DiskStore) Get(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, filepath.Base(path)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return data, nil
}

// SignedURL returns a relative download URL that expires after ttl.
func (s *DiskStore) SignedURL(path string, ttl time.Duration) (string, error) {
	if _, err := os.Stat(filepath.Join(s.baseDir, filepath.Base(path))); err != nil {
		if os.IsNotExist(err) {
			return "", ErrObjectNotFound
		}
		return "", err
	}

	expires := time.Now().Add(ttl).Unix()
	sig := s.sign(path, expires)
	return fmt.Sprintf("/api/download/%s?expires=%d&sig=%s", path, expires, sig), nil
}

// VerifyToken checks a download signature and its expiry.
func (s *DiskStore) VerifyToken(path string, expires int64, sig string) error {
	if time.Now().Unix() > expires {
		return ErrInvalidToken
	}
	expected := s.sign(path, expires)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return ErrInvalidToken
	}
	return nil
}

func (s *DiskStore) sign(path string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(strings.Join([]string{path, strconv.FormatInt(expires, 10)}, "|")))
	return hex.EncodeToString(mac.Sum(nil))
}
