// Package session caches the remote login on disk, so separate CLI and TUI
// invocations stay signed in between runs.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const sessionFile = "session.json"

// Session is the cached credential for the remote backend.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ServerURL string    `json:"serverUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Storage manages session persistence.
type Storage struct {
	dir string
}

// NewStorage creates a storage instance for the given data directory.
func NewStorage(dir string) *Storage {
	return &Storage{dir: dir}
}

func (s *Storage) filename() string {
	return filepath.Join(s.dir, sessionFile)
}

// Save persists the session to disk with an atomic write.
func (s *Storage) Save(session *Session) error {
	session.UpdatedAt = time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}

	// Ensure directory exists
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Atomic write: write to temp file then rename
	filename := s.filename()
	tmpFile := filename + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write session temp file: %w", err)
	}
	if err := os.Rename(tmpFile, filename); err != nil {
		// Clean up temp file on rename failure
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename session temp file: %w", err)
	}
	return nil
}

// Load retrieves the cached session. Returns os.ErrNotExist when no session
// has been saved.
func (s *Storage) Load() (*Session, error) {
	data, err := os.ReadFile(s.filename())
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	return &session, nil
}

// Delete removes the session file. Returns nil if the file doesn't exist
// (idempotent).
func (s *Storage) Delete() error {
	err := os.Remove(s.filename())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
