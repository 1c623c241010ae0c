// Package session persists the active login session between CLI invocations.
// The session file lives in the config directory next to config.yaml and
// carries the logged-in handle, the open swap-menu selection, and the idle
// deadline.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/swapshelf/pkg/engine"
)

const fileName = "session.json"

// Load reads the session file from configDir. Returns (nil, nil) when no
// session file exists, meaning nobody is logged in.
func Load(configDir string) (*engine.Session, error) {
	b, err := os.ReadFile(filepath.Join(configDir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var s engine.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	return &s, nil
}

// Save writes the session file with owner-only permissions.
func Save(configDir string, s *engine.Session) error {
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	path := filepath.Join(configDir, fileName)
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Clear removes the session file. Removing an absent file is not an error.
func Clear(configDir string) error {
	err := os.Remove(filepath.Join(configDir, fileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// Current loads the session and applies the idle deadline: an expired
// session is cleared on disk and reported via engine.ErrSessionExpired, a
// missing one via engine.ErrNoSession. Callers get a live session or an
// error, never a stale one.
func Current(configDir string, now time.Time) (*engine.Session, error) {
	s, err := Load(configDir)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, engine.ErrNoSession
	}
	if s.Expired(now) {
		if err := Clear(configDir); err != nil {
			return nil, err
		}
		return nil, engine.ErrSessionExpired
	}
	return s, nil
}
