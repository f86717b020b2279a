package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Session is a persisted Bluesky login so runs can refresh tokens instead of
// creating a new session every time.
type Session struct {
	Service    string    `json:"service"`
	Identifier string    `json:"identifier"`
	DID        string    `json:"did"`
	Handle     string    `json:"handle"`
	AccessJWT  string    `json:"access_jwt"`
	RefreshJWT string    `json:"refresh_jwt"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Matches reports whether s was created for the given account on service.
func (s Session) Matches(service, identifier string) bool {
	return s.RefreshJWT != "" && s.Service == service && s.Identifier == identifier
}

// LoadSession reads a session file. A missing file yields a zero Session and
// no error.
func LoadSession(path string) (Session, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return Session{}, fmt.Errorf("decode session %s: %w", path, err)
	}
	return s, nil
}

// SaveSession writes s atomically with owner-only permissions.
func SaveSession(path string, s Session) error {
	b, err := json.MarshalIndent(s, "", " ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".session-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
