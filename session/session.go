// session/session.go
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store keeps the logged-in user's id between runs. The browser build kept it
// in localStorage; here the capability is an explicit interface so components
// receive it instead of reaching for ambient global state.
type Store interface {
	Get() string
	Set(userID string) error
	Clear() error
}

// FileStore persists the user id as a single line in a file.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Get returns the stored user id, or "" when nothing usable is saved. The
// literal strings "null" and "undefined" count as absent; old web sessions
// could end up storing them.
func (s *FileStore) Get() string {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return ""
	}
	stored := strings.TrimSpace(string(data))
	if stored == "" || stored == "null" || stored == "undefined" {
		return ""
	}
	return stored
}

func (s *FileStore) Set(userID string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	if err := os.WriteFile(s.Path, []byte(userID+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.Path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session file: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests and one-shot runs.
type MemStore struct {
	userID string
}

func NewMemStore(userID string) *MemStore {
	return &MemStore{userID: userID}
}

func (s *MemStore) Get() string {
	if s.userID == "null" || s.userID == "undefined" {
		return ""
	}
	return s.userID
}

func (s *MemStore) Set(userID string) error {
	s.userID = userID
	return nil
}

func (s *MemStore) Clear() error {
	s.userID = ""
	return nil
}
