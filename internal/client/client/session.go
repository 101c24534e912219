package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dmitrijs2005/gophtodo/internal/filex"
)

// Session is the persisted login: the session token and the server that
// issued it.
type Session struct {
	Server string `json:"server"`
	Token  string `json:"token"`
}

// SessionStore persists the session between runs. Load returns
// ErrNotLoggedIn when nothing is stored.
type SessionStore interface {
	Load() (Session, error)
	Save(s Session) error
	Clear() error
}

// FileSessionStore keeps the session in a JSON file readable only by the
// owner.
type FileSessionStore struct {
	path string
}

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

func (f *FileSessionStore) Load() (Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, ErrNotLoggedIn
		}
		return Session{}, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("decode session %s: %w", f.path, err)
	}
	if s.Token == "" {
		return Session{}, ErrNotLoggedIn
	}
	return s, nil
}

func (f *FileSessionStore) Save(s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return filex.WritePrivateFile(f.path, data)
}

func (f *FileSessionStore) Clear() error {
	return filex.RemoveIfExists(f.path)
}

// MemorySessionStore keeps the session in memory only.
type MemorySessionStore struct {
	mu      sync.Mutex
	session Session
}

func (m *MemorySessionStore) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Token == "" {
		return Session{}, ErrNotLoggedIn
	}
	return m.session, nil
}

func (m *MemorySessionStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	return nil
}

func (m *MemorySessionStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = Session{}
	return nil
}
