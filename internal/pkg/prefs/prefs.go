// Package prefs is the local key-value preference store. It keeps the session
// token, role and email across process restarts and lets interested callers
// observe changes. Values live in a small JSON file next to the database;
// writes go through a temp file and rename so a crash never leaves a torn
// store behind.
package prefs

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Well-known preference keys
const (
	KeySessionToken = "session_token"
	KeyUserRole     = "user_role"
	KeyUserEmail    = "user_email"
)

// Session is the signed-in state persisted across restarts
type Session struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// IsSignedIn reports whether a session token is present
func (s Session) IsSignedIn() bool {
	return s.Token != ""
}

// Store is a file-backed preference store
type Store struct {
	path string

	mu       sync.RWMutex
	values   map[string]string
	watchers map[int]chan Session
	nextID   int
}

// Open loads (or creates) the preference store at path
func Open(path string) (*Store, error) {
	s := &Store{
		path:     path,
		values:   make(map[string]string),
		watchers: make(map[int]chan Session),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.values); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Get returns the value for key, or "" when unset
func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Set stores a single value and persists the store
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	err := s.flushLocked()
	sess := s.sessionLocked()
	s.mu.Unlock()

	s.notify(sess)
	return err
}

// Session returns the current persisted session
func (s *Store) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionLocked()
}

// SaveSession stores token, role and email in one write
func (s *Store) SaveSession(sess Session) error {
	s.mu.Lock()
	s.values[KeySessionToken] = sess.Token
	s.values[KeyUserRole] = sess.Role
	s.values[KeyUserEmail] = sess.Email
	err := s.flushLocked()
	s.mu.Unlock()

	s.notify(sess)
	return err
}

// Clear wipes all stored preferences
func (s *Store) Clear() error {
	s.mu.Lock()
	s.values = make(map[string]string)
	err := s.flushLocked()
	s.mu.Unlock()

	s.notify(Session{})
	return err
}

// Watch registers an observer for session changes. The returned cancel
// function must be called when the observer goes away.
func (s *Store) Watch() (<-chan Session, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Session, 8)
	s.watchers[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if w, ok := s.watchers[id]; ok {
			delete(s.watchers, id)
			close(w)
		}
	}
	return ch, cancel
}

func (s *Store) sessionLocked() Session {
	return Session{
		Token: s.values[KeySessionToken],
		Role:  s.values[KeyUserRole],
		Email: s.values[KeyUserEmail],
	}
}

func (s *Store) notify(sess Session) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.watchers {
		select {
		case ch <- sess:
		default: // slow observer, drop rather than block
		}
	}
}

// flushLocked writes the store to disk; callers hold s.mu
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
