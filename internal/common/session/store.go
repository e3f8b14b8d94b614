// Package session persists the bearer token and cached user record between
// CLI invocations and hands the live token to the API client at call time.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// TokenSource yields the bearer token to attach to an authenticated request.
// It is consulted on every call, so a token rotated mid-session is honored
// without rebuilding the client. An empty string means "no credential".
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a plain function to a TokenSource.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

// StaticToken returns a TokenSource that always yields the given token.
func StaticToken(token string) TokenSource {
	return TokenSourceFunc(func() string { return token })
}

// payload mirrors the browser storage keys of the original web client.
type payload struct {
	Token string          `json:"token,omitempty"`
	User  json.RawMessage `json:"user,omitempty"`
}

// Store is a file-backed session store. Reads go to disk on every call so
// concurrent processes observe each other's logins.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Token implements TokenSource. A missing or unreadable session file yields
// an empty token, never an error.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.read()
	if err != nil {
		return ""
	}
	return p.Token
}

// Save persists the token and the serialized user record.
func (s *Store) Save(token string, user interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw json.RawMessage
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to serialize user record: %w", err)
		}
		raw = data
	}

	return s.write(&payload{Token: token, User: raw})
}

// User decodes the cached user record into v. Returns false when no record
// is cached.
func (s *Store) User(v interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.read()
	if err != nil {
		return false, err
	}
	if len(p.User) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(p.User, v); err != nil {
		return false, fmt.Errorf("failed to decode cached user record: %w", err)
	}
	return true, nil
}

// Clear removes the persisted session. Used on logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *Store) read() (*payload, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &payload{}, nil
		}
		return nil, err
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		// A corrupt session file behaves like a logged-out session.
		return &payload{}, nil
	}
	return &p, nil
}

func (s *Store) write(p *payload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	// Token material, keep it owner-only.
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}
