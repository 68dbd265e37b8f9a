package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultTTL matches the 7-day expiry of the tokens the backend issues.
const DefaultTTL = 7 * 24 * time.Hour

type credential struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store persists a single access token with an expiry. It is the
// cookie analogue: survives restarts, expires on its own TTL, and is
// read by every outgoing request.
//
// Get is safe to call from concurrent requests while Set/Remove run
// from the login/logout path.
type Store struct {
	mu   sync.RWMutex
	path string
	ttl  time.Duration
	now  func() time.Time
}

func New(path string) *Store {
	return &Store{path: path, ttl: DefaultTTL, now: time.Now}
}

// NewWithTTL overrides the default 7-day expiry.
func NewWithTTL(path string, ttl time.Duration) *Store {
	s := New(path)
	s.ttl = ttl
	return s
}

// Set persists the token with the store's TTL.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred := credential{Token: token, ExpiresAt: s.now().Add(s.ttl)}
	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Get returns the stored token, or ("", false) when none is stored or
// the stored one has expired. An expired credential is deleted on read.
func (s *Store) Get() (string, bool) {
	s.mu.RLock()
	data, err := os.ReadFile(s.path)
	s.mu.RUnlock()
	if err != nil {
		return "", false
	}

	var cred credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return "", false
	}
	if cred.Token == "" {
		return "", false
	}
	if !cred.ExpiresAt.After(s.now()) {
		_ = s.Remove()
		return "", false
	}
	return cred.Token, true
}

// Remove deletes the credential. Get returns nothing immediately after;
// there is no cached copy for in-flight requests to pick up.
func (s *Store) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
