package clipboard

import (
	"context"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Store persists clipboards across requests, keyed by session ID. A load at
// request start reflects the last completed save of the same session;
// concurrent requests racing on one session are resolved upstream.
type Store interface {
	// Load returns the session's clipboard, or an empty one when the session
	// has none yet.
	Load(ctx context.Context, sessionID string) (*Clipboard, error)
	// Save persists the clipboard for the session.
	Save(ctx context.Context, sessionID string, c *Clipboard) error
	// Drop removes the session's clipboard.
	Drop(ctx context.Context, sessionID string) error
}

// NewSessionID generates a fresh clipboard session key.
func NewSessionID() string {
	id, err := gonanoid.New()
	if err != nil {
		// gonanoid only fails when the OS random source is broken.
		panic(err)
	}
	return id
}

// MemStore is an in-memory Store for tests and single-process deployments.
type MemStore struct {
	mu   sync.Mutex
	data map[string]Clipboard
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]Clipboard)}
}

// Load implements Store.
func (s *MemStore) Load(ctx context.Context, sessionID string) (*Clipboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.data[sessionID]
	return &c, nil
}

// Save implements Store.
func (s *MemStore) Save(ctx context.Context, sessionID string, c *Clipboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = *c
	return nil
}

// Drop implements Store.
func (s *MemStore) Drop(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}
