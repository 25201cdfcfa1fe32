// Package store holds the active session and its persistence backends.
//
// The persisted record keeps account, PIN, and display name in clear text.
// That is an accepted limitation: the store is local to the client machine
// and wiped on logout, and encrypting it is explicitly out of scope.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/atmbank/atm-client/internal/core/domain"
	"github.com/atmbank/atm-client/internal/core/ports"
)

// sessionKey is the single well-known key the session record lives under.
const sessionKey = "atm:session"

// SessionStore composes the in-memory session slot with a key-value backend.
// Slot mutations are atomic from the caller's perspective; the backend write
// happens inside the same lock.
type SessionStore struct {
	kv  ports.KeyValue
	log zerolog.Logger

	mu      sync.Mutex
	current *domain.Session
}

func NewSessionStore(kv ports.KeyValue, log zerolog.Logger) *SessionStore {
	return &SessionStore{kv: kv, log: log}
}

// Current returns a copy of the active session, or nil when nobody is
// logged in.
func (s *SessionStore) Current() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	sess := *s.current
	return &sess
}

// Save sets the slot and persists the record. The slot is set even when the
// backend write fails, so the session stays usable for this process.
func (s *SessionStore) Save(ctx context.Context, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &sess

	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, sessionKey, raw)
}

// Load restores a persisted session into the slot. An absent or malformed
// record leaves the slot empty; only backend failures surface as errors.
func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(ctx, sessionKey)
	if errors.Is(err, domain.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.log.Warn().Err(err).Msg("discarding malformed session record")
		return nil, nil
	}
	if sess.Account == 0 || sess.PIN == 0 {
		s.log.Warn().Msg("discarding incomplete session record")
		return nil, nil
	}

	s.current = &sess
	out := sess
	return &out, nil
}

// Clear empties the slot and removes the persisted record.
func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	return s.kv.Delete(ctx, sessionKey)
}
