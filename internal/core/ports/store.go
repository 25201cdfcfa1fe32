package ports

import (
	"context"

	"github.com/atmbank/atm-client/internal/core/domain"
)

// KeyValue is the persistence backend under the session store: a flat
// key-value area scoped to this client installation. Get returns
// domain.ErrNoSession when the key is absent.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SessionStore is the single source of truth for who is currently using this
// client. It holds one in-memory slot mirrored to persistent storage; it
// performs no validation and no network calls.
type SessionStore interface {
	// Current returns the active session, or nil when nobody is logged in.
	Current() *domain.Session
	// Save writes the session to the slot and to persistent storage.
	Save(ctx context.Context, s domain.Session) error
	// Load restores a previously persisted session into the slot. An absent
	// or malformed record leaves the slot empty and returns nil.
	Load(ctx context.Context) (*domain.Session, error)
	// Clear empties the slot and removes the persisted record.
	Clear(ctx context.Context) error
}
