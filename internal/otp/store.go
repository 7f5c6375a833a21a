package otp

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCodeNotFound = errors.New("otp not found")

// Entry is one outstanding code. Only the bcrypt hash is kept.
type Entry struct {
	Hash      string    `json:"hash"`
	SentAt    time.Time `json:"sent_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}

// Store keeps at most one outstanding code per phone number.
type Store interface {
	Save(ctx context.Context, phone string, entry Entry) error
	Get(ctx context.Context, phone string) (Entry, error)
	Delete(ctx context.Context, phone string) error
}

type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (m *MemoryStore) Save(ctx context.Context, phone string, entry Entry) error {
	m.mu.Lock()
	m.entries[phone] = entry
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, phone string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[phone]
	if !ok {
		return Entry{}, ErrCodeNotFound
	}
	return entry, nil
}

func (m *MemoryStore) Delete(ctx context.Context, phone string) error {
	m.mu.Lock()
	delete(m.entries, phone)
	m.mu.Unlock()
	return nil
}
