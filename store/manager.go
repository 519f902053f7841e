package store

import (
	"clementus360/edu-copilot/config"
	"clementus360/edu-copilot/storage"
	"context"
	"sync"
	"time"
)

// Manager hands out SessionStores per (surface, owner) and serialises the
// operations on each key. Every call reopens the store, so the backend stays
// the single source of truth.
type Manager struct {
	backend storage.Backend
	clock   func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewManager(backend storage.Backend) *Manager {
	return &Manager{backend: backend, locks: make(map[string]*sync.Mutex)}
}

// WithClock overrides the store clock, for tests.
func (m *Manager) WithClock(clock func() time.Time) *Manager {
	m.clock = clock
	return m
}

// StorageKey is the backend key of one owner's collection on a surface.
func StorageKey(surface config.Surface, owner string) string {
	return surface.StorageKey + ":" + owner
}

// With runs fn against the owner's store while holding the key's lock.
func (m *Manager) With(ctx context.Context, surface config.Surface, owner string, fn func(*SessionStore) error) error {
	key := StorageKey(surface, owner)

	lock := m.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	opts := OptionsFor(surface)
	opts.Clock = m.clock

	st, err := Open(ctx, m.backend, key, opts)
	if err != nil {
		return err
	}
	return fn(st)
}

func (m *Manager) lockFor(key string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[key] = lock
	}
	return lock
}
