// Package storage keeps one JSON document per key, the server-side stand-in
// for browser local storage. Presence of a key is meaningful: callers delete
// keys instead of writing empty documents.
package storage

import (
	"clementus360/edu-copilot/config"
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
)

// Backend stores opaque documents by key.
type Backend interface {
	// Get returns the document under key. found is false when the key is absent.
	Get(ctx context.Context, key string) (doc []byte, found bool, err error)

	// Put creates or replaces the document under key.
	Put(ctx context.Context, key string, doc []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Open builds the backend selected by settings.
func Open(settings *config.Settings) (Backend, error) {
	switch settings.StorageDriver {
	case config.StorageMemory:
		return NewMemory(), nil
	case config.StorageSQLite:
		return NewSQLite(settings.DBPath)
	case config.StorageSupabase:
		return NewSupabase(settings.SupabaseURL, settings.SupabaseKey)
	default:
		return nil, goerr.New("unsupported storage driver", goerr.V("driver", settings.StorageDriver))
	}
}

// Memory is a process-local Backend, used by tests and STORAGE_DRIVER=memory.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), doc...), true, nil
}

func (m *Memory) Put(_ context.Context, key string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = append([]byte(nil), doc...)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}

func (m *Memory) Close() error { return nil }

// Keys lists the stored keys, mostly for tests.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.docs))
	for k := range m.docs {
		keys = append(keys, k)
	}
	return keys
}
