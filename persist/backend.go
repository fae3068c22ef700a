// Package persist stores serialized editor records under string keys.
package persist

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var ErrNotFound = errors.New("record not found")

// Backend is durable key/value storage for editor records. Load returns
// ErrNotFound when nothing has been saved under key.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Memory keeps records in process memory.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (m *Memory) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (m *Memory) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = cp
	return nil
}

// Key joins a namespace and a name into a storage key.
func Key(namespace, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return namespace
	}
	return namespace + ":" + name
}

var (
	_ Backend = (*Memory)(nil)
	_ Backend = (*File)(nil)
	_ Backend = (*Redis)(nil)
	_ Backend = (*Postgres)(nil)
)
