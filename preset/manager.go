package preset

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

const maxRecentlyUsed = 10

// Manager owns the catalog and the recently-used list backed by the preset
// file. The catalog is fixed once the manager is built; only the MRU list
// changes afterwards.
type Manager struct {
	mu       sync.RWMutex
	filePath string
	catalog  *Catalog
	store    PresetStore
}

// NewManager loads the preset file at filePath. A missing file, or a file
// without groups, yields the built-in catalog. An empty filePath keeps
// everything in memory.
func NewManager(filePath string) (*Manager, error) {
	m := &Manager{filePath: filePath, store: PresetStore{RecentlyUsed: []string{}}}

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := json.Unmarshal(data, &m.store); err != nil {
				return nil, err
			}
		}
	}

	if len(m.store.Groups) > 0 {
		c, err := NewCatalog(m.store.Groups)
		if err != nil {
			return nil, err
		}
		m.catalog = c
	} else {
		m.catalog = DefaultCatalog()
	}
	if m.store.RecentlyUsed == nil {
		m.store.RecentlyUsed = []string{}
	}
	m.store.RecentlyUsed = m.knownLabels(m.store.RecentlyUsed)
	return m, nil
}

// Catalog returns the immutable catalog.
func (m *Manager) Catalog() *Catalog {
	return m.catalog
}

// RecentlyUsed returns a copy of the MRU label list.
func (m *Manager) RecentlyUsed() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.store.RecentlyUsed))
	copy(out, m.store.RecentlyUsed)
	return out
}

// MarkUsed prepends label to the recently-used list (deduplicating and
// capping at 10). A label that is not in the catalog is silently ignored.
func (m *Manager) MarkUsed(label string) error {
	if m.catalog.IndexOf(label) < 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	newList := []string{label}
	for _, l := range m.store.RecentlyUsed {
		if l == label {
			continue
		}
		newList = append(newList, l)
		if len(newList) == maxRecentlyUsed {
			break
		}
	}
	m.store.RecentlyUsed = newList
	return m.writeAtomic(m.store)
}

func (m *Manager) knownLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if seen[l] || m.catalog.IndexOf(l) < 0 {
			continue
		}
		seen[l] = true
		out = append(out, l)
		if len(out) == maxRecentlyUsed {
			break
		}
	}
	return out
}

// writeAtomic writes to a temp file then renames it over filePath.
// Caller must hold m.mu.
func (m *Manager) writeAtomic(store PresetStore) error {
	if m.filePath == "" {
		return nil
	}
	dir := filepath.Dir(m.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := m.filePath + ".tmp"
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, m.filePath)
}
