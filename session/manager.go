package session

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"thumb-studio/editor"
	"thumb-studio/generate"
	"thumb-studio/metrics"
	"thumb-studio/persist"
	"thumb-studio/preset"
)

var ErrNameTaken = errors.New("session name already in use")
var ErrNotFound = errors.New("session not found")
var ErrInvalidName = errors.New("session name is required")

const DefaultNamespace = "thumb-studio"

type Options struct {
	Catalog        *preset.Catalog
	Client         generate.Client
	Backend        persist.Backend
	Namespace      string
	StartingTokens editor.Tokens
	Logger         *zerolog.Logger
}

// Manager owns the live editor sessions. A session created under a name
// that was used before picks up that name's persisted record.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	pending  map[string]bool // names whose store is still loading
	opts     Options
	log      zerolog.Logger
	now      func() time.Time
}

func NewManager(opts Options) *Manager {
	if opts.Namespace == "" {
		opts.Namespace = DefaultNamespace
	}
	m := &Manager{sessions: make(map[string]*Session), pending: make(map[string]bool), opts: opts, now: time.Now}
	if opts.Logger != nil {
		m.log = *opts.Logger
	} else {
		m.log = zerolog.Nop()
	}
	return m
}

func (m *Manager) Create(ctx context.Context, name string) (*Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	m.mu.Lock()
	if m.nameTakenLocked(name) {
		m.mu.Unlock()
		return nil, ErrNameTaken
	}
	m.pending[name] = true
	m.mu.Unlock()

	// Rehydrating may wait on a remote backend; keep the lock free meanwhile.
	log := m.log.With().Str("session", name).Logger()
	store := editor.New(ctx, editor.Options{
		Catalog:        m.opts.Catalog,
		Client:         m.opts.Client,
		Backend:        m.opts.Backend,
		Key:            persist.Key(m.opts.Namespace, name),
		StartingTokens: m.opts.StartingTokens,
		Logger:         &log,
	})

	s := newSession(uuid.New().String(), name, store, m.now())
	updates, _ := store.Subscribe()
	go s.pump(updates, m.now)

	m.mu.Lock()
	delete(m.pending, name)
	m.sessions[s.ID] = s
	m.mu.Unlock()

	metrics.LiveSessions.Inc()
	log.Info().Str("id", s.ID).Str("key", store.Key()).Msg("session created")
	return s, nil
}

func (m *Manager) nameTakenLocked(name string) bool {
	if m.pending[name] {
		return true
	}
	for _, s := range m.sessions {
		if s.Name == name {
			return true
		}
	}
	return false
}

// List returns sessions oldest first.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].Name < list[j].Name
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Kill closes the session's store and forgets it. Its persisted record is
// kept.
func (m *Manager) Kill(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.store.Close()
	delete(m.sessions, id)
	metrics.LiveSessions.Dec()
	m.log.Info().Str("session", s.Name).Str("id", id).Msg("session killed")
	return nil
}

// Shutdown kills every session.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.store.Close()
		delete(m.sessions, id)
		metrics.LiveSessions.Dec()
	}
}
