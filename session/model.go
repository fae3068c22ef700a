package session

import (
	"sync"
	"time"

	"thumb-studio/editor"
)

// Session is one named editor with its own state store.
type Session struct {
	ID        string
	Name      string
	CreatedAt time.Time

	store *editor.Store

	mu         sync.Mutex
	lastActive time.Time
	connected  bool
	outChan    chan editor.State
	kickChan   chan struct{}
	done       chan struct{}
}

// Info is the JSON view of a session.
type Info struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
	Connected  bool      `json:"connected"`
}

func newSession(id, name string, store *editor.Store, now time.Time) *Session {
	return &Session{
		ID:         id,
		Name:       name,
		CreatedAt:  now,
		lastActive: now,
		store:      store,
		done:       make(chan struct{}),
	}
}

func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		ID:         s.ID,
		Name:       s.Name,
		CreatedAt:  s.CreatedAt,
		LastActive: s.lastActive,
		Connected:  s.connected,
	}
}

func (s *Session) Store() *editor.Store { return s.store }

// Done is closed once the session's store stops publishing.
func (s *Session) Done() <-chan struct{} { return s.done }

// SetClient registers a channel to receive live state snapshots. If a
// previous client is connected it is kicked: its kick channel is closed so
// ws.go can close that WebSocket. The returned kick channel is closed if
// this client is itself later displaced.
func (s *Session) SetClient(ch chan editor.State) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kickChan != nil {
		close(s.kickChan)
	}
	kick := make(chan struct{})
	s.kickChan = kick
	s.outChan = ch
	s.connected = true
	return kick
}

// ClearClient is called when a connection ends. Session state only changes
// if ch is still the owner, so a displaced connection cannot clear a newer
// one. ch is always closed so the writer goroutine exits.
func (s *Session) ClearClient(ch chan editor.State) {
	s.mu.Lock()
	if s.outChan == ch {
		s.outChan = nil
		s.connected = false
		s.kickChan = nil
	}
	s.mu.Unlock()
	close(ch)
}

// pump forwards store snapshots to the current client until updates closes.
func (s *Session) pump(updates <-chan editor.State, now func() time.Time) {
	defer close(s.done)
	for st := range updates {
		s.mu.Lock()
		s.lastActive = now()
		if s.outChan != nil {
			offer(s.outChan, st)
		}
		s.mu.Unlock()
	}
}

// offer delivers st without blocking, replacing an unread older snapshot.
func offer(ch chan editor.State, st editor.State) {
	select {
	case ch <- st:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- st:
	default:
	}
}
