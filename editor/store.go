// Package editor is the state store behind one thumbnail editor: selection,
// composition inputs, token balance, generation lifecycle and history.
package editor

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"thumb-studio/generate"
	"thumb-studio/metrics"
	"thumb-studio/persist"
	"thumb-studio/preset"
)

const defaultSaveTimeout = 5 * time.Second

type Options struct {
	Catalog *preset.Catalog // nil → preset.DefaultCatalog()
	Client  generate.Client
	// Backend and Key locate the persisted record; a nil Backend disables
	// persistence.
	Backend        persist.Backend
	Key            string
	StartingTokens Tokens // zero → DefaultStartingTokens
	Logger         *zerolog.Logger
	Now            func() time.Time
	NewID          func() string
	SaveTimeout    time.Duration
}

// Store serialises every mutation of one editor State. All methods are safe
// for concurrent use. Subscribers receive a snapshot after each change.
type Store struct {
	catalog *preset.Catalog
	client  generate.Client
	backend persist.Backend
	key     string
	log     zerolog.Logger
	now     func() time.Time
	newID   func() string

	saveTimeout time.Duration

	mu      sync.Mutex
	state   State
	version uint64
	closed  bool
	subs    map[int]chan State
	nextSub int

	saveMu    sync.Mutex
	savedVer  uint64
	savedData []byte
}

// New builds a store from defaults merged with whatever record the backend
// holds under opts.Key. Load problems are logged and never fatal.
func New(ctx context.Context, opts Options) *Store {
	s := &Store{
		catalog:     opts.Catalog,
		client:      opts.Client,
		backend:     opts.Backend,
		key:         opts.Key,
		now:         opts.Now,
		newID:       opts.NewID,
		saveTimeout: opts.SaveTimeout,
		subs:        make(map[int]chan State),
	}
	if s.catalog == nil {
		s.catalog = preset.DefaultCatalog()
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	} else {
		s.log = zerolog.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = newHistoryID
	}
	if s.saveTimeout <= 0 {
		s.saveTimeout = defaultSaveTimeout
	}
	tokens := opts.StartingTokens
	if tokens <= 0 {
		tokens = DefaultStartingTokens
	}

	s.state = defaultState(s.catalog, tokens)
	s.rehydrate(ctx)
	return s
}

func newHistoryID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

func (s *Store) Key() string { return s.key }

func (s *Store) Catalog() *preset.Catalog { return s.catalog }

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe returns a channel that always holds the latest state not yet
// read; slow readers skip intermediate snapshots. The channel starts with
// the current state. cancel closes it.
func (s *Store) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.state.clone()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Close ends all subscriptions. Later mutations return ErrClosed.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// update applies fn under the lock. When fn returns an error the state is
// left untouched; otherwise subscribers are notified and the record saved.
func (s *Store) update(fn func(st *State) error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	next := s.state.clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	s.version++
	ver := s.version
	snap := next.clone()
	s.broadcastLocked(snap)
	s.mu.Unlock()

	s.save(ver, snap)
	return nil
}

func (s *Store) broadcastLocked(st State) {
	for _, ch := range s.subs {
		select {
		case ch <- st:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- st:
			default:
			}
		}
	}
}

// save writes the persisted projection of st unless a newer version has
// already been written or the projection is unchanged.
func (s *Store) save(ver uint64, st State) {
	if s.backend == nil {
		return
	}
	data, err := encodeRecord(st)
	if err != nil {
		s.log.Error().Err(err).Msg("encode editor record")
		return
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if ver <= s.savedVer {
		return
	}
	if bytes.Equal(data, s.savedData) {
		s.savedVer = ver
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()
	if err := s.backend.Save(ctx, s.key, data); err != nil {
		metrics.PersistErrors.WithLabelValues("save").Inc()
		s.log.Error().Err(err).Str("key", s.key).Msg("save editor record")
		return
	}
	s.savedVer = ver
	s.savedData = data
}

// SetSize replaces label, ratio and dimensions together and derives the
// platform from the label's first word.
func (s *Store) SetSize(label, ratio string, width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	return s.update(func(st *State) error {
		st.selectEntry(preset.Entry{Label: label, Ratio: ratio, Width: width, Height: height})
		return nil
	})
}

// SelectPreset selects a catalog entry by label.
func (s *Store) SelectPreset(label string) (preset.Entry, error) {
	e, ok := s.catalog.Lookup(label)
	if !ok {
		return preset.Entry{}, ErrUnknownPreset
	}
	return e, s.update(func(st *State) error {
		st.selectEntry(e)
		return nil
	})
}

func (s *Store) SetPrompt(prompt string) error {
	return s.update(func(st *State) error {
		st.Prompt = prompt
		return nil
	})
}

func (s *Store) SetColor(color string) error {
	return s.update(func(st *State) error {
		st.SelectedColor = color
		return nil
	})
}

func (s *Store) SetTheme(theme string) error {
	return s.update(func(st *State) error {
		st.SelectedTheme = theme
		return nil
	})
}

func (s *Store) SetHumanCount(h HumanCount) error {
	return s.update(func(st *State) error {
		st.HumanCount = h
		return nil
	})
}

func (s *Store) SetYoutubeLink(link string) error {
	return s.update(func(st *State) error {
		st.YoutubeLink = link
		return nil
	})
}

// SetReference stores payload for kind; an empty payload clears it.
func (s *Store) SetReference(kind ReferenceKind, payload string) error {
	if _, ok := ParseReferenceKind(string(kind)); !ok {
		return ErrUnknownReference
	}
	return s.update(func(st *State) error {
		st.References.set(kind, payload)
		return nil
	})
}

func (s *Store) SetFaceReference(payload string) error {
	return s.SetReference(ReferenceFace, payload)
}

func (s *Store) SetSketchReference(payload string) error {
	return s.SetReference(ReferenceSketch, payload)
}

func (s *Store) SetUploadedReference(payload string) error {
	return s.SetReference(ReferenceUploaded, payload)
}

func (s *Store) ToggleFaceConsistency() (bool, error) {
	return s.toggle(func(st *State) *bool { return &st.FaceConsistency })
}

func (s *Store) ToggleDrawingMode() (bool, error) {
	return s.toggle(func(st *State) *bool { return &st.IsDrawingMode })
}

func (s *Store) ToggleSketchFullscreen() (bool, error) {
	return s.toggle(func(st *State) *bool { return &st.IsSketchFullscreenOpen })
}

func (s *Store) toggle(field func(st *State) *bool) (bool, error) {
	var v bool
	err := s.update(func(st *State) error {
		f := field(st)
		*f = !*f
		v = *f
		return nil
	})
	return v, err
}
