package editor

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"thumb-studio/metrics"
	"thumb-studio/persist"
	"thumb-studio/preset"
)

const recordVersion = 1

// record is the persisted subset of State. Reference payloads, the prompt
// and transient UI flags are never written.
type record struct {
	Version        int           `json:"version"`
	History        []HistoryItem `json:"history"`
	Platform       string        `json:"selectedPlatform,omitempty"`
	Ratio          string        `json:"selectedRatio,omitempty"`
	SizeLabel      string        `json:"selectedSizeLabel,omitempty"`
	Width          int           `json:"width,omitempty"`
	Height         int           `json:"height,omitempty"`
	Theme          string        `json:"selectedTheme,omitempty"`
	Tokens         *Tokens       `json:"tokens,omitempty"`
	GeneratedImage string        `json:"generatedImage,omitempty"`
}

func encodeRecord(st State) ([]byte, error) {
	tokens := st.Tokens
	rec := record{
		Version:   recordVersion,
		History:   st.History,
		Platform:  st.SelectedPlatform,
		Ratio:     st.SelectedRatio,
		SizeLabel: st.SelectedSizeLabel,
		Width:     st.Width,
		Height:    st.Height,
		Theme:     st.SelectedTheme,
		Tokens:    &tokens,
	}
	if rec.History == nil {
		rec.History = []HistoryItem{}
	}
	if isRemoteURL(st.GeneratedImage) {
		rec.GeneratedImage = st.GeneratedImage
	}
	return json.Marshal(rec)
}

// decodeRecord reads each field on its own so one malformed value does not
// discard the rest. It returns the names of fields that were dropped.
func decodeRecord(data []byte) (record, []string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return record{}, nil, err
	}
	var (
		rec record
		bad []string
	)
	field := func(name string, dst any) bool {
		v, ok := raw[name]
		if !ok {
			return false
		}
		if err := json.Unmarshal(v, dst); err != nil {
			bad = append(bad, name)
			return false
		}
		return true
	}

	var (
		s string
		n int
		t Tokens
	)
	if field("version", &n) {
		rec.Version = n
	}
	var items []json.RawMessage
	if field("history", &items) {
		for _, it := range items {
			var h HistoryItem
			if err := json.Unmarshal(it, &h); err != nil {
				bad = append(bad, "history[]")
				continue
			}
			rec.History = append(rec.History, h)
		}
	}
	for name, dst := range map[string]*string{
		"selectedPlatform":  &rec.Platform,
		"selectedRatio":     &rec.Ratio,
		"selectedSizeLabel": &rec.SizeLabel,
		"selectedTheme":     &rec.Theme,
		"generatedImage":    &rec.GeneratedImage,
	} {
		s = ""
		if field(name, &s) {
			*dst = s
		}
	}
	for name, dst := range map[string]*int{"width": &rec.Width, "height": &rec.Height} {
		n = 0
		if field(name, &n) {
			*dst = n
		}
	}
	if field("tokens", &t) {
		rec.Tokens = &t
	}
	return rec, bad, nil
}

// mergeInto applies the record's fields over st, which holds defaults.
func (rec record) mergeInto(st *State, catalog *preset.Catalog, newID func() string) {
	seen := make(map[string]bool, len(rec.History))
	history := make([]HistoryItem, 0, len(rec.History))
	for _, h := range rec.History {
		if h.ID == "" || seen[h.ID] {
			h.ID = newID()
		}
		seen[h.ID] = true
		history = append(history, h)
	}
	st.History = history

	switch e, ok := catalog.Lookup(rec.SizeLabel); {
	case ok:
		st.selectEntry(e)
	case rec.SizeLabel != "" && rec.Ratio != "" && rec.Width > 0 && rec.Height > 0:
		st.selectEntry(preset.Entry{Label: rec.SizeLabel, Ratio: rec.Ratio, Width: rec.Width, Height: rec.Height})
	case rec.Platform != "" && rec.Ratio != "":
		for _, e := range catalog.AllEntries() {
			if e.Platform() == rec.Platform && e.Ratio == rec.Ratio {
				st.selectEntry(e)
				break
			}
		}
	}

	if rec.Theme != "" {
		st.SelectedTheme = rec.Theme
	}
	if rec.Tokens != nil {
		st.Tokens = *rec.Tokens
	}
	if isRemoteURL(rec.GeneratedImage) {
		st.GeneratedImage = rec.GeneratedImage
	}
}

// rehydrate loads the stored record, if any, over the default state. Called
// from New before the store is shared.
func (s *Store) rehydrate(ctx context.Context) {
	if s.backend == nil {
		return
	}
	loadCtx, cancel := context.WithTimeout(ctx, s.saveTimeout)
	defer cancel()

	log := s.log.With().Str("key", s.key).Logger()
	data, err := s.backend.Load(loadCtx, s.key)
	if errors.Is(err, persist.ErrNotFound) {
		return
	}
	if err != nil {
		metrics.PersistErrors.WithLabelValues("load").Inc()
		log.Warn().Err(err).Msg("load editor record, using defaults")
		return
	}
	rec, bad, err := decodeRecord(data)
	if err != nil {
		log.Warn().Err(err).Msg("discarding corrupt editor record")
		return
	}
	if len(bad) > 0 {
		log.Warn().Strs("fields", bad).Msg("ignoring malformed record fields")
	}
	rec.mergeInto(&s.state, s.catalog, s.newID)
	log.Debug().Int("history", len(s.state.History)).Str("tokens", s.state.Tokens.String()).Msg("editor record loaded")
}

func isRemoteURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
