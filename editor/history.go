package editor

import "errors"

// History returns the history, newest first.
func (s *Store) History() []HistoryItem {
	return s.Snapshot().History
}

// AddToHistory prepends a copy of item under a fresh id. Identical items
// added twice become two distinct entries. An item whose size label is not
// in the catalog must carry its own width and height, otherwise it is
// rejected with ErrInvalidSize.
func (s *Store) AddToHistory(item HistoryItem) (HistoryItem, error) {
	if _, _, ok := s.historySize(item); !ok {
		return HistoryItem{}, ErrInvalidSize
	}
	item.ID = s.newID()
	if item.Timestamp.IsZero() {
		item.Timestamp = s.now()
	}
	err := s.update(func(st *State) error {
		st.History = append([]HistoryItem{item}, st.History...)
		return nil
	})
	return item, err
}

// DeleteFromHistory removes the entry with id. Unknown ids are ignored.
func (s *Store) DeleteFromHistory(id string) error {
	err := s.update(func(st *State) error {
		for i, h := range st.History {
			if h.ID == id {
				st.History = append(st.History[:i], st.History[i+1:]...)
				return nil
			}
		}
		return errNoChange
	})
	if errors.Is(err, errNoChange) {
		return nil
	}
	return err
}

func (s *Store) ClearHistory() error {
	return s.update(func(st *State) error {
		st.History = []HistoryItem{}
		return nil
	})
}

// RestoreFromHistory brings back the prompt, image, selection and theme of
// item. Tokens, history and references are left alone. Width and height
// come from the catalog entry for the item's label, falling back to the
// dimensions stored on the item; when neither exists nothing changes and
// ErrInvalidSize is returned.
func (s *Store) RestoreFromHistory(item HistoryItem) error {
	w, h, ok := s.historySize(item)
	if !ok {
		return ErrInvalidSize
	}
	return s.update(func(st *State) error {
		st.Prompt = item.Prompt
		st.GeneratedImage = item.ImageURL
		st.SelectedPlatform = item.Platform
		st.SelectedRatio = item.Ratio
		st.SelectedSizeLabel = item.SizeLabel
		st.SelectedTheme = item.Style
		st.Width, st.Height = w, h
		return nil
	})
}

func (s *Store) historySize(item HistoryItem) (int, int, bool) {
	if e, ok := s.catalog.Lookup(item.SizeLabel); ok {
		return e.Width, e.Height, true
	}
	if item.Width > 0 && item.Height > 0 {
		return item.Width, item.Height, true
	}
	return 0, 0, false
}

// RestoreFromHistoryID restores the history entry with id.
func (s *Store) RestoreFromHistoryID(id string) (HistoryItem, error) {
	for _, h := range s.History() {
		if h.ID == id {
			return h, s.RestoreFromHistory(h)
		}
	}
	return HistoryItem{}, ErrHistoryNotFound
}
