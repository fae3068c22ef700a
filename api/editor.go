package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"thumb-studio/editor"
	"thumb-studio/generate"
	"thumb-studio/preset"
)

func (h *handler) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).Store().Snapshot())
}

type sizeRequest struct {
	Label  string `json:"label"`
	Ratio  string `json:"ratio"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// putSize selects a catalog preset by label, or sets an explicit size when
// ratio and dimensions are given.
func (h *handler) putSize(w http.ResponseWriter, r *http.Request) {
	var req sizeRequest
	if err := decodeBody(r, &req); err != nil || req.Label == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	store := sessionFrom(r).Store()

	var err error
	if req.Ratio == "" && req.Width == 0 && req.Height == 0 {
		_, err = store.SelectPreset(req.Label)
	} else {
		err = store.SetSize(req.Label, req.Ratio, req.Width, req.Height)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if _, ok := h.presetManager.Catalog().Lookup(req.Label); ok {
		if err := h.presetManager.MarkUsed(req.Label); err != nil {
			h.log.Warn().Err(err).Str("label", req.Label).Msg("mark preset used")
		}
	}
	writeJSON(w, http.StatusOK, store.Snapshot())
}

type valueRequest struct {
	Value string `json:"value"`
}

func storeSetPrompt(s *editor.Store, v string) error      { return s.SetPrompt(v) }
func storeSetColor(s *editor.Store, v string) error       { return s.SetColor(v) }
func storeSetTheme(s *editor.Store, v string) error       { return s.SetTheme(v) }
func storeSetYoutubeLink(s *editor.Store, v string) error { return s.SetYoutubeLink(v) }
func storeSetHumanCount(s *editor.Store, v string) error {
	return s.SetHumanCount(editor.HumanCount(v))
}

// setField handles PUT {"value": "..."} for a single string setting.
func (h *handler) setField(set func(*editor.Store, string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req valueRequest
		if err := decodeBody(r, &req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		store := sessionFrom(r).Store()
		if err := set(store, req.Value); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, store.Snapshot())
	}
}

// putReference sets {"image": "..."} for the reference kind in the path.
// An empty image clears it.
func (h *handler) putReference(w http.ResponseWriter, r *http.Request) {
	kind, ok := editor.ParseReferenceKind(chi.URLParam(r, "kind"))
	if !ok {
		http.Error(w, "unknown reference kind", http.StatusNotFound)
		return
	}
	var req struct {
		Image string `json:"image"`
	}
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	store := sessionFrom(r).Store()
	if err := store.SetReference(kind, req.Image); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, store.Snapshot())
}

func storeToggleFaceConsistency(s *editor.Store) (bool, error)  { return s.ToggleFaceConsistency() }
func storeToggleDrawingMode(s *editor.Store) (bool, error)      { return s.ToggleDrawingMode() }
func storeToggleSketchFullscreen(s *editor.Store) (bool, error) { return s.ToggleSketchFullscreen() }

func (h *handler) toggle(flip func(*editor.Store) (bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := flip(sessionFrom(r).Store())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"value": v})
	}
}

type generateResponse struct {
	Result generate.Result `json:"result"`
	State  editor.State    `json:"state"`
}

// generate runs a generation to completion even if the caller goes away;
// the outcome also reaches WebSocket subscribers.
func (h *handler) generate(w http.ResponseWriter, r *http.Request) {
	store := sessionFrom(r).Store()
	res, err := store.GenerateImage(context.WithoutCancel(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{Result: res, State: store.Snapshot()})
}

type browseResponse struct {
	Entry preset.Entry `json:"entry"`
	State editor.State `json:"state"`
}

func (h *handler) browse(dir int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := sessionFrom(r).Store()
		var (
			entry preset.Entry
			err   error
		)
		if dir > 0 {
			entry, err = store.NextDesign()
		} else {
			entry, err = store.PrevDesign()
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, browseResponse{Entry: entry, State: store.Snapshot()})
	}
}
