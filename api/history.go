package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"thumb-studio/editor"
)

func (h *handler) listHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).Store().History())
}

func (h *handler) addHistory(w http.ResponseWriter, r *http.Request) {
	var item editor.HistoryItem
	if err := decodeBody(r, &item); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	stored, err := sessionFrom(r).Store().AddToHistory(item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *handler) restoreHistory(w http.ResponseWriter, r *http.Request) {
	store := sessionFrom(r).Store()
	if _, err := store.RestoreFromHistoryID(chi.URLParam(r, "hid")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, store.Snapshot())
}

func (h *handler) deleteHistory(w http.ResponseWriter, r *http.Request) {
	if err := sessionFrom(r).Store().DeleteFromHistory(chi.URLParam(r, "hid")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) clearHistory(w http.ResponseWriter, r *http.Request) {
	if err := sessionFrom(r).Store().ClearHistory(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
