package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"thumb-studio/session"
)

type ctxKey struct{}

// withSession resolves {id} and stores the session in the request context.
func (h *handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := h.manager.Get(chi.URLParam(r, "id"))
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, s)))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	return r.Context().Value(ctxKey{}).(*session.Session)
}

func (h *handler) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.manager.List()
	infos := make([]session.Info, 0, len(sessions))
	for _, s := range sessions {
		infos = append(infos, s.Info())
	}
	writeJSON(w, http.StatusOK, infos)
}

func (h *handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil || req.Name == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := h.manager.Create(r.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNameTaken):
			http.Error(w, "session name already in use", http.StatusConflict)
		case errors.Is(err, session.ErrInvalidName):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "failed to create session", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusCreated, s.Info())
}

func (h *handler) killSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.manager.Kill(id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to kill session", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
