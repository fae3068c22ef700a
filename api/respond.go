package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"thumb-studio/editor"
	"thumb-studio/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, editor.ErrInsufficientTokens):
		status = http.StatusPaymentRequired
	case errors.Is(err, editor.ErrGenerationInProgress):
		status = http.StatusConflict
	case errors.Is(err, editor.ErrGenerationFault):
		status = http.StatusBadGateway
	case errors.Is(err, editor.ErrHistoryNotFound), errors.Is(err, session.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, editor.ErrUnknownPreset),
		errors.Is(err, editor.ErrInvalidSize),
		errors.Is(err, editor.ErrUnknownReference),
		errors.Is(err, editor.ErrEmptyCatalog):
		status = http.StatusBadRequest
	case errors.Is(err, editor.ErrClosed):
		status = http.StatusGone
	}
	http.Error(w, err.Error(), status)
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
