package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"thumb-studio/editor"
	"thumb-studio/generate"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage is used in both directions. Server → client: "state", "result",
// "error", "closed". Client → server: "prompt", "color", "theme",
// "generate", "next", "prev".
type wsMessage struct {
	Type   string           `json:"type"`
	Data   string           `json:"data,omitempty"`
	State  *editor.State    `json:"state,omitempty"`
	Result *generate.Result `json:"result,omitempty"`
}

func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	log := h.log.With().Str("session", s.Name).Logger()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade")
		return
	}
	defer conn.Close()

	// gorilla/websocket forbids concurrent writes.
	var writeMu sync.Mutex
	writeMsg := func(msg wsMessage) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(msg)
	}

	outChan := make(chan editor.State, 1)
	kick := s.SetClient(outChan)
	defer s.ClearClient(outChan)

	store := s.Store()
	snap := store.Snapshot()
	if err := writeMsg(wsMessage{Type: "state", State: &snap}); err != nil {
		log.Debug().Err(err).Msg("ws initial state")
		return
	}

	// Pump live state to the client. Exits when ClearClient closes outChan.
	go func() {
		for st := range outChan {
			if err := writeMsg(wsMessage{Type: "state", State: &st}); err != nil {
				return
			}
		}
	}()

	// Close the connection on session end or displacement so ReadJSON below
	// unblocks.
	connDone := make(chan struct{})
	go func() {
		select {
		case <-s.Done():
			writeMsg(wsMessage{Type: "closed"}) //nolint:errcheck
			conn.Close()
		case <-kick:
			conn.Close()
		case <-connDone:
		}
	}()
	defer close(connDone)

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		var opErr error
		switch msg.Type {
		case "prompt":
			opErr = store.SetPrompt(msg.Data)
		case "color":
			opErr = store.SetColor(msg.Data)
		case "theme":
			opErr = store.SetTheme(msg.Data)
		case "next":
			_, opErr = store.NextDesign()
		case "prev":
			_, opErr = store.PrevDesign()
		case "generate":
			go func() {
				res, err := store.GenerateImage(context.Background())
				if err != nil {
					writeMsg(wsMessage{Type: "error", Data: err.Error()}) //nolint:errcheck
					return
				}
				writeMsg(wsMessage{Type: "result", Result: &res}) //nolint:errcheck
			}()
		default:
			opErr = errUnknownMessage(msg.Type)
		}
		if opErr != nil {
			if err := writeMsg(wsMessage{Type: "error", Data: opErr.Error()}); err != nil {
				return
			}
		}
	}
}

type errUnknownMessage string

func (e errUnknownMessage) Error() string { return "unknown message type " + string(e) }
