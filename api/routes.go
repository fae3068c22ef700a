package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"thumb-studio/preset"
	"thumb-studio/session"
)

type Options struct {
	Logger *zerolog.Logger
	// GenerateLimit caps generate calls per client IP per GenerateWindow.
	// Zero disables the limit.
	GenerateLimit  int
	GenerateWindow time.Duration
	// TrustProxy resolves client addresses from X-Forwarded-For and friends.
	// Enable only behind a proxy that sets them.
	TrustProxy bool
}

func RegisterRoutes(manager *session.Manager, pm *preset.Manager, opts Options) http.Handler {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	if opts.GenerateWindow <= 0 {
		opts.GenerateWindow = time.Minute
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if opts.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	h := &handler{manager: manager, presetManager: pm, log: log}

	r.Get("/healthz", h.healthz)
	r.Handle("/metrics", promhttp.Handler())

	// Catalog
	r.Get("/api/options", h.getOptions)
	r.Get("/api/presets", h.getPresets)

	// Sessions
	r.Get("/api/sessions", h.listSessions)
	r.Post("/api/sessions", h.createSession)

	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Use(h.withSession)

		r.Delete("/", h.killSession)
		r.Get("/state", h.getState)
		r.Put("/size", h.putSize)
		r.Put("/prompt", h.setField(storeSetPrompt))
		r.Put("/color", h.setField(storeSetColor))
		r.Put("/theme", h.setField(storeSetTheme))
		r.Put("/human-count", h.setField(storeSetHumanCount))
		r.Put("/youtube-link", h.setField(storeSetYoutubeLink))
		r.Put("/references/{kind}", h.putReference)

		r.Post("/face-consistency/toggle", h.toggle(storeToggleFaceConsistency))
		r.Post("/drawing-mode/toggle", h.toggle(storeToggleDrawingMode))
		r.Post("/sketch-fullscreen/toggle", h.toggle(storeToggleSketchFullscreen))

		r.With(rateLimit(opts.GenerateLimit, opts.GenerateWindow)).Post("/generate", h.generate)
		r.Post("/next", h.browse(1))
		r.Post("/prev", h.browse(-1))

		r.Get("/history", h.listHistory)
		r.Post("/history", h.addHistory)
		r.Delete("/history", h.clearHistory)
		r.Post("/history/{hid}/restore", h.restoreHistory)
		r.Delete("/history/{hid}", h.deleteHistory)

		// WebSocket
		r.Get("/ws", h.handleWS)
	})

	return r
}

type handler struct {
	manager       *session.Manager
	presetManager *preset.Manager
	log           zerolog.Logger
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
