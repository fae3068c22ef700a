package api

import (
	"net/http"
	"strings"

	"thumb-studio/editor"
	"thumb-studio/preset"
)

type presetsResponse struct {
	Groups       []preset.Group `json:"groups"`
	RecentlyUsed []string       `json:"recentlyUsed"`
}

// getPresets returns the whole catalog, or the groups matching ?q=.
func (h *handler) getPresets(w http.ResponseWriter, r *http.Request) {
	catalog := h.presetManager.Catalog()
	var groups []preset.Group
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q == "" {
		groups = catalog.Groups()
	} else {
		groups = catalog.Search(q)
	}
	if groups == nil {
		groups = []preset.Group{}
	}
	writeJSON(w, http.StatusOK, presetsResponse{
		Groups:       groups,
		RecentlyUsed: h.presetManager.RecentlyUsed(),
	})
}

type optionsResponse struct {
	Themes         []string                 `json:"themes"`
	HumanCounts    []editor.HumanCount      `json:"humanCounts"`
	ReferenceKinds []editor.ReferenceKind   `json:"referenceKinds"`
	DefaultTheme   string                   `json:"defaultTheme"`
	DefaultColor   string                   `json:"defaultColor"`
	Costs          map[string]editor.Tokens `json:"costs"`
}

func (h *handler) getOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{
		Themes:         editor.Themes,
		HumanCounts:    editor.HumanCounts,
		ReferenceKinds: []editor.ReferenceKind{editor.ReferenceFace, editor.ReferenceSketch, editor.ReferenceUploaded},
		DefaultTheme:   editor.DefaultTheme,
		DefaultColor:   editor.DefaultColor,
		Costs: map[string]editor.Tokens{
			"generate": editor.GenerationCost,
			"browse":   editor.BrowseCost,
		},
	})
}
