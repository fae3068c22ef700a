package editor

import (
	"time"

	"thumb-studio/preset"
)

const (
	DefaultColor = "#ffffff"
	DefaultTheme = "Minimal"
)

// Themes are the styles offered by the editor. SetTheme accepts any string.
var Themes = []string{"Minimal", "Professional", "Comedy", "Cinematic", "Viral", "Luxury", "Gaming", "Tech"}

// HumanCount is how many people the generated image should feature.
type HumanCount string

const (
	HumanNone  HumanCount = ""
	HumanOne   HumanCount = "1 Person"
	HumanTwo   HumanCount = "2 People"
	HumanGroup HumanCount = "Group"
)

var HumanCounts = []HumanCount{HumanOne, HumanTwo, HumanGroup}

// ReferenceKind names the source of a reference image.
type ReferenceKind string

const (
	ReferenceNone     ReferenceKind = ""
	ReferenceFace     ReferenceKind = "face"
	ReferenceSketch   ReferenceKind = "sketch"
	ReferenceUploaded ReferenceKind = "uploaded"
)

// referencePriority orders kinds from strongest to weakest.
var referencePriority = []ReferenceKind{ReferenceFace, ReferenceSketch, ReferenceUploaded}

func ParseReferenceKind(s string) (ReferenceKind, bool) {
	for _, k := range referencePriority {
		if string(k) == s {
			return k, true
		}
	}
	return ReferenceNone, false
}

// References holds at most one payload (data URL or URL) per kind.
type References struct {
	Face     string `json:"face,omitempty"`
	Sketch   string `json:"sketch,omitempty"`
	Uploaded string `json:"uploaded,omitempty"`
}

func (r References) Get(kind ReferenceKind) string {
	switch kind {
	case ReferenceFace:
		return r.Face
	case ReferenceSketch:
		return r.Sketch
	case ReferenceUploaded:
		return r.Uploaded
	}
	return ""
}

func (r *References) set(kind ReferenceKind, payload string) {
	switch kind {
	case ReferenceFace:
		r.Face = payload
	case ReferenceSketch:
		r.Sketch = payload
	case ReferenceUploaded:
		r.Uploaded = payload
	}
}

// Active returns the highest-priority reference present.
func (r References) Active() (ReferenceKind, string) {
	for _, k := range referencePriority {
		if p := r.Get(k); p != "" {
			return k, p
		}
	}
	return ReferenceNone, ""
}

// HistoryItem is an immutable record of a produced image.
type HistoryItem struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	Prompt    string    `json:"prompt"`
	Platform  string    `json:"platform"`
	Ratio     string    `json:"ratio"`
	SizeLabel string    `json:"sizeLabel"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	Style     string    `json:"style"`
	Timestamp time.Time `json:"timestamp"`
}

// State is a point-in-time view of one editor.
type State struct {
	SelectedPlatform  string `json:"selectedPlatform"`
	SelectedSizeLabel string `json:"selectedSizeLabel"`
	SelectedRatio     string `json:"selectedRatio"`
	Width             int    `json:"width"`
	Height            int    `json:"height"`

	Prompt        string     `json:"prompt"`
	SelectedColor string     `json:"selectedColor"`
	SelectedTheme string     `json:"selectedTheme"`
	YoutubeLink   string     `json:"youtubeLink"`
	References    References `json:"references"`

	HumanCount      HumanCount `json:"humanCount"`
	FaceConsistency bool       `json:"faceConsistency"`

	IsDrawingMode          bool `json:"isDrawingMode"`
	IsSketchFullscreenOpen bool `json:"isSketchFullscreenOpen"`

	IsGenerating   bool   `json:"isGenerating"`
	GeneratedImage string `json:"generatedImage,omitempty"`
	LastError      string `json:"lastError,omitempty"`

	Tokens  Tokens        `json:"tokens"`
	History []HistoryItem `json:"history"`
}

func (s *State) selectEntry(e preset.Entry) {
	s.SelectedSizeLabel = e.Label
	s.SelectedRatio = e.Ratio
	s.Width = e.Width
	s.Height = e.Height
	s.SelectedPlatform = e.Platform()
}

func (s State) clone() State {
	cp := s
	cp.History = make([]HistoryItem, len(s.History))
	copy(cp.History, s.History)
	return cp
}

func defaultState(catalog *preset.Catalog, tokens Tokens) State {
	st := State{
		SelectedColor: DefaultColor,
		SelectedTheme: DefaultTheme,
		Tokens:        tokens,
		History:       []HistoryItem{},
	}
	if e, ok := catalog.Lookup(preset.DefaultLabel); ok {
		st.selectEntry(e)
	} else if catalog.Len() > 0 {
		st.selectEntry(catalog.At(0))
	} else {
		st.selectEntry(preset.Entry{Label: preset.DefaultLabel, Width: 1280, Height: 720, Ratio: "16:9"})
	}
	return st
}
