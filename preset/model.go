package preset

import (
	"errors"
	"strings"
)

// Entry is a single selectable output size.
type Entry struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Ratio    string `json:"ratio"`
}

// Group is an ordered set of entries under one category. Icon and Color are
// presentation tags and are passed through untouched.
type Group struct {
	Category string  `json:"category"`
	Icon     string  `json:"icon"`
	Color    string  `json:"color"`
	Entries  []Entry `json:"entries"`
}

// PresetStore is the full persistent state of the preset file.
type PresetStore struct {
	Groups       []Group  `json:"groups,omitempty"` // empty → built-in catalog
	RecentlyUsed []string `json:"recentlyUsed"`     // MRU order, max 10 labels
}

var (
	ErrDuplicateLabel = errors.New("duplicate preset label")
	ErrInvalidEntry   = errors.New("invalid preset entry")
)

// Platform is the first word of the entry label, e.g. "YouTube".
func (e Entry) Platform() string { return PlatformOf(e.Label) }

// PlatformOf returns the first whitespace-delimited token of label.
func PlatformOf(label string) string {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
