package preset

import (
	"fmt"
	"strings"
)

// Catalog is the read-only table of presets. Order of groups, and of entries
// within a group, defines next/previous traversal.
type Catalog struct {
	groups  []Group
	entries []Entry
	index   map[string]int
}

// NewCatalog validates groups and builds a catalog from a deep copy of them.
// Labels must be unique across the whole catalog.
func NewCatalog(groups []Group) (*Catalog, error) {
	c := &Catalog{
		groups: make([]Group, 0, len(groups)),
		index:  make(map[string]int),
	}
	for _, g := range groups {
		cp := Group{Category: g.Category, Icon: g.Icon, Color: g.Color, Entries: make([]Entry, 0, len(g.Entries))}
		for _, e := range g.Entries {
			e.Category = g.Category
			if strings.TrimSpace(e.Label) == "" || e.Width <= 0 || e.Height <= 0 || e.Ratio == "" {
				return nil, fmt.Errorf("%w: %q in %q", ErrInvalidEntry, e.Label, g.Category)
			}
			if _, dup := c.index[e.Label]; dup {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, e.Label)
			}
			c.index[e.Label] = len(c.entries)
			c.entries = append(c.entries, e)
			cp.Entries = append(cp.Entries, e)
		}
		c.groups = append(c.groups, cp)
	}
	return c, nil
}

// Groups returns a copy of every group in catalog order.
func (c *Catalog) Groups() []Group {
	return copyGroups(c.groups)
}

// AllEntries flattens the catalog, preserving group order then entry order.
func (c *Catalog) AllEntries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len is the number of entries across all groups.
func (c *Catalog) Len() int { return len(c.entries) }

// At returns the i-th entry of AllEntries.
func (c *Catalog) At(i int) Entry { return c.entries[i] }

// IndexOf returns the flattened index of label, or -1.
func (c *Catalog) IndexOf(label string) int {
	if i, ok := c.index[label]; ok {
		return i
	}
	return -1
}

// Lookup finds the entry with the given label.
func (c *Catalog) Lookup(label string) (Entry, bool) {
	i := c.IndexOf(label)
	if i < 0 {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Search matches query case-insensitively against entry labels and group
// categories. Only groups with at least one match are returned, each holding
// only its matching entries. A category match keeps the whole group.
func (c *Catalog) Search(query string) []Group {
	q := strings.ToLower(query)
	out := make([]Group, 0, len(c.groups))
	for _, g := range c.groups {
		categoryHit := strings.Contains(strings.ToLower(g.Category), q)
		var matched []Entry
		for _, e := range g.Entries {
			if categoryHit || strings.Contains(strings.ToLower(e.Label), q) {
				matched = append(matched, e)
			}
		}
		if len(matched) == 0 {
			continue
		}
		out = append(out, Group{Category: g.Category, Icon: g.Icon, Color: g.Color, Entries: matched})
	}
	return out
}

func copyGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		entries := make([]Entry, len(g.Entries))
		copy(entries, g.Entries)
		g.Entries = entries
		out[i] = g
	}
	return out
}
