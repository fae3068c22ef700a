package preset_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thumb-studio/preset"
)

func TestDefaultCatalogShape(t *testing.T) {
	c := preset.DefaultCatalog()

	assert.Equal(t, 49, c.Len())
	assert.Len(t, c.Groups(), 9)

	first := c.At(0)
	assert.Equal(t, preset.DefaultLabel, first.Label)
	assert.Equal(t, "Video & Streaming", first.Category)
	assert.Equal(t, 1280, first.Width)
	assert.Equal(t, 720, first.Height)
	assert.Equal(t, "16:9", first.Ratio)
}

func TestAllEntriesPreservesOrder(t *testing.T) {
	c := preset.DefaultCatalog()
	all := c.AllEntries()

	i := 0
	for _, g := range c.Groups() {
		for _, e := range g.Entries {
			require.Less(t, i, len(all))
			assert.Equal(t, e.Label, all[i].Label)
			assert.Equal(t, i, c.IndexOf(e.Label))
			i++
		}
	}
	assert.Equal(t, len(all), i)
}

func TestAllEntriesReturnsCopy(t *testing.T) {
	c := preset.DefaultCatalog()
	all := c.AllEntries()
	all[0].Label = "mutated"
	assert.Equal(t, preset.DefaultLabel, c.At(0).Label)
}

func TestLookupMiss(t *testing.T) {
	c := preset.DefaultCatalog()
	_, ok := c.Lookup("Thumbnail")
	assert.False(t, ok)
	assert.Equal(t, -1, c.IndexOf("Thumbnail"))
}

func TestSearch(t *testing.T) {
	c := preset.DefaultCatalog()

	tests := []struct {
		name       string
		query      string
		wantGroups []string
		wantCount  int
	}{
		{name: "empty matches everything", query: "", wantGroups: nil, wantCount: 49},
		{name: "category only", query: "news & disc", wantGroups: []string{"News & Discovery"}, wantCount: 2},
		{name: "label case insensitive", query: "FIVERR", wantGroups: []string{"Professional"}, wantCount: 2},
		{name: "label across groups", query: "youtube", wantGroups: []string{"Video & Streaming", "Short-Form (9:16)"}, wantCount: 2},
		{name: "no match", query: "zzz-not-there", wantGroups: []string{}, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Search(tt.query)
			count := 0
			var names []string
			for _, g := range got {
				require.NotEmpty(t, g.Entries)
				names = append(names, g.Category)
				count += len(g.Entries)
			}
			assert.Equal(t, tt.wantCount, count)
			if tt.wantGroups != nil {
				assert.ElementsMatch(t, tt.wantGroups, names)
			}
		})
	}
}

func TestSearchCategoryReturnsWholeGroup(t *testing.T) {
	c := preset.DefaultCatalog()
	got := c.Search("community")
	require.Len(t, got, 1)
	assert.Equal(t, "Community", got[0].Category)
	assert.Len(t, got[0].Entries, 4)
	assert.Equal(t, "text-green-500", got[0].Color)
}

func TestNewCatalogValidation(t *testing.T) {
	_, err := preset.NewCatalog([]preset.Group{{Category: "X", Entries: []preset.Entry{{Label: "A", Width: 0, Height: 1, Ratio: "1:1"}}}})
	assert.True(t, errors.Is(err, preset.ErrInvalidEntry))

	_, err = preset.NewCatalog([]preset.Group{
		{Category: "X", Entries: []preset.Entry{{Label: "A", Width: 1, Height: 1, Ratio: "1:1"}}},
		{Category: "Y", Entries: []preset.Entry{{Label: "A", Width: 1, Height: 1, Ratio: "1:1"}}},
	})
	assert.True(t, errors.Is(err, preset.ErrDuplicateLabel))
}
