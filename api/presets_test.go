package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"thumb-studio/preset"
)

type presetsBody struct {
	Groups       []preset.Group `json:"groups"`
	RecentlyUsed []string       `json:"recentlyUsed"`
}

func getPresets(t *testing.T, url string) presetsBody {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body presetsBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func TestGetPresetsAll(t *testing.T) {
	srv := newTestServer(t)

	want := preset.DefaultCatalog().Groups()
	body := getPresets(t, srv.URL+"/api/presets")
	if len(body.Groups) != len(want) {
		t.Fatalf("expected every group, got %d", len(body.Groups))
	}
	for i, g := range want {
		if body.Groups[i].Category != g.Category || len(body.Groups[i].Entries) != len(g.Entries) {
			t.Fatalf("group %d: expected %q with %d entries, got %q with %d",
				i, g.Category, len(g.Entries), body.Groups[i].Category, len(body.Groups[i].Entries))
		}
	}

	blank := getPresets(t, srv.URL+"/api/presets?q=%20%20")
	if len(blank.Groups) != len(want) {
		t.Fatalf("expected a blank query to return every group, got %d", len(blank.Groups))
	}
	if body.RecentlyUsed == nil || len(body.RecentlyUsed) != 0 {
		t.Fatalf("expected empty recentlyUsed, got %v", body.RecentlyUsed)
	}
}

func TestGetPresetsSearch(t *testing.T) {
	srv := newTestServer(t)

	body := getPresets(t, srv.URL+"/api/presets?q=tiktok")
	if len(body.Groups) != 1 || len(body.Groups[0].Entries) != 1 {
		t.Fatalf("expected a single TikTok match, got %+v", body.Groups)
	}
	if body.Groups[0].Entries[0].Label != "TikTok Video" {
		t.Fatalf("expected TikTok Video, got %q", body.Groups[0].Entries[0].Label)
	}

	body = getPresets(t, srv.URL+"/api/presets?q=zzzz")
	if body.Groups == nil || len(body.Groups) != 0 {
		t.Fatalf("expected empty groups array, got %v", body.Groups)
	}
}

func TestRecentlyUsedAfterSizeSelection(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv, "mru")
	base := srv.URL + "/api/sessions/" + id

	for _, label := range []string{"Kick Cover", "TikTok Video", "Kick Cover"} {
		decodeState(t, doJSON(t, http.MethodPut, base+"/size", `{"label":"`+label+`"}`))
	}

	body := getPresets(t, srv.URL+"/api/presets")
	want := []string{"Kick Cover", "TikTok Video"}
	if len(body.RecentlyUsed) != len(want) {
		t.Fatalf("expected %v, got %v", want, body.RecentlyUsed)
	}
	for i := range want {
		if body.RecentlyUsed[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, body.RecentlyUsed)
		}
	}
}

func TestGetOptions(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/options")
	if err != nil {
		t.Fatalf("GET /api/options: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Themes       []string           `json:"themes"`
		HumanCounts  []string           `json:"humanCounts"`
		DefaultTheme string             `json:"defaultTheme"`
		Costs        map[string]float64 `json:"costs"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	if len(body.Themes) != 8 || body.DefaultTheme != "Minimal" {
		t.Fatalf("unexpected themes: %+v", body)
	}
	if len(body.HumanCounts) != 3 {
		t.Fatalf("expected 3 human counts, got %v", body.HumanCounts)
	}
	if body.Costs["generate"] != 2 || body.Costs["browse"] != 1.9 {
		t.Fatalf("unexpected costs: %v", body.Costs)
	}
}
