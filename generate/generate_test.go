package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockReturnsStockImage(t *testing.T) {
	m := &Mock{Latency: time.Millisecond, Images: []string{"https://example.com/a.png"}}

	res, err := m.Generate(context.Background(), Request{Prompt: "sunset", Width: 1280, Height: 720})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "https://example.com/a.png", res.ImageURL)
	assert.Empty(t, res.Error)
}

func TestMockHonoursCancellation(t *testing.T) {
	m := NewMock(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Generate(ctx, Request{Prompt: "x", Width: 1, Height: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockRejectsBadSize(t *testing.T) {
	res, err := NewMock(0).Generate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Failed("generator returned no image"), Result{Success: true}.Normalize())
	assert.Equal(t, Failed("generation failed"), Result{}.Normalize())
	assert.Equal(t, Succeeded("u"), Result{Success: true, ImageURL: "u", Error: "ignored"}.Normalize())
	assert.Equal(t, Failed("boom"), Result{Error: "boom", ImageURL: "dropped"}.Normalize())
}

func TestHTTPClientGenerate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req Request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "sunset", req.Prompt)
		assert.Equal(t, 1280, req.Width)
		assert.Equal(t, 720, req.Height)
		assert.Equal(t, "Minimal", req.Style)
		assert.Equal(t, "data:image/png;base64,AAA", req.ReferenceImage)

		_ = json.NewEncoder(w).Encode(Result{Success: true, ImageURL: "https://example.com/out.png"})
	}))
	defer ts.Close()

	c := NewHTTPClient(HTTPOptions{BaseURL: ts.URL + "/", APIKey: "test-key"})
	res, err := c.Generate(context.Background(), Request{
		Prompt: "sunset", Width: 1280, Height: 720, Style: "Minimal", ReferenceImage: "data:image/png;base64,AAA",
	})
	require.NoError(t, err)
	assert.Equal(t, Succeeded("https://example.com/out.png"), res)
}

func TestHTTPClientErrorStatusIsFailureResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(Result{Error: "prompt rejected"})
	}))
	defer ts.Close()

	res, err := NewHTTPClient(HTTPOptions{BaseURL: ts.URL}).Generate(context.Background(), Request{Prompt: "x", Width: 1, Height: 1})
	require.NoError(t, err)
	assert.Equal(t, Failed("prompt rejected"), res)
}

func TestHTTPClientNonJSONErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer ts.Close()

	res, err := NewHTTPClient(HTTPOptions{BaseURL: ts.URL}).Generate(context.Background(), Request{Prompt: "x", Width: 1, Height: 1})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "502")
}

func TestHTTPClientGarbageBodyIsFault(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not-json"))
	}))
	defer ts.Close()

	_, err := NewHTTPClient(HTTPOptions{BaseURL: ts.URL}).Generate(context.Background(), Request{Prompt: "x", Width: 1, Height: 1})
	assert.Error(t, err)
}

func TestHTTPClientNotConfigured(t *testing.T) {
	_, err := NewHTTPClient(HTTPOptions{}).Generate(context.Background(), Request{Prompt: "x", Width: 1, Height: 1})
	assert.Error(t, err)
}
