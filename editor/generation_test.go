package editor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thumb-studio/generate"
)

func TestGenerateSuccess(t *testing.T) {
	var got generate.Request
	client := generate.ClientFunc(func(_ context.Context, req generate.Request) (generate.Result, error) {
		got = req
		return generate.Succeeded("https://img.example/1.png"), nil
	})
	s := newTestStore(t, client, nil)
	setTokens(t, s, 1000)
	require.NoError(t, s.SetPrompt("sunset"))
	require.NoError(t, s.SetHumanCount(HumanOne))
	require.NoError(t, s.SetUploadedReference("data:uploaded"))
	require.NoError(t, s.SetSketchReference("data:sketch"))

	res, err := s.GenerateImage(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)

	assert.Contains(t, got.Prompt, "sunset")
	assert.Contains(t, got.Prompt, "one person")
	assert.Equal(t, 1280, got.Width)
	assert.Equal(t, 720, got.Height)
	assert.Equal(t, DefaultTheme, got.Style)
	assert.Equal(t, "data:sketch", got.ReferenceImage)

	st := s.Snapshot()
	assert.Equal(t, Tokens(800), st.Tokens)
	assert.Equal(t, "https://img.example/1.png", st.GeneratedImage)
	assert.False(t, st.IsGenerating)
	assert.Empty(t, st.LastError)
	require.Len(t, st.History, 1)
	h := st.History[0]
	assert.Equal(t, "h1", h.ID)
	assert.Equal(t, testNow, h.Timestamp)
	assert.Equal(t, "https://img.example/1.png", h.ImageURL)
	assert.Equal(t, got.Prompt, h.Prompt)
	assert.Equal(t, "YouTube", h.Platform)
	assert.Equal(t, "16:9", h.Ratio)
	assert.Equal(t, "YouTube Thumbnail", h.SizeLabel)
	assert.Equal(t, DefaultTheme, h.Style)
}

func TestGenerateNewestFirst(t *testing.T) {
	var n atomic.Int32
	client := generate.ClientFunc(func(context.Context, generate.Request) (generate.Result, error) {
		if n.Add(1) == 1 {
			return generate.Succeeded("https://img.example/first.png"), nil
		}
		return generate.Succeeded("https://img.example/second.png"), nil
	})
	s := newTestStore(t, client, nil)

	_, err := s.GenerateImage(context.Background())
	require.NoError(t, err)
	_, err = s.GenerateImage(context.Background())
	require.NoError(t, err)

	h := s.History()
	require.Len(t, h, 2)
	assert.Equal(t, "https://img.example/second.png", h[0].ImageURL)
	assert.Equal(t, "https://img.example/first.png", h[1].ImageURL)
	assert.NotEqual(t, h[0].ID, h[1].ID)
}

func TestGenerateFloorsAtZero(t *testing.T) {
	s := newTestStore(t, succeed("https://img.example/1.png"), nil)
	setTokens(t, s, 200)

	_, err := s.GenerateImage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Tokens(0), s.Snapshot().Tokens)
}

func TestGenerateRejectedBelowCost(t *testing.T) {
	var calls atomic.Int32
	client := generate.ClientFunc(func(context.Context, generate.Request) (generate.Result, error) {
		calls.Add(1)
		return generate.Succeeded("https://img.example/1.png"), nil
	})
	s := newTestStore(t, client, nil)
	setTokens(t, s, 100)
	before := s.Snapshot()

	_, err := s.GenerateImage(context.Background())
	assert.ErrorIs(t, err, ErrInsufficientTokens)
	assert.Equal(t, before, s.Snapshot())
	assert.Zero(t, calls.Load())
}

func TestGenerateFailureLeavesStateAlone(t *testing.T) {
	client := generate.ClientFunc(func(context.Context, generate.Request) (generate.Result, error) {
		return generate.Failed("content policy"), nil
	})
	s := newTestStore(t, client, nil)
	setTokens(t, s, 1000)

	res, err := s.GenerateImage(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "content policy", res.Error)

	st := s.Snapshot()
	assert.Equal(t, Tokens(1000), st.Tokens)
	assert.Empty(t, st.History)
	assert.Empty(t, st.GeneratedImage)
	assert.False(t, st.IsGenerating)
	assert.Equal(t, "content policy", st.LastError)
}

func TestGenerateFaultReleasesFlag(t *testing.T) {
	boom := errors.New("connection reset")
	tests := []struct {
		name   string
		client generate.Client
	}{
		{"error", generate.ClientFunc(func(context.Context, generate.Request) (generate.Result, error) {
			return generate.Result{}, boom
		})},
		{"panic", generate.ClientFunc(func(context.Context, generate.Request) (generate.Result, error) {
			panic("generator exploded")
		})},
		{"no client", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, tt.client, nil)
			setTokens(t, s, 1000)

			_, err := s.GenerateImage(context.Background())
			require.ErrorIs(t, err, ErrGenerationFault)

			st := s.Snapshot()
			assert.False(t, st.IsGenerating)
			assert.Equal(t, Tokens(1000), st.Tokens)
			assert.Empty(t, st.History)
			assert.NotEmpty(t, st.LastError)
		})
	}
}

func TestGenerateFaultWrapsCause(t *testing.T) {
	boom := errors.New("connection reset")
	s := newTestStore(t, generate.ClientFunc(func(context.Context, generate.Request) (generate.Result, error) {
		return generate.Result{}, boom
	}), nil)

	_, err := s.GenerateImage(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestGenerateRejectsReentry(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32
	client := generate.ClientFunc(func(context.Context, generate.Request) (generate.Result, error) {
		calls.Add(1)
		close(started)
		<-release
		return generate.Succeeded("https://img.example/1.png"), nil
	})
	s := newTestStore(t, client, nil)
	setTokens(t, s, 1000)

	done := make(chan error, 1)
	go func() {
		_, err := s.GenerateImage(context.Background())
		done <- err
	}()
	<-started
	assert.True(t, s.Snapshot().IsGenerating)

	_, err := s.GenerateImage(context.Background())
	assert.ErrorIs(t, err, ErrGenerationInProgress)

	// Other mutations still go through while the call is in flight.
	require.NoError(t, s.SetPrompt("changed mid-flight"))

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("generation did not finish")
	}

	st := s.Snapshot()
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, Tokens(800), st.Tokens)
	assert.False(t, st.IsGenerating)
	require.Len(t, st.History, 1)
	assert.NotContains(t, st.History[0].Prompt, "changed")
}

func TestGenerateHonoursCancellation(t *testing.T) {
	s := newTestStore(t, generate.NewMock(time.Hour), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GenerateImage(ctx)
	assert.ErrorIs(t, err, ErrGenerationFault)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.Snapshot().IsGenerating)
}

func TestNextDesignWrapsAround(t *testing.T) {
	s := newTestStore(t, nil, nil)
	n := s.Catalog().Len()
	setTokens(t, s, BrowseCost*Tokens(n))
	start := s.Snapshot().SelectedSizeLabel

	for i := 0; i < n; i++ {
		_, err := s.NextDesign()
		require.NoError(t, err)
	}
	st := s.Snapshot()
	assert.Equal(t, start, st.SelectedSizeLabel)
	assert.Equal(t, Tokens(0), st.Tokens)
}

func TestNextAndPrevMoveOneStep(t *testing.T) {
	s := newTestStore(t, nil, nil)
	setTokens(t, s, 1000)
	all := s.Catalog().AllEntries()

	e, err := s.NextDesign()
	require.NoError(t, err)
	assert.Equal(t, all[1], e)
	st := s.Snapshot()
	assert.Equal(t, all[1].Label, st.SelectedSizeLabel)
	assert.Equal(t, all[1].Width, st.Width)
	assert.Equal(t, "Kick", st.SelectedPlatform)
	assert.Equal(t, Tokens(810), st.Tokens)

	_, err = s.PrevDesign()
	require.NoError(t, err)
	_, err = s.PrevDesign()
	require.NoError(t, err)
	assert.Equal(t, all[len(all)-1].Label, s.Snapshot().SelectedSizeLabel)
}

func TestNextDesignFromUnknownLabel(t *testing.T) {
	s := newTestStore(t, nil, nil)
	setTokens(t, s, 1000)
	require.NoError(t, s.SetSize("Custom Banner", "3:1", 900, 300))

	e, err := s.NextDesign()
	require.NoError(t, err)
	assert.Equal(t, s.Catalog().At(0), e)
}

func TestBrowseGate(t *testing.T) {
	s := newTestStore(t, nil, nil)
	setTokens(t, s, 189)
	before := s.Snapshot()

	_, err := s.NextDesign()
	assert.ErrorIs(t, err, ErrInsufficientTokens)
	_, err = s.PrevDesign()
	assert.ErrorIs(t, err, ErrInsufficientTokens)
	assert.Equal(t, before, s.Snapshot())

	setTokens(t, s, 195)
	_, err = s.NextDesign()
	require.NoError(t, err)
	assert.Equal(t, Tokens(5), s.Snapshot().Tokens)
}

func TestBrowseDuringGenerationKeepsGenerationCovered(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	client := generate.ClientFunc(func(context.Context, generate.Request) (generate.Result, error) {
		close(started)
		<-release
		return generate.Succeeded("https://img.example/1.png"), nil
	})
	s := newTestStore(t, client, nil)
	setTokens(t, s, GenerationCost)

	done := make(chan error, 1)
	go func() {
		_, err := s.GenerateImage(context.Background())
		done <- err
	}()
	<-started

	_, err := s.NextDesign()
	assert.ErrorIs(t, err, ErrInsufficientTokens)
	assert.Equal(t, GenerationCost, s.Snapshot().Tokens)

	close(release)
	require.NoError(t, <-done)
	st := s.Snapshot()
	assert.Equal(t, Tokens(0), st.Tokens)
	assert.Len(t, st.History, 1)
}

func TestBrowseDuringGenerationWithEnoughForBoth(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	client := generate.ClientFunc(func(context.Context, generate.Request) (generate.Result, error) {
		close(started)
		<-release
		return generate.Succeeded("https://img.example/1.png"), nil
	})
	s := newTestStore(t, client, nil)
	setTokens(t, s, GenerationCost+BrowseCost)

	done := make(chan error, 1)
	go func() {
		_, err := s.GenerateImage(context.Background())
		done <- err
	}()
	<-started

	_, err := s.NextDesign()
	require.NoError(t, err)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, Tokens(0), s.Snapshot().Tokens)
}
