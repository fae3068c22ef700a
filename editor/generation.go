package editor

import (
	"context"
	"errors"
	"fmt"

	"thumb-studio/generate"
	"thumb-studio/metrics"
	"thumb-studio/preset"
)

// pending is what a generation captured from the state when it started.
type pending struct {
	req  generate.Request
	item HistoryItem
}

// GenerateImage runs one generation against the client.
//
// It returns ErrInsufficientTokens or ErrGenerationInProgress without
// touching the state. A generator-reported failure comes back as a Result
// with Success false and a nil error; tokens, image and history stay as
// they were. A client error or panic is returned wrapped in
// ErrGenerationFault. isGenerating is cleared on every path.
//
// The history entry reflects the selection at the moment generation
// started, even if the selection changes while the request is in flight.
func (s *Store) GenerateImage(ctx context.Context) (generate.Result, error) {
	var p pending
	err := s.update(func(st *State) error {
		if st.IsGenerating {
			return ErrGenerationInProgress
		}
		if !st.Tokens.Covers(GenerationCost) {
			return ErrInsufficientTokens
		}
		st.IsGenerating = true
		st.LastError = ""
		p = s.capture(*st)
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientTokens):
			metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeInsufficient).Inc()
		case errors.Is(err, ErrGenerationInProgress):
			metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeBusy).Inc()
		}
		return generate.Result{}, err
	}

	start := s.now()
	res, callErr := s.call(ctx, p.req)
	metrics.GenerationDuration.Observe(s.now().Sub(start).Seconds())

	var spent, balance Tokens
	finishErr := s.update(func(st *State) error {
		st.IsGenerating = false
		switch {
		case callErr != nil:
			st.LastError = callErr.Error()
		case !res.Success:
			st.LastError = res.Error
		default:
			before := st.Tokens
			st.GeneratedImage = res.ImageURL
			st.Tokens = st.Tokens.Deduct(GenerationCost)
			spent = before - st.Tokens
			item := p.item
			item.ImageURL = res.ImageURL
			item.ID = s.newID()
			item.Timestamp = s.now()
			st.History = append([]HistoryItem{item}, st.History...)
		}
		balance = st.Tokens
		return nil
	})

	log := s.log.With().Str("label", p.item.SizeLabel).Logger()
	switch {
	case callErr != nil:
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeFault).Inc()
		log.Error().Err(callErr).Msg("generation fault")
		return generate.Result{}, callErr
	case !res.Success:
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
		log.Warn().Str("error", res.Error).Msg("generation failed")
		return res, nil
	}
	metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.TokensSpent.WithLabelValues("generate").Add(spent.Float())
	log.Info().Str("image", res.ImageURL).Str("tokens", balance.String()).Msg("generation succeeded")
	return res, finishErr
}

func (s *Store) capture(st State) pending {
	prompt := EffectivePrompt(st.Prompt, st.HumanCount, st.FaceConsistency)
	_, ref := st.References.Active()
	return pending{
		req: generate.Request{
			Prompt:         prompt,
			Width:          st.Width,
			Height:         st.Height,
			Style:          st.SelectedTheme,
			ReferenceImage: ref,
		},
		item: HistoryItem{
			Prompt:    prompt,
			Platform:  st.SelectedPlatform,
			Ratio:     st.SelectedRatio,
			SizeLabel: st.SelectedSizeLabel,
			Width:     st.Width,
			Height:    st.Height,
			Style:     st.SelectedTheme,
		},
	}
}

// call invokes the client outside the store lock, turning errors and panics
// into ErrGenerationFault.
func (s *Store) call(ctx context.Context, req generate.Request) (res generate.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = generate.Result{}
			err = fmt.Errorf("%w: panic: %v", ErrGenerationFault, r)
		}
	}()
	if s.client == nil {
		return generate.Result{}, fmt.Errorf("%w: no generation client", ErrGenerationFault)
	}
	res, err = s.client.Generate(ctx, req)
	if err != nil {
		return generate.Result{}, fmt.Errorf("%w: %w", ErrGenerationFault, err)
	}
	return res.Normalize(), nil
}

// NextDesign advances the selection to the next catalog entry, wrapping at
// the end, for BrowseCost tokens.
func (s *Store) NextDesign() (preset.Entry, error) { return s.step(1) }

// PrevDesign moves the selection to the previous catalog entry, wrapping at
// the start, for BrowseCost tokens.
func (s *Store) PrevDesign() (preset.Entry, error) { return s.step(-1) }

// step moves dir places through the flattened catalog. A label not in the
// catalog counts as index -1. Landing on the current entry is free. While a
// generation is in flight the balance must also cover GenerationCost.
func (s *Store) step(dir int) (preset.Entry, error) {
	var (
		entry preset.Entry
		spent Tokens
	)
	err := s.update(func(st *State) error {
		n := s.catalog.Len()
		if n == 0 {
			return ErrEmptyCatalog
		}
		// An in-flight generation has not been charged yet; keep its cost covered.
		need := BrowseCost
		if st.IsGenerating {
			need += GenerationCost
		}
		if !st.Tokens.Covers(need) {
			return ErrInsufficientTokens
		}
		cur := s.catalog.IndexOf(st.SelectedSizeLabel)
		next := ((cur+dir)%n + n) % n
		entry = s.catalog.At(next)
		if next == cur {
			return errNoChange
		}
		before := st.Tokens
		st.selectEntry(entry)
		st.Tokens = st.Tokens.Deduct(BrowseCost)
		spent = before - st.Tokens
		return nil
	})
	if errors.Is(err, errNoChange) {
		return entry, nil
	}
	if err != nil {
		return preset.Entry{}, err
	}
	metrics.TokensSpent.WithLabelValues("browse").Add(spent.Float())
	return entry, nil
}
