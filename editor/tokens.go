package editor

import (
	"encoding/json"
	"math"
	"strconv"
)

// Tokens is a token balance in hundredths of a token. JSON carries it as a
// decimal number ("8.1").
type Tokens int64

const (
	GenerationCost Tokens = 200 // 2.0
	BrowseCost     Tokens = 190 // 1.9

	DefaultStartingTokens Tokens = 1500
)

// TokensFromFloat rounds f to the nearest hundredth. Negative values clamp to 0.
func TokensFromFloat(f float64) Tokens {
	if f <= 0 || math.IsNaN(f) {
		return 0
	}
	return Tokens(math.Round(f * 100))
}

func (t Tokens) Float() float64 { return float64(t) / 100 }

func (t Tokens) String() string {
	return strconv.FormatFloat(t.Float(), 'f', -1, 64)
}

// Covers reports whether the balance can pay cost.
func (t Tokens) Covers(cost Tokens) bool { return t >= cost }

// Deduct subtracts cost, never going below zero.
func (t Tokens) Deduct(cost Tokens) Tokens {
	if t <= cost {
		return 0
	}
	return t - cost
}

func (t Tokens) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Float())
}

func (t *Tokens) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*t = TokensFromFloat(f)
	return nil
}
