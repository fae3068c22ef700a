// Package generate defines the image generation contract and its clients.
package generate

import (
	"context"
	"errors"
	"strings"
)

// Request is what the editor sends to a generator.
type Request struct {
	Prompt         string `json:"prompt"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Style          string `json:"style,omitempty"`
	ReferenceImage string `json:"referenceImage,omitempty"` // URL or data URI
}

// Result is the generator's answer. ImageURL is set iff Success, Error iff not.
type Result struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Client is the contract implemented by every generator. A returned error is
// an unexpected fault (transport, decoding); an ordinary refusal is reported
// as a Result with Success false.
type Client interface {
	Generate(ctx context.Context, req Request) (Result, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, req Request) (Result, error)

func (f ClientFunc) Generate(ctx context.Context, req Request) (Result, error) {
	return f(ctx, req)
}

var ErrInvalidRequest = errors.New("invalid generation request")

// Validate checks the request fields the contract requires.
func (r Request) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return ErrInvalidRequest
	}
	return nil
}

// Succeeded builds a successful result.
func Succeeded(url string) Result {
	return Result{Success: true, ImageURL: url}
}

// Failed builds a failed result.
func Failed(msg string) Result {
	return Result{Success: false, Error: msg}
}

// Normalize coerces a result into one of the two valid shapes. A success
// without an image URL is treated as a failure.
func (r Result) Normalize() Result {
	if r.Success {
		if strings.TrimSpace(r.ImageURL) == "" {
			return Failed("generator returned no image")
		}
		return Result{Success: true, ImageURL: r.ImageURL}
	}
	if strings.TrimSpace(r.Error) == "" {
		return Failed("generation failed")
	}
	return Result{Success: false, Error: r.Error}
}
