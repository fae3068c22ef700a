package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type HTTPOptions struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// HTTPClient posts the Request contract as JSON to {BaseURL}/generate and
// expects a Result back.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewHTTPClient(opts HTTPOptions) *HTTPClient {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPClient{
		httpClient: client,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      strings.TrimSpace(opts.APIKey),
	}
}

func (c *HTTPClient) Generate(ctx context.Context, req Request) (Result, error) {
	if c == nil || c.baseURL == "" {
		return Result{}, errors.New("generate: http client not configured")
	}
	if err := req.Validate(); err != nil {
		return Failed(err.Error()), nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return Failed(fmt.Sprintf("generator: http %d", resp.StatusCode)), nil
		}
		return Result{}, fmt.Errorf("generate: decode response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		if out.Error == "" {
			out.Error = fmt.Sprintf("generator: http %d", resp.StatusCode)
		}
		return Failed(out.Error), nil
	}
	return out.Normalize(), nil
}

var _ Client = (*HTTPClient)(nil)
