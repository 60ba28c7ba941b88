package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Defaults for the local Ollama server.
const (
	// DefaultModel is the model used when none is configured.
	DefaultModel = "mistral:7b"

	// DefaultTimeout bounds one generate call. Transcript extraction on a
	// local 7B model is slow; long videos routinely take over a minute.
	DefaultTimeout = 180 * time.Second
)

// ErrEmptyResponse is returned when the model produced no output.
var ErrEmptyResponse = errors.New("llm: model returned an empty response")

// generateRequest is the Ollama /api/generate request body. Format
// "json" constrains the model to emit a single JSON value.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format"`
}

// generateResponse is the non-streaming /api/generate response.
type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithModel overrides the default model name.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// Client talks to an Ollama server's generate endpoint in JSON mode.
type Client struct {
	http  *resty.Client
	model string
}

// NewClient creates a client for the Ollama server at baseURL
// (e.g. "http://127.0.0.1:11434").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(DefaultTimeout).
			SetHeader("Content-Type", "application/json"),
		model: DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Generate runs one JSON-mode completion and returns the raw model
// output, which the caller is expected to unmarshal.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var parsed generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(generateRequest{
			Model:  c.model,
			Prompt: prompt,
			Stream: false,
			Format: "json",
		}).
		SetResult(&parsed).
		Post("/api/generate")
	if err != nil {
		return "", fmt.Errorf("llm: generate request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("llm: server returned %s", resp.Status())
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("llm: server error: %s", parsed.Error)
	}
	if parsed.Response == "" {
		return "", ErrEmptyResponse
	}
	return parsed.Response, nil
}
