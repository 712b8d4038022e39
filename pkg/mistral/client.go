// Package mistral is a minimal client for the Mistral AI platform's
// OpenAI-compatible chat-completion and embeddings endpoints.
package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL = "https://api.mistral.ai/v1"
	defaultModel   = "mistral-small-latest"

	defaultEmbedModel = "mistral-embed"
)

// Client performs chat completions and embeddings against the Mistral API.
type Client interface {
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)
	Embed(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error)
}

// ChatCompletionRequest is the request body for POST /chat/completions.
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
}

// Message represents a single message in the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse is the response from POST /chat/completions.
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice is a single completion choice.
type Choice struct {
	Index   int     `json:"index"`
	Message Message `json:"message"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// EmbeddingRequest is the request body for POST /embeddings.
type EmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// EmbeddingResponse is the response from POST /embeddings.
type EmbeddingResponse struct {
	Data []EmbeddingData `json:"data"`
}

// EmbeddingData is one embedding vector in an EmbeddingResponse.
type EmbeddingData struct {
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}

// StatusError is returned for non-2xx API responses so callers can
// distinguish transient (429/5xx) from permanent failures.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("mistral: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithModel overrides the default chat model.
func WithModel(model string) Option {
	return func(c *httpClient) {
		c.model = model
	}
}

// WithEmbedModel overrides the default embedding model.
func WithEmbedModel(model string) Option {
	return func(c *httpClient) {
		c.embedModel = model
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey     string
	baseURL    string
	model      string
	embedModel string
	http       *http.Client
}

// NewClient creates a Mistral API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		embedModel: defaultEmbedModel,
		http: &http.Client{
			Timeout: 120 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if req.Model == "" {
		req.Model = c.model
	}

	var result ChatCompletionResponse
	if err := c.post(ctx, "/chat/completions", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *httpClient) Embed(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error) {
	if req.Model == "" {
		req.Model = c.embedModel
	}

	var result EmbeddingResponse
	if err := c.post(ctx, "/embeddings", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *httpClient) post(ctx context.Context, path string, req, out any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return eris.Wrap(err, "mistral: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "mistral: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return eris.Wrapf(err, "mistral: send request %s", path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "mistral: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrap(err, "mistral: unmarshal response")
	}

	return nil
}
