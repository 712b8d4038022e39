// Package llm abstracts the chat-completion boundary over the supported
// providers and applies the shared retry, rate-limit, and timeout policy.
package llm

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/contract-cli/internal/resilience"
	"github.com/sells-group/contract-cli/pkg/anthropic"
	"github.com/sells-group/contract-cli/pkg/mistral"
)

// Request is a single chat-style model invocation.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Chat issues one chat completion and returns the raw free-form text.
type Chat interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Options configure a Caller.
type Options struct {
	Provider string // "mistral" or "anthropic"
	Model    string

	// RequestTimeout bounds each individual API attempt. Default: 120s.
	RequestTimeout time.Duration

	// RequestsPerSecond throttles calls across the whole run. Zero disables
	// throttling.
	RequestsPerSecond float64

	Retry resilience.RetryConfig

	MistralKey     string
	MistralBaseURL string
	AnthropicKey   string
}

// Caller is the production Chat implementation: a provider backend wrapped
// in retry-with-backoff and an optional rate limiter.
type Caller struct {
	backend backend
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

type backend interface {
	complete(ctx context.Context, model string, req Request) (string, error)
}

// New builds a Caller for the configured provider. Unknown providers are a
// construction error.
func New(opts Options) (*Caller, error) {
	var b backend
	switch opts.Provider {
	case "mistral", "":
		if opts.MistralKey == "" {
			return nil, eris.New("llm: mistral provider requires an API key")
		}
		var mopts []mistral.Option
		if opts.MistralBaseURL != "" {
			mopts = append(mopts, mistral.WithBaseURL(opts.MistralBaseURL))
		}
		b = &mistralBackend{client: mistral.NewClient(opts.MistralKey, mopts...)}
	case "anthropic":
		if opts.AnthropicKey == "" {
			return nil, eris.New("llm: anthropic provider requires an API key")
		}
		b = &anthropicBackend{client: anthropic.NewClient(opts.AnthropicKey)}
	default:
		return nil, eris.Errorf("llm: unknown provider %q", opts.Provider)
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	retry := opts.Retry
	retry.ShouldRetry = isRetryable
	if retry.OnRetry == nil {
		retry.OnRetry = resilience.RetryLogger(opts.Provider, "chat_completion")
	}

	return &Caller{
		backend: b,
		model:   opts.Model,
		timeout: timeout,
		limiter: limiter,
		retry:   retry,
	}, nil
}

// Complete issues the request through the retry and rate-limit policy.
// Exhausting the retry budget surfaces the last error to the caller.
func (c *Caller) Complete(ctx context.Context, req Request) (string, error) {
	return resilience.Do(ctx, c.retry, func(ctx context.Context) (string, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return "", eris.Wrap(err, "llm: rate limit wait")
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		start := time.Now()
		text, err := c.backend.complete(callCtx, c.model, req)
		if err != nil {
			return "", err
		}

		zap.L().Debug("model call completed",
			zap.String("model", c.model),
			zap.Int("prompt_chars", len(req.Prompt)),
			zap.Int("response_chars", len(text)),
			zap.Duration("elapsed", time.Since(start)),
		)
		return text, nil
	})
}

// isRetryable extends the default transient check with provider status codes.
func isRetryable(err error) bool {
	var se *mistral.StatusError
	if errors.As(err, &se) {
		return resilience.IsTransientHTTPStatus(se.StatusCode)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return resilience.IsTransient(err)
}

type mistralBackend struct {
	client mistral.Client
}

func (b *mistralBackend) complete(ctx context.Context, model string, req Request) (string, error) {
	msgs := make([]mistral.Message, 0, 2)
	if req.System != "" {
		msgs = append(msgs, mistral.Message{Role: "system", Content: req.System})
	}
	msgs = append(msgs, mistral.Message{Role: "user", Content: req.Prompt})

	temp := req.Temperature
	maxTokens := req.MaxTokens
	resp, err := b.client.ChatCompletion(ctx, mistral.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", eris.New("llm: mistral response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

type anthropicBackend struct {
	client anthropic.Client
}

func (b *anthropicBackend) complete(ctx context.Context, model string, req Request) (string, error) {
	temp := req.Temperature
	resp, err := b.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       model,
		MaxTokens:   int64(req.MaxTokens),
		System:      req.System,
		Messages:    []anthropic.Message{{Role: "user", Content: req.Prompt}},
		Temperature: &temp,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
