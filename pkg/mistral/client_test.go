package mistral

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompletion(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  string
		wantID   string
		wantText string
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body: `{
				"id": "cmpl-123",
				"choices": [{"index": 0, "message": {"role": "assistant", "content": "NOT_FOUND"}}],
				"usage": {"prompt_tokens": 10, "completion_tokens": 2}
			}`,
			wantID:   "cmpl-123",
			wantText: "NOT_FOUND",
		},
		{
			name:    "rate_limit",
			status:  http.StatusTooManyRequests,
			body:    `{"error": "rate limit exceeded"}`,
			wantErr: "unexpected status 429",
		},
		{
			name:    "server_error",
			status:  http.StatusInternalServerError,
			body:    `{"error": "internal server error"}`,
			wantErr: "unexpected status 500",
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `{invalid json`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/chat/completions", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient("test-key", WithBaseURL(srv.URL))
			resp, err := c.ChatCompletion(context.Background(), ChatCompletionRequest{
				Messages: []Message{{Role: "user", Content: "hi"}},
			})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, resp.ID)
			require.Len(t, resp.Choices, 1)
			assert.Equal(t, tt.wantText, resp.Choices[0].Message.Content)
		})
	}
}

func TestChatCompletion_DefaultModel(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatCompletionRequest
		require.NoError(t, decodeJSON(r, &req))
		gotModel = req.Model
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL), WithModel("mistral-medium-latest"))
	_, err := c.ChatCompletion(context.Background(), ChatCompletionRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "mistral-medium-latest", gotModel)
}

func TestEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		var req EmbeddingRequest
		require.NoError(t, decodeJSON(r, &req))
		assert.Equal(t, "mistral-embed", req.Model)
		assert.Equal(t, []string{"clause one", "clause two"}, req.Input)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"index":0,"embedding":[0.1,0.2]},
			{"index":1,"embedding":[0.3,0.4]}
		]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := c.Embed(context.Background(), EmbeddingRequest{
		Input: []string{"clause one", "clause two"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, []float64{0.3, 0.4}, resp.Data[1].Embedding)
}

func TestStatusError_Unwrappable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`overloaded`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := c.ChatCompletion(context.Background(), ChatCompletionRequest{})
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
}

func decodeJSON(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}
