package extract

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/contract-cli/internal/contract"
	"github.com/sells-group/contract-cli/internal/llm"
)

const (
	// extractionMaxTokens is generous because contracts can contain long
	// clauses and a response may join several of them.
	extractionMaxTokens = 8192

	// extractionTemperature is zero for deterministic extraction.
	extractionTemperature = 0.0
)

// Client wraps a single clause-extraction model invocation: prompt
// construction, the retried chat call, and response parsing.
type Client struct {
	chat llm.Chat
}

// NewClient builds an extraction client over the given chat backend.
func NewClient(chat llm.Chat) *Client {
	return &Client{chat: chat}
}

// ExtractFromText asks the model for clauses of type ct in text. A hard API
// failure (retry budget exhausted) is returned as an error; an absent clause
// is the NotFound result, never an error.
func (c *Client) ExtractFromText(ctx context.Context, text string, ct contract.ClauseType, useFewShot bool) (contract.ExtractionResult, error) {
	prompt := BuildExtractionPrompt(text, ct, useFewShot)

	response, err := c.chat.Complete(ctx, llm.Request{
		System:      extractionSystemPrompt,
		Prompt:      prompt,
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
	})
	if err != nil {
		return contract.NotFound, eris.Wrapf(err, "extract: %s clause call failed", ct)
	}

	result := ParseClauseResponse(response)
	zap.L().Debug("section extraction call",
		zap.String("clause_type", string(ct)),
		zap.Int("section_chars", len(text)),
		zap.Bool("found", result.Found()),
	)
	return result, nil
}
