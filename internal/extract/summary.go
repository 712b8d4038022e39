package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/contract-cli/internal/llm"
)

// Summary input shaping thresholds. Contracts beyond longContractChars are
// truncated to headChars and supplemented with key-term lines, then the
// combined text is hard-capped at promptCapChars before prompting.
const (
	longContractChars = 20000
	headChars         = 15000
	promptCapChars    = 18000

	maxLinesPerTerm = 3

	summaryTemperature = 0.3
	summaryMaxTokens   = 500

	summaryMinWords = 100
	summaryMaxWords = 150
)

// summaryKeyTerms are scanned beyond the truncation point so the model still
// sees lines about the contract's core mechanics.
var summaryKeyTerms = []string{
	"whereas", "recitals", "purpose", "obligations", "payment",
	"term", "termination", "liability", "indemnif",
}

const summarySystemPrompt = `You are a legal expert specializing in contract analysis.
Your task is to generate concise, accurate summaries of legal contracts.
Focus on extracting the most important information.`

// BuildSummaryInput shapes contract text for the summary prompt. Short
// contracts pass through unchanged; long ones are truncated to the head and
// supplemented with up to three matching lines per key term. Thresholds are
// in runes so truncation never cuts through a multibyte character.
func BuildSummaryInput(text string) string {
	runes := []rune(text)
	if len(runes) <= longContractChars {
		return text
	}

	var sb strings.Builder
	sb.WriteString(string(runes[:headChars]))

	for _, term := range summaryKeyTerms {
		pattern := regexp.MustCompile(`(?i)\n[^\n]*` + regexp.QuoteMeta(term) + `[^\n]*\n`)
		matches := pattern.FindAllString(text, -1)
		if len(matches) == 0 {
			continue
		}
		if len(matches) > maxLinesPerTerm {
			matches = matches[:maxLinesPerTerm]
		}
		sb.WriteString("\n\n")
		for i, m := range matches {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(strings.TrimSpace(m))
		}
	}

	return sb.String()
}

// buildSummaryPrompt embeds the shaped text, hard-capped, into the summary
// request. The word range is advisory to the model; it is not enforced.
func buildSummaryPrompt(summaryText string) string {
	if runes := []rune(summaryText); len(runes) > promptCapChars {
		summaryText = string(runes[:promptCapChars])
	}

	return fmt.Sprintf(`Please provide a summary of the following contract in %d-%d words.

The summary MUST include:
1. Purpose of the agreement (what is this contract for?)
2. Key obligations of each party (what must each party do?)
3. Notable risks or penalties (what happens if obligations aren't met?)

Contract Text:
%s

Provide ONLY the summary, nothing else.

Summary:`, summaryMinWords, summaryMaxWords, summaryText)
}

// Summarize issues the single per-contract summary call.
func Summarize(ctx context.Context, chat llm.Chat, contractText string) (string, error) {
	prompt := buildSummaryPrompt(BuildSummaryInput(contractText))

	summary, err := chat.Complete(ctx, llm.Request{
		System:      summarySystemPrompt,
		Prompt:      prompt,
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	})
	if err != nil {
		return "", eris.Wrap(err, "extract: summary call failed")
	}
	return strings.TrimSpace(summary), nil
}
