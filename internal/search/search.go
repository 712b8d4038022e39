// Package search provides semantic search over extracted clauses using
// embedding vectors.
package search

import (
	"context"
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/contract-cli/internal/contract"
	"github.com/sells-group/contract-cli/pkg/mistral"
)

// embedBatchSize caps texts per embeddings request.
const embedBatchSize = 16

// Embedder produces one vector per input text.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float64, error)
}

// MistralEmbedder embeds texts through the Mistral embeddings endpoint.
type MistralEmbedder struct {
	client mistral.Client
}

// NewMistralEmbedder wraps a Mistral client as an Embedder.
func NewMistralEmbedder(client mistral.Client) *MistralEmbedder {
	return &MistralEmbedder{client: client}
}

func (m *MistralEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, 0, len(texts))

	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		resp, err := m.client.Embed(ctx, mistral.EmbeddingRequest{Input: texts[start:end]})
		if err != nil {
			return nil, eris.Wrapf(err, "search: embed batch %d", start/embedBatchSize)
		}
		if len(resp.Data) != end-start {
			return nil, eris.Errorf("search: expected %d embeddings, got %d", end-start, len(resp.Data))
		}

		batch := make([][]float64, end-start)
		for _, d := range resp.Data {
			if d.Index < 0 || d.Index >= len(batch) {
				return nil, eris.Errorf("search: embedding index %d out of range", d.Index)
			}
			batch[d.Index] = d.Embedding
		}
		vectors = append(vectors, batch...)
	}

	return vectors, nil
}

// Match is one search hit.
type Match struct {
	Entry contract.ClauseEntry `json:"entry"`
	Score float64              `json:"score"`
}

// Index holds clause entries with their normalized embedding vectors.
type Index struct {
	entries []contract.ClauseEntry
	vectors [][]float64
}

// BuildIndex embeds every clause entry. Vectors are L2-normalized so search
// scores are cosine similarities.
func BuildIndex(ctx context.Context, emb Embedder, entries []contract.ClauseEntry) (*Index, error) {
	if len(entries) == 0 {
		return &Index{}, nil
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}

	vectors, err := emb.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, err
	}
	for i := range vectors {
		normalize(vectors[i])
	}

	zap.L().Debug("clause index built", zap.Int("entries", len(entries)))
	return &Index{entries: entries, vectors: vectors}, nil
}

// Len returns the number of indexed clauses.
func (ix *Index) Len() int { return len(ix.entries) }

// Search embeds the query and returns the topK most similar clauses, best
// first.
func (ix *Index) Search(ctx context.Context, emb Embedder, query string, topK int) ([]Match, error) {
	if len(ix.entries) == 0 || topK < 1 {
		return nil, nil
	}

	qvecs, err := emb.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, eris.Wrap(err, "search: embed query")
	}
	qvec := qvecs[0]
	normalize(qvec)

	matches := make([]Match, len(ix.entries))
	for i := range ix.entries {
		matches[i] = Match{Entry: ix.entries[i], Score: dot(qvec, ix.vectors[i])}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if topK > len(matches) {
		topK = len(matches)
	}
	return matches[:topK], nil
}

func normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] *= inv
	}
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
