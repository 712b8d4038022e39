package extract

import "github.com/rotisserie/eris"

// Chunker default window geometry.
const (
	DefaultChunkSize    = 10000
	DefaultChunkOverlap = 1000
)

// Chunker splits oversized text into overlapping fixed-size windows. Used
// when section selection finds no keyword-relevant paragraphs, so every
// character of the contract is still covered by at least one window.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker validates the window geometry at construction. overlap must be
// non-negative and strictly smaller than size; violating that would make the
// window slide fail to advance.
func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, eris.Errorf("chunker: size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, eris.Errorf("chunker: overlap must be non-negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, eris.Errorf("chunker: overlap %d must be smaller than size %d", overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Chunk returns the ordered windows covering text. Text no longer than the
// window size is returned unchanged as a single chunk. Consecutive windows
// overlap by exactly the configured overlap, except the final window, which
// is clipped to the true end of the text. Windows are measured in runes so a
// boundary never splits a multibyte character.
func (c *Chunker) Chunk(text string) []string {
	runes := []rune(text)
	if len(runes) <= c.size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end >= len(runes) {
			break
		}
		start += c.size - c.overlap
	}
	return chunks
}
