// Package chunker splits raw text into bounded, overlapping, word-safe
// chunks suitable for embedding.
package chunker

import (
	"fmt"
	"strings"

	"chunkrank/internal/domain"
	"chunkrank/internal/textutil"
)

// Default chunking parameters, in characters.
const (
	DefaultChunkSize = 500
	DefaultOverlap   = 50
)

// ErrInvalidParameter reports chunking parameters that would produce
// degenerate output.
var ErrInvalidParameter = fmt.Errorf("invalid chunker parameter")

// SentenceChunker accumulates whole sentences into chunks of at most
// chunkSize characters, carrying a word-safe overlap suffix between
// consecutive chunks. A single sentence longer than chunkSize is emitted
// as an oversize chunk rather than split mid-word.
type SentenceChunker struct {
	chunkSize int
	overlap   int
}

// NewSentenceChunker creates a chunker with the given size and overlap
// budgets in characters. A zero chunk size selects the defaults. A negative
// size or an overlap reaching the chunk size is rejected rather than
// clamped, since either silently degrades chunk quality.
func NewSentenceChunker(chunkSize, overlap int) (*SentenceChunker, error) {
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
		if overlap == 0 {
			overlap = DefaultOverlap
		}
	}
	if chunkSize < 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive", ErrInvalidParameter, chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap %d must not be negative", ErrInvalidParameter, overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", ErrInvalidParameter, overlap, chunkSize)
	}
	return &SentenceChunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// Chunk splits the document's content into an ordered chunk sequence.
// The operation is pure: identical input always yields identical chunks,
// ids included. Empty or whitespace-only content yields no chunks and
// no error.
func (c *SentenceChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	source := document.Source
	if source == "" {
		source = "unknown"
	}

	sentences := textutil.SplitSentences(document.Content)
	if len(sentences) == 0 {
		return nil, nil
	}

	var chunks []domain.Chunk
	var current string
	chunkStart := 0

	emit := func() {
		chunks = append(chunks, domain.Chunk{
			ID:        fmt.Sprintf("%s-chunk-%d", source, len(chunks)),
			Content:   current,
			Source:    source,
			Index:     len(chunks),
			StartChar: chunkStart,
			EndChar:   chunkStart + len(current),
			Metadata:  document.Metadata,
		})
	}

	for _, s := range sentences {
		// Original terminators are not preserved; every sentence is
		// re-terminated with a period on reassembly.
		sentence := s + "."
		switch {
		case current == "":
			current = sentence
		case len(current)+1+len(sentence) > c.chunkSize:
			emit()
			tail := lastWords(current, c.overlap)
			chunkStart += len(current) - len(tail)
			if tail == "" {
				current = sentence
			} else {
				current = tail + " " + sentence
			}
		default:
			current += " " + sentence
		}
	}
	if current != "" {
		emit()
	}

	for i := range chunks {
		chunks[i].TotalChunks = len(chunks)
	}
	return chunks, nil
}

// lastWords returns the longest whole-word suffix of text whose length does
// not exceed limit characters. The word list is walked backward from the
// end, each word costing its length plus one separating space, so the
// suffix may come in under the nominal budget but never splits a word.
// Text already within the limit is returned unchanged.
func lastWords(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	words := strings.Fields(text)
	i := len(words)
	budget := 0
	for i > 0 {
		cost := len(words[i-1]) + 1
		if budget+cost > limit {
			break
		}
		budget += cost
		i--
	}
	return strings.Join(words[i:], " ")
}
