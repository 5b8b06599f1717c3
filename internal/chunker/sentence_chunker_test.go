package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chunkrank/internal/domain"
)

func TestNewSentenceChunker(t *testing.T) {
	t.Run("zero selects defaults", func(t *testing.T) {
		c, err := NewSentenceChunker(0, 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultChunkSize, c.chunkSize)
		assert.Equal(t, DefaultOverlap, c.overlap)
	})

	t.Run("negative chunk size rejected", func(t *testing.T) {
		_, err := NewSentenceChunker(-1, 0)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})

	t.Run("negative overlap rejected", func(t *testing.T) {
		_, err := NewSentenceChunker(100, -1)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})

	t.Run("overlap reaching chunk size rejected", func(t *testing.T) {
		_, err := NewSentenceChunker(100, 100)
		assert.ErrorIs(t, err, ErrInvalidParameter)
		_, err = NewSentenceChunker(100, 150)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})
}

func TestChunk_EmptyInput(t *testing.T) {
	c, err := NewSentenceChunker(500, 50)
	require.NoError(t, err)

	for _, content := range []string{"", "   \n\t  "} {
		chunks, err := c.Chunk(domain.Document{Source: "doc", Content: content})
		require.NoError(t, err)
		assert.Empty(t, chunks)
	}
}

func TestChunk_ThreeSentences(t *testing.T) {
	c, err := NewSentenceChunker(30, 10)
	require.NoError(t, err)

	chunks, err := c.Chunk(domain.Document{
		Source:  "doc",
		Content: "First sentence. Second sentence. Third sentence.",
	})
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, "First sentence.", chunks[0].Content)
	assert.Equal(t, "sentence. Second sentence.", chunks[1].Content)
	assert.Equal(t, "sentence. Third sentence.", chunks[2].Content)

	for i, ch := range chunks {
		assert.Equal(t, "doc", ch.Source)
		assert.Equal(t, i, ch.Index)
		assert.Equal(t, 3, ch.TotalChunks)
		assert.True(t, strings.HasSuffix(ch.Content, "."), "chunk %d must end with a period", i)
		// chunk size plus the at-most-overlap seed
		assert.LessOrEqual(t, len(ch.Content), 40, "chunk %d", i)
	}

	assert.Equal(t, "doc-chunk-0", chunks[0].ID)
	assert.Equal(t, "doc-chunk-1", chunks[1].ID)
	assert.Equal(t, "doc-chunk-2", chunks[2].ID)

	// offsets track the synthetic stream: the next chunk starts where the
	// previous one ended minus the overlap suffix it reuses
	assert.Equal(t, 0, chunks[0].StartChar)
	assert.Equal(t, 15, chunks[0].EndChar)
	assert.Equal(t, 6, chunks[1].StartChar)
	assert.Equal(t, 32, chunks[1].EndChar)
	assert.Equal(t, 23, chunks[2].StartChar)
	for _, ch := range chunks {
		assert.Equal(t, ch.StartChar+len(ch.Content), ch.EndChar)
	}
}

func TestChunk_Deterministic(t *testing.T) {
	c, err := NewSentenceChunker(40, 12)
	require.NoError(t, err)

	doc := domain.Document{
		Source:  "doc",
		Content: "Alpha beta gamma. Delta epsilon zeta! Eta theta iota? Kappa lambda mu.",
	}
	first, err := c.Chunk(doc)
	require.NoError(t, err)
	second, err := c.Chunk(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestChunk_WordSafety(t *testing.T) {
	c, err := NewSentenceChunker(35, 15)
	require.NoError(t, err)

	content := "The quick brown fox jumps over dogs. Pack my box with five dozen jugs. Sphinx of black quartz judge my vow."
	chunks, err := c.Chunk(domain.Document{Source: "doc", Content: content})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	// every word of every chunk must exist verbatim in the re-terminated
	// sentence stream: overlaps never cut a word in half
	valid := map[string]bool{}
	for _, s := range []string{
		"The quick brown fox jumps over dogs.",
		"Pack my box with five dozen jugs.",
		"Sphinx of black quartz judge my vow.",
	} {
		for _, w := range strings.Fields(s) {
			valid[w] = true
		}
	}
	for _, ch := range chunks {
		for _, w := range strings.Fields(ch.Content) {
			assert.True(t, valid[w], "fragmented word %q in chunk %s", w, ch.ID)
		}
	}
}

func TestChunk_Coverage(t *testing.T) {
	c, err := NewSentenceChunker(50, 10)
	require.NoError(t, err)

	content := "One two three. Four five six! Seven eight nine? Ten eleven twelve."
	chunks, err := c.Chunk(domain.Document{Source: "doc", Content: content})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	// every sentence appears in the chunk stream, in input order
	joined := ""
	for _, ch := range chunks {
		joined += ch.Content + " "
	}
	pos := 0
	for _, sent := range []string{"One two three.", "Four five six.", "Seven eight nine.", "Ten eleven twelve."} {
		idx := strings.Index(joined[pos:], sent)
		require.GreaterOrEqual(t, idx, 0, "sentence %q dropped or out of order", sent)
		pos += idx + 1
	}
}

func TestChunk_OversizeSentence(t *testing.T) {
	c, err := NewSentenceChunker(20, 5)
	require.NoError(t, err)

	// a single sentence longer than chunkSize is emitted whole
	chunks, err := c.Chunk(domain.Document{
		Source:  "doc",
		Content: "This single sentence is far longer than the chunk budget allows.",
	})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Greater(t, len(chunks[0].Content), 20)
	assert.True(t, strings.HasSuffix(chunks[0].Content, "."))
}

func TestChunk_TerminatorsNormalized(t *testing.T) {
	c, err := NewSentenceChunker(500, 50)
	require.NoError(t, err)

	chunks, err := c.Chunk(domain.Document{Source: "doc", Content: "Really! Sure? Yes."})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Really. Sure. Yes.", chunks[0].Content)
}

func TestChunk_MetadataAndSourceDefaults(t *testing.T) {
	c, err := NewSentenceChunker(500, 50)
	require.NoError(t, err)

	meta := map[string]string{"title": "Essay", "lang": "en"}
	chunks, err := c.Chunk(domain.Document{Content: "Hello there.", Metadata: meta})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "unknown", chunks[0].Source)
	assert.Equal(t, "unknown-chunk-0", chunks[0].ID)
	assert.Equal(t, meta, chunks[0].Metadata)
}

func TestLastWords(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{"within budget unchanged", "short text", 50, "short text"},
		{"whole-word suffix", "alpha beta gamma delta", 12, "gamma delta"},
		{"budget under a word boundary", "alpha beta gamma delta", 11, "delta"},
		{"never splits a word", "alpha beta verylongword", 8, ""},
		{"single word fits", "alpha beta gamma", 6, "gamma"},
		{"exact budget", "one two", 4, "two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lastWords(tt.text, tt.limit))
		})
	}
}
