package domain

// Document is a single piece of source text handed to the pipeline.
type Document struct {
	ID       string
	Path     string
	Content  string
	Source   string
	Metadata map[string]string
}

// Chunk is a bounded, overlapping segment of a document prepared for embedding.
// IDs are deterministic ("{source}-chunk-{index}") so repeated runs over the
// same input produce the same chunks.
type Chunk struct {
	ID          string
	Content     string
	Source      string
	Index       int
	TotalChunks int
	StartChar   int
	EndChar     int
	Metadata    map[string]string
}

// SearchResult pairs a chunk with its similarity score against a query.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// VectorStore persists vectors and supports similarity search.
// Search drops candidates scoring below minSimilarity before truncating
// to topK, so the returned set is both within budget and above threshold.
type VectorStore interface {
	Init(dimension int) error
	Upsert(chunks []Chunk, vectors [][]float64) error
	Search(vector []float64, topK int, minSimilarity float64) ([]SearchResult, error)
	Clear() error
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
