package chromem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chunkrank/internal/domain"
)

func TestStorage_RoundTrip(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(3))

	chunks := []domain.Chunk{
		{ID: "a-chunk-0", Content: "alpha", Source: "a", Index: 0, TotalChunks: 1, Metadata: map[string]string{"lang": "en"}},
		{ID: "b-chunk-0", Content: "beta", Source: "b", Index: 0, TotalChunks: 1},
	}
	vectors := [][]float64{{1, 0, 0}, {0, 1, 0}}
	require.NoError(t, s.Upsert(chunks, vectors))

	results, err := s.Search([]float64{1, 0, 0}, 5, 0.5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a-chunk-0", results[0].Chunk.ID)
	assert.Equal(t, "alpha", results[0].Chunk.Content)
	assert.Equal(t, "a", results[0].Chunk.Source)
	assert.Equal(t, 1, results[0].Chunk.TotalChunks)
	assert.Equal(t, map[string]string{"lang": "en"}, results[0].Chunk.Metadata)
	assert.InDelta(t, 1.0, results[0].Score, 1e-5)
}

func TestStorage_RequiresInit(t *testing.T) {
	s := NewStorage()
	assert.Error(t, s.Upsert(nil, nil))
	_, err := s.Search([]float64{1}, 3, 0)
	assert.Error(t, err)
}

func TestStorage_InitValidation(t *testing.T) {
	s := NewStorage()
	assert.Error(t, s.Init(0))
}

func TestStorage_UpsertDimensionMismatch(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(3))
	err := s.Upsert([]domain.Chunk{{ID: "a"}}, [][]float64{{1, 0}})
	assert.Error(t, err)
}

func TestStorage_EmptyCollectionSearch(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))

	results, err := s.Search([]float64{1, 0}, 3, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStorage_ClearThenReinit(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert([]domain.Chunk{{ID: "a", Content: "x"}}, [][]float64{{1, 0}}))
	require.NoError(t, s.Clear())
	require.NoError(t, s.Init(2))

	results, err := s.Search([]float64{1, 0}, 3, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}
