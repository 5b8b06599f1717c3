package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chunkrank/internal/domain"
	"chunkrank/internal/ranker"
)

func TestStorage_InitValidation(t *testing.T) {
	s := NewStorage()
	assert.Error(t, s.Init(0))
	assert.Error(t, s.Init(-3))
	assert.NoError(t, s.Init(3))
}

func TestStorage_UpsertAndSearch(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(3))

	chunks := []domain.Chunk{{ID: "a-chunk-0"}, {ID: "b-chunk-0"}}
	vectors := [][]float64{{1, 0, 0}, {0, 1, 0}}
	require.NoError(t, s.Upsert(chunks, vectors))

	results, err := s.Search([]float64{1, 0, 0}, 5, 0.5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a-chunk-0", results[0].Chunk.ID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-12)
}

func TestStorage_UpsertDimensionMismatch(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(3))

	err := s.Upsert([]domain.Chunk{{ID: "a-chunk-0"}}, [][]float64{{1, 0}})
	assert.ErrorIs(t, err, ranker.ErrDimensionMismatch)
}

func TestStorage_UpsertLengthMismatch(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))

	err := s.Upsert([]domain.Chunk{{ID: "a"}, {ID: "b"}}, [][]float64{{1, 0}})
	assert.Error(t, err)
}

func TestStorage_Clear(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert([]domain.Chunk{{ID: "a"}}, [][]float64{{1, 0}}))
	require.NoError(t, s.Clear())

	results, err := s.Search([]float64{1, 0}, 3, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}
