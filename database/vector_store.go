package database

import (
	"fmt"
	"sort"

	"github.com/tieubaoca/pdfrag-be/types"
)

// VectorStore is an in-memory exact inner-product index. Vectors and chunk
// metadata live in two parallel slices; the slice position is the id. The
// structure is append-only: no deletion or update path exists, a session
// that needs a fresh index builds a new store.
type VectorStore struct {
	dimension int
	vectors   [][]float32
	chunks    []types.DocumentChunk
}

func NewVectorStore(dimension int) *VectorStore {
	return &VectorStore{
		dimension: dimension,
		vectors:   make([][]float32, 0),
		chunks:    make([]types.DocumentChunk, 0),
	}
}

// Add appends vectors and their chunks, preserving order. It validates
// before mutating: a failed Add leaves the store untouched.
func (s *VectorStore) Add(vectors [][]float32, chunks []types.DocumentChunk) error {
	if len(vectors) != len(chunks) {
		return fmt.Errorf("number of vectors (%d) must match number of chunks (%d)", len(vectors), len(chunks))
	}
	for i, v := range vectors {
		if len(v) != s.dimension {
			return fmt.Errorf("vector %d has dimension %d, index expects %d", i, len(v), s.dimension)
		}
	}
	s.vectors = append(s.vectors, vectors...)
	s.chunks = append(s.chunks, chunks...)
	return nil
}

// Search returns up to k results ranked by descending inner product.
// An empty store returns no results.
func (s *VectorStore) Search(query []float32, k int) []SearchResult {
	if len(s.vectors) == 0 || k <= 0 {
		return nil
	}
	if k > len(s.vectors) {
		k = len(s.vectors)
	}

	results := make([]SearchResult, len(s.vectors))
	for i, v := range s.vectors {
		results[i] = SearchResult{
			Chunk: s.chunks[i],
			Score: dotProduct(query, v),
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results[:k]
}

func (s *VectorStore) TotalChunks() int {
	return len(s.vectors)
}

var _ VectorDatabase = (*VectorStore)(nil)

func dotProduct(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
