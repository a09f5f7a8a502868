package database

import (
	"github.com/tieubaoca/pdfrag-be/types"
)

// SearchResult pairs a stored chunk with its similarity score. For vectors
// stored unit-normalized the inner product is the cosine similarity.
type SearchResult struct {
	Chunk types.DocumentChunk `json:"chunk"`
	Score float64             `json:"score"`
}

// VectorDatabase defines the interface for similarity search over chunks
type VectorDatabase interface {
	// Add appends vectors and their chunks to the index, preserving order.
	Add(vectors [][]float32, chunks []types.DocumentChunk) error

	// Search returns up to k results ranked by descending inner product.
	Search(query []float32, k int) []SearchResult

	// TotalChunks returns the number of indexed entries.
	TotalChunks() int
}
