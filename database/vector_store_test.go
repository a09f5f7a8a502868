package database

import (
	"math"
	"testing"

	"github.com/tieubaoca/pdfrag-be/types"
)

func testChunks(ids ...string) []types.DocumentChunk {
	chunks := make([]types.DocumentChunk, len(ids))
	for i, id := range ids {
		chunks[i] = types.DocumentChunk{Text: "chunk " + id, PageNum: i + 1, ChunkID: id}
	}
	return chunks
}

func TestVectorStoreAddAndSearch(t *testing.T) {
	store := NewVectorStore(3)
	vectors := [][]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	chunks := testChunks("a", "b", "c")

	if err := store.Add(vectors, chunks); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if store.TotalChunks() != 3 {
		t.Fatalf("expected 3 chunks, got %d", store.TotalChunks())
	}

	// k larger than the store returns everything, ranked
	results := store.Search([]float32{0, 1, 0}, 10)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Chunk.ChunkID != "b" {
		t.Fatalf("expected own chunk first, got %q", results[0].Chunk.ChunkID)
	}
	if math.Abs(results[0].Score-1.0) > 1e-6 {
		t.Fatalf("expected top score ~1.0, got %f", results[0].Score)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Fatalf("results not in descending score order: %v", results)
		}
	}
}

func TestVectorStoreSearchLimitsK(t *testing.T) {
	store := NewVectorStore(2)
	if err := store.Add([][]float32{{1, 0}, {0, 1}}, testChunks("a", "b")); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	results := store.Search([]float32{1, 0}, 1)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Chunk.ChunkID != "a" {
		t.Fatalf("expected chunk a, got %q", results[0].Chunk.ChunkID)
	}
}

func TestVectorStoreAddMismatchedLengths(t *testing.T) {
	store := NewVectorStore(2)
	err := store.Add([][]float32{{1, 0}, {0, 1}}, testChunks("a"))
	if err == nil {
		t.Fatal("expected validation error for mismatched lengths")
	}
	if store.TotalChunks() != 0 {
		t.Fatalf("failed Add must not mutate the store, got %d chunks", store.TotalChunks())
	}
}

func TestVectorStoreAddWrongDimension(t *testing.T) {
	store := NewVectorStore(3)
	err := store.Add([][]float32{{1, 0}}, testChunks("a"))
	if err == nil {
		t.Fatal("expected dimension validation error")
	}
	if store.TotalChunks() != 0 {
		t.Fatalf("failed Add must not mutate the store, got %d chunks", store.TotalChunks())
	}
}

func TestVectorStoreEmptySearch(t *testing.T) {
	store := NewVectorStore(3)
	if results := store.Search([]float32{1, 0, 0}, 5); len(results) != 0 {
		t.Fatalf("empty store must return no results, got %d", len(results))
	}
}
