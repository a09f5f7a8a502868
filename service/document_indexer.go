package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tieubaoca/pdfrag-be/database"
	"github.com/tieubaoca/pdfrag-be/types"
)

// DocumentProcessor extracts page text and splits it into chunks.
// PDFService is the production implementation.
type DocumentProcessor interface {
	ExtractPages(pdfPath string) ([]types.Page, error)
	CreateChunks(pages []types.Page, chunkSize, overlap int) []types.DocumentChunk
}

// SessionState is everything one indexed document needs to answer queries.
// It is rebuilt wholesale on every upload and discarded with the session.
type SessionState struct {
	VectorStore *database.VectorStore
	Chunks      []types.DocumentChunk
	TotalPages  int
	TotalChunks int
}

// IndexerService orchestrates extract, chunk, embed, index into a
// queryable SessionState.
type IndexerService struct {
	processor  DocumentProcessor
	embedder   Embedder
	dimensions int
}

func NewIndexerService(processor DocumentProcessor, embedder Embedder, dimensions int) *IndexerService {
	return &IndexerService{
		processor:  processor,
		embedder:   embedder,
		dimensions: dimensions,
	}
}

// CreateIndex builds a searchable index from a PDF. It never returns an
// error: failures come back as a nil state plus a human-readable message,
// so the calling surface stays a plain request-response exchange.
func (s *IndexerService) CreateIndex(ctx context.Context, pdfPath string, chunkSize, overlap int) (*SessionState, string) {
	start := time.Now()

	pages, err := s.processor.ExtractPages(pdfPath)
	if err != nil {
		return nil, fmt.Sprintf("Error processing PDF: %v", err)
	}
	if len(pages) == 0 {
		return nil, "No text found in PDF"
	}

	chunks := s.processor.CreateChunks(pages, chunkSize, overlap)
	if len(chunks) == 0 {
		return nil, "No chunks created from PDF"
	}

	// One batched embedding call for all chunk texts
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	embeddings, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Sprintf("Error processing PDF: %v", err)
	}
	normalized := Normalize(embeddings)

	dimensions := s.dimensions
	if dimensions <= 0 && len(normalized) > 0 {
		dimensions = len(normalized[0])
	}
	store := database.NewVectorStore(dimensions)
	if err := store.Add(normalized, chunks); err != nil {
		return nil, fmt.Sprintf("Error processing PDF: %v", err)
	}

	state := &SessionState{
		VectorStore: store,
		Chunks:      chunks,
		TotalPages:  len(pages),
		TotalChunks: len(chunks),
	}
	message := fmt.Sprintf("Successfully indexed %d chunks from %d pages in %.2fs",
		len(chunks), len(pages), time.Since(start).Seconds())
	return state, message
}
