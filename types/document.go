package types

import "fmt"

// Page holds the raw text extracted from a single PDF page.
// Pages without extractable text are never materialized.
type Page struct {
	Text    string `json:"text"`
	PageNum int    `json:"page_num"`
}

// DocumentChunk is the unit of indexing and retrieval: a bounded span of
// page text with provenance.
type DocumentChunk struct {
	Text     string                 `json:"text"`
	PageNum  int                    `json:"page_num"`
	ChunkID  string                 `json:"chunk_id"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Key identifies a chunk within one index. Both search legs dedup on it.
func (c DocumentChunk) Key() string {
	return fmt.Sprintf("%d_%s", c.PageNum, c.ChunkID)
}

// DocumentServiceConfig contains configuration options for chunking
type DocumentServiceConfig struct {
	ChunkSize    int // Maximum size for text chunks, in runes
	Overlap      int // Size of overlap between chunks
	MinChunkSize int // Chunks shorter than this after trimming are dropped
}
