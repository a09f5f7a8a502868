package service

import (
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/gen2brain/go-fitz"
	"github.com/google/uuid"
	ledongthuc "github.com/ledongthuc/pdf"

	"github.com/tieubaoca/pdfrag-be/types"
)

// PDFService handles PDF text extraction and chunking
type PDFService struct {
	chunkSize    int // Default size of each text chunk, in runes
	overlap      int // Default overlap between consecutive chunks
	minChunkSize int // Chunks shorter than this after trimming are dropped
}

var DefaultDocumentServiceConfig = types.DocumentServiceConfig{
	ChunkSize:    2000,
	Overlap:      350,
	MinChunkSize: 50,
}

// NewPDFService creates a new PDF service with configurable chunk sizes
func NewPDFService(config types.DocumentServiceConfig) *PDFService {
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultDocumentServiceConfig.ChunkSize
	}
	if config.Overlap <= 0 {
		config.Overlap = DefaultDocumentServiceConfig.Overlap
	}
	if config.MinChunkSize <= 0 {
		config.MinChunkSize = DefaultDocumentServiceConfig.MinChunkSize
	}
	return &PDFService{
		chunkSize:    config.ChunkSize,
		overlap:      config.Overlap,
		minChunkSize: config.MinChunkSize,
	}
}

// ExtractPages extracts per-page text from a PDF file. Pages with no
// extractable text are omitted; page numbers are 1-based.
func (s *PDFService) ExtractPages(pdfPath string) ([]types.Page, error) {
	pages, err := s.extractWithMuPDF(pdfPath)
	if err != nil || len(pages) == 0 {
		pages, err = s.extractWithPlainText(pdfPath)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text: %w", err)
		}
	}
	return pages, nil
}

// extractWithMuPDF extracts text through go-fitz (MuPDF)
func (s *PDFService) extractWithMuPDF(pdfPath string) ([]types.Page, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var pages []types.Page
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			log.Printf("Warning: failed to extract text from page %d: %v", i+1, err)
			continue // Skip failed pages instead of returning error
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, types.Page{
			Text:    s.cleanText(text),
			PageNum: i + 1,
		})
	}
	return pages, nil
}

// extractWithPlainText is the pure-Go fallback when MuPDF fails to open
// or yields nothing (some generators produce streams MuPDF rejects)
func (s *PDFService) extractWithPlainText(pdfPath string) ([]types.Page, error) {
	log.Println("Try extracting with pdf reader fallback")
	f, r, err := ledongthuc.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var pages []types.Page
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("Warning: failed to extract text from page %d: %v", i, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, types.Page{
			Text:    s.cleanText(text),
			PageNum: i,
		})
	}
	return pages, nil
}

// CreateChunks splits pages into overlapping chunks with sentence-aware
// boundaries. Chunk sizes of 0 fall back to the service defaults. Chunks
// whose trimmed text is shorter than the minimum size are discarded.
func (s *PDFService) CreateChunks(pages []types.Page, chunkSize, overlap int) []types.DocumentChunk {
	if chunkSize <= 0 {
		chunkSize = s.chunkSize
	}
	if overlap <= 0 {
		overlap = s.overlap
	}

	chunks := make([]types.DocumentChunk, 0)
	for _, page := range pages {
		for _, text := range splitTextIntoChunks(page.Text, chunkSize, overlap) {
			if utf8.RuneCountInString(strings.TrimSpace(text)) < s.minChunkSize {
				continue
			}
			chunks = append(chunks, types.DocumentChunk{
				Text:    text,
				PageNum: page.PageNum,
				ChunkID: uuid.NewString()[:8],
			})
		}
	}
	return chunks
}

// splitTextIntoChunks slides a window of chunkSize runes over the text.
// When the window does not reach the end, the cut point moves back to the
// last '.' or newline, but only if that lies past the window midpoint.
// Advancing by max(start+1, end-overlap) guarantees forward progress even
// when overlap >= chunkSize.
func splitTextIntoChunks(text string, chunkSize, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		// Try to break at a sentence or line boundary
		if end < len(runes) {
			breakPoint := -1
			for i := end - 1; i > start; i-- {
				if runes[i] == '.' || runes[i] == '\n' {
					breakPoint = i
					break
				}
			}
			if breakPoint > start+chunkSize/2 {
				end = breakPoint + 1
			}
		}

		chunks = append(chunks, string(runes[start:end]))

		next := end - overlap
		if next < start+1 {
			next = start + 1
		}
		start = next

		if end >= len(runes) {
			break
		}
	}
	return chunks
}

func (s *PDFService) cleanText(text string) string {
	replacements := map[string]string{
		"\x00":   "",   // Null character
		"\ufffd": "",   // Unicode replacement character
		"\x1b":   "",   // Escape character
		"\r":     "",   // Carriage return
		"\f":     "\n", // Form feed to newline
	}
	cleaned := text
	for old, new := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, new)
	}
	return cleaned
}
