package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/tieubaoca/pdfrag-be/types"
)

const (
	maxExtractionChunks     = 20
	firstChunksCount        = 5
	keywordRichChunksCount  = 10
	structuralSampleEndSkip = 5
)

// extractionKeywords are the bilingual business and real-estate terms that
// mark a chunk as promising for structured extraction.
var extractionKeywords = []string{
	// Polish terms
	"regon", "nip", "adres", "nazwa", "telefon", "email", "strona",
	"kondygnacji", "lokali", "budynku", "mieszkania", "deweloper",
	"spółka", "firma", "powierzchnia", "cena", "liczba",
	// English terms
	"company", "address", "phone", "website", "floor", "apartment",
	"building", "developer", "price", "area", "number",
}

// defaultExtractionFields is the fallback when the schema text yields no
// usable field names.
var defaultExtractionFields = []string{
	"CompanyName", "Address", "Website", "ContactName", "ContactTitle",
	"Email", "Phone", "ProductsOrServices", "PricingModel",
	"KeyDates", "ContractLength", "PaymentTerms", "Notes",
}

var schemaSeparator = regexp.MustCompile(`[,;\n]+`)

const extractionSystemPrompt = "You are a precise data extraction assistant. Extract the requested fields as JSON from the provided document context. " +
	"Rules:\n" +
	"1. Use ONLY information explicitly present in the context\n" +
	"2. If a field is not found, set its value to an empty string\n" +
	"3. Do not invent or assume any values\n" +
	"4. For numbers, extract the exact digits you see\n" +
	"5. Search through ALL chunks carefully"

// ExtractionService pulls structured JSON out of an indexed document.
type ExtractionService struct {
	ai AIService
}

func NewExtractionService(ai AIService) *ExtractionService {
	return &ExtractionService{ai: ai}
}

// ExtractStructuredData selects a bounded, diverse subset of chunks and
// asks the model for JSON-only output over them. The returned string is
// raw model output; the caller parses and validates it. A missing session
// comes back as a JSON error object, not a Go error.
func (s *ExtractionService) ExtractStructuredData(ctx context.Context, state *SessionState, schemaText string) (string, error) {
	if state == nil || len(state.Chunks) == 0 {
		return `{"error": "Please index a PDF first."}`, nil
	}

	keys := parseExtractionSchema(schemaText)
	selected := selectRelevantChunks(state.Chunks, keys)

	var contextParts []string
	for i, chunk := range selected {
		contextParts = append(contextParts,
			fmt.Sprintf("[Chunk %d | page %d]", i+1, chunk.PageNum),
			strings.TrimSpace(chunk.Text))
	}
	contextText := strings.Join(contextParts, "\n")

	keysJSON, err := json.Marshal(keys)
	if err != nil {
		return "", fmt.Errorf("failed to encode field list: %w", err)
	}

	userPrompt := fmt.Sprintf(
		"Document context (multiple chunks from different pages):\n%s\n\n"+
			"Extract these fields as JSON:\n%s\n\n"+
			"Pay attention to Polish terms like:\n"+
			"- REGON (registration number)\n"+
			"- NIP (tax ID)\n"+
			"- adres (address)\n"+
			"- nazwa (company name)\n"+
			"- telefon (phone)\n"+
			"- strona internetowa (website)\n"+
			"- liczba kondygnacji (number of floors)\n"+
			"- liczba lokali w budynku (number of units in building)",
		contextText, string(keysJSON))

	return s.ai.Generate(ctx, types.GenerateRequest{
		System: extractionSystemPrompt,
		Messages: []types.Message{
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0,
		JSONOnly:    true,
	})
}

// parseExtractionSchema turns free-form schema text into field names:
// JSON object keys in source order, then JSON array elements, then a
// comma/semicolon/newline split, then the fixed default list. It never
// fails; something usable always comes back.
func parseExtractionSchema(schemaText string) []string {
	var parsed interface{}
	if err := json.Unmarshal([]byte(schemaText), &parsed); err == nil {
		switch v := parsed.(type) {
		case map[string]interface{}:
			if keys, err := orderedObjectKeys(schemaText); err == nil {
				return keys
			}
		case []interface{}:
			fields := make([]string, 0, len(v))
			for _, item := range v {
				fields = append(fields, fmt.Sprint(item))
			}
			return fields
		}
	}

	var raw []string
	for _, token := range schemaSeparator.Split(schemaText, -1) {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			raw = append(raw, trimmed)
		}
	}
	if len(raw) > 0 {
		return raw
	}

	fields := make([]string, len(defaultExtractionFields))
	copy(fields, defaultExtractionFields)
	return fields
}

// orderedObjectKeys reads top-level object keys in their source order,
// which a plain map unmarshal would lose.
func orderedObjectKeys(schemaText string) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(schemaText))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("not a JSON object")
	}

	keys := make([]string, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", keyTok)
		}
		keys = append(keys, key)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// selectRelevantChunks bounds extraction context to at most 20 chunks:
// the first 5 (front matter), the 10 densest in keywords, and for long
// documents structural samples at the quarter points and near the end.
func selectRelevantChunks(chunks []types.DocumentChunk, keys []string) []types.DocumentChunk {
	pattern := buildKeywordPattern(keys)

	var selected []types.DocumentChunk
	seen := make(map[string]bool)
	appendChunk := func(chunk types.DocumentChunk) {
		if seen[chunk.ChunkID] {
			return
		}
		selected = append(selected, chunk)
		seen[chunk.ChunkID] = true
	}

	// Front-matter bias: company data tends to live on the first pages
	for i := 0; i < len(chunks) && i < firstChunksCount; i++ {
		appendChunk(chunks[i])
	}

	// Keyword-rich chunks, densest first
	type scoredChunk struct {
		chunk types.DocumentChunk
		count int
	}
	var keywordChunks []scoredChunk
	for _, chunk := range chunks {
		if count := len(pattern.FindAllStringIndex(chunk.Text, -1)); count > 0 {
			keywordChunks = append(keywordChunks, scoredChunk{chunk, count})
		}
	}
	sort.SliceStable(keywordChunks, func(i, j int) bool {
		return keywordChunks[i].count > keywordChunks[j].count
	})
	for i := 0; i < len(keywordChunks) && i < keywordRichChunksCount; i++ {
		appendChunk(keywordChunks[i].chunk)
	}

	// Document-spread bias for long documents
	total := len(chunks)
	if total > maxExtractionChunks {
		sampleIndices := []int{
			total / 4,
			total / 2,
			3 * total / 4,
			total - structuralSampleEndSkip,
		}
		for _, idx := range sampleIndices {
			if idx >= 0 && idx < total {
				appendChunk(chunks[idx])
			}
		}
	}

	if len(selected) > maxExtractionChunks {
		selected = selected[:maxExtractionChunks]
	}
	return selected
}

func buildKeywordPattern(keys []string) *regexp.Regexp {
	keywords := make([]string, 0, len(extractionKeywords)+4*len(keys))
	keywords = append(keywords, extractionKeywords...)
	for _, key := range keys {
		keywords = append(keywords,
			key,
			strings.ToLower(key),
			strings.ReplaceAll(key, "_", " "),
			strings.ReplaceAll(key, "_", ""))
	}

	seen := make(map[string]bool)
	var escaped []string
	for _, kw := range keywords {
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		escaped = append(escaped, regexp.QuoteMeta(kw))
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`)
}
