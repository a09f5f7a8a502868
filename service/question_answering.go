package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/tieubaoca/pdfrag-be/database"
	"github.com/tieubaoca/pdfrag-be/types"
)

// keywordScoreWeight scales raw regex match counts into keyword scores.
const keywordScoreWeight = 0.8

// keywordEntry maps one domain term to its match patterns. The table is an
// explicit, auditable heuristic; order matters because a chunk is scored by
// the first pattern that hits it.
type keywordEntry struct {
	keyword  string
	patterns []*regexp.Regexp
}

var keywordPatterns = []keywordEntry{
	{"regon", compilePatterns(`\bregon\b`, `\b\d{9}\b`)},
	{"nip", compilePatterns(`\bnip\b`, `\b\d{10}\b`)},
	{"adres", compilePatterns(`\badres\b`, `\bulica\b`, `\bul\.\b`, `wrocław`, `warszawa`)},
	{"nazwa", compilePatterns(`\bnazwa\b`, `\bspółka\b`, `\bfirma\b`, `archicom`, `projekt`)},
	{"telefon", compilePatterns(`\btelefon\b`, `\btel\b`, `\+\d+`, `\bphone\b`)},
	{"email", compilePatterns(`\bemail\b`, `\be-mail\b`, `@\w+\.\w+`)},
	{"strona", compilePatterns(`\bstrona\b`, `\bwww\b`, `internetowa`, `website`)},
	{"kondygnacji", compilePatterns(`\bkondygnacji\b`, `\bkondygnacja\b`, `\bpiętr\b`, `\bfloor\b`)},
	{"lokali", compilePatterns(`\blokali\b`, `\blokale\b`, `\bmieszkan\b`, `w budynku`)},
	{"termin", compilePatterns(`\btermin\b`, `\bdata\b`, `\brozpocz\b`, `\bzakończ\b`, `\brobót\b`)},
}

func compilePatterns(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		patterns[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return patterns
}

const qaSystemPrompt = "You are a precise assistant. Answer the user's question ONLY using the provided PDF context. " +
	"If the context is insufficient, say you don't know. Be concise. Do not fabricate details.\n" +
	"For Polish queries like 'Podaj X' (Give/Provide X), extract the exact value you find in the context.\n" +
	"For questions about numbers, dates, or specific values, provide the exact text from the document.\n" +
	"Use bullet points for lists. Avoid repeating the question."

// QAService answers questions over an indexed document by fusing semantic
// search with keyword-pattern search.
type QAService struct {
	embedder    Embedder
	ai          AIService
	defaultTopK int
}

func NewQAService(embedder Embedder, ai AIService, defaultTopK int) *QAService {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &QAService{
		embedder:    embedder,
		ai:          ai,
		defaultTopK: defaultTopK,
	}
}

// AnswerQuestion retrieves context for the question and asks the model for
// a cited answer. A missing session comes back as a plain user-facing
// message, not an error; provider failures propagate.
func (s *QAService) AnswerQuestion(ctx context.Context, state *SessionState, question string, topK int, temperature float32) (string, error) {
	if state == nil || state.VectorStore == nil {
		return "Please index a PDF first.", nil
	}
	if topK <= 0 {
		topK = s.defaultTopK
	}

	// Semantic leg
	vectors, err := s.embedder.EmbedTexts(ctx, []string{question})
	if err != nil {
		return "", fmt.Errorf("failed to embed question: %w", err)
	}
	var semanticResults []database.SearchResult
	if len(vectors) > 0 {
		semanticResults = state.VectorStore.Search(NormalizeVector(vectors[0]), topK)
	}

	// Keyword leg
	keywordResults := keywordSearch(question, state.Chunks)

	finalResults := combineSearchResults(semanticResults, keywordResults, topK)
	contextText := buildContext(finalResults)

	return s.ai.Generate(ctx, types.GenerateRequest{
		System: qaSystemPrompt,
		Messages: []types.Message{
			{Role: "user", Content: fmt.Sprintf("Question:\n%s\n\nContext:\n%s", question, contextText)},
		},
		Temperature: temperature,
	})
}

// keywordSearch scans every chunk against the patterns of each keyword
// that literally appears in the question. A chunk is scored by its first
// matching pattern only; scores are match count times the keyword weight.
func keywordSearch(question string, chunks []types.DocumentChunk) []database.SearchResult {
	questionLower := strings.ToLower(question)

	var activePatterns []*regexp.Regexp
	for _, entry := range keywordPatterns {
		if strings.Contains(questionLower, entry.keyword) {
			activePatterns = append(activePatterns, entry.patterns...)
		}
	}
	if len(activePatterns) == 0 {
		return nil
	}

	var results []database.SearchResult
	for _, chunk := range chunks {
		for _, pattern := range activePatterns {
			matches := pattern.FindAllStringIndex(chunk.Text, -1)
			if len(matches) == 0 {
				continue
			}
			results = append(results, database.SearchResult{
				Chunk: chunk,
				Score: float64(len(matches)) * keywordScoreWeight,
			})
			break
		}
	}
	return results
}

// combineSearchResults dedups on (page, chunk id), semantic results first,
// then sorts by score and truncates to max(maxResults, 8). Semantic and
// keyword scores live on different scales and are deliberately not
// renormalized before the sort; the mixed ordering is a heuristic signal,
// kept for compatibility with the original ranking.
func combineSearchResults(semanticResults, keywordResults []database.SearchResult, maxResults int) []database.SearchResult {
	combined := make([]database.SearchResult, 0, len(semanticResults)+len(keywordResults))
	seen := make(map[string]bool)

	for _, result := range semanticResults {
		key := result.Chunk.Key()
		if seen[key] {
			continue
		}
		combined = append(combined, result)
		seen[key] = true
	}
	for _, result := range keywordResults {
		key := result.Chunk.Key()
		if seen[key] {
			continue
		}
		combined = append(combined, result)
		seen[key] = true
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Score > combined[j].Score
	})

	limit := maxResults
	if limit < 8 {
		limit = 8
	}
	if len(combined) > limit {
		combined = combined[:limit]
	}
	return combined
}

// buildContext renders the fused results as numbered, paged, scored
// sections in retrieval order.
func buildContext(results []database.SearchResult) string {
	var parts []string
	for i, result := range results {
		header := fmt.Sprintf("[Source %d | page %d | score %.3f]", i+1, result.Chunk.PageNum, result.Score)
		parts = append(parts, header, strings.TrimSpace(result.Chunk.Text), "")
	}
	return strings.Join(parts, "\n")
}
