package service

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/tieubaoca/pdfrag-be/database"
	"github.com/tieubaoca/pdfrag-be/types"
)

type fakeEmbedder struct {
	vec []float32
	err error
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vec
	}
	return out, nil
}

type fakeAI struct {
	req    types.GenerateRequest
	answer string
	err    error
}

func (f *fakeAI) Generate(ctx context.Context, req types.GenerateRequest) (string, error) {
	f.req = req
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func testState(t *testing.T, dimension int, vectors [][]float32, chunks []types.DocumentChunk) *SessionState {
	t.Helper()
	store := database.NewVectorStore(dimension)
	if err := store.Add(vectors, chunks); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	return &SessionState{
		VectorStore: store,
		Chunks:      chunks,
		TotalPages:  1,
		TotalChunks: len(chunks),
	}
}

func TestAnswerQuestionWithoutState(t *testing.T) {
	qa := NewQAService(&fakeEmbedder{}, &fakeAI{}, 5)
	answer, err := qa.AnswerQuestion(context.Background(), nil, "anything", 5, 0)
	if err != nil {
		t.Fatalf("missing state must not be an error: %v", err)
	}
	if answer != "Please index a PDF first." {
		t.Fatalf("unexpected answer: %q", answer)
	}
}

func TestKeywordSearchActivation(t *testing.T) {
	chunks := []types.DocumentChunk{
		{Text: "REGON: 123456789, NIP: 1234567890, adres: ul. Testowa 1, Wrocław", PageNum: 1, ChunkID: "c1"},
		{Text: "nothing of interest here", PageNum: 1, ChunkID: "c2"},
	}

	results := keywordSearch("Jaki jest REGON?", chunks)
	if len(results) != 1 {
		t.Fatalf("expected 1 keyword result, got %d", len(results))
	}
	if results[0].Chunk.ChunkID != "c1" {
		t.Fatalf("expected chunk c1, got %q", results[0].Chunk.ChunkID)
	}
	// One occurrence of the first matching pattern, weighted by 0.8
	if math.Abs(results[0].Score-0.8) > 1e-9 {
		t.Fatalf("expected score 0.8, got %f", results[0].Score)
	}
}

func TestKeywordSearchNoActivation(t *testing.T) {
	chunks := []types.DocumentChunk{
		{Text: "REGON: 123456789", PageNum: 1, ChunkID: "c1"},
	}
	if results := keywordSearch("What is the weather like?", chunks); len(results) != 0 {
		t.Fatalf("no keyword in question must yield no results, got %d", len(results))
	}
}

func TestKeywordSearchFirstPatternWins(t *testing.T) {
	// "regon" activates \bregon\b and the 9-digit pattern; a chunk with
	// several digit groups still scores on the first pattern that hits it
	chunks := []types.DocumentChunk{
		{Text: "regon regon 123456789 987654321", PageNum: 2, ChunkID: "c1"},
	}
	results := keywordSearch("podaj regon", chunks)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if math.Abs(results[0].Score-1.6) > 1e-9 {
		t.Fatalf("expected score 1.6 (2 matches x 0.8), got %f", results[0].Score)
	}
}

func TestCombineSearchResultsDedup(t *testing.T) {
	c1 := types.DocumentChunk{PageNum: 1, ChunkID: "c1"}
	c2 := types.DocumentChunk{PageNum: 1, ChunkID: "c2"}
	c3 := types.DocumentChunk{PageNum: 2, ChunkID: "c3"}

	semantic := []database.SearchResult{{Chunk: c1, Score: 0.9}, {Chunk: c2, Score: 0.5}}
	keyword := []database.SearchResult{{Chunk: c2, Score: 1.6}, {Chunk: c3, Score: 0.8}}

	combined := combineSearchResults(semantic, keyword, 5)
	if len(combined) != 3 {
		t.Fatalf("expected 3 results after dedup, got %d", len(combined))
	}
	// c2 keeps its semantic score because semantic results enter first
	for _, r := range combined {
		if r.Chunk.ChunkID == "c2" && r.Score != 0.5 {
			t.Fatalf("duplicate chunk must keep its semantic score, got %f", r.Score)
		}
	}
	if combined[0].Chunk.ChunkID != "c1" || combined[1].Chunk.ChunkID != "c3" || combined[2].Chunk.ChunkID != "c2" {
		t.Fatalf("unexpected order: %v", combined)
	}
}

func TestCombineSearchResultsTruncation(t *testing.T) {
	var semantic []database.SearchResult
	for i := 0; i < 12; i++ {
		semantic = append(semantic, database.SearchResult{
			Chunk: types.DocumentChunk{PageNum: 1, ChunkID: string(rune('a' + i))},
			Score: float64(12 - i),
		})
	}
	// top_k below 8 still keeps 8 results
	if got := combineSearchResults(semantic, nil, 3); len(got) != 8 {
		t.Fatalf("expected truncation to 8, got %d", len(got))
	}
	if got := combineSearchResults(semantic, nil, 10); len(got) != 10 {
		t.Fatalf("expected truncation to 10, got %d", len(got))
	}
}

func TestBuildContext(t *testing.T) {
	results := []database.SearchResult{
		{Chunk: types.DocumentChunk{Text: "  some text  ", PageNum: 4, ChunkID: "c1"}, Score: 0.874},
	}
	context := buildContext(results)
	if !strings.Contains(context, "[Source 1 | page 4 | score 0.874]") {
		t.Fatalf("missing header in context: %q", context)
	}
	if !strings.Contains(context, "some text") {
		t.Fatalf("missing chunk text in context: %q", context)
	}
	if strings.Contains(context, "  some text") {
		t.Fatalf("chunk text must be trimmed: %q", context)
	}
}

func TestAnswerQuestionKeywordFallback(t *testing.T) {
	// Semantic similarity is useless here (orthogonal query vector); the
	// keyword leg must still pull in the chunk with the digits.
	chunk := types.DocumentChunk{
		Text:    "REGON: 123456789, NIP: 1234567890, adres: ul. Testowa 1, Wrocław",
		PageNum: 1,
		ChunkID: "c1",
	}
	state := testState(t, 3, [][]float32{{0, 0, 1}}, []types.DocumentChunk{chunk})

	ai := &fakeAI{answer: "REGON is 123456789"}
	qa := NewQAService(&fakeEmbedder{vec: []float32{1, 0, 0}}, ai, 5)

	answer, err := qa.AnswerQuestion(context.Background(), state, "Jaki jest REGON?", 5, 0)
	if err != nil {
		t.Fatalf("AnswerQuestion error: %v", err)
	}
	if answer != "REGON is 123456789" {
		t.Fatalf("unexpected answer: %q", answer)
	}

	if ai.req.System == "" {
		t.Fatal("expected a system prompt")
	}
	if len(ai.req.Messages) != 1 {
		t.Fatalf("expected 1 user message, got %d", len(ai.req.Messages))
	}
	content := ai.req.Messages[0].Content
	if !strings.Contains(content, "Jaki jest REGON?") {
		t.Fatalf("question missing from prompt: %q", content)
	}
	if !strings.Contains(content, "123456789") {
		t.Fatalf("context must carry the literal digits: %q", content)
	}
}
