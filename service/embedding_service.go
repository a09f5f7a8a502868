package service

import (
	"context"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

// Embedder turns a batch of texts into one vector per text, same order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingService wraps the OpenAI embeddings endpoint. All texts of one
// call go out as a single batched request; provider errors propagate to
// the caller, no retry happens at this layer.
type EmbeddingService struct {
	client     *openai.Client
	model      string
	dimensions int
}

func NewEmbeddingService(baseURL, apiKey, model string, dimensions int) *EmbeddingService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &EmbeddingService{
		client:     openai.NewClientWithConfig(config),
		model:      model,
		dimensions: dimensions,
	}
}

func (s *EmbeddingService) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      texts,
		Model:      openai.EmbeddingModel(s.model),
		Dimensions: s.dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}
	vectors := make([][]float32, len(resp.Data))
	for i, item := range resp.Data {
		vectors[i] = item.Embedding
	}
	return vectors, nil
}

// Normalize scales each vector to unit L2 norm so that inner product
// equals cosine similarity. Zero vectors pass through unchanged.
func Normalize(vectors [][]float32) [][]float32 {
	normalized := make([][]float32, len(vectors))
	for i, v := range vectors {
		normalized[i] = NormalizeVector(v)
	}
	return normalized
}

func NormalizeVector(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	if norm == 0 {
		copy(out, v)
		return out
	}
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}
