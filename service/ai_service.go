package service

import (
	"context"

	"github.com/tieubaoca/pdfrag-be/types"
)

// AIService is the generation provider boundary. Implementations do not
// recover provider failures; errors propagate to the caller.
type AIService interface {
	Generate(ctx context.Context, req types.GenerateRequest) (string, error)
}
