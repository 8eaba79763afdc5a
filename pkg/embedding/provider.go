package embedding

import (
	"fmt"
	"math"
	"strings"

	"github.com/Prajankrish/Lex-AI/internal/dto"
)

// Task types forwarded to providers that distinguish query and document
// embeddings. Providers that embed both sides the same way ignore them.
const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

// DefaultMaxChars bounds embedder input when no explicit limit is configured.
const DefaultMaxChars = 8000

// EmbeddingProvider defines the interface for generating text embeddings.
// Implementations reject empty or oversized input with *dto.EmbeddingError
// and return unit-normalized vectors, so cosine similarity reduces to a dot
// product everywhere downstream.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}

// ValidateInput is the shared input gate for all providers.
func ValidateInput(text string, maxChars int) error {
	if strings.TrimSpace(text) == "" {
		return &dto.EmbeddingError{Reason: "empty input"}
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if n := len([]rune(text)); n > maxChars {
		return &dto.EmbeddingError{Reason: fmt.Sprintf("input of %d chars exceeds limit of %d", n, maxChars)}
	}
	return nil
}

// Normalize scales a vector to unit length (magnitude = 1).
// This is REQUIRED for accurate cosine similarity calculation.
func Normalize(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	// Avoid division by zero
	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
