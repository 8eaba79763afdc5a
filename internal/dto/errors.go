package dto

import "fmt"

// EmbeddingError reports input the embedder refuses to process (empty or
// oversized text). Callers surface it as a "try rephrasing" class of failure.
type EmbeddingError struct {
	Reason string
}

func (e *EmbeddingError) Error() string {
	return "embedding rejected: " + e.Reason
}

// IndexNotReadyError means no published corpus snapshot has been loaded yet.
// The server stays up but answering is blocked until an index is available.
type IndexNotReadyError struct{}

func (e *IndexNotReadyError) Error() string {
	return "vector index not ready: no published corpus snapshot loaded"
}

// BudgetExceededError means the prompt budget cannot even cover the system
// instructions plus the query. This is a configuration bug, never a runtime
// condition to degrade around.
type BudgetExceededError struct {
	Budget   int
	Required int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("prompt budget %d below minimum viable size %d", e.Budget, e.Required)
}

// GenerationError wraps a model invocation failure (timeout or transport).
type GenerationError struct {
	Cause   error
	Timeout bool
}

func (e *GenerationError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("generation timed out: %v", e.Cause)
	}
	return fmt.Sprintf("generation failed: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// UnparseableResponseError is raised only for a fully empty generation; any
// response with extractable text parses into a degraded answer instead.
type UnparseableResponseError struct{}

func (e *UnparseableResponseError) Error() string {
	return "model returned an empty response"
}

// NotFoundError covers both a missing resource and an ownership mismatch.
// Callers cannot tell the two cases apart.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return e.Resource + " not found"
}
