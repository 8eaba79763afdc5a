package contract

import (
	"context"

	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/Prajankrish/Lex-AI/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredPassage wraps a Passage with its cosine similarity to a probe vector.
type ScoredPassage struct {
	Passage    *entity.Passage
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type PassageRepository interface {
	CreateBulk(ctx context.Context, passages []*entity.Passage) error
	// DeleteBySnapshotId hard-deletes the passages of an abandoned draft.
	DeleteBySnapshotId(ctx context.Context, snapshotId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Passage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Passage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore runs a DB-side cosine search inside one snapshot.
	// The serving path searches the in-memory index instead; this exists for
	// the indexer's post-build verification probe.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, snapshotId uuid.UUID, threshold float64) ([]*ScoredPassage, error)
}
