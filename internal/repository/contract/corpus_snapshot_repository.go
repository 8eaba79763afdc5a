package contract

import (
	"context"

	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/Prajankrish/Lex-AI/internal/repository/specification"
)

type CorpusSnapshotRepository interface {
	Create(ctx context.Context, snapshot *entity.CorpusSnapshot) error
	Update(ctx context.Context, snapshot *entity.CorpusSnapshot) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CorpusSnapshot, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CorpusSnapshot, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// FindLatestPublished returns the newest published snapshot, or nil when
	// the corpus has never been indexed.
	FindLatestPublished(ctx context.Context) (*entity.CorpusSnapshot, error)
}
