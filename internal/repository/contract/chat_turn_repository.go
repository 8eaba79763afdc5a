package contract

import (
	"context"

	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/Prajankrish/Lex-AI/internal/repository/specification"
)

// ChatTurnRepository is append-only: turns are never updated or deleted
// individually. Removing a conversation goes through the session's soft
// delete instead.
type ChatTurnRepository interface {
	Create(ctx context.Context, turn *entity.ChatTurn) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatTurn, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
