package contract

import (
	"context"

	"github.com/Prajankrish/Lex-AI/internal/entity"

	"github.com/google/uuid"
)

type ChatCitationRepository interface {
	CreateBulk(ctx context.Context, citations []*entity.ChatCitation) error
	FindAllByTurnIds(ctx context.Context, turnIds []uuid.UUID) ([]*entity.ChatCitation, error)
}
