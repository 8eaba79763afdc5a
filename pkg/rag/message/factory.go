// FILE: pkg/rag/message/factory.go
package message

import (
	"context"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/constant"
	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/Prajankrish/Lex-AI/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Factory builds and persists the turn pair of one exchange. An exchange is
// saved whole inside the caller's transaction: user turn, assistant turn,
// citations and the session bump commit or roll back together, so a session
// never holds an unanswered user turn.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) NewUserTurn(sessionId uuid.UUID, content string, at time.Time) entity.ChatTurn {
	return entity.ChatTurn{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          constant.RoleUser,
		Content:       content,
		CreatedAt:     at,
	}
}

func (f *Factory) NewAssistantTurn(sessionId uuid.UUID, content string, meta *entity.StructuredAnswer, latencyMs int64, at time.Time) entity.ChatTurn {
	return entity.ChatTurn{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          constant.RoleAssistant,
		Content:       content,
		Metadata:      meta,
		LatencyMs:     &latencyMs,
		CreatedAt:     at,
	}
}

// SaveExchange persists both turns plus the assistant's citations and bumps
// the session's updated_at. The assistant turn is forced strictly after the
// user turn so created_at ordering always reads user before assistant.
func (f *Factory) SaveExchange(ctx context.Context, uow unitofwork.UnitOfWork, userTurn, assistantTurn *entity.ChatTurn, grounding []entity.RetrievedPassage) error {
	if !assistantTurn.CreatedAt.After(userTurn.CreatedAt) {
		assistantTurn.CreatedAt = userTurn.CreatedAt.Add(time.Millisecond)
	}

	if err := uow.ChatTurnRepository().Create(ctx, userTurn); err != nil {
		return err
	}
	if err := uow.ChatTurnRepository().Create(ctx, assistantTurn); err != nil {
		return err
	}

	if len(grounding) > 0 {
		citations := make([]*entity.ChatCitation, 0, len(grounding))
		for _, p := range grounding {
			citations = append(citations, &entity.ChatCitation{
				Id:           uuid.New(),
				ChatTurnId:   assistantTurn.Id,
				PassageId:    p.PassageId,
				SourceTitle:  p.SourceTitle,
				SectionLabel: p.SectionLabel,
				Score:        p.Score,
				Rank:         p.Rank,
				CreatedAt:    assistantTurn.CreatedAt,
			})
		}
		if err := uow.ChatCitationRepository().CreateBulk(ctx, citations); err != nil {
			return err
		}
	}

	return uow.ChatSessionRepository().TouchUpdatedAt(ctx, userTurn.ChatSessionId)
}
