// FILE: pkg/rag/history/loader.go
package history

import (
	"context"

	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/Prajankrish/Lex-AI/internal/repository/specification"
	"github.com/Prajankrish/Lex-AI/internal/repository/unitofwork"
	"github.com/Prajankrish/Lex-AI/pkg/llm"

	"github.com/google/uuid"
)

// Loader reads the recent turns of a session back as provider messages for
// multi-turn context. It reads committed turns only, so a request never sees
// its own half-written exchange.
type Loader struct {
	uowFactory unitofwork.RepositoryFactory
	maxTurns   int
}

func NewLoader(uowFactory unitofwork.RepositoryFactory, maxTurns int) *Loader {
	if maxTurns <= 0 {
		maxTurns = 10
	}
	return &Loader{uowFactory: uowFactory, maxTurns: maxTurns}
}

// Recent returns up to maxTurns of the latest turns in chronological order.
// Older turns of a long conversation fall away first; the context assembler
// may trim further if the prompt budget is tight.
func (l *Loader) Recent(ctx context.Context, sessionId uuid.UUID) ([]llm.Message, error) {
	uow := l.uowFactory.NewUnitOfWork(ctx)

	turns, err := uow.ChatTurnRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: l.maxTurns},
	)
	if err != nil {
		return nil, err
	}
	return ToMessages(turns), nil
}

// ToMessages maps newest-first stored turns to chronological llm messages.
// Turn roles are already the provider roles, so they pass through unchanged.
func ToMessages(turns []*entity.ChatTurn) []llm.Message {
	messages := make([]llm.Message, 0, len(turns))
	for i := len(turns) - 1; i >= 0; i-- {
		messages = append(messages, llm.Message{
			Role:    turns[i].Role,
			Content: turns[i].Content,
		})
	}
	return messages
}
