// FILE: pkg/rag/session/manager.go
package session

import (
	"context"
	"strings"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/constant"
	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/Prajankrish/Lex-AI/internal/repository/memory"
	"github.com/Prajankrish/Lex-AI/internal/repository/specification"
	"github.com/Prajankrish/Lex-AI/internal/repository/unitofwork"
	"github.com/Prajankrish/Lex-AI/pkg/store"

	"github.com/google/uuid"
)

// Manager owns session identity concerns: ownership checks, title derivation
// and the ephemeral per-session pipeline state. Durable session rows stay
// behind the unit of work; only working memory lives here.
type Manager struct {
	states   *memory.SessionStateRepository
	titleMax int
}

func NewManager(states *memory.SessionStateRepository, titleMax int) *Manager {
	if titleMax <= 0 {
		titleMax = 40
	}
	return &Manager{states: states, titleMax: titleMax}
}

// VerifyOwned loads a session only when it exists, is not deleted and belongs
// to the user. A missing session and a foreign session both come back as
// NotFoundError so callers cannot probe for other users' session ids.
func (m *Manager) VerifyOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil || session.IsDeleted {
		return nil, &dto.NotFoundError{Resource: "chat session"}
	}
	return session, nil
}

// TitleFromMessage derives a session title from the first user message:
// whitespace collapsed, cut at the configured rune budget with an ellipsis.
// A blank message keeps the placeholder title.
func (m *Manager) TitleFromMessage(message string) string {
	collapsed := strings.Join(strings.Fields(message), " ")
	if collapsed == "" {
		return constant.NewSessionTitle
	}
	runes := []rune(collapsed)
	if len(runes) <= m.titleMax {
		return collapsed
	}
	return strings.TrimSpace(string(runes[:m.titleMax])) + "…"
}

// State returns the pipeline working memory for a session, or nil when none
// survives (expiry and process restarts both clear it).
func (m *Manager) State(sessionId uuid.UUID) *store.SessionState {
	if m.states == nil {
		return nil
	}
	if state, ok := m.states.Get(sessionId); ok {
		return state
	}
	return nil
}

// RememberTurn records the grounding of the latest answered turn so the next
// request can fall back to it when the assistant is unavailable.
func (m *Manager) RememberTurn(sessionId, userId uuid.UUID, query string, citations []store.PassageRef) {
	if m.states == nil {
		return
	}
	m.states.Save(&store.SessionState{
		ID:            sessionId,
		UserID:        userId,
		LastQuery:     query,
		LastCitations: citations,
		UpdatedAt:     time.Now(),
	})
}

// Forget drops the working memory of a session, used when the session is
// deleted.
func (m *Manager) Forget(sessionId uuid.UUID) {
	if m.states == nil {
		return
	}
	m.states.Delete(sessionId)
}
