package unitofwork

import (
	"context"

	"github.com/Prajankrish/Lex-AI/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatTurnRepository() contract.ChatTurnRepository
	ChatCitationRepository() contract.ChatCitationRepository

	CorpusSnapshotRepository() contract.CorpusSnapshotRepository
	PassageRepository() contract.PassageRepository
}
