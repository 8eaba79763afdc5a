// FILE: internal/service/chat_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/Prajankrish/Lex-AI/internal/pkg/logger"
	"github.com/Prajankrish/Lex-AI/internal/repository/memory"
	"github.com/Prajankrish/Lex-AI/internal/repository/specification"
	"github.com/Prajankrish/Lex-AI/internal/repository/unitofwork"
	"github.com/Prajankrish/Lex-AI/pkg/admin/dashboard"
	"github.com/Prajankrish/Lex-AI/pkg/embedding"
	"github.com/Prajankrish/Lex-AI/pkg/llm"
	"github.com/Prajankrish/Lex-AI/pkg/rag/access"
	"github.com/Prajankrish/Lex-AI/pkg/rag/answer"
	"github.com/Prajankrish/Lex-AI/pkg/rag/corpus"
	"github.com/Prajankrish/Lex-AI/pkg/rag/generate"
	"github.com/Prajankrish/Lex-AI/pkg/rag/history"
	"github.com/Prajankrish/Lex-AI/pkg/rag/message"
	"github.com/Prajankrish/Lex-AI/pkg/rag/prompt"
	"github.com/Prajankrish/Lex-AI/pkg/rag/retriever"
	"github.com/Prajankrish/Lex-AI/pkg/rag/session"
	"github.com/Prajankrish/Lex-AI/pkg/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// IChatService defines the chat service interface
type IChatService interface {
	SendChat(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID) (*dto.GetHistoryResponse, error)
	GetSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.GetSessionResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
}

// PipelineOptions carries the tunables the chat pipeline is built with. Zero
// values fall back to the component defaults.
type PipelineOptions struct {
	Retrieval       retriever.Options
	PromptBudget    int
	PassageTrim     int
	HistoryTurns    int
	GenerateTimeout time.Duration
	TitleMax        int
	DailyChatLimit  int
}

// chatService coordinates the answering pipeline around its domain
// components. Persistence is all-or-nothing per exchange: the user turn is
// only written together with a successful assistant turn, so a session never
// shows an unanswered question.
type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	holder     *corpus.Holder

	retriever *retriever.Retriever
	assembler *prompt.Assembler
	generator *generate.Client
	sessions  *session.Manager
	locks     *session.Locks
	histories *history.Loader
	turns     *message.Factory
	quota     *access.Verifier
	stats     *dashboard.Aggregator

	retrieval retriever.Options
	sysLogger logger.ILogger
	ragLogger logger.ILogger
}

// NewChatService builds the chat service and its domain components.
// ragLogger is the isolated pipeline log; operational events go to sysLogger.
func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	holder *corpus.Holder,
	states *memory.SessionStateRepository,
	rdb *redis.Client,
	stats *dashboard.Aggregator,
	opts PipelineOptions,
	sysLogger logger.ILogger,
	ragLogger logger.ILogger,
) IChatService {
	retrieval := opts.Retrieval
	if retrieval.TopK <= 0 {
		retrieval = retriever.DefaultOptions()
	}

	return &chatService{
		uowFactory: uowFactory,
		holder:     holder,
		retriever:  retriever.NewRetriever(embeddingProvider, holder, ragLogger),
		assembler:  prompt.NewAssembler(opts.PromptBudget, opts.PassageTrim, ragLogger),
		generator:  generate.NewClient(llmProvider, opts.GenerateTimeout, ragLogger),
		sessions:   session.NewManager(states, opts.TitleMax),
		locks:      session.NewLocks(),
		histories:  history.NewLoader(uowFactory, opts.HistoryTurns),
		turns:      message.NewFactory(),
		quota:      access.NewVerifier(rdb, opts.DailyChatLimit, sysLogger),
		stats:      stats,
		retrieval:  retrieval,
		sysLogger:  sysLogger,
		ragLogger:  ragLogger,
	}
}

// SendChat runs one full exchange: quota, session resolution, retrieval,
// prompt assembly, generation, parsing and transactional persistence. The
// session lock is held for the whole span so concurrent requests on one
// session serialize.
func (s *chatService) SendChat(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	started := time.Now()

	if err := s.quota.VerifyDailyLimit(ctx, userId); err != nil {
		return nil, err
	}

	// A fresh session gets its id minted before locking so the whole
	// exchange, including creation, runs under the same lock.
	isNew := request.SessionId == nil
	sessionId := uuid.New()
	if !isNew {
		sessionId = *request.SessionId
	}

	release := s.locks.Acquire(sessionId)
	defer release()

	var existing *entity.ChatSession
	if !isNew {
		found, err := s.sessions.VerifyOwned(ctx, s.uowFactory.NewUnitOfWork(ctx), userId, sessionId)
		if err != nil {
			return nil, err
		}
		existing = found
	}

	// History holds the prior turns only; the current message is not
	// persisted yet and rides in the prompt's question slot.
	var priorTurns []llm.Message
	if !isNew {
		msgs, err := s.histories.Recent(ctx, sessionId)
		if err != nil {
			return nil, err
		}
		priorTurns = msgs
	}

	retrievalStart := time.Now()
	passages, err := s.retriever.Retrieve(ctx, request.Message, s.retrieval)
	if err != nil {
		return nil, err
	}
	retrievalDur := time.Since(retrievalStart)

	assembled, err := s.assembler.Assemble(prompt.Input{
		Query:    request.Message,
		Passages: passages,
		History:  priorTurns,
	})
	if err != nil {
		return nil, err
	}

	generationStart := time.Now()
	raw, err := s.generator.Generate(ctx, assembled.Text)
	generationDur := time.Since(generationStart)

	if err != nil {
		var genErr *dto.GenerationError
		if errors.As(err, &genErr) {
			return s.transientReply(userId, sessionId, existing, request.Message, passages, started, genErr)
		}
		return nil, err
	}

	var (
		meta     *entity.StructuredAnswer
		markdown string
		degraded bool
	)
	parsed, parseErr := answer.Parse(raw)
	switch {
	case parseErr != nil:
		// Fully empty generation: answer extractively from the retrieved
		// passages instead. Deterministic and grounded, so it is persisted.
		meta, markdown = answer.Fallback(request.Message, passages)
		degraded = true
		s.ragLogger.Warn("chat", "empty generation, extractive fallback persisted", map[string]interface{}{
			"session_id": sessionId.String(),
		})
	case !answer.HasStructure(parsed):
		// The model ignored the format. Surface its prose untouched, with no
		// structured metadata attached.
		markdown = strings.TrimSpace(raw)
		degraded = true
	default:
		answer.EnrichFromPassages(parsed, passages)
		meta = parsed
		markdown = answer.Compose(parsed)
	}

	latency := time.Since(started).Milliseconds()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	title := ""
	if isNew {
		now := started
		created := &entity.ChatSession{
			Id:        sessionId,
			UserId:    userId,
			Title:     s.sessions.TitleFromMessage(request.Message),
			CreatedAt: now,
			UpdatedAt: &now,
		}
		if err := uow.ChatSessionRepository().Create(ctx, created); err != nil {
			return nil, err
		}
		title = created.Title
	} else {
		title = existing.Title
	}

	userTurn := s.turns.NewUserTurn(sessionId, request.Message, started)
	assistantTurn := s.turns.NewAssistantTurn(sessionId, markdown, meta, latency, time.Now())
	if err := s.turns.SaveExchange(ctx, uow, &userTurn, &assistantTurn, passages); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.stats.RecordRequest(retrievalDur, generationDur)
	s.sessions.RememberTurn(sessionId, userId, request.Message, passageRefs(passages))
	s.ragLogger.Info("chat", "turn answered", map[string]interface{}{
		"session_id":    sessionId.String(),
		"passages":      len(passages),
		"prompt_runes":  assembled.Used,
		"history_turns": assembled.HistoryTurns,
		"retrieval_ms":  retrievalDur.Milliseconds(),
		"generation_ms": generationDur.Milliseconds(),
		"degraded":      degraded,
	})

	return &dto.SendChatResponse{
		SessionId: &sessionId,
		Title:     title,
		Markdown:  markdown,
		Metadata:  answerMetadataDTO(meta),
		Citations: citationDTOs(passages),
		LatencyMs: latency,
		Degraded:  degraded,
	}, nil
}

// transientReply answers a failed generation without persisting anything.
// When this query retrieved nothing, the previous turn's grounding (if its
// working memory survives) backs the extractive reply instead.
func (s *chatService) transientReply(userId, sessionId uuid.UUID, existing *entity.ChatSession, query string, passages []entity.RetrievedPassage, started time.Time, genErr *dto.GenerationError) (*dto.SendChatResponse, error) {
	if len(passages) == 0 {
		passages = s.passagesFromState(sessionId, userId)
	}
	meta, markdown := answer.Fallback(query, passages)

	s.ragLogger.Error("chat", "generation unavailable, transient reply served", map[string]interface{}{
		"session_id": sessionId.String(),
		"timeout":    genErr.Timeout,
		"error":      genErr.Error(),
	})

	resp := &dto.SendChatResponse{
		Markdown:  markdown,
		Metadata:  answerMetadataDTO(meta),
		Citations: citationDTOs(passages),
		LatencyMs: time.Since(started).Milliseconds(),
		Transient: true,
	}
	// A brand-new conversation was never persisted, so no session id is
	// returned for it; the client retries without one.
	if existing != nil {
		resp.SessionId = &existing.Id
		resp.Title = existing.Title
	}
	return resp, nil
}

// passagesFromState rebuilds retrieval results from the session's last
// answered turn. Citations referencing a since-rotated snapshot resolve to
// nothing and are skipped.
func (s *chatService) passagesFromState(sessionId, userId uuid.UUID) []entity.RetrievedPassage {
	state := s.sessions.State(sessionId)
	if state == nil || state.UserID != userId || len(state.LastCitations) == 0 {
		return nil
	}
	view, err := s.holder.Current()
	if err != nil {
		return nil
	}

	out := make([]entity.RetrievedPassage, 0, len(state.LastCitations))
	for _, ref := range state.LastCitations {
		entry, ok := view.Resolve(ref.PassageId)
		if !ok {
			continue
		}
		out = append(out, entity.RetrievedPassage{
			PassageId:    ref.PassageId,
			SourceTitle:  entry.SourceTitle,
			SectionLabel: entry.SectionLabel,
			Text:         entry.Text,
			Score:        ref.Score,
			Rank:         len(out) + 1,
		})
	}
	return out
}

// GetHistory lists the user's sessions grouped into recency buckets, newest
// first within each bucket.
func (s *chatService) GetHistory(ctx context.Context, userId uuid.UUID) (*dto.GetHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	return &dto.GetHistoryResponse{Buckets: BucketizeSessions(sessions, time.Now())}, nil
}

// GetSession returns one owned session with its full transcript, turns in
// chronological order and citations attached to their assistant turns.
func (s *chatService) GetSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.GetSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sess, err := s.sessions.VerifyOwned(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	turns, err := uow.ChatTurnRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
		specification.OrderBy{Field: "id", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	turnIds := make([]uuid.UUID, 0, len(turns))
	for _, t := range turns {
		turnIds = append(turnIds, t.Id)
	}

	citationsByTurn := make(map[uuid.UUID][]dto.CitationDTO)
	if len(turnIds) > 0 {
		citations, err := uow.ChatCitationRepository().FindAllByTurnIds(ctx, turnIds)
		if err != nil {
			return nil, err
		}
		for _, c := range citations {
			citationsByTurn[c.ChatTurnId] = append(citationsByTurn[c.ChatTurnId], dto.CitationDTO{
				PassageId:    c.PassageId,
				SourceTitle:  c.SourceTitle,
				SectionLabel: c.SectionLabel,
				Score:        c.Score,
				Rank:         c.Rank,
			})
		}
	}

	response := &dto.GetSessionResponse{
		Id:    sess.Id,
		Title: sess.Title,
		Turns: make([]dto.TurnResponse, 0, len(turns)),
	}
	for _, t := range turns {
		response.Turns = append(response.Turns, dto.TurnResponse{
			Id:        t.Id,
			Role:      t.Role,
			Content:   t.Content,
			Metadata:  answerMetadataDTO(t.Metadata),
			Citations: citationsByTurn[t.Id],
			CreatedAt: t.CreatedAt,
		})
	}
	return response, nil
}

// DeleteSession soft-deletes an owned session and drops its working memory.
// The transcript stays in place underneath the tombstone.
func (s *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	sess, err := s.sessions.VerifyOwned(ctx, uow, userId, sessionId)
	if err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sess.Id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.sessions.Forget(sessionId)
	return nil
}

func answerMetadataDTO(meta *entity.StructuredAnswer) *dto.AnswerMetadata {
	if meta == nil {
		return nil
	}
	return &dto.AnswerMetadata{
		ShortAnswer: meta.ShortAnswer,
		Tldr:        meta.Tldr,
		Sections:    meta.Sections,
		Penalties:   meta.Penalties,
		KeyPoints:   meta.KeyPoints,
		Examples:    meta.Examples,
		Detailed:    meta.Detailed,
	}
}

func citationDTOs(passages []entity.RetrievedPassage) []dto.CitationDTO {
	if len(passages) == 0 {
		return nil
	}
	out := make([]dto.CitationDTO, 0, len(passages))
	for _, p := range passages {
		out = append(out, dto.CitationDTO{
			PassageId:    p.PassageId,
			SourceTitle:  p.SourceTitle,
			SectionLabel: p.SectionLabel,
			Score:        p.Score,
			Rank:         p.Rank,
		})
	}
	return out
}

func passageRefs(passages []entity.RetrievedPassage) []store.PassageRef {
	if len(passages) == 0 {
		return nil
	}
	out := make([]store.PassageRef, 0, len(passages))
	for _, p := range passages {
		out = append(out, store.PassageRef{
			PassageId:    p.PassageId,
			SourceTitle:  p.SourceTitle,
			SectionLabel: p.SectionLabel,
			Score:        p.Score,
		})
	}
	return out
}
