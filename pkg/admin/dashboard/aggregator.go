package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/constant"
	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/internal/pkg/logger"
	"github.com/Prajankrish/Lex-AI/internal/repository/specification"
	"github.com/Prajankrish/Lex-AI/internal/repository/unitofwork"
)

// Aggregator collects pipeline timings in process memory and combines them
// with database totals for the admin stats endpoint. Timing counters reset
// on restart; the database totals do not.
type Aggregator struct {
	logger logger.ILogger

	mu              sync.Mutex
	requests        int64
	lastRetrieval   time.Duration
	lastGeneration  time.Duration
	totalRetrieval  time.Duration
	totalGeneration time.Duration
}

// NewAggregator creates a new dashboard aggregator
func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// RecordRequest folds one completed pipeline run into the running counters.
// Transient failures are not recorded; only runs that produced an answer
// (including degraded ones) count.
func (a *Aggregator) RecordRequest(retrieval, generation time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.requests++
	a.lastRetrieval = retrieval
	a.lastGeneration = generation
	a.totalRetrieval += retrieval
	a.totalGeneration += generation
}

// PipelineStats returns a snapshot of the in-memory timing counters.
func (a *Aggregator) PipelineStats() dto.PipelineStats {
	a.mu.Lock()
	defer a.mu.Unlock()

	stats := dto.PipelineStats{
		Requests:        a.requests,
		LastRetrievalS:  a.lastRetrieval.Seconds(),
		LastGenerationS: a.lastGeneration.Seconds(),
	}
	if a.requests > 0 {
		stats.AvgRetrievalS = a.totalRetrieval.Seconds() / float64(a.requests)
		stats.AvgGenerationS = a.totalGeneration.Seconds() / float64(a.requests)
	}
	return stats
}

// GetStats retrieves dashboard statistics: persistent totals from the
// database plus the in-memory pipeline counters. Corpus snapshot details
// are filled in by the caller, which owns the index holder.
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.AdminDashboardStats, error) {
	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	totalSessions, err := uow.ChatSessionRepository().Count(ctx, specification.NotDeleted{})
	if err != nil {
		return nil, err
	}

	totalTurns, err := uow.ChatTurnRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	totalAnswers, err := uow.ChatTurnRepository().Count(ctx, specification.ByRole{Role: constant.RoleAssistant})
	if err != nil {
		return nil, err
	}

	totalPassages, err := uow.PassageRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminDashboardStats{
		TotalUsers:    int(totalUsers),
		TotalSessions: int(totalSessions),
		TotalTurns:    int(totalTurns),
		TotalAnswers:  int(totalAnswers),
		TotalPassages: int(totalPassages),
		Pipeline:      a.PipelineStats(),
	}, nil
}

// GetSystemLogs retrieves entries from the given log store, newest first.
func (a *Aggregator) GetSystemLogs(ctx context.Context, loggerSvc logger.ILogger, page, limit int, level string) ([]*dto.LogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	logs, err := loggerSvc.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	var res []*dto.LogListResponse
	for _, l := range logs {
		ts, _ := time.Parse(time.RFC3339, l.Timestamp)
		res = append(res, &dto.LogListResponse{
			Id:        l.Id,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: ts,
		})
	}
	return res, nil
}

// GetLogDetail retrieves a single log entry
func (a *Aggregator) GetLogDetail(ctx context.Context, loggerSvc logger.ILogger, logId string) (*dto.LogDetailResponse, error) {
	l, err := loggerSvc.GetLogById(logId)
	if err != nil {
		return nil, err
	}

	ts, _ := time.Parse(time.RFC3339, l.Timestamp)

	return &dto.LogDetailResponse{
		LogListResponse: dto.LogListResponse{
			Id:        logId,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: ts,
		},
		Details: l.Details,
	}, nil
}
