package service

import (
	"context"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/internal/pkg/logger"
	"github.com/Prajankrish/Lex-AI/internal/repository/unitofwork"
	"github.com/Prajankrish/Lex-AI/pkg/admin/dashboard"
	"github.com/Prajankrish/Lex-AI/pkg/rag/corpus"
)

type IAdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error)

	// Logs
	GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error)
	GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error)

	// Corpus Management
	ReloadCorpus(ctx context.Context) (*dto.ReloadCorpusResponse, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	ragLogger  logger.ILogger

	// Domain Components
	dashboardAggregator *dashboard.Aggregator
	holder              *corpus.Holder
	loader              *corpus.Loader
}

// NewAdminService wires the admin surface. The log endpoints read from
// ragLogger, the isolated pipeline log, not from the system log.
func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	ragLogger logger.ILogger,
	dashboardAggregator *dashboard.Aggregator,
	holder *corpus.Holder,
	loader *corpus.Loader,
) IAdminService {
	return &adminService{
		uowFactory:          uowFactory,
		logger:              logger,
		ragLogger:           ragLogger,
		dashboardAggregator: dashboardAggregator,
		holder:              holder,
		loader:              loader,
	}
}

// ============================================================================
// Dashboard & Stats
// ============================================================================

func (s *adminService) GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stats, err := s.dashboardAggregator.GetStats(ctx, uow)
	if err != nil {
		return nil, err
	}
	stats.Corpus = s.corpusStats()
	return stats, nil
}

func (s *adminService) corpusStats() dto.CorpusStats {
	view, err := s.holder.Current()
	if err != nil {
		return dto.CorpusStats{Ready: false}
	}

	snapshotId := view.SnapshotId()
	publishedAt := view.PublishedAt()
	return dto.CorpusStats{
		Ready:        true,
		SnapshotId:   &snapshotId,
		Label:        view.Label(),
		PassageCount: view.PassageCount(),
		PublishedAt:  &publishedAt,
	}
}

// ============================================================================
// System Logs
// ============================================================================

func (s *adminService) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error) {
	return s.dashboardAggregator.GetSystemLogs(ctx, s.ragLogger, page, limit, level)
}

func (s *adminService) GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error) {
	return s.dashboardAggregator.GetLogDetail(ctx, s.ragLogger, logId)
}

// ============================================================================
// Corpus Management
// ============================================================================

// ReloadCorpus rebuilds the in-memory view from the latest published
// snapshot and swaps it in. Requests in flight keep the old view.
func (s *adminService) ReloadCorpus(ctx context.Context) (*dto.ReloadCorpusResponse, error) {
	if err := s.loader.Reload(ctx, s.holder); err != nil {
		return nil, err
	}

	view, err := s.holder.Current()
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin", "corpus reloaded", map[string]interface{}{
		"snapshot_id":   view.SnapshotId().String(),
		"label":         view.Label(),
		"passage_count": view.PassageCount(),
	})

	return &dto.ReloadCorpusResponse{
		SnapshotId:   view.SnapshotId(),
		Label:        view.Label(),
		PassageCount: view.PassageCount(),
		ReloadedAt:   time.Now(),
	}, nil
}
