package corpus

import (
	"context"
	"fmt"

	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/internal/pkg/logger"
	"github.com/Prajankrish/Lex-AI/internal/repository/specification"
	"github.com/Prajankrish/Lex-AI/internal/repository/unitofwork"
	"github.com/Prajankrish/Lex-AI/pkg/rag/index"

	"github.com/google/uuid"
)

// Loader builds a View from the latest published snapshot in Postgres. It
// runs at bootstrap, on the corpus-published event, and on the admin reload
// endpoint; never on the request path.
type Loader struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewLoader(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) *Loader {
	return &Loader{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Load reads the newest published snapshot and its passages in seq order.
// Returns dto.IndexNotReadyError when the corpus has never been indexed.
func (l *Loader) Load(ctx context.Context) (*View, error) {
	uow := l.uowFactory.NewUnitOfWork(ctx)

	snapshot, err := uow.CorpusSnapshotRepository().FindLatestPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("find latest published snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, &dto.IndexNotReadyError{}
	}

	passages, err := uow.PassageRepository().FindAll(ctx,
		specification.BySnapshotID{SnapshotID: snapshot.Id},
		specification.OrderBy{Field: "seq"},
	)
	if err != nil {
		return nil, fmt.Errorf("load passages for snapshot %s: %w", snapshot.Id, err)
	}

	entries := make([]index.Entry, 0, len(passages))
	catalog := make(map[uuid.UUID]CatalogEntry, len(passages))
	for _, p := range passages {
		entries = append(entries, index.Entry{
			Id:     p.Id,
			Vector: p.Embedding,
			Meta: index.PassageMeta{
				SourceTitle:  p.SourceTitle,
				SectionLabel: p.SectionLabel,
				Seq:          p.Seq,
			},
		})
		catalog[p.Id] = CatalogEntry{
			SourceTitle:  p.SourceTitle,
			SectionLabel: p.SectionLabel,
			Text:         p.Text,
			Seq:          p.Seq,
		}
	}

	idx, err := index.NewSnapshot(snapshot.Id, snapshot.Label, entries)
	if err != nil {
		return nil, fmt.Errorf("build index for snapshot %s: %w", snapshot.Id, err)
	}

	publishedAt := snapshot.CreatedAt
	if snapshot.PublishedAt != nil {
		publishedAt = *snapshot.PublishedAt
	}

	l.logger.Info("corpus", "corpus view loaded", map[string]interface{}{
		"snapshot_id": snapshot.Id.String(),
		"label":       snapshot.Label,
		"passages":    len(passages),
		"dimension":   idx.Dim(),
	})

	return NewView(idx, snapshot.Id, snapshot.Label, publishedAt, catalog), nil
}

// Reload loads the latest view and swaps it into the holder.
func (l *Loader) Reload(ctx context.Context, holder *Holder) error {
	view, err := l.Load(ctx)
	if err != nil {
		return err
	}
	holder.Swap(view)
	return nil
}
