// FILE: internal/service/indexer_service.go
package service

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/Prajankrish/Lex-AI/internal/repository/specification"
	"github.com/Prajankrish/Lex-AI/internal/repository/unitofwork"
	"github.com/Prajankrish/Lex-AI/pkg/embedding"
	"github.com/Prajankrish/Lex-AI/pkg/events"
	pktNats "github.com/Prajankrish/Lex-AI/pkg/nats"
	"github.com/Prajankrish/Lex-AI/pkg/utils"

	"github.com/google/uuid"
)

const (
	// Chunk geometry for statute text. 1500 runes is roughly 375 tokens,
	// well inside every embedding model's window.
	indexChunkSize    = 1500
	indexChunkOverlap = 200

	indexPollInterval = 500 * time.Millisecond
)

type IIndexerService interface {
	BuildSnapshot(ctx context.Context, corpusDir string, label string) (*dto.BuildSnapshotResult, error)
}

type indexerService struct {
	uowFactory        unitofwork.RepositoryFactory
	publisherService  IPublisherService
	eventPublisher    *pktNats.Publisher
	embeddingProvider embedding.EmbeddingProvider
	buildTimeout      time.Duration
	onProgress        func(indexed, expected int)
}

// NewIndexerService builds the offline snapshot coordinator. eventPublisher
// and onProgress may be nil; the NATS event and progress reporting are then
// skipped.
func NewIndexerService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	embeddingProvider embedding.EmbeddingProvider,
	buildTimeout time.Duration,
	onProgress func(indexed, expected int),
) IIndexerService {
	if buildTimeout <= 0 {
		buildTimeout = 30 * time.Minute
	}
	return &indexerService{
		uowFactory:        uowFactory,
		publisherService:  publisherService,
		eventPublisher:    eventPublisher,
		embeddingProvider: embeddingProvider,
		buildTimeout:      buildTimeout,
		onProgress:        onProgress,
	}
}

// BuildSnapshot runs one full indexing pass: read the corpus, create a draft
// snapshot, fan the chunks out to the embed workers, wait for all passages to
// land, verify with a similarity probe, then flip the snapshot to published
// and announce it. The draft stays invisible to the serving path throughout.
func (s *indexerService) BuildSnapshot(ctx context.Context, corpusDir string, label string) (*dto.BuildSnapshotResult, error) {
	started := time.Now()

	docs, skipped, err := s.loadCorpus(corpusDir)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no corpus documents under %s", corpusDir)
	}

	snapshot := &entity.CorpusSnapshot{
		Id:        uuid.New(),
		Label:     label,
		Status:    entity.CorpusSnapshotStatusDraft,
		CreatedAt: time.Now(),
	}

	messages, expected := s.planJobs(snapshot.Id, docs)
	if expected == 0 {
		return nil, fmt.Errorf("corpus under %s contains no usable text", corpusDir)
	}

	if err := s.createDraft(ctx, snapshot); err != nil {
		return nil, err
	}
	log.Printf("[INFO] Draft snapshot %s: %d documents, %d chunks", snapshot.Id, len(docs), expected)

	for _, msg := range messages {
		payload, err := json.Marshal(msg)
		if err != nil {
			return nil, err
		}
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			return nil, err
		}
	}

	indexed, err := s.awaitPassages(ctx, snapshot.Id, expected)
	if err != nil {
		s.abandonDraft(snapshot.Id)
		return nil, err
	}

	if err := s.verifyProbe(ctx, snapshot.Id, docs[0].Text); err != nil {
		s.abandonDraft(snapshot.Id)
		return nil, err
	}

	if err := s.publishSnapshot(ctx, snapshot, indexed); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewCorpusPublishedEvent(snapshot.Id.String(), snapshot.Label, indexed)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish corpus event: %v", err)
		}
	}

	return &dto.BuildSnapshotResult{
		SnapshotId:   snapshot.Id,
		Label:        snapshot.Label,
		Documents:    len(docs),
		Passages:     indexed,
		SkippedLines: skipped,
		Elapsed:      time.Since(started),
	}, nil
}

// loadCorpus reads every .jsonl file under dir in name order. Malformed or
// empty lines are skipped and counted, not fatal.
func (s *indexerService) loadCorpus(dir string) ([]dto.CorpusDocument, int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.jsonl"))
	if err != nil {
		return nil, 0, err
	}
	if len(files) == 0 {
		return nil, 0, fmt.Errorf("no .jsonl files under %s", dir)
	}
	sort.Strings(files)

	var docs []dto.CorpusDocument
	skipped := 0
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, 0, err
		}

		scanner := bufio.NewScanner(f)
		// Full statute articles can run far past the default 64K line limit.
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			var doc dto.CorpusDocument
			if err := json.Unmarshal([]byte(line), &doc); err != nil {
				log.Printf("[WARN] %s:%d: skipping malformed line: %v", filepath.Base(path), lineNo, err)
				skipped++
				continue
			}
			if strings.TrimSpace(doc.Text) == "" {
				skipped++
				continue
			}
			if doc.SourceTitle == "" {
				doc.SourceTitle = strings.TrimSuffix(filepath.Base(path), ".jsonl")
			}
			docs = append(docs, doc)
		}

		scanErr := scanner.Err()
		f.Close()
		if scanErr != nil {
			return nil, 0, scanErr
		}
	}
	return docs, skipped, nil
}

// planJobs chunks every document and assigns snapshot-global sequence
// numbers in corpus order. One message per document keeps a section's chunks
// on the same worker.
func (s *indexerService) planJobs(snapshotId uuid.UUID, docs []dto.CorpusDocument) ([]dto.PublishEmbedPassagesMessage, int) {
	var messages []dto.PublishEmbedPassagesMessage
	seq := 0
	for _, doc := range docs {
		msg := dto.PublishEmbedPassagesMessage{
			SnapshotId:   snapshotId,
			SourceTitle:  doc.SourceTitle,
			SectionLabel: doc.SectionLabel,
		}
		for _, chunk := range utils.SplitText(doc.Text, indexChunkSize, indexChunkOverlap) {
			chunk = strings.TrimSpace(chunk)
			if chunk == "" {
				continue
			}
			msg.Seeds = append(msg.Seeds, dto.PassageSeed{Seq: seq, Text: chunk})
			seq++
		}
		if len(msg.Seeds) > 0 {
			messages = append(messages, msg)
		}
	}
	return messages, seq
}

func (s *indexerService) createDraft(ctx context.Context, snapshot *entity.CorpusSnapshot) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.CorpusSnapshotRepository().Create(ctx, snapshot); err != nil {
		return err
	}
	return uow.Commit()
}

// awaitPassages polls the passage count until every expected chunk has been
// embedded and stored, or the build deadline passes.
func (s *indexerService) awaitPassages(ctx context.Context, snapshotId uuid.UUID, expected int) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	deadline := time.Now().Add(s.buildTimeout)

	for {
		count, err := uow.PassageRepository().Count(ctx, specification.BySnapshotID{SnapshotID: snapshotId})
		if err != nil {
			return 0, err
		}
		if s.onProgress != nil {
			s.onProgress(int(count), expected)
		}
		if int(count) >= expected {
			return int(count), nil
		}
		if time.Now().After(deadline) {
			return 0, fmt.Errorf("indexing timed out with %d of %d passages embedded", count, expected)
		}

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(indexPollInterval):
		}
	}
}

// verifyProbe embeds a sample of the corpus and runs one DB-side similarity
// search against the draft. A build whose own text cannot be found is broken
// and must not be published.
func (s *indexerService) verifyProbe(ctx context.Context, snapshotId uuid.UUID, sampleText string) error {
	probe := sampleText
	if runes := []rune(probe); len(runes) > 200 {
		probe = string(runes[:200])
	}

	res, err := s.embeddingProvider.Generate(probe, embedding.TaskRetrievalQuery)
	if err != nil {
		return fmt.Errorf("verification embed failed: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	hits, err := uow.PassageRepository().SearchSimilarWithScore(ctx, res.Embedding.Values, 1, snapshotId, 0.1)
	if err != nil {
		return fmt.Errorf("verification search failed: %w", err)
	}
	if len(hits) == 0 {
		return fmt.Errorf("verification probe matched no passages")
	}

	log.Printf("[INFO] Probe matched %q with similarity %.3f", hits[0].Passage.SourceTitle, hits[0].Similarity)
	return nil
}

func (s *indexerService) publishSnapshot(ctx context.Context, snapshot *entity.CorpusSnapshot, passageCount int) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	now := time.Now()
	snapshot.Status = entity.CorpusSnapshotStatusPublished
	snapshot.PassageCount = passageCount
	snapshot.PublishedAt = &now

	if err := uow.CorpusSnapshotRepository().Update(ctx, snapshot); err != nil {
		return err
	}
	return uow.Commit()
}

// abandonDraft clears the passages of a failed build. The draft row itself
// stays; it is never visible to the serving path. Cleanup runs on its own
// context so it still works when the build was cancelled.
func (s *indexerService) abandonDraft(snapshotId uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PassageRepository().DeleteBySnapshotId(ctx, snapshotId); err != nil {
		log.Printf("[WARN] Failed to clear passages of abandoned draft %s: %v", snapshotId, err)
	}
}
