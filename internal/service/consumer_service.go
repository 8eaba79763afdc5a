// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/internal/entity"
	"github.com/Prajankrish/Lex-AI/internal/repository/specification"
	"github.com/Prajankrish/Lex-AI/internal/repository/unitofwork"
	"github.com/Prajankrish/Lex-AI/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	workers           int
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

// NewConsumerService builds the embed worker pool. The gochannel topic is
// subscribed once; workers share the one delivery channel, so each message
// lands on exactly one worker.
func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	workers int,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	if workers < 1 {
		workers = 1
	}
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		workers:           workers,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	for i := 0; i < cs.workers; i++ {
		go func() {
			for msg := range messages {
				cs.processMessage(ctx, msg)
			}
		}()
	}

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedPassagesMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal embed message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}
	if len(payload.Seeds) == 0 {
		msg.Ack()
		return
	}

	log.Printf("[INFO] Embedding %d chunks of %q (%s)", len(payload.Seeds), payload.SourceTitle, payload.SectionLabel)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	snapshot, err := uow.CorpusSnapshotRepository().FindOne(ctx, specification.ByID{ID: payload.SnapshotId})
	if err != nil {
		log.Printf("[ERROR] Failed to get snapshot %s: %v", payload.SnapshotId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if snapshot == nil {
		log.Printf("[ERROR] Snapshot not found: %s", payload.SnapshotId)
		msg.Ack() // Build abandoned? Ack.
		return
	}
	if snapshot.Status != entity.CorpusSnapshotStatusDraft {
		log.Printf("[WARN] Snapshot %s is %s, dropping stale embed job", snapshot.Id, snapshot.Status)
		msg.Ack()
		return
	}

	var passages []*entity.Passage
	for _, seed := range payload.Seeds {
		res, err := cs.embeddingProvider.Generate(seed.Text, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk seq=%d of %q: %v", seed.Seq, payload.SourceTitle, err)
			msg.Nack()
			return
		}

		passages = append(passages, &entity.Passage{
			Id:           uuid.New(),
			SnapshotId:   payload.SnapshotId,
			Seq:          seed.Seq,
			SourceTitle:  payload.SourceTitle,
			SectionLabel: payload.SectionLabel,
			Text:         seed.Text,
			Embedding:    res.Embedding.Values,
			CreatedAt:    time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.PassageRepository().CreateBulk(ctx, passages); err != nil {
		log.Printf("[ERROR] Failed to create passages: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Indexed %d passages for %q", len(passages), payload.SourceTitle)
	msg.Ack()
}
