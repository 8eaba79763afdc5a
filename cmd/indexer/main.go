package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/bootstrap"
	"github.com/Prajankrish/Lex-AI/internal/config"
	"github.com/Prajankrish/Lex-AI/internal/repository/unitofwork"
	"github.com/Prajankrish/Lex-AI/internal/service"
	"github.com/Prajankrish/Lex-AI/pkg/database"
	pktNats "github.com/Prajankrish/Lex-AI/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/fatih/color"
)

func main() {
	corpusDir := flag.String("corpus", "./corpus", "directory of corpus .jsonl files")
	label := flag.String("label", "", "snapshot label (defaults to a timestamp)")
	workers := flag.Int("workers", 0, "embed workers (defaults to INDEX_WORKERS)")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall build timeout")
	flag.Parse()

	cfg := config.Load()

	if *label == "" {
		*label = "corpus-" + time.Now().Format("20060102-150405")
	}
	if *workers <= 0 {
		*workers = cfg.Limits.IndexWorkers
	}

	color.Cyan("⚖️  Lex-AI Corpus Indexer")
	color.White("corpus=%s label=%s workers=%d", *corpusDir, *label, *workers)

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)

	embeddingProvider := bootstrap.NewEmbeddingProvider(cfg)

	// In-process embed queue. Workers must be consuming before the
	// coordinator publishes, or gochannel drops the jobs.
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.EmbedTopic, *workers, uowFactory, embeddingProvider)

	ctx := context.Background()
	if err := consumerService.Consume(ctx); err != nil {
		log.Fatalf("Failed to start embed workers: %v", err)
	}

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		color.Yellow("NATS unavailable, running servers will not auto-reload: %v", err)
		natsPub = nil
	}

	progress := func(indexed, expected int) {
		fmt.Printf("\r%s %d/%d passages embedded", color.GreenString("▸"), indexed, expected)
	}

	indexer := service.NewIndexerService(uowFactory, publisherService, natsPub, embeddingProvider, *timeout, progress)

	res, err := indexer.BuildSnapshot(ctx, *corpusDir, *label)
	fmt.Println()
	if err != nil {
		color.Red("Build failed: %v", err)
		os.Exit(1)
	}

	color.Green("✅ Snapshot %s published", res.SnapshotId)
	color.White("   label=%s documents=%d passages=%d skipped_lines=%d elapsed=%s",
		res.Label, res.Documents, res.Passages, res.SkippedLines, res.Elapsed.Round(time.Millisecond))
}
