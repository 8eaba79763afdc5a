package bootstrap

import (
	"context"
	"log"

	"github.com/Prajankrish/Lex-AI/internal/config"
	"github.com/Prajankrish/Lex-AI/internal/controller"
	"github.com/Prajankrish/Lex-AI/internal/pkg/logger"
	"github.com/Prajankrish/Lex-AI/internal/repository/memory"
	"github.com/Prajankrish/Lex-AI/internal/repository/unitofwork"
	"github.com/Prajankrish/Lex-AI/internal/service"
	"github.com/Prajankrish/Lex-AI/pkg/admin/dashboard"
	"github.com/Prajankrish/Lex-AI/pkg/embedding"
	"github.com/Prajankrish/Lex-AI/pkg/embedding/jina"
	"github.com/Prajankrish/Lex-AI/pkg/events"
	"github.com/Prajankrish/Lex-AI/pkg/llm/factory"
	"github.com/Prajankrish/Lex-AI/pkg/rag/corpus"
	"github.com/Prajankrish/Lex-AI/pkg/rag/retriever"

	pktNats "github.com/Prajankrish/Lex-AI/pkg/nats"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController  controller.IChatController
	AdminController controller.IAdminController

	// Shared infrastructure (server health checks, shutdown)
	DB        *gorm.DB
	Holder    *corpus.Holder
	SysLogger logger.ILogger
	RagLogger logger.ILogger
	NatsSub   *pktNats.Subscriber
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	ragLogger := logger.NewIsolatedLogger(cfg.App.RagLogFilePath)

	// 2. AI Providers
	embeddingProvider := NewEmbeddingProvider(cfg)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL(cfg),
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory per-session conversational state
	sessionStates := memory.NewSessionStateRepository(cfg.Limits.SessionStateTTL)

	// 3. Infrastructure
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 4. Corpus Index
	// The server starts even without a published snapshot; the chat endpoint
	// answers 503 until an index build lands and triggers a reload.
	holder := corpus.NewHolder()
	loader := corpus.NewLoader(uowFactory, sysLogger)
	if err := loader.Reload(context.Background(), holder); err != nil {
		log.Printf("[WARN] Corpus index not loaded: %v", err)
	}

	if natsSub != nil {
		subject := "events." + events.EventTypeCorpusPublished
		err := natsSub.Subscribe(subject, "api_corpus_reload", func(ctx context.Context, evt events.Event) error {
			log.Printf("[INFO] Corpus snapshot published, reloading index: %v", evt.Payload()["snapshot_id"])
			return loader.Reload(ctx, holder)
		})
		if err != nil {
			log.Printf("[WARN] Failed to subscribe to corpus events: %v", err)
		}
	}

	// 5. Services
	dashboardAggregator := dashboard.NewAggregator(sysLogger)

	chatService := service.NewChatService(
		uowFactory,
		embeddingProvider,
		llmProvider,
		holder,
		sessionStates,
		rdb,
		dashboardAggregator,
		service.PipelineOptions{
			Retrieval: retriever.Options{
				TopK:       cfg.Retrieval.TopK,
				MinScore:   cfg.Retrieval.MinScore,
				Oversample: cfg.Retrieval.Oversample,
			},
			PromptBudget:    cfg.Retrieval.PromptBudgetChars,
			PassageTrim:     cfg.Retrieval.PassageTrimChars,
			HistoryTurns:    cfg.Retrieval.HistoryMaxTurns,
			GenerateTimeout: cfg.Ai.LLMTimeout,
			TitleMax:        cfg.Limits.SessionTitleMax,
			DailyChatLimit:  cfg.Limits.DailyChatLimit,
		},
		sysLogger,
		ragLogger,
	)

	adminService := service.NewAdminService(
		uowFactory,
		sysLogger,
		ragLogger,
		dashboardAggregator,
		holder,
		loader,
	)

	// 6. Controllers
	return &Container{
		ChatController:  controller.NewChatController(chatService),
		AdminController: controller.NewAdminController(adminService),

		DB:        db,
		Holder:    holder,
		SysLogger: sysLogger,
		RagLogger: ragLogger,
		NatsSub:   natsSub,
	}
}

// NewEmbeddingProvider selects the embedder from config. cmd/indexer shares
// this so the offline build embeds with the same model the server queries
// with.
func NewEmbeddingProvider(cfg *config.Config) embedding.EmbeddingProvider {
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel, cfg.Ai.EmbedMaxChars)
	case "jina":
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
		return jina.NewJinaProvider(cfg.Keys.Jina, cfg.Ai.EmbedMaxChars)
	default:
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
		return embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.EmbedMaxChars)
	}
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMBaseURL != "" {
		return cfg.Ai.LLMBaseURL
	}
	return cfg.Ai.OllamaBaseURL
}
