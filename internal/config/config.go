package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Retrieval RetrievalConfig
	Limits    LimitsConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	RagLogFilePath     string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
	Jina         string
	EmbedTopic   string // embed fan-out topic
}

type AIConfig struct {
	EmbeddingProvider string // "gemini", "ollama" or "jina"
	EmbeddingModel    string
	EmbedMaxChars     int
	OllamaBaseURL     string
	LLMProvider       string // "ollama" or "huggingface"
	LLMModel          string
	LLMBaseURL        string
	LLMTimeout        time.Duration
}

// RetrievalConfig carries the answering pipeline tunables.
type RetrievalConfig struct {
	TopK              int
	MinScore          float64
	Oversample        int
	PromptBudgetChars int
	PassageTrimChars  int
	HistoryMaxTurns   int
}

type LimitsConfig struct {
	SessionTitleMax int
	DailyChatLimit  int // 0 disables the quota
	SessionStateTTL time.Duration
	IndexWorkers    int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			RagLogFilePath:     getEnv("RAG_LOG_FILE_PATH", "rag.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
			Jina:         getEnv("JINA_API_KEY", ""),
			EmbedTopic:   getEnv("EMBED_PASSAGE_TOPIC_NAME", "EMBED_PASSAGE"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			EmbedMaxChars:     getEnvAsInt("EMBED_MAX_CHARS", 8000),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "phi3:latest"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			LLMTimeout:        time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Retrieval: RetrievalConfig{
			TopK:              getEnvAsInt("RETRIEVAL_TOP_K", 5),
			MinScore:          getEnvAsFloat("RETRIEVAL_MIN_SCORE", 0.35),
			Oversample:        getEnvAsInt("RETRIEVAL_OVERSAMPLE", 3),
			PromptBudgetChars: getEnvAsInt("PROMPT_BUDGET_CHARS", 6000),
			PassageTrimChars:  getEnvAsInt("PASSAGE_TRIM_CHARS", 1200),
			HistoryMaxTurns:   getEnvAsInt("HISTORY_MAX_TURNS", 10),
		},
		Limits: LimitsConfig{
			SessionTitleMax: getEnvAsInt("SESSION_TITLE_MAX", 40),
			DailyChatLimit:  getEnvAsInt("DAILY_CHAT_LIMIT", 200),
			SessionStateTTL: getEnvAsDuration("SESSION_STATE_TTL", time.Hour),
			IndexWorkers:    getEnvAsInt("INDEX_WORKERS", 4),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
