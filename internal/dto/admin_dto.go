package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Dashboard ---

// PipelineStats mirrors the in-process counters kept by the dashboard
// aggregator. Durations are reported in seconds.
type PipelineStats struct {
	Requests        int64   `json:"requests"`
	LastRetrievalS  float64 `json:"last_retrieval_s"`
	AvgRetrievalS   float64 `json:"avg_retrieval_s"`
	LastGenerationS float64 `json:"last_generation_s"`
	AvgGenerationS  float64 `json:"avg_generation_s"`
}

// CorpusStats describes the snapshot currently serving retrieval.
type CorpusStats struct {
	Ready        bool       `json:"ready"`
	SnapshotId   *uuid.UUID `json:"snapshot_id,omitempty"`
	Label        string     `json:"label,omitempty"`
	PassageCount int        `json:"passage_count"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
}

type AdminDashboardStats struct {
	TotalUsers    int           `json:"total_users"`
	TotalSessions int           `json:"total_sessions"`
	TotalTurns    int           `json:"total_turns"`
	TotalAnswers  int           `json:"total_answers"`
	TotalPassages int           `json:"total_passages"`
	Pipeline      PipelineStats `json:"pipeline"`
	Corpus        CorpusStats   `json:"corpus"`
}

// --- Corpus Management ---

type ReloadCorpusResponse struct {
	SnapshotId   uuid.UUID `json:"snapshot_id"`
	Label        string    `json:"label"`
	PassageCount int       `json:"passage_count"`
	ReloadedAt   time.Time `json:"reloaded_at"`
}

// --- System Logs ---

type AdminLogListRequest struct {
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
	Level string `query:"level"`
}
