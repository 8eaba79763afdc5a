package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	Message   string     `json:"message" validate:"required,max=4000"`
	SessionId *uuid.UUID `json:"session_id,omitempty"`
}

// AnswerMetadata is the structured view of an assistant answer. Every field
// except ShortAnswer is optional; absence means the model did not populate it.
type AnswerMetadata struct {
	ShortAnswer string   `json:"short_answer"`
	Tldr        *string  `json:"tldr,omitempty"`
	Sections    []string `json:"sections,omitempty"`
	Penalties   []string `json:"penalties,omitempty"`
	KeyPoints   []string `json:"key_points,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	Detailed    *string  `json:"detailed,omitempty"`
}

type CitationDTO struct {
	PassageId    uuid.UUID `json:"passage_id"`
	SourceTitle  string    `json:"source_title"`
	SectionLabel string    `json:"section_label,omitempty"`
	Score        float32   `json:"score"`
	Rank         int       `json:"rank"`
}

type SendChatResponse struct {
	// SessionId is absent on a transient reply for a conversation that was
	// never persisted; the client retries without one.
	SessionId *uuid.UUID      `json:"session_id,omitempty"`
	Title     string          `json:"title,omitempty"`
	Markdown  string          `json:"markdown"`
	Metadata  *AnswerMetadata `json:"metadata,omitempty"`
	Citations []CitationDTO   `json:"citations,omitempty"`
	LatencyMs int64           `json:"latency_ms"`
	// Degraded marks an answer built from raw model text because no structure
	// could be parsed out of it.
	Degraded bool `json:"degraded,omitempty"`
	// Transient marks an "assistant unavailable" reply that was not persisted.
	Transient bool `json:"transient,omitempty"`
}

type SessionSummaryResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryBucket groups session summaries by recency for sidebar display.
// Label is one of "today", "yesterday", "previous_7_days", "older".
type HistoryBucket struct {
	Label    string                   `json:"label"`
	Sessions []SessionSummaryResponse `json:"sessions"`
}

type GetHistoryResponse struct {
	Buckets []HistoryBucket `json:"buckets"`
}

type TurnResponse struct {
	Id        uuid.UUID       `json:"id"`
	Role      string          `json:"role"`
	Content   string          `json:"content"`
	Metadata  *AnswerMetadata `json:"metadata,omitempty"`
	Citations []CitationDTO   `json:"citations,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type GetSessionResponse struct {
	Id    uuid.UUID      `json:"id"`
	Title string         `json:"title"`
	Turns []TurnResponse `json:"turns"`
}

// --- Limit Exceeded Error Types ---

// LimitExceededError is a custom error that carries usage details
type LimitExceededError struct {
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

func (e *LimitExceededError) Error() string {
	return "daily chat limit exceeded"
}
