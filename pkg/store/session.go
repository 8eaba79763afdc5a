package store

import (
	"time"

	"github.com/google/uuid"
)

// PassageRef identifies a passage that grounded an earlier turn, kept light
// so the state stays cheap to copy.
type PassageRef struct {
	PassageId    uuid.UUID `json:"passage_id"`
	SourceTitle  string    `json:"source_title"`
	SectionLabel string    `json:"section_label,omitempty"`
	Score        float32   `json:"score"`
}

// SessionState is the ephemeral, per-session working memory of the pipeline.
// It is keyed by session id and never shared across sessions; losing it is
// harmless (everything durable lives in the session store). Its one consumer
// beyond diagnostics is the "assistant unavailable" fallback, which uses the
// previous turn's grounding when the current query retrieved nothing.
type SessionState struct {
	ID            uuid.UUID    `json:"id"` // ChatSessionID
	UserID        uuid.UUID    `json:"user_id"`
	LastQuery     string       `json:"last_query"`
	LastCitations []PassageRef `json:"last_citations"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
