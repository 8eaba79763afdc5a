package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one message in a session. Turns are append-only: they are never
// edited or reordered after creation.
type ChatTurn struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	Metadata      *StructuredAnswer
	LatencyMs     *int64
	CreatedAt     time.Time
}

// StructuredAnswer is the parsed view of an assistant turn. ShortAnswer is the
// only required field; an absent optional field means the model did not
// populate it, not that parsing failed.
type StructuredAnswer struct {
	ShortAnswer string   `json:"short_answer"`
	Tldr        *string  `json:"tldr,omitempty"`
	Sections    []string `json:"sections,omitempty"`
	Penalties   []string `json:"penalties,omitempty"`
	KeyPoints   []string `json:"key_points,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	Detailed    *string  `json:"detailed,omitempty"`
}
