package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	CorpusSnapshotStatusDraft     = "draft"
	CorpusSnapshotStatusPublished = "published"
)

// CorpusSnapshot is one versioned, immutable build of the indexed corpus.
// The serving index only ever reads the latest published snapshot; drafts
// belong to an in-progress indexing run.
type CorpusSnapshot struct {
	Id           uuid.UUID
	Label        string
	Status       string
	PassageCount int
	CreatedAt    time.Time
	PublishedAt  *time.Time
}
