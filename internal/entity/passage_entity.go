package entity

import (
	"time"

	"github.com/google/uuid"
)

// Passage is one citable unit of indexed legal text. Passages are immutable
// once indexed; Seq preserves insertion order within a snapshot and is the
// deterministic tie-break for equal similarity scores.
type Passage struct {
	Id           uuid.UUID
	SnapshotId   uuid.UUID
	Seq          int
	SourceTitle  string
	SectionLabel string
	Text         string
	Embedding    []float32
	CreatedAt    time.Time
}

// SectionKey is the deduplication key for retrieval: passages from the same
// section of the same source collapse to the best-scoring one. Unlabeled
// passages never collapse with each other.
func SectionKey(sourceTitle, sectionLabel string, id uuid.UUID) string {
	if sectionLabel == "" {
		return sourceTitle + "§" + id.String()
	}
	return sourceTitle + "§" + sectionLabel
}

func (p *Passage) SectionKey() string {
	return SectionKey(p.SourceTitle, p.SectionLabel, p.Id)
}

// RetrievedPassage is a passage resolved by retrieval, ordered descending by
// Score with Rank starting at 1.
type RetrievedPassage struct {
	PassageId    uuid.UUID
	SourceTitle  string
	SectionLabel string
	Text         string
	Score        float32
	Rank         int
}
