// FILE: internal/dto/indexer_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// CorpusDocument is one line of a corpus JSONL file.
type CorpusDocument struct {
	SourceTitle  string `json:"source_title"`
	SectionLabel string `json:"section_label"`
	Text         string `json:"text"`
}

// PassageSeed is one chunk of a document with its snapshot-global sequence
// number already assigned. Workers may finish out of order; Seq carries the
// corpus order regardless.
type PassageSeed struct {
	Seq  int    `json:"seq"`
	Text string `json:"text"`
}

// PublishEmbedPassagesMessage is the embed-queue payload: one document's
// chunks, fanned out to the embedding workers.
type PublishEmbedPassagesMessage struct {
	SnapshotId   uuid.UUID     `json:"snapshot_id"`
	SourceTitle  string        `json:"source_title"`
	SectionLabel string        `json:"section_label"`
	Seeds        []PassageSeed `json:"seeds"`
}

// BuildSnapshotResult summarizes a completed indexing run.
type BuildSnapshotResult struct {
	SnapshotId   uuid.UUID     `json:"snapshot_id"`
	Label        string        `json:"label"`
	Documents    int           `json:"documents"`
	Passages     int           `json:"passages"`
	SkippedLines int           `json:"skipped_lines"`
	Elapsed      time.Duration `json:"elapsed"`
}
