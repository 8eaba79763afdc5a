package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Passage rows are immutable once their snapshot is published. Seq preserves
// insertion order inside the snapshot; the serving index relies on it for
// deterministic tie-breaks.
type Passage struct {
	Id           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SnapshotId   uuid.UUID       `gorm:"type:uuid;not null;index:idx_passages_snapshot_seq,priority:1"`
	Seq          int             `gorm:"not null;index:idx_passages_snapshot_seq,priority:2"`
	SourceTitle  string          `gorm:"type:text;not null"`
	SectionLabel string          `gorm:"type:text"`
	Text         string          `gorm:"type:text;not null"`
	Embedding    pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text dimension
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
}

func (Passage) TableName() string {
	return "passages"
}
