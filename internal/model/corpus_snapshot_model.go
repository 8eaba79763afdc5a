package model

import (
	"time"

	"github.com/google/uuid"
)

type CorpusSnapshot struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Label        string     `gorm:"type:text;not null"`
	Status       string     `gorm:"type:varchar(20);not null;index"` // draft | published
	PassageCount int        `gorm:"default:0"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	PublishedAt  *time.Time `gorm:"index"`
}

func (CorpusSnapshot) TableName() string {
	return "corpus_snapshots"
}
