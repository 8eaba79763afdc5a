package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatCitation denormalizes source title and section label so stored answers
// keep their provenance even after the passage's snapshot is superseded.
type ChatCitation struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatTurnId   uuid.UUID `gorm:"type:uuid;not null;index"`
	PassageId    uuid.UUID `gorm:"type:uuid;not null"`
	SourceTitle  string    `gorm:"type:text;not null"`
	SectionLabel string    `gorm:"type:text"`
	Score        float32   `gorm:"type:real"`
	Rank         int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`

	// Relationships
	ChatTurn *ChatTurn `gorm:"foreignKey:ChatTurnId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (ChatCitation) TableName() string {
	return "chat_citations"
}
