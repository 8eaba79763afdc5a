package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatCitation records one passage that grounded an assistant turn, captured
// at answer time so citations survive later corpus rebuilds.
type ChatCitation struct {
	Id           uuid.UUID
	ChatTurnId   uuid.UUID
	PassageId    uuid.UUID
	SourceTitle  string
	SectionLabel string
	Score        float32
	Rank         int
	CreatedAt    time.Time
}
