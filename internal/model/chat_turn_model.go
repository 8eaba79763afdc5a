package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatTurn rows are append-only: no update or delete path exists, so the
// model carries no UpdatedAt/DeletedAt. Ordering within a session is
// (created_at, id).
type ChatTurn struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;index:idx_chat_turns_session_created,priority:1"`
	Role          string         `gorm:"type:varchar(20);not null"`
	Content       string         `gorm:"type:text;not null"`
	Metadata      datatypes.JSON `gorm:"type:jsonb"`
	LatencyMs     *int64         `gorm:"type:bigint"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index:idx_chat_turns_session_created,priority:2"`
}

func (ChatTurn) TableName() string {
	return "chat_turns"
}
