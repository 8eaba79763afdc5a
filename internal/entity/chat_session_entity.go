package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is one user-visible conversation thread. UpdatedAt drives the
// history sidebar's recency buckets and bumps on every appended turn, never
// on reads. Deletion is always soft: the session disappears from listings
// while its turns stay in place.
type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// LastActivity is the instant history bucketing sorts and groups by.
func (s *ChatSession) LastActivity() time.Time {
	if s.UpdatedAt != nil {
		return *s.UpdatedAt
	}
	return s.CreatedAt
}
