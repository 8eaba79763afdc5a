package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User is the profile record this service consumes for session ownership and
// role checks. Account lifecycle (registration, passwords, OAuth) is managed
// elsewhere; rows here are read, never created, by the chat core.
type User struct {
	Id        uuid.UUID
	Email     string
	FullName  string
	Provider  string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}
