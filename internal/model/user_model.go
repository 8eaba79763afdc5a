package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the profile record consumed for ownership and role checks. The
// identity provider owns the table's lifecycle; this service only reads it.
type User struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName  string    `gorm:"type:varchar(255);not null"`
	Provider  string    `gorm:"type:varchar(50);not null;default:'local'"`
	Role      string    `gorm:"type:varchar(50);not null;default:'user'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
