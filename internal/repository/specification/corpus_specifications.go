package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySnapshotID struct {
	SnapshotID uuid.UUID
}

func (s BySnapshotID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("snapshot_id = ?", s.SnapshotID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
