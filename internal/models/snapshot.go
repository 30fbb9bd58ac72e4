package models

import (
	"time"

	"gorm.io/datatypes"
)

// RosterSnapshot is the relational home of the persisted roster blob. One row
// per storage key; Payload holds the serialized roster as-is.
type RosterSnapshot struct {
	Key       string         `gorm:"size:128;primaryKey"`
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
