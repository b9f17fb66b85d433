package models

import "time"

// StoredRecord is a named JSON document persisted in SQLite.
type StoredRecord struct {
	Name      string `gorm:"primaryKey;size:128"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
