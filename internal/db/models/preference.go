// Package models contains database model definitions.
package models

import "time"

// Preference is one viewer preference persisted for an origin.
type Preference struct {
	ID        uint64 `gorm:"primaryKey"`
	Origin    string `gorm:"size:255;not null;uniqueIndex:idx_preference_origin_name"`
	Name      string `gorm:"size:64;not null;uniqueIndex:idx_preference_origin_name"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
