package models

import "time"

type Segment struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	VersionID  uint      `json:"version_id" gorm:"not null;uniqueIndex:idx_segments_version_position"`
	Position   int       `json:"position" gorm:"not null;uniqueIndex:idx_segments_version_position"`
	SourceText string    `json:"source_text" gorm:"type:text;not null"`
	TextHash   string    `json:"text_hash" gorm:"size:64;not null"`
	CreatedAt  time.Time `json:"created_at"`
}
