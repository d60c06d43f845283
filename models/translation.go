package models

import (
	"time"

	"gorm.io/gorm"
)

// Translation is a translated segment. Like approvals, translation rows are
// append-only; the newest row for a (version, language, position) is current.
type Translation struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	VersionID    uint      `json:"version_id" gorm:"not null;index:idx_translations_version_language"`
	Language     string    `json:"language" gorm:"size:35;not null;index:idx_translations_version_language"`
	Position     int       `json:"position" gorm:"not null"`
	Text         string    `json:"text" gorm:"type:text;not null"`
	TranslatorID uint      `json:"translator_id" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
}

func (t *Translation) BeforeUpdate(tx *gorm.DB) error {
	return ErrImmutableRecord
}

func (t *Translation) BeforeDelete(tx *gorm.DB) error {
	return ErrImmutableRecord
}

type SegmentTranslation struct {
	Position     int        `json:"position"`
	SourceText   string     `json:"source_text"`
	Text         string     `json:"text,omitempty"`
	Translated   bool       `json:"translated"`
	TranslatorID uint       `json:"translator_id,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type TranslationProgress struct {
	VersionID  uint                 `json:"version_id"`
	Language   string               `json:"language"`
	Total      int                  `json:"total"`
	Translated int                  `json:"translated"`
	Complete   bool                 `json:"complete"`
	Segments   []SegmentTranslation `json:"segments"`
}
