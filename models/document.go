package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Document struct {
	ID                uint                        `json:"id" gorm:"primarykey"`
	OwnerID           uint                        `json:"owner_id" gorm:"not null;index"`
	Owner             *User                       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Title             string                      `json:"title" gorm:"not null"`
	CaseReference     string                      `json:"case_reference"`
	SourceLanguage    string                      `json:"source_language" gorm:"size:35;not null"`
	RequiredLanguages datatypes.JSONSlice[string] `json:"required_languages"`
	LatestVersionID   *uint                       `json:"latest_version_id"`
	LatestVersion     *Version                    `json:"latest_version,omitempty" gorm:"foreignKey:LatestVersionID"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
	DeletedAt         gorm.DeletedAt              `json:"-" gorm:"index"`
}

// TargetLanguages returns the translation targets that must be signed off
// before a version of this document may leave the firm. fallback is used when
// the document was created without an explicit list.
func (d *Document) TargetLanguages(fallback []string) []string {
	if len(d.RequiredLanguages) > 0 {
		return append([]string(nil), d.RequiredLanguages...)
	}
	return append([]string(nil), fallback...)
}
