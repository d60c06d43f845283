package repositories

import (
	"context"

	"gorm.io/gorm"

	"lawfirm-cms/models"
)

type TranslationRepository interface {
	CreateSegments(ctx context.Context, segments []models.Segment) error
	GetSegments(ctx context.Context, versionID uint) ([]models.Segment, error)
	AppendTranslations(ctx context.Context, translations []models.Translation) error
	// CurrentTranslations returns the newest translation per segment position.
	CurrentTranslations(ctx context.Context, versionID uint, language string) (map[int]models.Translation, error)
}

type translationRepository struct {
	db *gorm.DB
}

func NewTranslationRepository(db *gorm.DB) TranslationRepository {
	return &translationRepository{db: db}
}

func (r *translationRepository) CreateSegments(ctx context.Context, segments []models.Segment) error {
	if len(segments) == 0 {
		return nil
	}
	return wrapErr(r.db.WithContext(ctx).Create(&segments).Error, "segments")
}

func (r *translationRepository) GetSegments(ctx context.Context, versionID uint) ([]models.Segment, error) {
	var segments []models.Segment
	err := r.db.WithContext(ctx).
		Where("version_id = ?", versionID).
		Order("position asc").
		Find(&segments).Error
	return segments, wrapErr(err, "segments")
}

func (r *translationRepository) AppendTranslations(ctx context.Context, translations []models.Translation) error {
	if len(translations) == 0 {
		return nil
	}
	return wrapErr(r.db.WithContext(ctx).Create(&translations).Error, "translations")
}

func (r *translationRepository) CurrentTranslations(ctx context.Context, versionID uint, language string) (map[int]models.Translation, error) {
	var rows []models.Translation
	err := r.db.WithContext(ctx).
		Where("version_id = ? AND language = ?", versionID, language).
		Order("created_at asc, id asc").
		Find(&rows).Error
	if err != nil {
		return nil, wrapErr(err, "translations")
	}

	current := make(map[int]models.Translation, len(rows))
	for _, row := range rows {
		current[row.Position] = row
	}
	return current, nil
}
