package repositories

import (
	"context"

	"gorm.io/gorm"

	"lawfirm-cms/models"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	ListForDocument(ctx context.Context, documentID uint, versionIDs []uint) ([]models.AuditLog, error)
	ListForVersion(ctx context.Context, versionID uint) ([]models.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return wrapErr(r.db.WithContext(ctx).Create(entry).Error, "audit log")
}

func (r *auditRepository) ListForDocument(ctx context.Context, documentID uint, versionIDs []uint) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	query := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", models.EntityDocument, documentID)
	if len(versionIDs) > 0 {
		query = query.Or("entity_type = ? AND entity_id IN ?", models.EntityVersion, versionIDs)
	}
	err := query.Order("created_at asc, id asc").Find(&entries).Error
	return entries, wrapErr(err, "audit logs")
}

func (r *auditRepository) ListForVersion(ctx context.Context, versionID uint) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", models.EntityVersion, versionID).
		Order("created_at asc, id asc").
		Find(&entries).Error
	return entries, wrapErr(err, "audit logs")
}
