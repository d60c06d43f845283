package repositories

import (
	"context"

	"gorm.io/gorm"

	"lawfirm-cms/models"
)

// ApprovalRepository is the storage side of the approval ledger. It only
// exposes inserts and reads.
type ApprovalRepository interface {
	Append(ctx context.Context, approval *models.Approval) error
	ListByVersionTarget(ctx context.Context, versionID uint, target models.Target) ([]models.Approval, error)
	ListByVersion(ctx context.Context, versionID uint) ([]models.Approval, error)
}

type approvalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) Append(ctx context.Context, approval *models.Approval) error {
	return wrapErr(r.db.WithContext(ctx).Create(approval).Error, "approval")
}

func (r *approvalRepository) ListByVersionTarget(ctx context.Context, versionID uint, target models.Target) ([]models.Approval, error) {
	var approvals []models.Approval
	err := r.db.WithContext(ctx).
		Where("version_id = ? AND target = ?", versionID, target).
		Order("created_at asc, id asc").
		Find(&approvals).Error
	return approvals, wrapErr(err, "approvals")
}

func (r *approvalRepository) ListByVersion(ctx context.Context, versionID uint) ([]models.Approval, error) {
	var approvals []models.Approval
	err := r.db.WithContext(ctx).
		Where("version_id = ?", versionID).
		Order("created_at asc, id asc").
		Find(&approvals).Error
	return approvals, wrapErr(err, "approvals")
}
