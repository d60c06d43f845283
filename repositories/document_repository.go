package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lawfirm-cms/models"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uint) (*models.Document, error)
	GetList(ctx context.Context, params models.DocumentListParams) ([]models.Document, int64, error)
	SetLatestVersion(ctx context.Context, documentID, versionID uint) error

	// CreateVersion assigns the next version number for the document and
	// inserts the snapshot in one transaction.
	CreateVersion(ctx context.Context, version *models.Version) error
	GetVersions(ctx context.Context, documentID uint) ([]models.Version, error)
	GetVersion(ctx context.Context, documentID, versionID uint) (*models.Version, error)
	GetVersionByID(ctx context.Context, versionID uint) (*models.Version, error)
	UpdateVersionStatus(ctx context.Context, versionID uint, status models.VersionStatus) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	return wrapErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(doc).Error, "document")
}

func (r *documentRepository) GetByID(ctx context.Context, id uint) (*models.Document, error) {
	var doc models.Document
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("LatestVersion").
		First(&doc, id).Error
	if err != nil {
		return nil, wrapErr(err, "document")
	}
	return &doc, nil
}

func (r *documentRepository) GetList(ctx context.Context, params models.DocumentListParams) ([]models.Document, int64, error) {
	var docs []models.Document
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Document{}).Preload("LatestVersion")

	if params.OwnerID > 0 {
		query = query.Where("documents.owner_id = ?", params.OwnerID)
	}
	if params.Status != "" {
		query = query.Joins("JOIN versions ON documents.latest_version_id = versions.id").
			Where("versions.status = ?", params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err, "documents")
	}

	sortOrder := "desc"
	if params.SortOrder == "asc" {
		sortOrder = "asc"
	}
	query = query.Order(fmt.Sprintf("documents.created_at %s, documents.id %s", sortOrder, sortOrder))

	offset := (params.Page - 1) * params.Limit
	if err := query.Offset(offset).Limit(params.Limit).Find(&docs).Error; err != nil {
		return nil, 0, wrapErr(err, "documents")
	}
	return docs, total, nil
}

func (r *documentRepository) SetLatestVersion(ctx context.Context, documentID, versionID uint) error {
	err := r.db.WithContext(ctx).Model(&models.Document{}).
		Where("id = ?", documentID).
		Update("latest_version_id", versionID).Error
	return wrapErr(err, "document")
}

// versionNumberAttempts bounds retries when a concurrent writer takes the
// next version number first.
const versionNumberAttempts = 2

func (r *documentRepository) CreateVersion(ctx context.Context, version *models.Version) error {
	var err error
	for attempt := 0; attempt < versionNumberAttempts; attempt++ {
		err = r.createVersion(ctx, version)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return wrapErr(err, "version")
		}
	}
	return models.NewConflictError("another version was created concurrently, retry the request")
}

func (r *documentRepository) createVersion(ctx context.Context, version *models.Version) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxNumber int
		if err := tx.Model(&models.Version{}).
			Where("document_id = ?", version.DocumentID).
			Select("COALESCE(MAX(version_number), 0)").
			Scan(&maxNumber).Error; err != nil {
			return err
		}
		version.VersionNumber = maxNumber + 1
		return tx.Omit(clause.Associations).Create(version).Error
	})
}

func (r *documentRepository) GetVersions(ctx context.Context, documentID uint) ([]models.Version, error) {
	var versions []models.Version
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("version_number desc").
		Find(&versions).Error
	return versions, wrapErr(err, "versions")
}

func (r *documentRepository) GetVersion(ctx context.Context, documentID, versionID uint) (*models.Version, error) {
	var version models.Version
	err := r.db.WithContext(ctx).
		Where("document_id = ? AND id = ?", documentID, versionID).
		Preload("Segments", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&version).Error
	if err != nil {
		return nil, wrapErr(err, "version")
	}
	return &version, nil
}

func (r *documentRepository) GetVersionByID(ctx context.Context, versionID uint) (*models.Version, error) {
	var version models.Version
	if err := r.db.WithContext(ctx).First(&version, versionID).Error; err != nil {
		return nil, wrapErr(err, "version")
	}
	return &version, nil
}

func (r *documentRepository) UpdateVersionStatus(ctx context.Context, versionID uint, status models.VersionStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Version{}).
		Where("id = ?", versionID).
		Update("status", status)
	if res.Error != nil {
		return wrapErr(res.Error, "version")
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("version not found", nil)
	}
	return nil
}
