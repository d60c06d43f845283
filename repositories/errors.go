package repositories

import (
	"errors"

	"gorm.io/gorm"

	"lawfirm-cms/models"
)

// wrapErr classifies gorm errors: missing rows become NotFound, unique key
// violations become Conflict, everything else is a persistence failure.
func wrapErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(what+" not found", err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewConflictError(what + " already exists")
	}
	return models.NewPersistenceError("failed to access "+what, err)
}
