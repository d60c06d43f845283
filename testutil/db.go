// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lawfirm-cms/models"
)

var dbCounter atomic.Int64

// NewDB opens a private in-memory SQLite database with the full schema. The
// database is closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbCounter.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test database handle: %v", err)
	}
	// One connection keeps the in-memory database alive and serialises the
	// asynchronous audit writes.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&models.User{},
		&models.Version{},
		&models.Document{},
		&models.Segment{},
		&models.Translation{},
		&models.Approval{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}
