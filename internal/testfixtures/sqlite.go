package testfixtures

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barbearia-agenda/internal/db"
)

// NewSQLite opens a migrated SQLite database in a temporary directory. gorm
// timestamps come from clock so tests can assert on them.
func NewSQLite(tb testing.TB, clock *Clock) *gorm.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "agenda.db")

	gdb, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_busy_timeout=5000"), &gorm.Config{
		TranslateError: true,
		NowFunc:        clock.Now,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		tb.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		_ = sqlDB.Close()
		tb.Fatalf("failed to migrate: %v", err)
	}

	tb.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}
