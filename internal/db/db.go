package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barbearia-agenda/internal/config"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxOpenConns / 2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := BackfillTimezone(db, cfg.DefaultTimezone); err != nil {
		return nil, err
	}

	return db, nil
}

// BackfillTimezone gives tenants stored without a timezone the default one.
func BackfillTimezone(db *gorm.DB, tz string) error {
	if err := db.Exec(`
        UPDATE tenants
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, tz).Error; err != nil {
		return fmt.Errorf("backfill tenant timezone: %w", err)
	}
	return nil
}

// Migrate creates or updates every table. The partial unique index on
// appointments is declared on the model and created here.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.Employee{},
		&models.Client{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
