package database

import (
	"strings"

	"brokerd/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens a GORM DB from DSN. A postgres:// URL uses the Postgres
// driver; anything else is treated as a SQLite file path (":memory:"
// works for tests). PreferSimpleProtocol disables prepared statement
// caching to avoid 42P05 ("prepared statement already exists") when
// using connection poolers (e.g. PgBouncer).
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}

// AutoMigrate runs migrations for the ledger models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Holding{}, &domain.TradeEvent{})
}

// SeedDefaultUser provisions the default user if absent, so at least
// one user exists before serving. Existing rows are left untouched.
func SeedDefaultUser(db *gorm.DB, id int64, name string, balance float64) error {
	var count int64
	if err := db.Model(&domain.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&domain.User{
		ID:          id,
		Name:        name,
		CashBalance: domain.RoundCash(balance),
	}).Error
}
