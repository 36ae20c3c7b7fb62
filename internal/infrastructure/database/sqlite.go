package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Selvam-T/POS-sub000/internal/config"
	"github.com/Selvam-T/POS-sub000/internal/domain/entity"
	"github.com/Selvam-T/POS-sub000/pkg/apperror"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultDBPath = "./data/pos.db"

// ResolvePath returns the effective SQLite file location. The POS_DB_PATH
// environment variable wins over the configured path, which wins over the
// built-in default next to the binary.
func ResolvePath(cfg *config.Config) string {
	if p := os.Getenv("POS_DB_PATH"); p != "" {
		return p
	}
	if cfg.Database.Path != "" {
		return cfg.Database.Path
	}
	return defaultDBPath
}

// Open establishes the SQLite connection and runs migrations. The DSN pins
// WAL journaling, enforced foreign keys, a busy timeout, and immediate
// transaction locking so every transaction takes its write lock at BEGIN
// rather than at first write.
func Open(cfg *config.Config) (*gorm.DB, error) {
	path := ResolvePath(cfg)

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apperror.ErrStorageUnavailable.WithCause(fmt.Errorf("create data directory: %w", err))
		}
	}

	dsn := fmt.Sprintf(
		"file:%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=%d&_txlock=immediate",
		path, cfg.Database.BusyTimeoutMS,
	)

	logLevel := gormlogger.Silent
	if cfg.App.Debug {
		logLevel = gormlogger.Warn
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, apperror.ErrStorageUnavailable.WithCause(fmt.Errorf("open sqlite database: %w", err))
	}

	// SQLite serializes writers; a single connection avoids needless
	// SQLITE_BUSY churn between pooled handles.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperror.ErrStorageUnavailable.WithCause(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info().Str("path", path).Msg("Database connection established")
	return db, nil
}

// Migrate runs schema migrations for all models
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Cashier{},
		&entity.Receipt{},
		&entity.ReceiptItem{},
		&entity.ReceiptPayment{},
		&entity.ReceiptCounter{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return apperror.ErrStorageUnavailable.WithCause(fmt.Errorf("run migrations: %w", err))
	}
	return nil
}

// SeedAdmin creates the default cashier account on first boot so a fresh
// terminal is usable without manual SQL. No-op when the account exists or
// no admin PIN is configured.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.Admin.PIN == "" {
		return nil
	}

	var count int64
	if err := db.Model(&entity.Cashier{}).Where("name = ?", cfg.Admin.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.PIN), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.Cashier{
		Name:    cfg.Admin.Name,
		PINHash: string(hash),
		Role:    "admin",
		Active:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info().Str("name", cfg.Admin.Name).Msg("Seeded default admin cashier")
	return nil
}

// IsConstraintViolation reports whether err is a SQLite constraint failure
// (unique, check, or foreign key).
func IsConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
