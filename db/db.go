package db

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"log/slog"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sidhant-sriv/rentease-api/config"
	"github.com/sidhant-sriv/rentease-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the configured database. Unique-constraint violations are
// translated into gorm.ErrDuplicatedKey.
func Connect(cfg config.Database, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", cfg.Driver)
	}

	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}

	DB, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(os.Stdout, level),
	})
	if err != nil {
		return nil, fmt.Errorf("db: connect to %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == "sqlite" {
		// One writer at a time; row locks are not available.
		sqlDB, err := DB.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return DB, nil
}

// newGormLogger logs slow and failed queries. Missing rows are an expected
// outcome of lookups and are not logged.
func newGormLogger(w io.Writer, level gormlogger.LogLevel) gormlogger.Interface {
	return gormlogger.New(stdlog.New(w, "\r\n", stdlog.LstdFlags), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// Entities lists every persisted model, parents before children.
func Entities() []any {
	return []any{
		&models.User{},
		&models.Property{},
		&models.PropertyImage{},
		&models.PropertyAmenity{},
		&models.Booking{},
		&models.Payment{},
		&models.Review{},
		&models.Favorite{},
		&models.Notification{},
	}
}

func MakeMigration(DB *gorm.DB, log *slog.Logger) error {
	if err := DB.AutoMigrate(Entities()...); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	log.Info("db.migrated", "tables", len(Entities()))
	return nil
}

// SQLX shares the gorm connection pool for hand-written queries.
func SQLX(DB *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, err
	}
	return sqlx.NewDb(sqlDB, DB.Dialector.Name()), nil
}

func Ping(ctx context.Context, DB *gorm.DB) error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
