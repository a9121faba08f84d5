// Package dbsql implements the repositories on MySQL or Postgres through GORM.
package dbsql

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"skillnaav/internal/common"
	"skillnaav/internal/config"

	"github.com/go-sql-driver/mysql"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQL opens the SQL backend chosen by cfg.Store.Driver and migrates the schema.
func NewSQL(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Store.Driver {
	case config.DriverMySQL:
		dialector = mysqldriver.Open(cfg.DSN())
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Store.Driver)
	}

	logLevel := logger.Warn
	if cfg.Logging.Level == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to %s: %w", cfg.Store.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB error: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Printf("✅ Connected to %s successfully", cfg.Store.Driver)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Notification{}, &SavedJob{}, &OfferLetter{}, &InternshipPosting{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func Stores(db *gorm.DB) *common.Stores {
	return &common.Stores{
		Notifications: NewNotificationRepository(db),
		SavedJobs:     NewSavedJobRepository(db),
		Offers:        NewOfferRepository(db),
		Postings:      NewPostingRepository(db),
		Close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *common.Error
	if errors.As(err, &appErr) {
		return err
	}
	if isDuplicateKey(err) {
		return common.WrapError(common.KindAlreadyExists, "duplicate key", err)
	}
	return common.StoreUnavailable(op, err)
}
