package storage

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"checkin-server/config"
	"checkin-server/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func connectToDB(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is not set in the environment variables")
		}
		return gorm.Open(postgres.Open(cfg.DatabaseURL), newGormConfig())
	case "sqlite":
		return OpenSQLite(cfg.SQLitePath, cfg.LockTimeout)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// OpenSQLite opens a SQLite database with foreign keys enforced. File
// databases run in WAL mode with a pool of connections, so readers never wait
// on a writer and writers wait up to busyTimeout for each other. ":memory:"
// keeps a single connection because every connection would get its own
// empty database.
func OpenSQLite(path string, busyTimeout time.Duration) (*gorm.DB, error) {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	memory := path == ":memory:" || strings.Contains(path, "mode=memory")
	if !memory {
		params.Set("_journal_mode", "WAL")
		if busyTimeout > 0 {
			params.Set("_busy_timeout", strconv.FormatInt(busyTimeout.Milliseconds(), 10))
		}
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	db, err := gorm.Open(sqlite.Open(path+sep+params.Encode()), newGormConfig())
	if err != nil {
		return nil, err
	}
	if memory {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func newGormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

func performMigrations(db *gorm.DB) error {
	// create the "one" side of every relation first
	return db.AutoMigrate(
		&models.AdminUser{},
		&models.Apartment{},
		&models.Unavailability{},
	)
}

// Migrate brings the schema up to date.
func Migrate(db *gorm.DB) error {
	return performMigrations(db)
}

func InitializeDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := connectToDB(cfg)
	if err != nil {
		log.Printf("[error] failed to initialize database, got error %v", err)
		return nil, err
	}
	if err := performMigrations(db); err != nil {
		log.Printf("[error] failed to migrate database, got error %v", err)
		return nil, err
	}
	return db, nil
}
