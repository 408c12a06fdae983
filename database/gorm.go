package database

import (
	"fmt"
	"time"

	"github.com/edugroup/site-api/config"
	"github.com/edugroup/site-api/model"
	applog "github.com/edugroup/site-api/utils/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage is the handle app setup passes around: the GORM session plus its
// lifecycle
type Storage interface {
	DB() *gorm.DB
	Init() error
	HealthCheck() error
	Close() error
}

// GORMStore backs Storage with Postgres in deployments and SQLite locally
type GORMStore struct {
	db *gorm.DB
}

// pool limits for the Postgres connection
const (
	maxIdleConns    = 5
	maxOpenConns    = 25
	connMaxLifetime = 30 * time.Minute
)

// StartGORM opens the configured store. DB_DRIVER=sqlite is accepted for
// local development, with DATABASE_URL naming the database file.
func StartGORM(env *config.EnvironmentVariables) (*GORMStore, error) {
	level := logger.Warn
	if env.IsProduction() {
		level = logger.Error
	}

	dialector := postgres.Open(env.DSN())
	if env.DB_DRIVER == "sqlite" {
		dialector = sqlite.Open(env.DATABASE_URL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		applog.L().Error("store unreachable", zap.String("driver", dialector.Name()), zap.Error(err))
		return nil, fmt.Errorf("open %s store: %w", dialector.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	applog.L().Info("store connected", zap.String("driver", dialector.Name()))
	return &GORMStore{db: db}, nil
}

// OpenSQLite opens a SQLite-backed store. Passing ":memory:" gives a private
// in-memory database, which is what package tests use.
func OpenSQLite(dsn string) (*GORMStore, error) {
	if dsn == ":memory:" {
		// a shared cache name keeps every pooled connection on the same database
		dsn = fmt.Sprintf("file:mem_%d?mode=memory&cache=shared", time.Now().UnixNano())
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return &GORMStore{db: db}, nil
}

// Init migrates every site table
func (s *GORMStore) Init() error {
	start := time.Now()
	if err := s.db.AutoMigrate(model.All()...); err != nil {
		applog.L().Error("migration failed", zap.Error(err))
		return fmt.Errorf("migrate: %w", err)
	}
	applog.L().Info("schema up to date", zap.Int("tables", len(model.All())), zap.Duration("took", time.Since(start)))
	return nil
}

func (s *GORMStore) DB() *gorm.DB {
	return s.db
}

// HealthCheck pings the underlying connection
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *GORMStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
