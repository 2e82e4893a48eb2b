package db

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/worklog/internal/config"
)

//go:embed schema.sql
var schema string

const memoryPath = ":memory:"

// Every connection gets these, so they survive a reconnect
const connPragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Store owns the database handle for tasks and events.
// It is safe to share between goroutines: the pool holds a single
// connection, so writes are serialized.
type Store struct {
	db *gorm.DB
}

type options struct {
	logLevel logger.LogLevel
}

// Option configures Open
type Option func(*options)

// WithLogLevel sets the level of the SQL logger
func WithLogLevel(level logger.LogLevel) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

// Open opens (creating if needed) the database at path and makes sure
// the task and event tables exist
func Open(path string, opts ...Option) (*Store, error) {
	o := options{logLevel: logger.Silent} // Quiet by default
	for _, opt := range opts {
		opt(&o)
	}

	// The driver splits the DSN at the first '?', which would open a
	// different file and lose the pragmas below
	if strings.Contains(path, "?") {
		return nil, newError(KindOpen, "open", fmt.Errorf("database path %q must not contain '?'", path))
	}

	if path != memoryPath {
		// Ensure the directory exists
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, newError(KindOpen, "open", fmt.Errorf("failed to create database directory: %w", err))
		}
	}

	db, err := gorm.Open(sqlite.Open(path+connPragmas), &gorm.Config{
		Logger: logger.Default.LogMode(o.logLevel),
	})
	if err != nil {
		return nil, newError(KindOpen, "open", fmt.Errorf("failed to connect to database: %w", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		closeConnPool(db)
		return nil, newError(KindOpen, "open", err)
	}
	// SQLite has one writer; a single connection also keeps :memory: to one database
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	var foreignKeys int
	if err := db.Raw("PRAGMA foreign_keys").Scan(&foreignKeys).Error; err != nil {
		sqlDB.Close()
		return nil, newError(KindOpen, "open", fmt.Errorf("failed to read foreign_keys pragma: %w", err))
	}
	if foreignKeys != 1 {
		sqlDB.Close()
		return nil, newError(KindOpen, "open", fmt.Errorf("foreign key enforcement is off"))
	}

	if err := db.Exec(schema).Error; err != nil {
		sqlDB.Close()
		return nil, newError(KindSchema, "create schema", err)
	}

	return &Store{db: db}, nil
}

// OpenConfig opens the store described by cfg
func OpenConfig(cfg *config.Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, newError(KindOpen, "open", fmt.Errorf("invalid config: %w", err))
	}
	return Open(cfg.DatabasePath, WithLogLevel(cfg.GormLogLevel()))
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return closeConnPool(s.db)
}

// closeConnPool closes the pool behind db, even when gorm cannot hand it
// back as a *sql.DB
func closeConnPool(db *gorm.DB) error {
	if sqlDB, err := db.DB(); err == nil {
		return sqlDB.Close()
	}
	if closer, ok := db.ConnPool.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
