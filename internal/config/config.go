package config

import (
	"fmt"
	"strings"

	"gorm.io/gorm/logger"
)

// Config holds the settings the storage layer needs
type Config struct {
	DatabasePath string `mapstructure:"database_path"`
	LogLevel     string `mapstructure:"log_level"` // silent, error, warn, info
}

// Validate checks that the configuration can be used to open a store
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// GormLogLevel maps LogLevel onto the gorm SQL logger.
// Unknown values fall back to silent; Validate reports them.
func (c *Config) GormLogLevel() logger.LogLevel {
	level, err := parseLogLevel(c.LogLevel)
	if err != nil {
		return logger.Silent
	}
	return level
}

func parseLogLevel(s string) (logger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "silent":
		return logger.Silent, nil
	case "error":
		return logger.Error, nil
	case "warn", "warning":
		return logger.Warn, nil
	case "info":
		return logger.Info, nil
	default:
		return logger.Silent, fmt.Errorf("unknown log_level %q (want silent, error, warn or info)", s)
	}
}
