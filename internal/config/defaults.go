package config

import (
	"os"
	"path/filepath"
)

const appDir = ".worklog"

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DatabasePath: defaultDatabasePath(),
		LogLevel:     "silent", // Quiet by default
	}
}

// defaultDatabasePath returns ~/.worklog/worklog.db, or a file in the
// working directory when there is no home directory
func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "worklog.db"
	}
	return filepath.Join(home, appDir, "worklog.db")
}
