package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/balkashynov/worklog/internal/models"
)

// createTestStore opens a store in a fresh temp directory
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func taskNamed(tasks []models.Task, name string) []models.Task {
	var out []models.Task
	for _, task := range tasks {
		if task.Name == name {
			out = append(out, task)
		}
	}
	return out
}

func strPtr(s string) *string {
	return &s
}
