package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/balkashynov/worklog/internal/config"
)

func TestOpen_CreatesDatabaseAndDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "worklog.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file was not created")

	for _, table := range []string{"task", "event"} {
		var count int64
		err := s.db.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&count).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "table %s missing", table)
	}
}

func TestOpen_SchemaColumns(t *testing.T) {
	s := createTestStore(t)

	columns := func(table string) []string {
		var names []string
		require.NoError(t, s.db.Raw("SELECT name FROM pragma_table_info(?) ORDER BY cid", table).Scan(&names).Error)
		return names
	}

	assert.Equal(t, []string{"id", "name", "details"}, columns("task"))
	assert.Equal(t, []string{"id", "task_id", "notes", "time_stamp", "duration"}, columns("event"))
}

func TestOpen_IdempotentAndPersistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worklog.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.AddTask("write", "draft", "2024-01-01T10:00:00", "PT30M"))
	require.NoError(t, s1.Close())

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoError(t, err, "reopen %d", i)

		events, err := s.GetEvents()
		require.NoError(t, err)
		assert.Len(t, events, 1)
		require.NoError(t, s.Close())
	}
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.AddTask("write", "draft", "2024-01-01T10:00:00", "PT30M"))

	tasks, err := s.GetTasks()
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestOpen_FailsOnDirectory(t *testing.T) {
	_, err := Open(t.TempDir())

	require.Error(t, err)
	var se *StorageError
	assert.ErrorAs(t, err, &se)
}

func TestOpen_EnablesForeignKeys(t *testing.T) {
	s := createTestStore(t)

	var enabled int
	require.NoError(t, s.db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)

	err := s.db.Exec("INSERT INTO event (task_id, notes, time_stamp, duration) VALUES (42, 'x', 't', 'd')").Error
	assert.Error(t, err, "event referencing a missing task should be rejected")
}

func TestOpen_RejectsQuestionMarkInPath(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "we?ird.db"))

	require.Error(t, err)
	assert.True(t, IsKind(err, KindOpen))
	assert.ErrorContains(t, err, "we?ird.db")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no database file should be created")
}

// closingPool is a gorm.ConnPool that is not a *sql.DB
type closingPool struct {
	gorm.ConnPool
	closed bool
}

func (p *closingPool) Close() error {
	p.closed = true
	return nil
}

func TestCloseConnPool_NonSQLDBPool(t *testing.T) {
	pool := &closingPool{}
	db := &gorm.DB{Config: &gorm.Config{ConnPool: pool}}

	require.NoError(t, closeConnPool(db))
	assert.True(t, pool.closed)
}

func TestOpenConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "cfg.db")
	cfg.LogLevel = "error"

	s, err := OpenConfig(cfg)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(cfg.DatabasePath)
	assert.NoError(t, err)
}

func TestOpenConfig_Invalid(t *testing.T) {
	_, err := OpenConfig(&config.Config{DatabasePath: "", LogLevel: "silent"})

	assert.True(t, IsKind(err, KindOpen))
}

func TestClose_NilSafe(t *testing.T) {
	var s *Store
	assert.NoError(t, s.Close())
}
