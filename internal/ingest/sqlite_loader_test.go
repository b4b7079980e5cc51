package ingest

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/agentic-research/keysearch/internal/tree"
)

func createTestDB(t *testing.T, records []string) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec("CREATE TABLE results (id TEXT PRIMARY KEY, record TEXT NOT NULL)")
	require.NoError(t, err)

	for i, rec := range records {
		_, err = db.Exec("INSERT INTO results (id, record) VALUES (?, ?)",
			string(rune('a'+i)), rec)
		require.NoError(t, err)
	}
	return dbPath
}

func TestLoadSQLite(t *testing.T) {
	t.Run("basic records", func(t *testing.T) {
		dbPath := createTestDB(t, []string{
			`{"item":{"name":"Alice","role":"admin"}}`,
			`{"item":{"name":"Bob","role":"user"}}`,
		})

		root, err := LoadSQLite(dbPath)
		require.NoError(t, err)
		require.Equal(t, tree.Keyed, root.Kind)
		require.Equal(t, 2, root.Len())

		assert.Equal(t, "a", root.Members()[0].Key)
		assert.Equal(t, "b", root.Members()[1].Key)

		item, ok := root.Members()[0].Value.Get("item")
		require.True(t, ok)
		name, ok := item.Get("name")
		require.True(t, ok)
		assert.Equal(t, "Alice", name.Str())
	})

	t.Run("empty database", func(t *testing.T) {
		dbPath := createTestDB(t, nil)

		root, err := LoadSQLite(dbPath)
		require.NoError(t, err)
		assert.Equal(t, 0, root.Len())
	})

	t.Run("invalid record json", func(t *testing.T) {
		dbPath := createTestDB(t, []string{`{"ok": true}`, `{not json`})

		_, err := LoadSQLite(dbPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse record b")
	})

	t.Run("missing results table", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "empty.db")
		db, err := sql.Open("sqlite", dbPath)
		require.NoError(t, err)
		_, err = db.Exec("CREATE TABLE other (x TEXT)")
		require.NoError(t, err)
		require.NoError(t, db.Close())

		_, err = LoadSQLite(dbPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query results")
	})
}

func TestStreamSQLiteStopsOnCallbackError(t *testing.T) {
	dbPath := createTestDB(t, []string{`{}`, `{}`, `{}`})
	stop := errors.New("stop")

	var seen []string
	err := StreamSQLite(dbPath, func(id, raw string) error {
		seen = append(seen, id)
		if len(seen) == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestLoadDispatchesSQLiteByPath(t *testing.T) {
	dbPath := createTestDB(t, []string{`{"needle": "x"}`})
	_, err := os.Stat(dbPath)
	require.NoError(t, err)

	root, err := Load(nil, dbPath)
	require.NoError(t, err)
	rec, ok := root.Get("a")
	require.True(t, ok)
	_, ok = rec.Get("needle")
	assert.True(t, ok)
}
