package ingest

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/keysearch/internal/tree"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.json", FormatYAML},
		{"a.YML", FormatYAML},
		{"main.tf", FormatHCL},
		{"state.js", FormatJS},
		{"records.db", FormatSQLite},
	}
	for _, tt := range tests {
		got, err := DetectFormat(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := DetectFormat("notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "data/doc.json", []byte(`{"a": {"b": "findme"}}`), 0o644))
	require.NoError(t, util.WriteFile(fs, "data/main.hcl", []byte(`name = "findme"`), 0o644))
	require.NoError(t, util.WriteFile(fs, "data/state.js", []byte(`var s = {findme: 1};`), 0o644))

	t.Run("json", func(t *testing.T) {
		root, err := Load(fs, "data/doc.json")
		require.NoError(t, err)
		got, err := Select(root, "$.a.b")
		require.NoError(t, err)
		assert.Equal(t, "findme", got.Str())
	})

	t.Run("hcl", func(t *testing.T) {
		root, err := Load(fs, "data/main.hcl")
		require.NoError(t, err)
		v, ok := root.Get("name")
		require.True(t, ok)
		assert.Equal(t, "findme", v.Str())
	})

	t.Run("js", func(t *testing.T) {
		root, err := Load(fs, "data/state.js")
		require.NoError(t, err)
		s, ok := root.Get("s")
		require.True(t, ok)
		assert.Equal(t, tree.Keyed, s.Kind)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(fs, "data/missing.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read data/missing.json")
	})

	t.Run("forced format", func(t *testing.T) {
		require.NoError(t, util.WriteFile(fs, "data/noext", []byte(`k: v`), 0o644))
		root, err := LoadAs(fs, "data/noext", FormatYAML)
		require.NoError(t, err)
		v, _ := root.Get("k")
		assert.Equal(t, "v", v.Str())
	})
}
