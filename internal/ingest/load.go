// Package ingest turns documents on disk into search roots.
package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/agentic-research/keysearch/internal/tree"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format identifies a document loader.
type Format string

const (
	FormatYAML   Format = "yaml" // also JSON, which is a YAML subset
	FormatHCL    Format = "hcl"
	FormatJS     Format = "js"
	FormatSQLite Format = "sqlite"
)

// DetectFormat picks a loader from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl", ".tf":
		return FormatHCL, nil
	case ".js", ".mjs", ".cjs":
		return FormatJS, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads path from fsys and converts it into a node tree.
//
// SQLite databases cannot be read through a billy filesystem; they are opened
// directly from the host path.
func Load(fsys billy.Filesystem, path string) (*tree.Node, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	return LoadAs(fsys, path, format)
}

// LoadAs is Load with an explicit format.
func LoadAs(fsys billy.Filesystem, path string, format Format) (*tree.Node, error) {
	if format == FormatSQLite {
		return LoadSQLite(path)
	}

	content, err := util.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch format {
	case FormatYAML:
		return ParseYAML(content)
	case FormatHCL:
		return ParseHCL(content, path)
	case FormatJS:
		return ParseJS(content)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
