package cmd

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/agentic-research/keysearch/internal/ingest"
	"github.com/agentic-research/keysearch/internal/search"
	"github.com/agentic-research/keysearch/internal/tree"
)

// loadRoot loads the document at path and narrows it to the --root selector.
func loadRoot(path string, f *searchFlags) (*tree.Node, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	format := ingest.Format(f.inputFormat)
	if format == "" {
		if format, err = ingest.DetectFormat(abs); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	var root *tree.Node
	if format == ingest.FormatSQLite {
		root, err = ingest.LoadSQLite(abs)
	} else {
		root, err = ingest.LoadAs(osfs.New(filepath.Dir(abs)), filepath.Base(abs), format)
	}
	if err != nil {
		return nil, err
	}
	log.Printf("loaded %s as %s in %v", path, format, time.Since(start))

	return ingest.Select(root, f.root)
}

// options builds search options from the flags.
func (f *searchFlags) options() (search.Options, error) {
	globs, err := search.CompileExcludes(f.exclude)
	if err != nil {
		return search.Options{}, err
	}
	return search.Options{MaxDepth: f.depth, Exclude: globs, Limit: f.limit}, nil
}
