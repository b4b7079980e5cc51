// Package search implements the recursive keyword search over a node tree.
package search

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/RoaringBitmap/roaring"
	"github.com/gobwas/glob"

	"github.com/agentic-research/keysearch/internal/tree"
)

const (
	// DefaultMaxDepth is used when no usable depth is supplied.
	DefaultMaxDepth = 500

	// previewLen caps the string value echoed back in a value match.
	previewLen = 100
)

// MatchKind says what part of a member matched.
type MatchKind string

const (
	NameMatch  MatchKind = "name"
	ValueMatch MatchKind = "value"
)

// Match is one search hit.
type Match struct {
	Path  string    `json:"path"`
	Kind  MatchKind `json:"kind"`
	Value string    `json:"value,omitempty"` // truncated preview, value matches only
}

// String renders the match as a single result line.
func (m Match) String() string {
	if m.Kind == NameMatch {
		return m.Path + ": name match"
	}
	return fmt.Sprintf("%s: %q", m.Path, m.Value+"...")
}

// Options tune a search run.
type Options struct {
	// MaxDepth bounds recursion; the root is at depth 0.
	MaxDepth int
	// Exclude skips members whose path matches any pattern.
	Exclude []glob.Glob
	// Limit stops the traversal after this many matches. Zero means no limit.
	Limit int
}

// DefaultOptions returns options with the default depth and no filters.
func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

// CompileExcludes compiles path globs. '.' is the separator, so '*' stays
// within one path segment and '**' crosses segments.
func CompileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '.')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Search walks root and returns every member whose key or string value
// contains keyword, in traversal order. The caller must reject an empty
// keyword.
//
// Each composite node is entered at most once per call. The visited set is
// never reset on return, so a subtree shared by two branches is reported only
// under the first branch that reaches it.
func Search(root *tree.Node, keyword string, opts Options) []Match {
	s := &searcher{
		keyword: keyword,
		opts:    opts,
		visited: roaring.New(),
	}
	s.walk(root, "", 0)
	return s.results
}

type searcher struct {
	keyword string
	opts    Options
	visited *roaring.Bitmap
	results []Match
}

func (s *searcher) full() bool {
	return s.opts.Limit > 0 && len(s.results) >= s.opts.Limit
}

func (s *searcher) walk(n *tree.Node, path string, depth int) {
	if depth > s.opts.MaxDepth || !n.IsComposite() || s.visited.Contains(n.ID()) {
		return
	}
	s.visited.Add(n.ID())

	switch n.Kind {
	case tree.Sequence:
		for i, item := range n.Items() {
			if s.full() {
				return
			}
			key := strconv.Itoa(i)
			s.member(key, path+"["+key+"]", item, depth)
		}
	case tree.Keyed:
		for _, m := range n.Members() {
			if s.full() {
				return
			}
			full := m.Key
			if path != "" {
				full = path + "." + m.Key
			}
			s.member(m.Key, full, m.Value, depth)
		}
	}
}

func (s *searcher) member(key, path string, v *tree.Node, depth int) {
	if s.excluded(path) {
		return
	}
	if strings.Contains(key, s.keyword) {
		s.add(Match{Path: path, Kind: NameMatch})
	}
	if v != nil && v.Kind == tree.String && strings.Contains(v.Str(), s.keyword) {
		s.add(Match{Path: path, Kind: ValueMatch, Value: preview(v.Str())})
	}
	if v.IsComposite() {
		s.walk(v, path, depth+1)
	}
}

func (s *searcher) add(m Match) {
	if s.full() {
		return
	}
	s.results = append(s.results, m)
}

func (s *searcher) excluded(path string) bool {
	for _, g := range s.opts.Exclude {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// preview returns at most previewLen runes of v.
func preview(v string) string {
	if utf8.RuneCountInString(v) <= previewLen {
		return v
	}
	i, n := 0, 0
	for i = range v {
		if n == previewLen {
			break
		}
		n++
	}
	return v[:i]
}
