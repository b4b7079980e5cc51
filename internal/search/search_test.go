package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/keysearch/internal/tree"
)

func lines(ms []Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.String()
	}
	return out
}

func TestSearch_ValueMatch(t *testing.T) {
	root := tree.NewKeyed()
	a := tree.NewKeyed()
	a.Set("b", tree.NewString("findme"))
	root.Set("a", a)

	got := Search(root, "findme", DefaultOptions())
	require.Len(t, got, 1)
	assert.Equal(t, Match{Path: "a.b", Kind: ValueMatch, Value: "findme"}, got[0])
	assert.Equal(t, `a.b: "findme..."`, got[0].String())
}

func TestSearch_NameMatch(t *testing.T) {
	root := tree.NewKeyed()
	root.Set("findme", tree.NewNumber(1))

	got := Search(root, "findme", DefaultOptions())
	assert.Equal(t, []string{"findme: name match"}, lines(got))
}

func TestSearch_NoMatches(t *testing.T) {
	root := tree.FromAny(map[string]any{
		"user": map[string]any{"name": "alice", "tags": []any{"x", "y"}},
	})
	assert.Empty(t, Search(root, "zzz", DefaultOptions()))
}

func TestSearch_SelfReference(t *testing.T) {
	obj := tree.NewKeyed()
	obj.Set("self", obj)

	got := Search(obj, "self", DefaultOptions())
	assert.Equal(t, []string{"self: name match"}, lines(got))
}

func TestSearch_CycleTerminates(t *testing.T) {
	a := tree.NewKeyed()
	b := tree.NewKeyed()
	a.Set("child", b)
	b.Set("parent", a)
	b.Set("label", tree.NewString("loop here"))

	got := Search(a, "loop", DefaultOptions())
	assert.Equal(t, []string{`child.label: "loop here..."`}, lines(got))
}

func TestSearch_SequencePaths(t *testing.T) {
	root := tree.NewSequence(
		tree.NewString("skip"),
		tree.FromAny(map[string]any{"k": "hit"}),
		tree.NewSequence(tree.NewString("hit again")),
	)

	got := Search(root, "hit", DefaultOptions())
	assert.Equal(t, []string{
		`[1].k: "hit..."`,
		`[2][0]: "hit again..."`,
	}, lines(got))
}

func TestSearch_IndexNameMatch(t *testing.T) {
	items := make([]*tree.Node, 12)
	for i := range items {
		items[i] = tree.NewNumber(float64(i))
	}
	root := tree.NewKeyed()
	root.Set("list", tree.NewSequence(items...))

	got := Search(root, "1", DefaultOptions())
	assert.Equal(t, []string{
		"list[1]: name match",
		"list[10]: name match",
		"list[11]: name match",
	}, lines(got))
}

func TestSearch_OrderWithinMember(t *testing.T) {
	root := tree.NewKeyed()
	inner := tree.NewKeyed()
	inner.Set("token", tree.NewString("nested token"))
	root.Set("token", tree.NewString("token value"))
	root.Set("tokens", inner)

	got := Search(root, "token", DefaultOptions())
	assert.Equal(t, []string{
		"token: name match",
		`token: "token value..."`,
		"tokens: name match",
		"tokens.token: name match",
		`tokens.token: "nested token..."`,
	}, lines(got))
}

func TestSearch_CaseSensitive(t *testing.T) {
	root := tree.FromAny(map[string]any{"Key": "Value"})
	assert.Empty(t, Search(root, "key", DefaultOptions()))
	assert.Empty(t, Search(root, "value", DefaultOptions()))
	assert.Len(t, Search(root, "Val", DefaultOptions()), 1)
}

func TestSearch_ScalarsNotMatchedByValue(t *testing.T) {
	root := tree.NewKeyed()
	root.Set("n", tree.NewNumber(42))
	root.Set("b", tree.NewBool(true))
	root.Set("z", tree.NewNull())

	assert.Empty(t, Search(root, "42", DefaultOptions()))
	assert.Empty(t, Search(root, "true", DefaultOptions()))
	assert.Empty(t, Search(root, "null", DefaultOptions()))
}

func TestSearch_NonCompositeRoot(t *testing.T) {
	assert.Empty(t, Search(tree.NewString("findme"), "findme", DefaultOptions()))
	assert.Empty(t, Search(nil, "findme", DefaultOptions()))
}

func TestSearch_TruncatesLongValues(t *testing.T) {
	long := "needle" + strings.Repeat("é", 200)
	root := tree.NewKeyed()
	root.Set("k", tree.NewString(long))

	got := Search(root, "needle", DefaultOptions())
	require.Len(t, got, 1)
	assert.Equal(t, 100, len([]rune(got[0].Value)))
	assert.True(t, strings.HasPrefix(long, got[0].Value))
	assert.True(t, strings.HasSuffix(got[0].String(), `..."`))
}

func TestSearch_SharedSubtreeReportedOnce(t *testing.T) {
	shared := tree.NewKeyed()
	shared.Set("target", tree.NewString("x"))
	root := tree.NewKeyed()
	root.Set("first", shared)
	root.Set("second", shared)

	got := Search(root, "target", DefaultOptions())
	assert.Equal(t, []string{"first.target: name match"}, lines(got))
}

func TestSearch_AcyclicReportsEveryMatchOnce(t *testing.T) {
	root := tree.FromAny(map[string]any{
		"a": map[string]any{"x": "hit", "y": map[string]any{"hit": 1}},
		"b": []any{"hit", map[string]any{"z": "hit"}},
	})

	got := Search(root, "hit", DefaultOptions())
	assert.ElementsMatch(t, []string{
		`a.x: "hit..."`,
		"a.y.hit: name match",
		`b[0]: "hit..."`,
		`b[1].z: "hit..."`,
	}, lines(got))

	seen := map[string]bool{}
	for _, l := range lines(got) {
		assert.False(t, seen[l], "duplicate %s", l)
		seen[l] = true
	}
}

// chain builds k0.k1.k2... with a "hit" member at every level.
func chain(levels int) *tree.Node {
	root := tree.NewKeyed()
	cur := root
	for i := 0; i < levels; i++ {
		cur.Set("hit", tree.NewBool(true))
		next := tree.NewKeyed()
		cur.Set("k", next)
		cur = next
	}
	return root
}

func TestSearch_DepthBound(t *testing.T) {
	root := chain(5)

	tests := []struct {
		depth int
		want  int
	}{
		{-1, 0},
		{0, 1},
		{1, 2},
		{3, 4},
		{10, 5},
	}
	for _, tt := range tests {
		got := Search(root, "hit", Options{MaxDepth: tt.depth})
		assert.Len(t, got, tt.want, "depth %d", tt.depth)
	}
}

func TestSearch_DepthMonotonic(t *testing.T) {
	root := chain(6)
	prev := Search(root, "hit", Options{MaxDepth: 0})
	for d := 1; d <= 8; d++ {
		cur := Search(root, "hit", Options{MaxDepth: d})
		require.GreaterOrEqual(t, len(cur), len(prev))
		assert.Equal(t, lines(prev), lines(cur)[:len(prev)], "depth %d must extend depth %d", d, d-1)
		prev = cur
	}
}

func TestSearch_Exclude(t *testing.T) {
	root := tree.FromAny(map[string]any{
		"config": map[string]any{"secret": "hit", "public": "hit"},
		"cache":  map[string]any{"deep": map[string]any{"v": "hit"}},
	})

	globs, err := CompileExcludes([]string{"config.secret", "cache.**"})
	require.NoError(t, err)

	got := Search(root, "hit", Options{MaxDepth: DefaultMaxDepth, Exclude: globs})
	assert.Equal(t, []string{`config.public: "hit..."`}, lines(got))
}

func TestSearch_ExcludeSegmentWildcard(t *testing.T) {
	root := tree.FromAny(map[string]any{
		"a": map[string]any{"b": map[string]any{"c": "hit"}, "d": "hit"},
	})

	globs, err := CompileExcludes([]string{"a.*"})
	require.NoError(t, err)

	got := Search(root, "hit", Options{MaxDepth: DefaultMaxDepth, Exclude: globs})
	assert.Empty(t, got, "excluding a.b prunes its subtree")
}

func TestSearch_Limit(t *testing.T) {
	root := tree.FromAny([]any{"hit", "hit", "hit", "hit"})
	got := Search(root, "hit", Options{MaxDepth: DefaultMaxDepth, Limit: 2})
	assert.Equal(t, []string{`[0]: "hit..."`, `[1]: "hit..."`}, lines(got))
}
