package ingest

import (
	"errors"
	"fmt"

	"github.com/ohler55/ojg/jp"

	"github.com/agentic-research/keysearch/internal/tree"
)

// ErrNoMatch is returned when a selector matches nothing.
var ErrNoMatch = errors.New("selector matched nothing")

// Select narrows root with a JSONPath expression. Supported fragments are
// $, @, child names, indexes (negative from the end), bracket notation and
// the * wildcard. When several nodes match they are wrapped in a sequence.
func Select(root *tree.Node, selector string) (*tree.Node, error) {
	if selector == "" || selector == "$" {
		return root, nil
	}
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", selector, err)
	}

	current := []*tree.Node{root}
	for _, frag := range x {
		switch f := frag.(type) {
		case jp.Root, jp.At, jp.Bracket:
			continue
		case jp.Child:
			current = eachChild(current, func(n *tree.Node) []*tree.Node {
				if v, ok := n.Get(string(f)); ok {
					return []*tree.Node{v}
				}
				return nil
			})
		case jp.Nth:
			current = eachChild(current, func(n *tree.Node) []*tree.Node {
				if v, ok := n.Index(int(f)); ok {
					return []*tree.Node{v}
				}
				return nil
			})
		case jp.Wildcard:
			current = eachChild(current, func(n *tree.Node) []*tree.Node {
				switch n.Kind {
				case tree.Sequence:
					return n.Items()
				case tree.Keyed:
					out := make([]*tree.Node, 0, n.Len())
					for _, m := range n.Members() {
						out = append(out, m.Value)
					}
					return out
				}
				return nil
			})
		default:
			return nil, fmt.Errorf("jsonpath '%s': unsupported fragment %T", selector, frag)
		}
		if len(current) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMatch, selector)
		}
	}

	if len(current) == 1 {
		return current[0], nil
	}
	return tree.NewSequence(current...), nil
}

func eachChild(nodes []*tree.Node, fn func(*tree.Node) []*tree.Node) []*tree.Node {
	var out []*tree.Node
	for _, n := range nodes {
		out = append(out, fn(n)...)
	}
	return out
}
