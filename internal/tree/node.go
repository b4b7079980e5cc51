// Package tree models the searchable value space: a tagged variant over
// null, scalars, ordered sequences and ordered keyed collections.
//
// Composite nodes carry an identity token so that traversals can guard
// against cycles and shared subtrees without relying on structural equality.
package tree

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Kind tags the variant held by a Node.
type Kind uint8

const (
	Null Kind = iota
	String
	Number
	Bool
	Sequence
	Keyed
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Sequence:
		return "sequence"
	case Keyed:
		return "keyed"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Member is one entry of a Keyed node.
type Member struct {
	Key   string
	Value *Node
}

// Node is the universal value. Only the fields matching Kind are meaningful.
type Node struct {
	Kind Kind

	str  string  // String payload, or the literal text of a Number
	num  float64 // Number payload
	flag bool    // Bool payload

	id      uint32 // identity token, composites only
	items   []*Node
	members []Member
}

// nextID hands out identity tokens. Zero is never issued.
var nextID atomic.Uint32

func newComposite(k Kind) *Node {
	return &Node{Kind: k, id: nextID.Add(1)}
}

// NewNull returns a null node.
func NewNull() *Node { return &Node{Kind: Null} }

// NewString returns a string scalar.
func NewString(s string) *Node { return &Node{Kind: String, str: s} }

// NewBool returns a boolean scalar.
func NewBool(b bool) *Node { return &Node{Kind: Bool, flag: b} }

// NewNumber returns a numeric scalar rendered with the shortest
// round-tripping representation.
func NewNumber(f float64) *Node {
	return &Node{Kind: Number, num: f, str: strconv.FormatFloat(f, 'g', -1, 64)}
}

// NewNumberLiteral returns a numeric scalar that keeps the literal text it
// was parsed from (e.g. "1e3", "0x1F").
func NewNumberLiteral(f float64, literal string) *Node {
	return &Node{Kind: Number, num: f, str: literal}
}

// NewSequence returns an empty sequence with a fresh identity.
func NewSequence(items ...*Node) *Node {
	n := newComposite(Sequence)
	n.items = append(n.items, items...)
	return n
}

// NewKeyed returns an empty keyed collection with a fresh identity.
func NewKeyed() *Node {
	return newComposite(Keyed)
}

// ID returns the identity token of a composite node, or 0 for scalars.
func (n *Node) ID() uint32 {
	if n == nil {
		return 0
	}
	return n.id
}

// IsComposite reports whether n has enumerable members.
func (n *Node) IsComposite() bool {
	return n != nil && (n.Kind == Sequence || n.Kind == Keyed)
}

// Str returns the string payload. For Number nodes it returns the literal.
func (n *Node) Str() string { return n.str }

// Float returns the numeric payload.
func (n *Node) Float() float64 { return n.num }

// Truth returns the boolean payload.
func (n *Node) Truth() bool { return n.flag }

// Len returns the number of members of a composite node.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case Sequence:
		return len(n.items)
	case Keyed:
		return len(n.members)
	}
	return 0
}

// Items returns the elements of a sequence. The slice must not be modified.
func (n *Node) Items() []*Node {
	if n == nil || n.Kind != Sequence {
		return nil
	}
	return n.items
}

// Members returns the members of a keyed node in insertion order.
// The slice must not be modified.
func (n *Node) Members() []Member {
	if n == nil || n.Kind != Keyed {
		return nil
	}
	return n.members
}

// Index returns the i-th element of a sequence. Negative indexes count from
// the end.
func (n *Node) Index(i int) (*Node, bool) {
	if n == nil || n.Kind != Sequence {
		return nil, false
	}
	if i < 0 {
		i += len(n.items)
	}
	if i < 0 || i >= len(n.items) {
		return nil, false
	}
	return n.items[i], true
}

// Get returns the first member stored under key.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != Keyed {
		return nil, false
	}
	for _, m := range n.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Append adds elements to a sequence.
func (n *Node) Append(items ...*Node) {
	if n.Kind != Sequence {
		panic(fmt.Sprintf("tree: Append on %s node", n.Kind))
	}
	n.items = append(n.items, items...)
}

// Set stores v under key, replacing the first existing member with that key
// in place or appending a new member.
func (n *Node) Set(key string, v *Node) {
	if n.Kind != Keyed {
		panic(fmt.Sprintf("tree: Set on %s node", n.Kind))
	}
	for i := range n.members {
		if n.members[i].Key == key {
			n.members[i].Value = v
			return
		}
	}
	n.members = append(n.members, Member{Key: key, Value: v})
}

// Add appends a member without checking for an existing key. Repeated keys
// are kept in order.
func (n *Node) Add(key string, v *Node) {
	if n.Kind != Keyed {
		panic(fmt.Sprintf("tree: Add on %s node", n.Kind))
	}
	n.members = append(n.members, Member{Key: key, Value: v})
}

// String renders scalars as their text and composites as a short summary.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case Null:
		return "null"
	case String, Number:
		return n.str
	case Bool:
		return strconv.FormatBool(n.flag)
	default:
		return fmt.Sprintf("<%s #%d len=%d>", n.Kind, n.id, n.Len())
	}
}
