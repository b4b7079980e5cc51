package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agentic-research/keysearch/internal/tree"
)

// ParseYAML decodes YAML or JSON keeping mapping order. Aliases resolve to
// the anchored node itself, so the resulting tree shares identity where the
// document shares anchors. A stream with several documents becomes a
// sequence of documents.
func ParseYAML(content []byte) (*tree.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(content))

	var docs []*tree.Node
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		c := &yamlConverter{seen: make(map[*yaml.Node]*tree.Node)}
		docs = append(docs, c.convert(&doc))
	}

	switch len(docs) {
	case 0:
		return tree.NewNull(), nil
	case 1:
		return docs[0], nil
	default:
		return tree.NewSequence(docs...), nil
	}
}

type yamlConverter struct {
	seen map[*yaml.Node]*tree.Node
}

func (c *yamlConverter) convert(n *yaml.Node) *tree.Node {
	if n == nil {
		return tree.NewNull()
	}
	if out, ok := c.seen[n]; ok {
		return out
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return tree.NewNull()
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		return c.convert(n.Alias)
	case yaml.SequenceNode:
		seq := tree.NewSequence()
		c.seen[n] = seq
		for _, item := range n.Content {
			seq.Append(c.convert(item))
		}
		return seq
	case yaml.MappingNode:
		obj := tree.NewKeyed()
		c.seen[n] = obj
		for i := 0; i+1 < len(n.Content); i += 2 {
			obj.Set(yamlKey(n.Content[i]), c.convert(n.Content[i+1]))
		}
		return obj
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return tree.NewNull()
	}
}

// yamlKey renders a mapping key. Non-scalar keys are rare; they are keyed by
// their flow-style rendering.
func yamlKey(k *yaml.Node) string {
	if k.Kind == yaml.AliasNode && k.Alias != nil {
		k = k.Alias
	}
	if k.Kind == yaml.ScalarNode {
		return k.Value
	}
	out, err := yaml.Marshal(k)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func yamlScalar(n *yaml.Node) *tree.Node {
	switch n.ShortTag() {
	case "!!null":
		return tree.NewNull()
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return tree.NewBool(b)
		}
	case "!!int":
		if i, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64); err == nil {
			return tree.NewNumberLiteral(float64(i), n.Value)
		}
		var f float64
		if err := n.Decode(&f); err == nil {
			return tree.NewNumberLiteral(f, n.Value)
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return tree.NewNumberLiteral(f, n.Value)
		}
	}
	// Strings, timestamps, binary and anything unresolvable stay textual.
	return tree.NewString(n.Value)
}
