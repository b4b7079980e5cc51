package ingest

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/agentic-research/keysearch/internal/tree"
)

// ParseHCL converts an HCL native-syntax file into a keyed tree.
//
// Attributes and blocks appear in source order. A block becomes a member
// named after its type, nested once per label:
//
//	resource "aws_instance" "web" { ami = "x" }  =>  resource.aws_instance.web.ami
//
// Repeated block types produce repeated keys. Expressions are evaluated
// without variables or functions; anything that needs them (references,
// function calls) is kept as its source text.
func ParseHCL(content []byte, filename string) (*tree.Node, error) {
	file, diags := hclparse.NewParser().ParseHCL(content, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse hcl %s: %w", filename, diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("parse hcl %s: unexpected body type %T", filename, file.Body)
	}
	return hclBody(body, content), nil
}

type hclItem struct {
	offset int
	key    string
	value  *tree.Node
}

func hclBody(body *hclsyntax.Body, src []byte) *tree.Node {
	items := make([]hclItem, 0, len(body.Attributes)+len(body.Blocks))

	for name, attr := range body.Attributes {
		items = append(items, hclItem{
			offset: attr.SrcRange.Start.Byte,
			key:    name,
			value:  hclExpr(attr.Expr, src),
		})
	}
	for _, block := range body.Blocks {
		items = append(items, hclItem{
			offset: block.TypeRange.Start.Byte,
			key:    block.Type,
			value:  hclBlock(block, src),
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].offset < items[j].offset })

	obj := tree.NewKeyed()
	for _, it := range items {
		obj.Add(it.key, it.value)
	}
	return obj
}

func hclBlock(block *hclsyntax.Block, src []byte) *tree.Node {
	value := hclBody(block.Body, src)
	for i := len(block.Labels) - 1; i >= 0; i-- {
		wrap := tree.NewKeyed()
		wrap.Add(block.Labels[i], value)
		value = wrap
	}
	return value
}

func hclExpr(expr hclsyntax.Expression, src []byte) *tree.Node {
	v, diags := expr.Value(nil)
	if diags.HasErrors() || !v.IsWhollyKnown() {
		return tree.NewString(string(expr.Range().SliceBytes(src)))
	}
	return ctyValue(v)
}

func ctyValue(v cty.Value) *tree.Node {
	if v.IsNull() || !v.IsKnown() {
		return tree.NewNull()
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return tree.NewString(v.AsString())
	case ty == cty.Number:
		bf := v.AsBigFloat()
		f, _ := bf.Float64()
		return tree.NewNumberLiteral(f, bf.Text('g', -1))
	case ty == cty.Bool:
		return tree.NewBool(v.True())
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		seq := tree.NewSequence()
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			seq.Append(ctyValue(ev))
		}
		return seq
	case ty.IsMapType() || ty.IsObjectType():
		obj := tree.NewKeyed()
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			obj.Add(k.AsString(), ctyValue(ev))
		}
		return obj
	default:
		return tree.NewString(v.GoString())
	}
}
