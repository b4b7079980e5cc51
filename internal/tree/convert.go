package tree

import (
	"fmt"
	"math"
	"sort"
)

// FromAny converts generic decoded values into a node tree. Maps are
// emitted with their keys sorted, since Go maps carry no order.
func FromAny(v any) *Node {
	switch x := v.(type) {
	case nil:
		return NewNull()
	case *Node:
		return x
	case string:
		return NewString(x)
	case bool:
		return NewBool(x)
	case int:
		return NewNumber(float64(x))
	case int64:
		return NewNumber(float64(x))
	case int32:
		return NewNumber(float64(x))
	case uint64:
		return NewNumber(float64(x))
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case []any:
		seq := NewSequence()
		for _, item := range x {
			seq.Append(FromAny(item))
		}
		return seq
	case []string:
		seq := NewSequence()
		for _, item := range x {
			seq.Append(NewString(item))
		}
		return seq
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewKeyed()
		for _, k := range keys {
			obj.Add(k, FromAny(x[k]))
		}
		return obj
	default:
		return NewString(fmt.Sprint(x))
	}
}

func fromFloat(f float64) *Node {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NewString(fmt.Sprint(f))
	}
	return NewNumber(f)
}
