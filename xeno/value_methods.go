package xeno

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String returns the text form written by §transmit.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.data.(string)
	default:
		return v.Inspect()
	}
}

// Inspect is like String but quotes strings, the way values appear inside containers.
func (v Value) Inspect() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindFloat:
		return formatFloat(v.data.(float64))
	case KindString:
		return `"` + v.data.(string) + `"`
	case KindSequence:
		elems := v.data.([]Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.Inspect()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMapping:
		m := v.data.(*Mapping)
		parts := make([]string, 0, m.Len())
		m.Each(func(key, val Value) {
			parts = append(parts, key.Inspect()+": "+val.Inspect())
		})
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.Bool()
	case KindInt:
		return v.data.(int64) != 0
	case KindFloat:
		return v.data.(float64) != 0
	case KindString:
		return v.data.(string) != ""
	case KindSequence:
		return len(v.data.([]Value)) > 0
	case KindMapping:
		return v.data.(*Mapping).Len() > 0
	default:
		return true
	}
}

// Equal compares by tag and value. Integers and floats compare numerically.
func (v Value) Equal(other Value) bool {
	if v.isNumeric() && other.isNumeric() {
		if v.kind == KindInt && other.kind == KindInt {
			return v.Int() == other.Int()
		}
		return v.Float() == other.Float()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool() == other.Bool()
	case KindString:
		return v.data.(string) == other.data.(string)
	case KindSequence:
		left, right := v.Sequence(), other.Sequence()
		if len(left) != len(right) {
			return false
		}
		for i := range left {
			if !left[i].Equal(right[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		return v.Mapping().equal(other.Mapping())
	default:
		return false
	}
}

// Native converts the value into plain Go data: nil, bool, int64, float64,
// string, []any or map[any]any.
func (v Value) Native() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool()
	case KindInt:
		return v.data.(int64)
	case KindFloat:
		return v.data.(float64)
	case KindString:
		return v.data.(string)
	case KindSequence:
		elems := v.Sequence()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = e.Native()
		}
		return out
	case KindMapping:
		out := make(map[any]any, v.Mapping().Len())
		v.Mapping().Each(func(key, val Value) {
			out[key.Native()] = val.Native()
		})
		return out
	default:
		return nil
	}
}

// FromNative converts decoded host data (YAML, JSON, literals) into a Value.
// Go maps have no order, so their keys are inserted sorted by text form.
func FromNative(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return NewNull(), nil
	case Value:
		return x, nil
	case bool:
		return NewBool(x), nil
	case int:
		return NewInt(int64(x)), nil
	case int32:
		return NewInt(int64(x)), nil
	case int64:
		return NewInt(x), nil
	case uint:
		return NewInt(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			return NewNull(), fmt.Errorf("integer %d out of range", x)
		}
		return NewInt(int64(x)), nil
	case float32:
		return NewFloat(float64(x)), nil
	case float64:
		return NewFloat(x), nil
	case string:
		return NewString(x), nil
	case []string:
		out := make([]Value, len(x))
		for i, s := range x {
			out[i] = NewString(s)
		}
		return NewSequence(out), nil
	case []any:
		out := make([]Value, len(x))
		for i, elem := range x {
			val, err := FromNative(elem)
			if err != nil {
				return NewNull(), err
			}
			out[i] = val
		}
		return NewSequence(out), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := newMapping(len(keys))
		for _, k := range keys {
			val, err := FromNative(x[k])
			if err != nil {
				return NewNull(), err
			}
			if err := m.set(NewString(k), val); err != nil {
				return NewNull(), err
			}
		}
		return NewMapping(m), nil
	case map[any]any:
		type entry struct {
			key Value
			val any
		}
		entries := make([]entry, 0, len(x))
		for k, val := range x {
			key, err := FromNative(k)
			if err != nil {
				return NewNull(), err
			}
			entries = append(entries, entry{key: key, val: val})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].key.Inspect() < entries[j].key.Inspect()
		})
		m := newMapping(len(entries))
		for _, e := range entries {
			val, err := FromNative(e.val)
			if err != nil {
				return NewNull(), err
			}
			if err := m.set(e.key, val); err != nil {
				return NewNull(), err
			}
		}
		return NewMapping(m), nil
	default:
		return NewNull(), fmt.Errorf("unsupported host value %T", raw)
	}
}
