package xeno

import (
	"fmt"
	"math"
	"strconv"
)

// Mapping is an insertion-ordered table keyed by Values. Mappings reachable
// from a Value are never mutated in place; updates go through with().
type Mapping struct {
	keys  []Value
	vals  []Value
	index map[mapKey]int
}

type mapKey struct {
	kind ValueKind
	repr string
}

func newMapping(capacity int) *Mapping {
	return &Mapping{
		keys:  make([]Value, 0, capacity),
		vals:  make([]Value, 0, capacity),
		index: make(map[mapKey]int, capacity),
	}
}

func hashKey(v Value) (mapKey, error) {
	switch v.kind {
	case KindNull:
		return mapKey{kind: KindNull}, nil
	case KindBool:
		return mapKey{kind: KindBool, repr: strconv.FormatBool(v.Bool())}, nil
	case KindInt:
		return mapKey{kind: KindInt, repr: strconv.FormatInt(v.Int(), 10)}, nil
	case KindFloat:
		f := v.Float()
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.Exp2(63) {
			return mapKey{kind: KindInt, repr: strconv.FormatInt(int64(f), 10)}, nil
		}
		return mapKey{kind: KindFloat, repr: strconv.FormatFloat(f, 'g', -1, 64)}, nil
	case KindString:
		return mapKey{kind: KindString, repr: v.data.(string)}, nil
	default:
		return mapKey{}, fmt.Errorf("unhashable key of type %s", v.kind)
	}
}

func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []Value {
	if m == nil {
		return nil
	}
	out := make([]Value, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Mapping) Each(fn func(key, val Value)) {
	if m == nil {
		return
	}
	for i, key := range m.keys {
		fn(key, m.vals[i])
	}
}

// Get looks up key; unhashable keys are reported as absent.
func (m *Mapping) Get(key Value) (Value, bool) {
	val, ok, err := m.lookup(key)
	if err != nil {
		return NewNull(), false
	}
	return val, ok
}

func (m *Mapping) lookup(key Value) (Value, bool, error) {
	hk, err := hashKey(key)
	if err != nil {
		return NewNull(), false, err
	}
	if m == nil {
		return NewNull(), false, nil
	}
	idx, ok := m.index[hk]
	if !ok {
		return NewNull(), false, nil
	}
	return m.vals[idx], true, nil
}

func (m *Mapping) set(key, val Value) error {
	hk, err := hashKey(key)
	if err != nil {
		return err
	}
	if idx, ok := m.index[hk]; ok {
		m.vals[idx] = val
		return nil
	}
	m.index[hk] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
	return nil
}

func (m *Mapping) clone() *Mapping {
	out := newMapping(m.Len() + 1)
	if m == nil {
		return out
	}
	out.keys = append(out.keys, m.keys...)
	out.vals = append(out.vals, m.vals...)
	for k, v := range m.index {
		out.index[k] = v
	}
	return out
}

// with returns a copy of m with key bound to val.
func (m *Mapping) with(key, val Value) (*Mapping, error) {
	out := m.clone()
	if err := out.set(key, val); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Mapping) equal(other *Mapping) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i, key := range m.keys {
		val, ok := other.Get(key)
		if !ok || !m.vals[i].Equal(val) {
			return false
		}
	}
	return true
}
