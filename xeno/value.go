package xeno

type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

// Value is the dynamically typed runtime value. The zero Value is Null.
type Value struct {
	kind ValueKind
	data any
}

func NewNull() Value { return Value{kind: KindNull} }

func NewBool(b bool) Value { return Value{kind: KindBool, data: b} }

func NewInt(i int64) Value { return Value{kind: KindInt, data: i} }

func NewFloat(f float64) Value { return Value{kind: KindFloat, data: f} }

func NewString(s string) Value { return Value{kind: KindString, data: s} }

// NewSequence wraps elems without copying; callers must not mutate elems afterwards.
func NewSequence(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindSequence, data: elems}
}

func NewMapping(m *Mapping) Value {
	if m == nil {
		m = newMapping(0)
	}
	return Value{kind: KindMapping, data: m}
}

func (v Value) isNumeric() bool {
	return v.kind == KindInt || v.kind == KindFloat
}
