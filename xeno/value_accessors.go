package xeno

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.data.(int64)
	case KindFloat:
		return int64(v.data.(float64))
	default:
		return 0
	}
}

func (v Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.data.(float64)
	case KindInt:
		return float64(v.data.(int64))
	default:
		return 0
	}
}

// Sequence returns the elements of a sequence value. The slice is shared and must not be modified.
func (v Value) Sequence() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.data.([]Value)
}

// Mapping returns the mapping behind a mapping value. It must be treated as read-only.
func (v Value) Mapping() *Mapping {
	if v.kind != KindMapping {
		return nil
	}
	return v.data.(*Mapping)
}
