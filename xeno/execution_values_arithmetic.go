package xeno

import "math"

func addValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		a, b := left.Int(), right.Int()
		sum := a + b
		if (b > 0 && sum < a) || (b < 0 && sum > a) {
			return NewNull(), unevaluable("integer overflow in %s", SymbolAdd)
		}
		return NewInt(sum), nil
	case left.isNumeric() && right.isNumeric():
		return NewFloat(left.Float() + right.Float()), nil
	case left.Kind() == KindString || right.Kind() == KindString:
		return NewString(left.String() + right.String()), nil
	case left.Kind() == KindSequence && right.Kind() == KindSequence:
		l, r := left.Sequence(), right.Sequence()
		out := make([]Value, 0, len(l)+len(r))
		out = append(out, l...)
		out = append(out, r...)
		return NewSequence(out), nil
	default:
		return NewNull(), unevaluable("unsupported operands for %s: %s and %s", SymbolAdd, left.Kind(), right.Kind())
	}
}

func subtractValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		a, b := left.Int(), right.Int()
		diff := a - b
		if (b < 0 && diff < a) || (b > 0 && diff > a) {
			return NewNull(), unevaluable("integer overflow in %s", SymbolSubtract)
		}
		return NewInt(diff), nil
	case left.isNumeric() && right.isNumeric():
		return NewFloat(left.Float() - right.Float()), nil
	default:
		return NewNull(), unevaluable("unsupported operands for %s: %s and %s", SymbolSubtract, left.Kind(), right.Kind())
	}
}

func multiplyValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		a, b := left.Int(), right.Int()
		if a == 0 || b == 0 {
			return NewInt(0), nil
		}
		product := a * b
		if product/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return NewNull(), unevaluable("integer overflow in %s", SymbolMultiply)
		}
		return NewInt(product), nil
	case left.isNumeric() && right.isNumeric():
		return NewFloat(left.Float() * right.Float()), nil
	default:
		return NewNull(), unevaluable("unsupported operands for %s: %s and %s", SymbolMultiply, left.Kind(), right.Kind())
	}
}

// compareValues implements ⊗ (greater-than) and ⊘ (less-than).
func compareValues(op string, left, right Value) (Value, error) {
	var cmp int
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		a, b := left.Int(), right.Int()
		switch {
		case a > b:
			cmp = 1
		case a < b:
			cmp = -1
		}
	case left.isNumeric() && right.isNumeric():
		a, b := left.Float(), right.Float()
		if math.IsNaN(a) || math.IsNaN(b) {
			return NewBool(false), nil
		}
		switch {
		case a > b:
			cmp = 1
		case a < b:
			cmp = -1
		}
	case left.Kind() == KindString && right.Kind() == KindString:
		a, b := left.String(), right.String()
		switch {
		case a > b:
			cmp = 1
		case a < b:
			cmp = -1
		}
	default:
		return NewNull(), unevaluable("unsupported operands for %s: %s and %s", op, left.Kind(), right.Kind())
	}
	if op == SymbolGreater {
		return NewBool(cmp > 0), nil
	}
	return NewBool(cmp < 0), nil
}
