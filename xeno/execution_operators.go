package xeno

func (exec *Execution) evalExpression(expr Expression) (Value, error) {
	switch e := expr.(type) {
	case *StringLiteral:
		return NewString(e.Value), nil
	case *IntegerLiteral:
		return NewInt(e.Value), nil
	case *FloatLiteral:
		return NewFloat(e.Value), nil
	case *BoolLiteral:
		return NewBool(e.Value), nil
	case *NullLiteral:
		return NewNull(), nil
	case *MapLiteral:
		return NewMapping(nil), nil
	case *ArrayLiteral:
		elems := make([]Value, len(e.Elements))
		for i, elemExpr := range e.Elements {
			val, err := exec.evalExpression(elemExpr)
			if err != nil {
				return NewNull(), err
			}
			elems[i] = val
		}
		return NewSequence(elems), nil
	case *Identifier:
		val, ok := exec.vars.Get(e.Name)
		if !ok {
			return NewNull(), unevaluable("undefined variable %q", e.Name)
		}
		return val, nil
	case *IndexExpr:
		obj, err := exec.evalExpression(e.Object)
		if err != nil {
			return NewNull(), err
		}
		idx, err := exec.evalExpression(e.Index)
		if err != nil {
			return NewNull(), err
		}
		return indexValue(obj, idx)
	case *ExistsExpr:
		return NewBool(exec.exists(e.Target)), nil
	case *BinaryExpr:
		return exec.evalBinaryExpr(e)
	case *NotExpr:
		val, err := exec.evalExpression(e.Right)
		if err != nil {
			return NewNull(), err
		}
		return NewBool(!val.Truthy()), nil
	case *InvalidExpr:
		if e.Source == "" {
			return NewNull(), unevaluable("%s", e.Reason)
		}
		return NewNull(), unevaluable("%s: %s", e.Reason, e.Source)
	default:
		return NewNull(), unevaluable("unsupported expression %T", expr)
	}
}

// exists reports whether a variable is defined or an indexed element is
// present. Any evaluation failure counts as absent; other targets never exist.
func (exec *Execution) exists(target Expression) bool {
	switch t := target.(type) {
	case *Identifier:
		return exec.vars.Has(t.Name)
	case *IndexExpr:
		_, err := exec.evalExpression(t)
		return err == nil
	default:
		return false
	}
}

func (exec *Execution) evalBinaryExpr(expr *BinaryExpr) (Value, error) {
	left, err := exec.evalExpression(expr.Left)
	if err != nil {
		return NewNull(), err
	}
	right, err := exec.evalExpression(expr.Right)
	if err != nil {
		return NewNull(), err
	}
	switch expr.Operator {
	case SymbolAdd:
		return addValues(left, right)
	case SymbolSubtract:
		return subtractValues(left, right)
	case SymbolMultiply:
		return multiplyValues(left, right)
	case SymbolGreater, SymbolLess:
		return compareValues(expr.Operator, left, right)
	case SymbolEqual:
		return NewBool(left.Equal(right)), nil
	default:
		return NewNull(), unevaluable("unsupported operator %s", expr.Operator)
	}
}

func indexValue(obj, idx Value) (Value, error) {
	switch obj.Kind() {
	case KindSequence:
		seq := obj.Sequence()
		i, err := sequenceIndex(idx, len(seq))
		if err != nil {
			return NewNull(), err
		}
		return seq[i], nil
	case KindString:
		runes := []rune(obj.String())
		i, err := sequenceIndex(idx, len(runes))
		if err != nil {
			return NewNull(), err
		}
		return NewString(string(runes[i])), nil
	case KindMapping:
		val, ok, err := obj.Mapping().lookup(idx)
		if err != nil {
			return NewNull(), unevaluable("%s", err.Error())
		}
		if !ok {
			return NewNull(), unevaluable("key %s not found", idx.Inspect())
		}
		return val, nil
	default:
		return NewNull(), unevaluable("cannot index %s", obj.Kind())
	}
}

func sequenceIndex(idx Value, length int) (int, error) {
	if idx.Kind() != KindInt {
		return 0, unevaluable("index must be an integer, got %s", idx.Kind())
	}
	i := idx.Int()
	if i < 0 || i >= int64(length) {
		return 0, unevaluable("index %d out of range (length %d)", i, length)
	}
	return int(i), nil
}
