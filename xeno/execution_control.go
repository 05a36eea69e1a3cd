package xeno

func (exec *Execution) evalIterateStatement(stmt *IterateStmt) error {
	collection, err := exec.evalExpression(stmt.Iterable)
	if err != nil {
		return exec.wrapError(err, stmt.Pos())
	}

	var items []Value
	switch collection.Kind() {
	case KindMapping:
		items = collection.Mapping().Keys()
	case KindSequence:
		items = collection.Sequence()
	case KindString:
		for _, r := range collection.String() {
			items = append(items, NewString(string(r)))
		}
	default:
		return exec.errorAt(UnevaluableExpression, stmt.Pos(), "cannot iterate over %s", collection.Kind())
	}

	for _, item := range items {
		if err := exec.step(); err != nil {
			return exec.wrapError(err, stmt.Pos())
		}
		exec.line = stmt.Pos().Line
		exec.vars.Define(stmt.Iterator, item)
		exec.tracef(stmt.Pos(), "%s %s = %s", KeywordIterate, stmt.Iterator, item.Inspect())
		if err := exec.evalStatements(stmt.Body); err != nil {
			return err
		}
	}
	return nil
}

func (exec *Execution) evalIfStatement(stmt *IfStmt) error {
	condition, err := exec.evalExpression(stmt.Condition)
	if err != nil {
		return exec.wrapError(err, stmt.Pos())
	}
	truthy := condition.Truthy()
	exec.tracef(stmt.Pos(), "%s %s -> %t", KeywordIf, condition.Inspect(), truthy)
	if truthy {
		return exec.evalStatements(stmt.Consequent)
	}
	if stmt.HasElse {
		return exec.evalStatements(stmt.Alternate)
	}
	return nil
}
