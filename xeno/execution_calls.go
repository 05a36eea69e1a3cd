package xeno

import "strings"

func (exec *Execution) defineFunction(stmt *FunctionStmt) {
	exec.functions[stmt.Name] = &Function{
		Name:   stmt.Name,
		Params: stmt.Params,
		Body:   stmt.Body,
		Pos:    stmt.Pos(),
	}
	exec.tracef(stmt.Pos(), "%s %s(%s)", KeywordFunction, stmt.Name, strings.Join(stmt.Params, ", "))
}

// callFunction binds arguments over the caller's variables, runs the body and
// restores the caller's table. A failing body leaves its bindings visible.
func (exec *Execution) callFunction(stmt *CallStmt) error {
	fn, ok := exec.functions[stmt.Name]
	if !ok {
		return exec.errorAt(UndefinedFunction, stmt.Pos(), "undefined function %q", stmt.Name)
	}

	args := make([]Value, len(stmt.Args))
	for i, argExpr := range stmt.Args {
		val, err := exec.evalExpression(argExpr)
		if err != nil {
			return exec.wrapError(err, stmt.Pos())
		}
		args[i] = val
	}
	if len(args) != len(fn.Params) {
		return exec.errorAt(ArgumentMismatch, stmt.Pos(), "function %s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}

	rendered := make([]string, len(args))
	for i, arg := range args {
		rendered[i] = arg.Inspect()
	}
	exec.tracef(stmt.Pos(), "%s %s(%s)", KeywordCall, fn.Name, strings.Join(rendered, ", "))

	if err := exec.pushFrame(fn.Name, stmt.Pos()); err != nil {
		return err
	}
	saved := exec.vars.Snapshot()
	for i, param := range fn.Params {
		exec.vars.Define(param, args[i])
	}
	err := exec.evalStatements(fn.Body)
	exec.popFrame()
	if err != nil {
		return err
	}
	exec.vars.Restore(saved)
	return nil
}
