package xeno

import "fmt"

func (exec *Execution) tracef(pos Position, format string, args ...any) {
	if !exec.tracing {
		return
	}
	exec.trace = append(exec.trace, fmt.Sprintf("[line %d] ", pos.Line)+fmt.Sprintf(format, args...))
}

func (exec *Execution) pushFrame(function string, pos Position) error {
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return exec.errorAt(RecursionLimit, pos, "recursion depth exceeded (limit %d)", exec.recursionCap)
	}
	exec.callStack = append(exec.callStack, callFrame{Function: function, Pos: pos})
	return nil
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}

// CurrentLine is the line of the statement being dispatched.
func (exec *Execution) CurrentLine() int {
	return exec.line
}
