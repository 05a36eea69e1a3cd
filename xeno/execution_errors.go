package xeno

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why an execution failed.
type ErrorKind string

const (
	MalformedStatement    ErrorKind = "MalformedStatement"
	UnmatchedBlock        ErrorKind = "UnmatchedBlock"
	UndefinedFunction     ErrorKind = "UndefinedFunction"
	InputExhausted        ErrorKind = "InputExhausted"
	UnevaluableExpression ErrorKind = "UnevaluableExpression"
	ArgumentMismatch      ErrorKind = "ArgumentMismatch"
	BudgetExceeded        ErrorKind = "BudgetExceeded"
	RecursionLimit        ErrorKind = "RecursionLimit"
	MemoryQuota           ErrorKind = "MemoryQuota"
	Canceled              ErrorKind = "Canceled"
)

type StackFrame struct {
	Function string
	Pos      Position
}

type RuntimeError struct {
	Kind      ErrorKind
	Message   string
	CodeFrame string
	Frames    []StackFrame
}

const (
	runtimeErrorFrameHead = 8
	runtimeErrorFrameTail = 8
)

var (
	errBudgetExceeded      = errors.New("execution budget exceeded")
	errMemoryQuotaExceeded = errors.New("memory quota exceeded")
)

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(re.Message)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (line %d)", frame.Function, frame.Pos.Line)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}

	if len(re.Frames) <= runtimeErrorFrameHead+runtimeErrorFrameTail {
		for _, frame := range re.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range re.Frames[:runtimeErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(re.Frames) - (runtimeErrorFrameHead + runtimeErrorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range re.Frames[len(re.Frames)-runtimeErrorFrameTail:] {
		renderFrame(frame)
	}
	return b.String()
}

// KindOf reports the ErrorKind carried by err, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		return runtimeErr.Kind
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Kind
	}
	var ee *evalError
	if errors.As(err, &ee) {
		return ee.kind
	}
	return ""
}

// evalError is raised by the evaluator and arithmetic helpers, which do not
// know the statement position; the dispatcher turns it into a RuntimeError.
type evalError struct {
	kind ErrorKind
	msg  string
}

func (e *evalError) Error() string { return e.msg }

func unevaluable(format string, args ...any) error {
	return &evalError{kind: UnevaluableExpression, msg: fmt.Sprintf(format, args...)}
}

func classifyError(err error) ErrorKind {
	var ee *evalError
	switch {
	case errors.As(err, &ee):
		return ee.kind
	case errors.Is(err, errBudgetExceeded):
		return BudgetExceeded
	case errors.Is(err, errMemoryQuotaExceeded):
		return MemoryQuota
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Canceled
	default:
		return UnevaluableExpression
	}
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return fmt.Errorf("%w (%d steps)", errBudgetExceeded, exec.quota)
	}
	if exec.memoryQuota > 0 && (exec.steps&15) == 0 {
		if err := exec.checkMemory(); err != nil {
			return err
		}
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

func (exec *Execution) errorAt(kind ErrorKind, pos Position, format string, args ...any) error {
	return exec.newRuntimeError(kind, fmt.Sprintf(format, args...), pos)
}

func (exec *Execution) newRuntimeError(kind ErrorKind, message string, pos Position) error {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	if len(exec.callStack) > 0 {
		// innermost function first, then the call sites
		current := exec.callStack[len(exec.callStack)-1]
		frames = append(frames, StackFrame{Function: current.Function, Pos: pos})
		for i := len(exec.callStack) - 1; i >= 0; i-- {
			caller := "<program>"
			if i > 0 {
				caller = exec.callStack[i-1].Function
			}
			frames = append(frames, StackFrame{Function: caller, Pos: exec.callStack[i].Pos})
		}
	} else {
		frames = append(frames, StackFrame{Function: "<program>", Pos: pos})
	}
	codeFrame := ""
	if exec.program != nil {
		codeFrame = formatCodeFrame(exec.program.source, pos)
	}
	return &RuntimeError{Kind: kind, Message: message, CodeFrame: codeFrame, Frames: frames}
}

func (exec *Execution) wrapError(err error, pos Position) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*RuntimeError); ok {
		return err
	}
	return exec.newRuntimeError(classifyError(err), err.Error(), pos)
}
