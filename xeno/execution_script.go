package xeno

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Result is the outcome of one execution. Output and Trace keep whatever was
// produced before a failure.
type Result struct {
	Output    []string
	Trace     []string
	Variables map[string]Value
	Success   bool
	// Error is a one-line description of the failure; empty on success.
	Error string
	Kind  ErrorKind
	// Err is the structured *ParseError or *RuntimeError behind Error.
	Err   error
	Steps int
}

// Compile parses source into a Program, validating block structure up front.
func (e *Engine) Compile(source string) (*Program, error) {
	p := newParser(source)
	program, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}
	program.source = source
	return program, nil
}

// Execute compiles and runs source with the given input queue. Every failure
// is reported through the Result; Execute never returns an error or panics on
// program faults.
func (e *Engine) Execute(ctx context.Context, source string, inputs []Value) *Result {
	program, err := e.Compile(source)
	if err != nil {
		e.logger.Debug().Err(err).Msg("compile failed")
		result := &Result{
			Output:    []string{},
			Trace:     []string{},
			Variables: map[string]Value{},
		}
		result.fail(err)
		return result
	}
	return e.Run(ctx, program, inputs)
}

// Run executes a compiled program with fresh state.
func (e *Engine) Run(ctx context.Context, program *Program, inputs []Value) *Result {
	if ctx == nil {
		ctx = context.Background()
	}
	exec := newExecution(ctx, e, program, inputs)
	started := time.Now()

	err := exec.evalStatements(program.Statements)

	result := &Result{
		Output:    exec.output,
		Trace:     exec.trace,
		Variables: exec.vars.Snapshot(),
		Success:   err == nil,
		Steps:     exec.steps,
	}
	if err != nil {
		result.fail(err)
	}
	e.logger.Debug().
		Bool("success", result.Success).
		Int("steps", result.Steps).
		Int("output_lines", len(result.Output)).
		Str("error_kind", string(result.Kind)).
		Dur("elapsed", time.Since(started)).
		Msg("execution finished")
	return result
}

func (r *Result) fail(err error) {
	r.Success = false
	r.Err = err
	r.Kind = KindOf(err)
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		line := 0
		if len(runtimeErr.Frames) > 0 {
			line = runtimeErr.Frames[0].Pos.Line
		}
		if line > 0 {
			r.Error = fmt.Sprintf("line %d: %s", line, runtimeErr.Message)
		} else {
			r.Error = runtimeErr.Message
		}
		return
	}
	r.Error = err.Error()
}

// Evaluate evaluates a single expression against a variable table.
func Evaluate(expression string, vars map[string]Value) (Value, error) {
	exec := newExecution(context.Background(), nil, nil, nil)
	for name, val := range vars {
		exec.vars.Define(name, val)
	}
	return exec.evalExpression(parseExpression(expression, Position{}))
}

// ParseLiteral turns host-supplied text into a Value: anything the evaluator
// accepts without variables (numbers, quoted strings, §true, sequences) is
// evaluated, everything else becomes a String.
func ParseLiteral(text string) Value {
	val, err := Evaluate(text, nil)
	if err != nil {
		return NewString(strings.TrimSpace(text))
	}
	return val
}
