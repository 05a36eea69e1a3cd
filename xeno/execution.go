package xeno

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Function is a definition recorded in the function table.
type Function struct {
	Name   string
	Params []string
	Body   []Statement
	Pos    Position
}

// Execution is the state of one run: variables, functions, buffers, the
// input queue and the current-line cursor. It is never shared between runs.
type Execution struct {
	engine       *Engine
	program      *Program
	ctx          context.Context
	logger       zerolog.Logger
	quota        int
	memoryQuota  int
	recursionCap int
	steps        int
	tracing      bool
	callStack    []callFrame
	vars         *Env
	functions    map[string]*Function
	inputs       []Value
	output       []string
	trace        []string
	line         int
}

type callFrame struct {
	Function string
	Pos      Position
}

func newExecution(ctx context.Context, engine *Engine, program *Program, inputs []Value) *Execution {
	exec := &Execution{
		engine:    engine,
		program:   program,
		ctx:       ctx,
		logger:    zerolog.Nop(),
		callStack: make([]callFrame, 0, 8),
		vars:      newEnv(),
		functions: make(map[string]*Function),
		inputs:    append([]Value(nil), inputs...),
		output:    []string{},
		trace:     []string{},
	}
	if engine != nil {
		exec.logger = engine.logger
		exec.quota = engine.config.StepQuota
		exec.memoryQuota = engine.config.MemoryQuotaBytes
		exec.recursionCap = engine.config.RecursionLimit
		exec.tracing = engine.config.Trace != TraceNone
	}
	return exec
}

func (exec *Execution) evalStatements(stmts []Statement) error {
	for _, stmt := range stmts {
		if err := exec.step(); err != nil {
			return exec.wrapError(err, stmt.Pos())
		}
		if err := exec.evalStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (exec *Execution) evalStatement(stmt Statement) error {
	exec.line = stmt.Pos().Line
	exec.logger.Trace().
		Int("line", exec.line).
		Str("statement", fmt.Sprintf("%T", stmt)).
		Int("depth", len(exec.callStack)).
		Msg("dispatch")

	switch s := stmt.(type) {
	case *TransmitStmt:
		val, err := exec.evalExpression(s.Value)
		if err != nil {
			return exec.wrapError(err, s.Pos())
		}
		text := val.String()
		exec.output = append(exec.output, text)
		exec.tracef(s.Pos(), "%s %s", KeywordTransmit, text)
		return nil
	case *ReceiveStmt:
		if len(exec.inputs) == 0 {
			return exec.errorAt(InputExhausted, s.Pos(), "no input available for %s (input exhausted)", KeywordReceive)
		}
		val := exec.inputs[0]
		exec.inputs = exec.inputs[1:]
		label, err := exec.assign(s.Target, val)
		if err != nil {
			return exec.wrapError(err, s.Pos())
		}
		exec.tracef(s.Pos(), "%s %s %s = %s", label, SymbolAssign, KeywordReceive, val.Inspect())
		return nil
	case *AssignStmt:
		val, err := exec.evalExpression(s.Value)
		if err != nil {
			return exec.wrapError(err, s.Pos())
		}
		label, err := exec.assign(s.Target, val)
		if err != nil {
			return exec.wrapError(err, s.Pos())
		}
		exec.tracef(s.Pos(), "%s %s %s", label, SymbolAssign, val.Inspect())
		return nil
	case *IterateStmt:
		return exec.evalIterateStatement(s)
	case *IfStmt:
		return exec.evalIfStatement(s)
	case *FunctionStmt:
		exec.defineFunction(s)
		return nil
	case *CallStmt:
		return exec.callFunction(s)
	default:
		return exec.errorAt(MalformedStatement, stmt.Pos(), "unsupported statement %T", stmt)
	}
}

// assign binds val to target and returns a label describing the target for the trace.
func (exec *Execution) assign(target Target, val Value) (string, error) {
	if len(target.Indexes) == 0 {
		exec.vars.Define(target.Name, val)
		return target.Name, nil
	}
	current, ok := exec.vars.Get(target.Name)
	if !ok {
		return "", unevaluable("undefined variable %q", target.Name)
	}
	label := target.Name
	path := make([]Value, len(target.Indexes))
	for i, idxExpr := range target.Indexes {
		idx, err := exec.evalExpression(idxExpr)
		if err != nil {
			return "", err
		}
		path[i] = idx
		label += "[" + idx.Inspect() + "]"
	}
	updated, err := setIndexed(current, path, val)
	if err != nil {
		return "", err
	}
	exec.vars.Define(target.Name, updated)
	return label, nil
}

// setIndexed returns a copy of container with the element at path replaced.
func setIndexed(container Value, path []Value, val Value) (Value, error) {
	key := path[0]
	switch container.Kind() {
	case KindMapping:
		m := container.Mapping()
		next := val
		if len(path) > 1 {
			existing, ok, err := m.lookup(key)
			if err != nil {
				return NewNull(), unevaluable("%s", err.Error())
			}
			if !ok {
				return NewNull(), unevaluable("key %s not found", key.Inspect())
			}
			if next, err = setIndexed(existing, path[1:], val); err != nil {
				return NewNull(), err
			}
		}
		updated, err := m.with(key, next)
		if err != nil {
			return NewNull(), unevaluable("%s", err.Error())
		}
		return NewMapping(updated), nil
	case KindSequence:
		seq := container.Sequence()
		i, err := sequenceIndex(key, len(seq))
		if err != nil {
			return NewNull(), err
		}
		next := val
		if len(path) > 1 {
			if next, err = setIndexed(seq[i], path[1:], val); err != nil {
				return NewNull(), err
			}
		}
		out := make([]Value, len(seq))
		copy(out, seq)
		out[i] = next
		return NewSequence(out), nil
	default:
		return NewNull(), unevaluable("cannot assign into %s", container.Kind())
	}
}
