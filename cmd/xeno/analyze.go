package main

import (
	"errors"
	"flag"
	"fmt"
	"sort"

	"github.com/xenoquest/xenocode/xeno"
)

const topLevel = "<program>"

type lintWarning struct {
	Function string
	Pos      xeno.Position
	Message  string
}

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("xeno analyze: program path required")
	}

	source, path, err := readProgram(remaining[0])
	if err != nil {
		return err
	}

	engine := xeno.MustNewEngine(xeno.Config{})
	program, err := engine.Compile(source)
	if err != nil {
		return fmt.Errorf("analysis compile failed: %w", err)
	}

	warnings := analyzeProgramWarnings(program)
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		line := warning.Pos.Line
		column := warning.Pos.Column
		if line <= 0 {
			line = 1
		}
		if column <= 0 {
			column = 1
		}
		fmt.Printf("%s:%d:%d: %s (%s)\n", path, line, column, warning.Message, warning.Function)
	}

	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

type analyzer struct {
	defined  map[string]*xeno.FunctionStmt
	warnings []lintWarning
}

func analyzeProgramWarnings(program *xeno.Program) []lintWarning {
	a := &analyzer{defined: make(map[string]*xeno.FunctionStmt)}
	a.collectFunctions(topLevel, program.Statements)
	a.lintStatements(topLevel, program.Statements)
	for _, skipped := range program.Skipped {
		a.warn(topLevel, skipped.Pos(), fmt.Sprintf("line ignored: %q is not a statement", skipped.Text))
	}

	sort.SliceStable(a.warnings, func(i, j int) bool {
		if a.warnings[i].Pos.Line != a.warnings[j].Pos.Line {
			return a.warnings[i].Pos.Line < a.warnings[j].Pos.Line
		}
		if a.warnings[i].Pos.Column != a.warnings[j].Pos.Column {
			return a.warnings[i].Pos.Column < a.warnings[j].Pos.Column
		}
		return a.warnings[i].Function < a.warnings[j].Function
	})
	return a.warnings
}

func (a *analyzer) warn(function string, pos xeno.Position, message string) {
	a.warnings = append(a.warnings, lintWarning{Function: function, Pos: pos, Message: message})
}

// collectFunctions records the first definition of every function name,
// wherever it appears, and flags redefinitions.
func (a *analyzer) collectFunctions(function string, statements []xeno.Statement) {
	for _, stmt := range statements {
		switch typed := stmt.(type) {
		case *xeno.FunctionStmt:
			if first, ok := a.defined[typed.Name]; ok {
				a.warn(function, typed.Pos(), fmt.Sprintf("function %s redefined (first defined on line %d)", typed.Name, first.Pos().Line))
			} else {
				a.defined[typed.Name] = typed
			}
			a.collectFunctions(typed.Name, typed.Body)
		case *xeno.IterateStmt:
			a.collectFunctions(function, typed.Body)
		case *xeno.IfStmt:
			a.collectFunctions(function, typed.Consequent)
			a.collectFunctions(function, typed.Alternate)
		}
	}
}

func (a *analyzer) lintStatements(function string, statements []xeno.Statement) {
	for _, stmt := range statements {
		switch typed := stmt.(type) {
		case *xeno.CallStmt:
			a.lintCall(function, typed)
		case *xeno.FunctionStmt:
			if len(typed.Body) == 0 {
				a.warn(function, typed.Pos(), fmt.Sprintf("function %s has an empty body", typed.Name))
			}
			a.lintStatements(typed.Name, typed.Body)
		case *xeno.IterateStmt:
			if len(typed.Body) == 0 {
				a.warn(function, typed.Pos(), "§iterate block is empty")
			}
			a.lintStatements(function, typed.Body)
		case *xeno.IfStmt:
			if len(typed.Consequent) == 0 && len(typed.Alternate) == 0 {
				a.warn(function, typed.Pos(), "§if block is empty")
			}
			a.lintStatements(function, typed.Consequent)
			a.lintStatements(function, typed.Alternate)
		}
	}
}

func (a *analyzer) lintCall(function string, call *xeno.CallStmt) {
	def, ok := a.defined[call.Name]
	if !ok {
		a.warn(function, call.Pos(), fmt.Sprintf("call to undefined function %s", call.Name))
		return
	}
	if len(call.Args) != len(def.Params) {
		a.warn(function, call.Pos(), fmt.Sprintf("function %s expects %d argument(s), got %d", call.Name, len(def.Params), len(call.Args)))
	}
}
