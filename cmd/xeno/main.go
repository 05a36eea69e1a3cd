package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/repr"

	"github.com/xenoquest/xenocode/xeno"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "trace":
		return traceCommand(args[2:])
	case "test":
		return testCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "repl":
		return runREPL()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	var inputs inputList
	fs.Var(&inputs, "input", "queue an input value for §receive (repeatable)")
	traceLevel := fs.String("trace", "none", "trace level: none, basic or detailed")
	maxSteps := fs.Int("max-steps", 0, "statement budget (0 uses the default)")
	showVars := fs.Bool("vars", false, "dump the final variable table")
	checkOnly := fs.Bool("check", false, "only parse the program without executing")
	verbose := fs.Bool("v", false, "debug logging on stderr")
	veryVerbose := fs.Bool("vv", false, "trace logging on stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("xeno run: program path required")
	}

	source, path, err := readProgram(remaining[0])
	if err != nil {
		return err
	}
	level, err := xeno.ParseTraceLevel(*traceLevel)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, *verbose, *veryVerbose)
	engine, err := xeno.NewEngine(xeno.Config{
		Trace:     level,
		StepQuota: *maxSteps,
		Logger:    &logger,
	})
	if err != nil {
		return err
	}
	logger.Debug().Str("program", path).Str("config", engine.ConfigSummary()).Msg("starting")

	program, err := engine.Compile(source)
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	if *checkOnly {
		return nil
	}

	result := engine.Run(context.Background(), program, inputs.values())
	for _, line := range result.Output {
		fmt.Println(line)
	}
	for _, entry := range result.Trace {
		fmt.Fprintln(os.Stderr, mutedStyle.Render("trace: "+entry))
	}
	if *showVars {
		printVariables(result.Variables)
	}
	if !result.Success {
		return fmt.Errorf("execution failed: %w", result.Err)
	}
	return nil
}

func printVariables(vars map[string]xeno.Value) {
	for _, name := range sortedNames(vars) {
		fmt.Printf("%s = %s\n", name, repr.String(vars[name].Native(), repr.Indent("  ")))
	}
}

func sortedNames(vars map[string]xeno.Value) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func readProgram(path string) (string, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("resolve program path: %w", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", "", fmt.Errorf("read program: %w", err)
	}
	return string(data), abs, nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] <args>\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [-input v]... [-trace level] [-max-steps n] [-vars] [-check] <program>")
	fmt.Fprintln(os.Stderr, "  trace [-input v]... [-interactive] <program>")
	fmt.Fprintln(os.Stderr, "  test <suite.yaml|dir>...")
	fmt.Fprintln(os.Stderr, "  fmt [-w] [-check] <path>...")
	fmt.Fprintln(os.Stderr, "  analyze <program>")
	fmt.Fprintln(os.Stderr, "  repl")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

// inputList collects repeated -input flags; each is parsed as a literal.
type inputList []string

func (l *inputList) String() string {
	return strings.Join(*l, ", ")
}

func (l *inputList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func (l inputList) values() []xeno.Value {
	out := make([]xeno.Value, len(l))
	for i, raw := range l {
		out[i] = xeno.ParseLiteral(raw)
	}
	return out
}
