package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/xenoquest/xenocode/casefile"
	"github.com/xenoquest/xenocode/xeno"
)

func testCommand(args []string) error {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	maxSteps := fs.Int("max-steps", 0, "statement budget per case (0 uses the default)")
	verbose := fs.Bool("v", false, "debug logging on stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return errors.New("xeno test: suite path required")
	}

	suites, err := loadSuites(targets)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, *verbose, false)
	ctx := logger.WithContext(context.Background())
	engine, err := xeno.NewEngine(xeno.Config{StepQuota: *maxSteps})
	if err != nil {
		return err
	}

	passed, failed := 0, 0
	for _, suite := range suites {
		report := casefile.Run(ctx, engine, suite)
		fmt.Println(headerStyle.Render(report.Suite) + " " + mutedStyle.Render(report.Path))
		for _, outcome := range report.Outcomes {
			if outcome.Passed {
				fmt.Println("  " + resultStyle.Render("PASS") + " " + outcome.Case)
				continue
			}
			fmt.Println("  " + errorStyle.Render("FAIL") + " " + outcome.Case + ": " + outcome.Reason)
			if outcome.Diff != "" {
				for _, line := range strings.Split(strings.TrimSuffix(outcome.Diff, "\n"), "\n") {
					fmt.Println("      " + styleDiffLine(line))
				}
			}
		}
		passed += report.Passed()
		failed += report.Failed()
	}

	fmt.Printf("%d passed, %d failed\n", passed, failed)
	if failed > 0 {
		return fmt.Errorf("xeno test: %d case(s) failed", failed)
	}
	return nil
}

func loadSuites(targets []string) ([]*casefile.Suite, error) {
	var suites []*casefile.Suite
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if info.IsDir() {
			loaded, err := casefile.LoadDir(target)
			if err != nil {
				return nil, err
			}
			suites = append(suites, loaded...)
			continue
		}
		suite, err := casefile.Load(target)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}
	if len(suites) == 0 {
		return nil, errors.New("xeno test: no suites found")
	}
	return suites, nil
}

func styleDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "- "):
		return errorStyle.Render(line)
	case strings.HasPrefix(line, "+ "):
		return resultStyle.Render(line)
	default:
		return mutedStyle.Render(line)
	}
}
