package casefile

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/xenoquest/xenocode/xeno"
)

// Outcome is the verdict for one case.
type Outcome struct {
	Case   string
	Passed bool
	// Reason explains a failure in one line.
	Reason string
	// Diff is a line diff of expected and actual output, when they differ.
	Diff   string
	Result *xeno.Result
}

// Report collects the outcomes of one suite in case order.
type Report struct {
	Suite    string
	Path     string
	Outcomes []Outcome
}

func (r Report) Passed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Passed {
			n++
		}
	}
	return n
}

func (r Report) Failed() int { return len(r.Outcomes) - r.Passed() }

func (r Report) OK() bool { return r.Failed() == 0 }

// Run executes every case of suite with engine. The logger attached to ctx,
// if any, receives one debug entry per case.
func Run(ctx context.Context, engine *xeno.Engine, suite *Suite) Report {
	logger := zerolog.Ctx(ctx)
	report := Report{Suite: suite.Name, Path: suite.Path, Outcomes: make([]Outcome, 0, len(suite.Cases))}
	for _, c := range suite.Cases {
		outcome := runCase(ctx, engine, c)
		logger.Debug().
			Str("suite", suite.Name).
			Str("case", c.Name).
			Bool("passed", outcome.Passed).
			Int("steps", stepsOf(outcome.Result)).
			Msg("case finished")
		report.Outcomes = append(report.Outcomes, outcome)
	}
	return report
}

func stepsOf(result *xeno.Result) int {
	if result == nil {
		return 0
	}
	return result.Steps
}

func runCase(ctx context.Context, engine *xeno.Engine, c Case) Outcome {
	outcome := Outcome{Case: c.Name}
	inputs, err := c.InputValues()
	if err != nil {
		outcome.Reason = err.Error()
		return outcome
	}

	result := engine.Execute(ctx, c.Program, inputs)
	outcome.Result = result

	switch {
	case c.ExpectsFailure() && result.Success:
		outcome.Reason = "expected failure, program succeeded"
	case c.ExpectsFailure() && c.Kind != "" && string(result.Kind) != c.Kind:
		outcome.Reason = fmt.Sprintf("expected %s error, got %s: %s", c.Kind, result.Kind, result.Error)
	case c.ExpectsFailure() && !strings.Contains(result.Error, c.Error):
		outcome.Reason = fmt.Sprintf("expected error containing %q, got %q", c.Error, result.Error)
	case !c.ExpectsFailure() && !result.Success:
		outcome.Reason = fmt.Sprintf("unexpected %s error: %s", result.Kind, result.Error)
	}

	if !equalLines(c.Output, result.Output) {
		outcome.Diff = DiffLines(c.Output, result.Output)
		if outcome.Reason == "" {
			outcome.Reason = "output mismatch"
		}
	}
	outcome.Passed = outcome.Reason == ""
	return outcome
}

func equalLines(want, got []string) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

// DiffLines renders a line diff: unchanged lines are prefixed with two
// spaces, expected-only lines with "- " and actual-only lines with "+ ".
func DiffLines(want, got []string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(joinLines(want), joinLines(got))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}

func joinLines(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}
