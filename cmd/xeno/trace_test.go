package main

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xenoquest/xenocode/xeno"
)

func traceResult(t *testing.T, source string) *xeno.Result {
	t.Helper()
	engine := xeno.MustNewEngine(xeno.Config{Trace: xeno.TraceDetailed})
	return engine.Execute(context.Background(), source, nil)
}

func TestRenderTraceReportSuccess(t *testing.T) {
	result := traceResult(t, "x ← 2\n§transmit x")

	report := renderTraceReport(result, 80)
	for _, want := range []string{"Output", "Trace", "Variables", "x ← 2", "§transmit 2", "x = 2", "ok in 2 step(s)"} {
		if !strings.Contains(report, want) {
			t.Fatalf("expected %q in report:\n%s", want, report)
		}
	}
}

func TestRenderTraceReportFailure(t *testing.T) {
	result := traceResult(t, "§call missing()")

	report := renderTraceReport(result, 80)
	if !strings.Contains(report, "UndefinedFunction after 1 step(s)") {
		t.Fatalf("expected failure status:\n%s", report)
	}
	if !strings.Contains(report, "(none)") {
		t.Fatalf("empty panels should say so:\n%s", report)
	}
}

func TestTraceCommandPrintsReport(t *testing.T) {
	path := writeScript(t, "v ← §receive\n§transmit v")

	out, err := captureStdout(t, func() error {
		return traceCommand([]string{"-input", `"ping"`, path})
	})
	if err != nil {
		t.Fatalf("trace command failed: %v", err)
	}
	if !strings.Contains(out, `v ← §receive = "ping"`) {
		t.Fatalf("expected receive trace:\n%s", out)
	}
}

func TestTraceModelQuits(t *testing.T) {
	m := newTraceModel(traceResult(t, "§transmit 1"))

	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	tm := model.(traceModel)
	if !tm.ready {
		t.Fatalf("viewport not initialised")
	}
	if !strings.Contains(tm.View(), "Output") {
		t.Fatalf("view should show the report")
	}

	_, cmd := tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}
