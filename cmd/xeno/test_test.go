package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSuiteFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write suite: %v", err)
	}
	return path
}

func TestTestCommandPassingSuite(t *testing.T) {
	path := writeSuiteFile(t, t.TempDir(), "echo.yaml", `name: echo
cases:
  - name: doubles input
    program: |
      n ← §receive
      §transmit n ⊕ n
    inputs: [21]
    output: ["42"]
  - name: undefined call
    program: "§call nope()"
    kind: UndefinedFunction
`)

	out, err := captureStdout(t, func() error {
		return testCommand([]string{path})
	})
	if err != nil {
		t.Fatalf("test command failed: %v\n%s", err, out)
	}
	if strings.Count(out, "PASS") != 2 {
		t.Fatalf("expected two passing cases:\n%s", out)
	}
	if !strings.Contains(out, "2 passed, 0 failed") {
		t.Fatalf("missing summary:\n%s", out)
	}
}

func TestTestCommandReportsFailuresWithDiff(t *testing.T) {
	dir := t.TempDir()
	writeSuiteFile(t, dir, "a.yaml", "cases:\n  - program: \"§transmit 1\"\n    output: [\"1\"]\n")
	writeSuiteFile(t, dir, "b.yml", "cases:\n  - name: off by one\n    program: \"§transmit 2\"\n    output: [\"3\"]\n")

	out, err := captureStdout(t, func() error {
		return testCommand([]string{dir})
	})
	if err == nil || !strings.Contains(err.Error(), "1 case(s) failed") {
		t.Fatalf("expected a failing case, got %v", err)
	}
	for _, want := range []string{"FAIL off by one: output mismatch", "- 3", "+ 2", "1 passed, 1 failed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTestCommandRejectsBadSuites(t *testing.T) {
	if err := testCommand(nil); err == nil || !strings.Contains(err.Error(), "suite path required") {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := testCommand([]string{t.TempDir()}); err == nil || !strings.Contains(err.Error(), "no suites found") {
		t.Fatalf("unexpected error: %v", err)
	}
	path := writeSuiteFile(t, t.TempDir(), "bad.yaml", "cases:\n  - program: x\n    expected: []\n")
	if err := testCommand([]string{path}); err == nil || !strings.Contains(err.Error(), "expected") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}
