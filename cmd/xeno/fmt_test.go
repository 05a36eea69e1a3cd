package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const unformattedProgram = "§iterate x §in [1, 2]  \n§if x ⊗ 1\n§transmit x\n  §else\n      §transmit 0\t\n§end_if\n§end_iterate\n\n\n"

const formattedProgram = "§iterate x §in [1, 2]\n    §if x ⊗ 1\n        §transmit x\n    §else\n        §transmit 0\n    §end_if\n§end_iterate\n"

func writeXenoFile(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.xeno")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write program: %v", err)
	}
	return path
}

func TestFormatXenoSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"nested blocks", unformattedProgram, formattedProgram},
		{"crlf", "x ← 1\r\n§transmit x\r\n", "x ← 1\n§transmit x\n"},
		{"missing newline", "§transmit 1", "§transmit 1\n"},
		{"comments and blanks", "§function f()\n# note\n\n§transmit 1\n§end_function", "§function f()\n    # note\n\n    §transmit 1\n§end_function\n"},
		{"stray closer", "§end_if\n§transmit 1", "§end_if\n§transmit 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatXenoSource(tt.in); got != tt.want {
				t.Fatalf("formatXenoSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatXenoSourceIsIdempotent(t *testing.T) {
	once := formatXenoSource(unformattedProgram)
	if twice := formatXenoSource(once); twice != once {
		t.Fatalf("second pass changed output: %q", twice)
	}
}

func TestFmtCommandRequiresPath(t *testing.T) {
	err := fmtCommand(nil)
	if err == nil {
		t.Fatalf("expected path required error")
	}
	if !strings.Contains(err.Error(), "path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFmtCommandCheckDetectsUnformattedFiles(t *testing.T) {
	path := writeXenoFile(t, unformattedProgram)
	err := fmtCommand([]string{"-check", path})
	if err == nil {
		t.Fatalf("expected formatting check failure")
	}
	if !strings.Contains(err.Error(), "1 file(s) need formatting") {
		t.Fatalf("unexpected check error: %v", err)
	}
}

func TestFmtCommandWriteFormatsFileInPlace(t *testing.T) {
	path := writeXenoFile(t, unformattedProgram)
	if err := fmtCommand([]string{"-w", path}); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}

	updated, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	if got := string(updated); got != formattedProgram {
		t.Fatalf("unexpected formatted output: %q", got)
	}
}

func TestFmtCommandPrintsFormattedOutput(t *testing.T) {
	path := writeXenoFile(t, unformattedProgram)
	out, err := captureStdout(t, func() error {
		return fmtCommand([]string{path})
	})
	if err != nil {
		t.Fatalf("fmt command failed: %v", err)
	}
	if out != formattedProgram {
		t.Fatalf("unexpected stdout output: %q", out)
	}
}

func TestFmtCommandFormatsDirectories(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "a.xeno")
	second := filepath.Join(root, "nested", "b.xeno")
	ignored := filepath.Join(root, "notes.txt")
	if err := os.MkdirAll(filepath.Dir(second), 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	for path, contents := range map[string]string{
		first:   "§if §true  \n§transmit 1\n§end_if",
		second:  unformattedProgram,
		ignored: "left alone  ",
	} {
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	if err := fmtCommand([]string{"-w", root}); err != nil {
		t.Fatalf("fmt directory failed: %v", err)
	}
	if err := fmtCommand([]string{"-check", root}); err != nil {
		t.Fatalf("expected no formatting diffs after write, got %v", err)
	}
	notes, err := os.ReadFile(ignored)
	if err != nil {
		t.Fatalf("read notes: %v", err)
	}
	if string(notes) != "left alone  " {
		t.Fatalf("non-program file was rewritten: %q", notes)
	}
}
