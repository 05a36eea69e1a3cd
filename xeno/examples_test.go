package xeno

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestExamplePrograms(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.xeno"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no example programs found")
	}

	engine := MustNewEngine(Config{})
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".xeno")
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}
			golden, err := os.ReadFile(strings.TrimSuffix(path, ".xeno") + ".out")
			if err != nil {
				t.Fatalf("read golden output: %v", err)
			}
			want := strings.Split(strings.TrimRight(string(golden), "\n"), "\n")

			result := engine.Execute(context.Background(), string(source), nil)
			requireSuccess(t, result)
			if !reflect.DeepEqual(result.Output, want) {
				t.Fatalf("output mismatch:\n got: %q\nwant: %q", result.Output, want)
			}
		})
	}
}
