package xeno

import (
	"strings"
	"testing"
)

func TestEvaluateExpressions(t *testing.T) {
	m := newMapping(2)
	if err := m.set(NewString("a"), NewInt(1)); err != nil {
		t.Fatalf("set: %v", err)
	}
	vars := map[string]Value{
		"x":  NewInt(5),
		"s":  NewString("hi"),
		"xs": NewSequence([]Value{NewInt(7), NewInt(8)}),
		"grid": NewSequence([]Value{
			NewSequence([]Value{NewInt(1), NewInt(2)}),
			NewSequence([]Value{NewInt(3), NewInt(4)}),
		}),
		"m": NewMapping(m),
	}

	tests := []struct {
		expr string
		want string
	}{
		{`"hello"`, `"hello"`},
		{`""`, `""`},
		{`"a ⊕ b"`, `"a ⊕ b"`},
		{`42`, `42`},
		{`-3`, `-3`},
		{`3.5`, `3.5`},
		{`  7  `, `7`},
		{`[1, "a", [2]]`, `[1, "a", [2]]`},
		{`[]`, `[]`},
		{`[1, , 2]`, `[1, 2]`},
		{`§true`, `true`},
		{`§false`, `false`},
		{`x`, `5`},
		{`x ⊕ 1`, `6`},
		{`"a" ⊕ "b"`, `"ab"`},
		{`s ⊕ 1.5`, `"hi1.5"`},
		{`1 ⊕ s`, `"1hi"`},
		{`[1, 2] ⊕ [3]`, `[1, 2, 3]`},
		{`x ⊖ 7`, `-2`},
		{`2 ⊛ 2.5`, `5.0`},
		{`5 ⊗ 3`, `true`},
		{`5 ⊘ 3`, `false`},
		{`"a" ⊘ "b"`, `true`},
		{`2 ≈ 2`, `true`},
		{`"2" ≈ 2`, `false`},
		{`[1, 2] ≈ [1, 2]`, `true`},
		{`¬ §true`, `false`},
		{`¬ 0`, `true`},
		{`xs[0]`, `7`},
		{`grid[1][0]`, `3`},
		{`grid[0]`, `[1, 2]`},
		{`m["a"]`, `1`},
		{`m[1 ⊖ 0]`, `error`},
		{`xs[x ⊖ 4]`, `8`},
		{`§exists x`, `true`},
		{`§exists y`, `false`},
		{`§exists xs[4]`, `false`},
		{`§exists m["a"]`, `true`},
		{`1 ⊕ 2 ⊛ 3`, `7`},
		{`2 ⊛ 3 ⊕ 1`, `7`},
		{`10 ⊖ 3 ⊖ 2`, `9`},
		{`"[" ⊕ "]"`, `"[]"`},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr, vars)
			if tt.want == "error" {
				if err == nil {
					t.Fatalf("expected error, got %s", got.Inspect())
				}
				return
			}
			if err != nil {
				t.Fatalf("evaluate %q: %v", tt.expr, err)
			}
			if got.Inspect() != tt.want {
				t.Fatalf("evaluate %q = %s, want %s", tt.expr, got.Inspect(), tt.want)
			}
		})
	}
}

func TestEvaluateFailures(t *testing.T) {
	m := newMapping(1)
	vars := map[string]Value{
		"xs": NewSequence([]Value{NewInt(1)}),
		"m":  NewMapping(m),
		"n":  NewInt(3),
	}

	tests := []struct {
		expr     string
		contains string
	}{
		{``, "empty expression"},
		{`y`, `undefined variable "y"`},
		{`1 ⊖ "a"`, "unsupported operands for ⊖: integer and string"},
		{`[1] ⊛ 2`, "unsupported operands for ⊛"},
		{`1 ⊗ "a"`, "unsupported operands for ⊗"},
		{`§true ⊕ 1`, "unsupported operands for ⊕"},
		{`xs[9]`, "index 9 out of range (length 1)"},
		{`xs[-1]`, "index -1 out of range (length 1)"},
		{`xs["0"]`, "index must be an integer"},
		{`m["missing"]`, `key "missing" not found`},
		{`m[[1]]`, "unhashable key of type sequence"},
		{`n[0]`, "cannot index integer"},
		{`@@@`, "cannot evaluate expression"},
		{`[1, 2`, "cannot evaluate expression"},
		{`"unterminated`, "cannot evaluate expression"},
		{`5 ⊕`, "cannot evaluate expression"},
		{`"x⊕y" ⊕ "z"`, `cannot evaluate expression: "x`},
		{`[1 ⊕ 2, 3] ⊕ [4]`, "cannot evaluate expression: [1"},
		{`xs[0 ⊕ 0] ⊕ 1`, "cannot evaluate expression: xs[0"},
		{`99999999999999999999`, "integer literal out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr, vars)
			if err == nil {
				t.Fatalf("expected error, got %s", got.Inspect())
			}
			if KindOf(err) != UnevaluableExpression {
				t.Fatalf("expected UnevaluableExpression, got %q", KindOf(err))
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Fatalf("expected error containing %q, got %q", tt.contains, err.Error())
			}
		})
	}
}

func TestEvaluateStringIndexing(t *testing.T) {
	got, err := Evaluate(`word[2]`, map[string]Value{"word": NewString("héllo")})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got.String() != "l" {
		t.Fatalf("expected l, got %q", got.String())
	}
	got, err = Evaluate(`word[1]`, map[string]Value{"word": NewString("héllo")})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got.String() != "é" {
		t.Fatalf("expected é, got %q", got.String())
	}
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		text string
		kind ValueKind
		want string
	}{
		{"5", KindInt, "5"},
		{"-12", KindInt, "-12"},
		{"1.5", KindFloat, "1.5"},
		{`"quoted"`, KindString, `"quoted"`},
		{"plain", KindString, `"plain"`},
		{"hello world", KindString, `"hello world"`},
		{"§true", KindBool, "true"},
		{"[1, 2]", KindSequence, "[1, 2]"},
		{"  padded  ", KindString, `"padded"`},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ParseLiteral(tt.text)
			if got.Kind() != tt.kind {
				t.Fatalf("kind = %s, want %s", got.Kind(), tt.kind)
			}
			if got.Inspect() != tt.want {
				t.Fatalf("ParseLiteral(%q) = %s, want %s", tt.text, got.Inspect(), tt.want)
			}
		})
	}
}
