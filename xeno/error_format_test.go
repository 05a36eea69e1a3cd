package xeno

import "testing"

func TestFormatCodeFrame(t *testing.T) {
	tests := []struct {
		name   string
		source string
		pos    Position
		want   string
	}{
		{
			name:   "middle line",
			source: "x ← 1\n§transmit y\n§transmit x",
			pos:    Position{Line: 2, Column: 1},
			want:   "  --> line 2\n  1 | x ← 1\n> 2 | §transmit y\n    | ^^^^^^^^^^^\n  3 | §transmit x",
		},
		{
			name:   "indented statement",
			source: "§function f()\n    §transmit y\n§end_function\n",
			pos:    Position{Line: 2, Column: 5},
			want:   "  --> line 2\n  1 | §function f()\n> 2 |     §transmit y\n    |     ^^^^^^^^^^^\n  3 | §end_function",
		},
		{
			name:   "trailing blank lines dropped",
			source: "§transmit y\r\n\r\n",
			pos:    Position{Line: 1, Column: 1},
			want:   "  --> line 1\n> 1 | §transmit y\n    | ^^^^^^^^^^^",
		},
		{
			name:   "gutter widens",
			source: "a ← 1\na ← 1\na ← 1\na ← 1\na ← 1\na ← 1\na ← 1\na ← 1\na ← 1\n§call f()\nb ← 2",
			pos:    Position{Line: 10, Column: 1},
			want:   "  --> line 10\n   9 | a ← 1\n> 10 | §call f()\n     | ^^^^^^^^^\n  11 | b ← 2",
		},
		{"no line", "§transmit y", Position{}, ""},
		{"past end", "§transmit y", Position{Line: 4, Column: 1}, ""},
		{"no source", "", Position{Line: 1, Column: 1}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatCodeFrame(tt.source, tt.pos); got != tt.want {
				t.Fatalf("formatCodeFrame() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}
