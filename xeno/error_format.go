package xeno

import (
	"fmt"
	"strings"
)

// codeFrameContext is the number of source lines shown on each side of the
// failing statement.
const codeFrameContext = 1

// formatCodeFrame renders the statement at pos between its neighbouring
// lines. The failing line is marked with '>' and the statement text, from its
// first column to the last non-blank rune, is underlined.
//
//	  --> line 3
//	  2 | x ← 1
//	> 3 | §transmit y
//	    | ^^^^^^^^^^^
//	  4 | §transmit x
func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	if pos.Line > len(lines) {
		return ""
	}

	first := max(pos.Line-codeFrameContext, 1)
	last := min(pos.Line+codeFrameContext, len(lines))
	for last > pos.Line && strings.TrimSpace(lines[last-1]) == "" {
		last--
	}
	width := len(fmt.Sprint(last))

	var b strings.Builder
	fmt.Fprintf(&b, "  --> line %d", pos.Line)
	for n := first; n <= last; n++ {
		text := strings.TrimRight(lines[n-1], " \t\r")
		marker := " "
		if n == pos.Line {
			marker = ">"
		}
		fmt.Fprintf(&b, "\n%s %*d | %s", marker, width, n, text)
		if n == pos.Line {
			fmt.Fprintf(&b, "\n  %s | %s", strings.Repeat(" ", width), underline(text, pos.Column))
		}
	}
	return b.String()
}

func underline(text string, column int) string {
	runes := []rune(text)
	start := min(max(column, 1)-1, len(runes))
	span := max(len(runes)-start, 1)
	return strings.Repeat(" ", start) + strings.Repeat("^", span)
}
