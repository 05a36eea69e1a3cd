package xeno

import "strings"

// scanner walks expression text tracking string literals and bracket depth,
// so operator and separator searches only see top-level text.
type scanner struct {
	input    string
	offset   int
	depth    int
	inString bool
}

func newScanner(input string) *scanner {
	return &scanner{input: input}
}

// next advances past one byte and reports whether the byte at the old offset
// was at top level (outside any string literal or bracket pair).
func (s *scanner) next() (byte, bool) {
	ch := s.input[s.offset]
	topLevel := !s.inString && s.depth == 0
	switch {
	case ch == '"':
		s.inString = !s.inString
	case s.inString:
	case ch == '[':
		s.depth++
	case ch == ']':
		if s.depth > 0 {
			s.depth--
		}
	}
	s.offset++
	return ch, topLevel
}

func (s *scanner) done() bool { return s.offset >= len(s.input) }

// splitTopLevel splits input on top-level occurrences of sep.
func splitTopLevel(input string, sep byte) []string {
	var parts []string
	s := newScanner(input)
	last := 0
	for !s.done() {
		start := s.offset
		ch, top := s.next()
		if top && ch == sep {
			parts = append(parts, input[last:start])
			last = start + 1
		}
	}
	return append(parts, input[last:])
}

// matchingBracket returns the offset of the ']' closing the '[' at open, or -1.
func matchingBracket(input string, open int) int {
	if open < 0 || open >= len(input) || input[open] != '[' {
		return -1
	}
	depth := 0
	inString := false
	for i := open; i < len(input); i++ {
		switch ch := input[i]; {
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '[':
			depth++
		case ch == ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// lastTopLevelBracket returns the offset of the '[' whose matching ']' is the
// final byte of input, or -1 when input does not end in a bracket group.
func lastTopLevelBracket(input string) int {
	if !strings.HasSuffix(input, "]") {
		return -1
	}
	s := newScanner(input)
	open := -1
	for !s.done() {
		start := s.offset
		ch, top := s.next()
		if top && ch == '[' {
			open = start
		}
	}
	if open < 0 || matchingBracket(input, open) != len(input)-1 {
		return -1
	}
	return open
}

func isQuotedString(input string) bool {
	return len(input) >= 2 && input[0] == '"' && input[len(input)-1] == '"' &&
		!strings.Contains(input[1:len(input)-1], `"`)
}
