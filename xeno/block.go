package xeno

import (
	"strconv"
	"strings"
)

func opensBlock(line, begin string) bool {
	if begin != "" && hasKeyword(line, begin) {
		return true
	}
	for _, kw := range blockOpeners {
		if hasKeyword(line, kw) {
			return true
		}
	}
	return false
}

func closesBlock(line, end string) bool {
	if end != "" && hasKeyword(line, end) {
		return true
	}
	for _, kw := range blockClosers {
		if hasKeyword(line, kw) {
			return true
		}
	}
	return false
}

// FindBlockEnd returns the index of the line that closes the block opened at
// lines[start]. Every block kind shares one nesting depth, so a nested §if
// inside an §iterate is skipped over correctly. The closing line must carry
// end; a block closed by a different terminator is reported as unmatched.
func FindBlockEnd(lines []string, start int, begin, end string) (int, error) {
	depth := 0
	for i := start; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case opensBlock(line, begin):
			depth++
		case closesBlock(line, end):
			depth--
			if depth == 0 {
				if hasKeyword(line, end) {
					return i, nil
				}
				return -1, &ParseError{
					Kind: UnmatchedBlock,
					Pos:  linePosition(lines, start),
					Msg:  "unmatched block: " + begin + " closed by " + firstWord(line) + " on line " + strconv.Itoa(i+1),
				}
			}
			if depth < 0 {
				return -1, &ParseError{Kind: UnmatchedBlock, Pos: linePosition(lines, i), Msg: "unexpected " + firstWord(line)}
			}
		}
	}
	return -1, &ParseError{
		Kind: UnmatchedBlock,
		Pos:  linePosition(lines, start),
		Msg:  "unmatched block: no " + end + " for " + begin,
	}
}

// FindElse returns the index of the §else that belongs to the conditional
// opened at lines[start], searching only up to end (exclusive).
func FindElse(lines []string, start, end int) (int, bool) {
	if end > len(lines) {
		end = len(lines)
	}
	depth := 0
	for i := start; i < end; i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case opensBlock(line, ""):
			depth++
		case closesBlock(line, ""):
			depth--
		case depth == 1 && hasKeyword(line, KeywordElse):
			return i, true
		}
	}
	return -1, false
}

func linePosition(lines []string, idx int) Position {
	if idx < 0 || idx >= len(lines) {
		return Position{Line: idx + 1, Column: 1}
	}
	raw := lines[idx]
	trimmed := strings.TrimLeft(raw, " \t")
	return Position{Line: idx + 1, Column: len([]rune(raw)) - len([]rune(trimmed)) + 1}
}

func firstWord(line string) string {
	if fields := strings.Fields(line); len(fields) > 0 {
		return fields[0]
	}
	return line
}

// IsBlockOpener reports whether the trimmed line opens an §if, §iterate or §function block.
func IsBlockOpener(line string) bool {
	return opensBlock(strings.TrimSpace(line), "")
}

// IsBlockCloser reports whether the trimmed line is a block terminator.
func IsBlockCloser(line string) bool {
	return closesBlock(strings.TrimSpace(line), "")
}

// IsElse reports whether the trimmed line is an §else.
func IsElse(line string) bool {
	return hasKeyword(strings.TrimSpace(line), KeywordElse)
}
