package xeno

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Statement and literal keywords.
const (
	KeywordBegin       = "§begin"
	KeywordEnd         = "§end"
	KeywordTransmit    = "§transmit"
	KeywordReceive     = "§receive"
	KeywordIterate     = "§iterate"
	KeywordIn          = "§in"
	KeywordEndIterate  = "§end_iterate"
	KeywordIf          = "§if"
	KeywordElse        = "§else"
	KeywordEndIf       = "§end_if"
	KeywordFunction    = "§function"
	KeywordEndFunction = "§end_function"
	KeywordCall        = "§call"
	KeywordCreateMap   = "§create_map"
	KeywordCreateArray = "§create_array"
	KeywordNull        = "§null"
	KeywordExists      = "§exists"
	KeywordTrue        = "§true"
	KeywordFalse       = "§false"
)

// Operator symbols.
const (
	SymbolAssign   = "←"
	SymbolAdd      = "⊕"
	SymbolSubtract = "⊖"
	SymbolMultiply = "⊛"
	SymbolGreater  = "⊗"
	SymbolLess     = "⊘"
	SymbolEqual    = "≈"
	SymbolNot      = "¬"
)

var (
	blockOpeners = []string{KeywordIf, KeywordIterate, KeywordFunction}
	blockClosers = []string{KeywordEndIf, KeywordEndIterate, KeywordEndFunction}
)

// Position identifies a statement in the source: 1-based line and column.
type Position struct {
	Line   int
	Column int
}

// hasKeyword reports whether line starts with kw as a whole word: the line is
// exactly kw or kw is followed by whitespace or an opening parenthesis.
func hasKeyword(line, kw string) bool {
	if !strings.HasPrefix(line, kw) {
		return false
	}
	rest := line[len(kw):]
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsSpace(r) || r == '('
}

// keywordArgument returns the trimmed text following kw.
func keywordArgument(line, kw string) string {
	return strings.TrimSpace(line[len(kw):])
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
