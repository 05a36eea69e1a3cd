package xeno

import (
	"errors"
	"strconv"
	"strings"
)

// binaryOperators is the order in which operator splits are attempted.
var binaryOperators = []string{
	SymbolAdd,
	SymbolSubtract,
	SymbolMultiply,
	SymbolGreater,
	SymbolLess,
	SymbolEqual,
}

// parseExpression recognises one expression. The rules are tried in a fixed
// order and the first match wins; text matching no rule yields an InvalidExpr.
func parseExpression(text string, pos Position) Expression {
	text = strings.TrimSpace(text)
	if text == "" {
		return &InvalidExpr{Source: text, Reason: "empty expression", position: pos}
	}

	if isQuotedString(text) {
		return &StringLiteral{Value: text[1 : len(text)-1], position: pos}
	}

	if text[0] == '[' && matchingBracket(text, 0) == len(text)-1 {
		return parseArrayLiteral(text[1:len(text)-1], pos)
	}

	if expr, ok := parseNumberLiteral(text, pos); ok {
		return expr
	}

	switch text {
	case KeywordTrue:
		return &BoolLiteral{Value: true, position: pos}
	case KeywordFalse:
		return &BoolLiteral{Value: false, position: pos}
	}

	if isIdentifier(text) {
		return &Identifier{Name: text, position: pos}
	}

	if expr, ok := parseIndexExpression(text, pos); ok {
		return expr
	}

	if hasKeyword(text, KeywordExists) {
		return &ExistsExpr{Target: parseExpression(keywordArgument(text, KeywordExists), pos), position: pos}
	}

	// Each operator gets one split at its first occurrence, even inside a
	// quoted string or brackets; a side that fails to parse fails lazily.
	for _, op := range binaryOperators {
		idx := strings.Index(text, op)
		if idx < 0 {
			continue
		}
		left := strings.TrimSpace(text[:idx])
		right := strings.TrimSpace(text[idx+len(op):])
		if left == "" || right == "" {
			continue
		}
		return &BinaryExpr{
			Left:     parseExpression(left, pos),
			Operator: op,
			Right:    parseExpression(right, pos),
			position: pos,
		}
	}

	if rest, ok := strings.CutPrefix(text, SymbolNot); ok {
		return &NotExpr{Right: parseExpression(rest, pos), position: pos}
	}

	return &InvalidExpr{Source: text, Reason: "cannot evaluate expression", position: pos}
}

func parseArrayLiteral(inner string, pos Position) Expression {
	elements := make([]Expression, 0)
	for _, part := range splitTopLevel(inner, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		elements = append(elements, parseExpression(part, pos))
	}
	return &ArrayLiteral{Elements: elements, position: pos}
}

func parseNumberLiteral(text string, pos Position) (Expression, bool) {
	for _, r := range text {
		if !strings.ContainsRune("0123456789+-.eE", r) {
			return nil, false
		}
	}
	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, false
		}
		return &FloatLiteral{Value: f, position: pos}, true
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return &InvalidExpr{Source: text, Reason: "integer literal out of range", position: pos}, true
		}
		return nil, false
	}
	return &IntegerLiteral{Value: i, position: pos}, true
}

// parseIndexExpression accepts name[index], including chained forms such as grid[i][j].
func parseIndexExpression(text string, pos Position) (Expression, bool) {
	open := lastTopLevelBracket(text)
	if open <= 0 {
		return nil, false
	}
	object, ok := parseIndexTarget(strings.TrimSpace(text[:open]), pos)
	if !ok {
		return nil, false
	}
	inner := strings.TrimSpace(text[open+1 : len(text)-1])
	if inner == "" {
		return nil, false
	}
	return &IndexExpr{Object: object, Index: parseExpression(inner, pos), position: pos}, true
}

func parseIndexTarget(text string, pos Position) (Expression, bool) {
	if isIdentifier(text) {
		return &Identifier{Name: text, position: pos}, true
	}
	return parseIndexExpression(text, pos)
}

// parseTarget parses an assignment target: an identifier with optional index suffixes.
func parseTarget(text string, pos Position) (Target, bool) {
	text = strings.TrimSpace(text)
	if isIdentifier(text) {
		return Target{Name: text}, true
	}
	expr, ok := parseIndexExpression(text, pos)
	if !ok {
		return Target{}, false
	}
	var indexes []Expression
	for {
		idx, isIndex := expr.(*IndexExpr)
		if !isIndex {
			break
		}
		indexes = append([]Expression{idx.Index}, indexes...)
		expr = idx.Object
	}
	ident, ok := expr.(*Identifier)
	if !ok {
		return Target{}, false
	}
	return Target{Name: ident.Name, Indexes: indexes}, true
}
