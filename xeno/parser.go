package xeno

import (
	"fmt"
	"regexp"
	"strings"
)

type ParseError struct {
	Kind ErrorKind
	Pos  Position
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

var (
	iteratePattern  = regexp.MustCompile(`^§iterate\s+(\S+)\s+§in\s+(.+)$`)
	functionPattern = regexp.MustCompile(`^§function\s+([^\s(]+)\s*\((.*)\)$`)
	callPattern     = regexp.MustCompile(`^§call\s+([^\s(]+)\s*\((.*)\)$`)
)

type parser struct {
	lines   []string
	skipped []SkippedLine
}

func newParser(source string) *parser {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return &parser{lines: strings.Split(normalized, "\n")}
}

// ParseProgram parses the whole source, matching every block before
// anything runs.
func (p *parser) ParseProgram() (*Program, error) {
	stmts, err := p.parseRange(0, len(p.lines))
	if err != nil {
		return nil, err
	}
	return &Program{Statements: stmts, Skipped: p.skipped}, nil
}

func (p *parser) errorAt(kind ErrorKind, idx int, format string, args ...any) error {
	return &ParseError{Kind: kind, Pos: linePosition(p.lines, idx), Msg: fmt.Sprintf(format, args...)}
}

// parseRange parses lines[start:end] into statements.
func (p *parser) parseRange(start, end int) ([]Statement, error) {
	stmts := make([]Statement, 0)
	for i := start; i < end; {
		line := strings.TrimSpace(p.lines[i])
		pos := linePosition(p.lines, i)
		// a ← inside a keyword statement (§if x ≈ "←") is not an assignment
		assigns := strings.Contains(line, SymbolAssign) && !strings.HasPrefix(line, "§")

		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			i++

		case hasKeyword(line, KeywordBegin), hasKeyword(line, KeywordEnd):
			i++

		case hasKeyword(line, KeywordTransmit):
			arg := keywordArgument(line, KeywordTransmit)
			if arg == "" {
				return nil, p.errorAt(MalformedStatement, i, "%s requires an expression", KeywordTransmit)
			}
			stmts = append(stmts, &TransmitStmt{Value: parseExpression(arg, pos), position: pos})
			i++

		case assigns && isReceive(line):
			lhs, _, _ := strings.Cut(line, SymbolAssign)
			target, ok := parseTarget(lhs, pos)
			if !ok {
				return nil, p.errorAt(MalformedStatement, i, "invalid assignment target %q", strings.TrimSpace(lhs))
			}
			stmts = append(stmts, &ReceiveStmt{Target: target, position: pos})
			i++

		case assigns:
			stmt, err := p.parseAssignment(line, i, pos)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
			i++

		case hasKeyword(line, KeywordIterate):
			stmt, next, err := p.parseIterate(line, i, end, pos)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
			i = next

		case hasKeyword(line, KeywordIf):
			stmt, next, err := p.parseIf(line, i, end, pos)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
			i = next

		case hasKeyword(line, KeywordFunction):
			stmt, next, err := p.parseFunction(line, i, end, pos)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
			i = next

		case hasKeyword(line, KeywordCall):
			stmt, err := p.parseCall(line, i, pos)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
			i++

		default:
			p.skipped = append(p.skipped, SkippedLine{Text: line, position: pos})
			i++
		}
	}
	return stmts, nil
}

// isReceive reports whether the right-hand side of an assignment is exactly §receive.
func isReceive(line string) bool {
	_, rhs, _ := strings.Cut(line, SymbolAssign)
	return strings.TrimSpace(rhs) == KeywordReceive
}

func (p *parser) parseAssignment(line string, idx int, pos Position) (Statement, error) {
	lhs, rhs, _ := strings.Cut(line, SymbolAssign)
	target, ok := parseTarget(lhs, pos)
	if !ok {
		return nil, p.errorAt(MalformedStatement, idx, "invalid assignment target %q", strings.TrimSpace(lhs))
	}
	rhs = strings.TrimSpace(rhs)
	var value Expression
	switch rhs {
	case "":
		return nil, p.errorAt(MalformedStatement, idx, "assignment to %s has no value", target.Name)
	case KeywordCreateMap:
		value = &MapLiteral{position: pos}
	case KeywordCreateArray:
		value = &ArrayLiteral{Elements: []Expression{}, position: pos}
	case KeywordNull:
		value = &NullLiteral{position: pos}
	default:
		value = parseExpression(rhs, pos)
	}
	return &AssignStmt{Target: target, Value: value, position: pos}, nil
}

func (p *parser) parseIterate(line string, idx, end int, pos Position) (Statement, int, error) {
	m := iteratePattern.FindStringSubmatch(line)
	if m == nil {
		return nil, 0, p.errorAt(MalformedStatement, idx, "expected %s <name> %s <expression>", KeywordIterate, KeywordIn)
	}
	if !isIdentifier(m[1]) {
		return nil, 0, p.errorAt(MalformedStatement, idx, "invalid loop variable %q", m[1])
	}
	closeIdx, err := FindBlockEnd(p.lines[:end], idx, KeywordIterate, KeywordEndIterate)
	if err != nil {
		return nil, 0, err
	}
	body, err := p.parseRange(idx+1, closeIdx)
	if err != nil {
		return nil, 0, err
	}
	stmt := &IterateStmt{
		Iterator: m[1],
		Iterable: parseExpression(m[2], pos),
		Body:     body,
		position: pos,
	}
	return stmt, closeIdx + 1, nil
}

func (p *parser) parseIf(line string, idx, end int, pos Position) (Statement, int, error) {
	cond := keywordArgument(line, KeywordIf)
	if cond == "" {
		return nil, 0, p.errorAt(MalformedStatement, idx, "%s requires a condition", KeywordIf)
	}
	closeIdx, err := FindBlockEnd(p.lines[:end], idx, KeywordIf, KeywordEndIf)
	if err != nil {
		return nil, 0, err
	}
	stmt := &IfStmt{Condition: parseExpression(cond, pos), position: pos}
	elseIdx, hasElse := FindElse(p.lines, idx, closeIdx)
	thenEnd := closeIdx
	if hasElse {
		thenEnd = elseIdx
	}
	if stmt.Consequent, err = p.parseRange(idx+1, thenEnd); err != nil {
		return nil, 0, err
	}
	if hasElse {
		stmt.HasElse = true
		if stmt.Alternate, err = p.parseRange(elseIdx+1, closeIdx); err != nil {
			return nil, 0, err
		}
	}
	return stmt, closeIdx + 1, nil
}

func (p *parser) parseFunction(line string, idx, end int, pos Position) (Statement, int, error) {
	m := functionPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, 0, p.errorAt(MalformedStatement, idx, "expected %s <name>(<params>)", KeywordFunction)
	}
	if !isIdentifier(m[1]) {
		return nil, 0, p.errorAt(MalformedStatement, idx, "invalid function name %q", m[1])
	}
	params := make([]string, 0)
	for _, raw := range strings.Split(m[2], ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if !isIdentifier(name) {
			return nil, 0, p.errorAt(MalformedStatement, idx, "invalid parameter name %q", name)
		}
		params = append(params, name)
	}
	closeIdx, err := FindBlockEnd(p.lines[:end], idx, KeywordFunction, KeywordEndFunction)
	if err != nil {
		return nil, 0, err
	}
	body, err := p.parseRange(idx+1, closeIdx)
	if err != nil {
		return nil, 0, err
	}
	return &FunctionStmt{Name: m[1], Params: params, Body: body, position: pos}, closeIdx + 1, nil
}

func (p *parser) parseCall(line string, idx int, pos Position) (Statement, error) {
	m := callPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, p.errorAt(MalformedStatement, idx, "expected %s <name>(<args>)", KeywordCall)
	}
	if !isIdentifier(m[1]) {
		return nil, p.errorAt(MalformedStatement, idx, "invalid function name %q", m[1])
	}
	args := make([]Expression, 0)
	for _, raw := range splitTopLevel(m[2], ',') {
		arg := strings.TrimSpace(raw)
		if arg == "" {
			continue
		}
		args = append(args, parseExpression(arg, pos))
	}
	return &CallStmt{Name: m[1], Args: args, position: pos}, nil
}
