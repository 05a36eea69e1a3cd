package xeno

type Node interface {
	Pos() Position
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// Program is a parsed Xenocode source file.
type Program struct {
	Statements []Statement
	// Skipped lists non-blank, non-comment lines the dispatcher ignores.
	Skipped []SkippedLine
	source  string
}

type SkippedLine struct {
	Text     string
	position Position
}

func (s SkippedLine) Pos() Position { return s.position }

func (p *Program) Pos() Position {
	if len(p.Statements) == 0 {
		return Position{}
	}
	return p.Statements[0].Pos()
}

// Source returns the text the program was compiled from.
func (p *Program) Source() string { return p.source }

// Target is the left-hand side of an assignment or receive: a variable,
// optionally followed by index expressions.
type Target struct {
	Name    string
	Indexes []Expression
}

type TransmitStmt struct {
	Value    Expression
	position Position
}

func (s *TransmitStmt) stmtNode()     {}
func (s *TransmitStmt) Pos() Position { return s.position }

type ReceiveStmt struct {
	Target   Target
	position Position
}

func (s *ReceiveStmt) stmtNode()     {}
func (s *ReceiveStmt) Pos() Position { return s.position }

type AssignStmt struct {
	Target   Target
	Value    Expression
	position Position
}

func (s *AssignStmt) stmtNode()     {}
func (s *AssignStmt) Pos() Position { return s.position }

type IterateStmt struct {
	Iterator string
	Iterable Expression
	Body     []Statement
	position Position
}

func (s *IterateStmt) stmtNode()     {}
func (s *IterateStmt) Pos() Position { return s.position }

type IfStmt struct {
	Condition  Expression
	Consequent []Statement
	Alternate  []Statement
	HasElse    bool
	position   Position
}

func (s *IfStmt) stmtNode()     {}
func (s *IfStmt) Pos() Position { return s.position }

type FunctionStmt struct {
	Name     string
	Params   []string
	Body     []Statement
	position Position
}

func (s *FunctionStmt) stmtNode()     {}
func (s *FunctionStmt) Pos() Position { return s.position }

type CallStmt struct {
	Name     string
	Args     []Expression
	position Position
}

func (s *CallStmt) stmtNode()     {}
func (s *CallStmt) Pos() Position { return s.position }

type StringLiteral struct {
	Value    string
	position Position
}

func (e *StringLiteral) exprNode()     {}
func (e *StringLiteral) Pos() Position { return e.position }

type IntegerLiteral struct {
	Value    int64
	position Position
}

func (e *IntegerLiteral) exprNode()     {}
func (e *IntegerLiteral) Pos() Position { return e.position }

type FloatLiteral struct {
	Value    float64
	position Position
}

func (e *FloatLiteral) exprNode()     {}
func (e *FloatLiteral) Pos() Position { return e.position }

type BoolLiteral struct {
	Value    bool
	position Position
}

func (e *BoolLiteral) exprNode()     {}
func (e *BoolLiteral) Pos() Position { return e.position }

// NullLiteral, MapLiteral and empty ArrayLiterals come from the
// §null, §create_map and §create_array assignment forms.
type NullLiteral struct {
	position Position
}

func (e *NullLiteral) exprNode()     {}
func (e *NullLiteral) Pos() Position { return e.position }

type MapLiteral struct {
	position Position
}

func (e *MapLiteral) exprNode()     {}
func (e *MapLiteral) Pos() Position { return e.position }

type ArrayLiteral struct {
	Elements []Expression
	position Position
}

func (e *ArrayLiteral) exprNode()     {}
func (e *ArrayLiteral) Pos() Position { return e.position }

type Identifier struct {
	Name     string
	position Position
}

func (e *Identifier) exprNode()     {}
func (e *Identifier) Pos() Position { return e.position }

type IndexExpr struct {
	Object   Expression
	Index    Expression
	position Position
}

func (e *IndexExpr) exprNode()     {}
func (e *IndexExpr) Pos() Position { return e.position }

type ExistsExpr struct {
	Target   Expression
	position Position
}

func (e *ExistsExpr) exprNode()     {}
func (e *ExistsExpr) Pos() Position { return e.position }

type BinaryExpr struct {
	Left     Expression
	Operator string
	Right    Expression
	position Position
}

func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Pos() Position { return e.position }

type NotExpr struct {
	Right    Expression
	position Position
}

func (e *NotExpr) exprNode()     {}
func (e *NotExpr) Pos() Position { return e.position }

// InvalidExpr is text no recognition rule accepted. It fails when evaluated,
// so a bad expression in a branch that never runs is harmless.
type InvalidExpr struct {
	Source   string
	Reason   string
	position Position
}

func (e *InvalidExpr) exprNode()     {}
func (e *InvalidExpr) Pos() Position { return e.position }
