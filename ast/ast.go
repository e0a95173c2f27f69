// Package ast defines the syntax tree shared by every compiler stage.
//
// The node set is closed: statements implement Statement, expressions
// implement Expression, and a few helper nodes (declarators, parameters,
// class members, clauses) are plain Nodes. Each node owns its children.
package ast

import "github.com/pontaoski/czechscript/types"

type Node interface {
	// Pos is the position of the node's leading token. Synthesised nodes
	// return the zero Position.
	Pos() types.Position
}

type Statement interface {
	Node
	is_Statement()
}

type Expression interface {
	Node
	is_Expression()
}

// Loc is embedded by every node to carry its source position.
type Loc struct {
	Location types.Position
}

func (l Loc) Pos() types.Position { return l.Location }

type DeclKind int

const (
	Let DeclKind = iota
	Const
)

func (k DeclKind) String() string {
	if k == Const {
		return "const"
	}
	return "let"
}

type Program struct {
	Loc
	Body []Statement
}

type TypeAnnotation struct {
	Loc
	Name string
}

type VariableDeclaration struct {
	Loc
	Kind         DeclKind
	Declarations []*VariableDeclarator
}

func (v *VariableDeclaration) is_Statement() {}

type VariableDeclarator struct {
	Loc
	ID             *Identifier
	TypeAnnotation *TypeAnnotation
	Init           Expression
}

type Parameter struct {
	Loc
	Name           *Identifier
	TypeAnnotation *TypeAnnotation
	Default        Expression
}

type FunctionDeclaration struct {
	Loc
	ID         *Identifier
	Params     []*Parameter
	ReturnType *TypeAnnotation
	Body       *BlockStatement
	Async      bool
}

func (v *FunctionDeclaration) is_Statement() {}

type ClassDeclaration struct {
	Loc
	ID         *Identifier
	SuperClass *Identifier
	Body       []*MethodDefinition
}

func (v *ClassDeclaration) is_Statement() {}

type MethodKind int

const (
	Method MethodKind = iota
	Constructor
)

type MethodDefinition struct {
	Loc
	Kind       MethodKind
	Key        *Identifier
	Params     []*Parameter
	ReturnType *TypeAnnotation
	Body       *BlockStatement
	Modifiers  []string
	Static     bool
}

type IfStatement struct {
	Loc
	Test       Expression
	Consequent Statement
	Alternate  Statement
}

func (v *IfStatement) is_Statement() {}

type WhileStatement struct {
	Loc
	Test Expression
	Body Statement
}

func (v *WhileStatement) is_Statement() {}

// ForStatement is only produced by lowering the counted loop.
type ForStatement struct {
	Loc
	Init   *VariableDeclaration
	Test   Expression
	Update Expression
	Body   Statement
}

func (v *ForStatement) is_Statement() {}

type ForOfStatement struct {
	Loc
	Left  *VariableDeclaration
	Right Expression
	Body  Statement
}

func (v *ForOfStatement) is_Statement() {}

type ReturnStatement struct {
	Loc
	Argument Expression
}

func (v *ReturnStatement) is_Statement() {}

type BreakStatement struct {
	Loc
}

func (v *BreakStatement) is_Statement() {}

type ContinueStatement struct {
	Loc
}

func (v *ContinueStatement) is_Statement() {}

type TryStatement struct {
	Loc
	Block     *BlockStatement
	Handler   *CatchClause
	Finalizer *BlockStatement
}

func (v *TryStatement) is_Statement() {}

type CatchClause struct {
	Loc
	Param *Identifier
	Body  *BlockStatement
}

type ThrowStatement struct {
	Loc
	Argument Expression
}

func (v *ThrowStatement) is_Statement() {}

// ImportDeclaration covers `{ a, b as c } from "m"`, `x from "m"` and the
// bare `"m"` form.
type ImportDeclaration struct {
	Loc
	Default    *Identifier
	Specifiers []*ImportSpecifier
	Source     *Literal
}

func (v *ImportDeclaration) is_Statement() {}

type ImportSpecifier struct {
	Loc
	Imported *Identifier
	Local    *Identifier
}

type ExportNamedDeclaration struct {
	Loc
	Declaration Statement
}

func (v *ExportNamedDeclaration) is_Statement() {}

type ExportDefaultDeclaration struct {
	Loc
	Declaration Statement
}

func (v *ExportDefaultDeclaration) is_Statement() {}

type BlockStatement struct {
	Loc
	Body []Statement
}

func (v *BlockStatement) is_Statement() {}

type ExpressionStatement struct {
	Loc
	Expression Expression
}

func (v *ExpressionStatement) is_Statement() {}

type AssignmentExpression struct {
	Loc
	Operator string
	Left     Expression
	Right    Expression
}

func (v *AssignmentExpression) is_Expression() {}

type ConditionalExpression struct {
	Loc
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func (v *ConditionalExpression) is_Expression() {}

// LogicalExpression holds &&, || and ??.
type LogicalExpression struct {
	Loc
	Operator string
	Left     Expression
	Right    Expression
}

func (v *LogicalExpression) is_Expression() {}

type BinaryExpression struct {
	Loc
	Operator string
	Left     Expression
	Right    Expression
}

func (v *BinaryExpression) is_Expression() {}

type UnaryExpression struct {
	Loc
	Operator string
	Argument Expression
	Prefix   bool
}

func (v *UnaryExpression) is_Expression() {}

type UpdateExpression struct {
	Loc
	Operator string
	Argument Expression
	Prefix   bool
}

func (v *UpdateExpression) is_Expression() {}

type CallExpression struct {
	Loc
	Callee    Expression
	Arguments []Expression
	Optional  bool
}

func (v *CallExpression) is_Expression() {}

// MemberExpression is `Object.Property`, or `Object[Property]` when
// Computed. A non-computed Property is always an *Identifier naming a
// property, never a variable reference.
type MemberExpression struct {
	Loc
	Object   Expression
	Property Expression
	Computed bool
	Optional bool
}

func (v *MemberExpression) is_Expression() {}

type NewExpression struct {
	Loc
	Callee    Expression
	Arguments []Expression
}

func (v *NewExpression) is_Expression() {}

type ArrayExpression struct {
	Loc
	Elements []Expression
}

func (v *ArrayExpression) is_Expression() {}

type ObjectExpression struct {
	Loc
	Properties []*Property
}

func (v *ObjectExpression) is_Expression() {}

// Property is one `key: value` entry. Key is an *Identifier naming the
// property or a string/number *Literal.
type Property struct {
	Loc
	Key   Expression
	Value Expression
}

type SpreadElement struct {
	Loc
	Argument Expression
}

func (v *SpreadElement) is_Expression() {}

// ArrowFunctionExpression has either an expression body or a block body.
type ArrowFunctionExpression struct {
	Loc
	Params    []*Parameter
	Body      Expression
	BlockBody *BlockStatement
	Async     bool
}

func (v *ArrowFunctionExpression) is_Expression() {}

type Identifier struct {
	Loc
	Name string
}

func (v *Identifier) is_Expression() {}

type LiteralKind int

const (
	NumberLiteral LiteralKind = iota
	StringLiteral
	BooleanLiteral
	NullLiteral
	UndefinedLiteral
)

type Literal struct {
	Loc
	Kind LiteralKind
	Num  float64
	Str  string
	Bool bool
}

func (v *Literal) is_Expression() {}

type ThisExpression struct {
	Loc
}

func (v *ThisExpression) is_Expression() {}

type SuperExpression struct {
	Loc
}

func (v *SuperExpression) is_Expression() {}

func NewID(name string, pos types.Position) *Identifier {
	return &Identifier{Loc{pos}, name}
}

func NewNumber(n float64, pos types.Position) *Literal {
	return &Literal{Loc: Loc{pos}, Kind: NumberLiteral, Num: n}
}

func NewString(s string, pos types.Position) *Literal {
	return &Literal{Loc: Loc{pos}, Kind: StringLiteral, Str: s}
}
