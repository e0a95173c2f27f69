// Package optimizer folds constant expressions.
//
// Optimize rewrites the tree in place: a folded subtree is swapped for a
// fresh Literal in its parent's field, so no node is ever shared.
package optimizer

import (
	"math"

	"github.com/pontaoski/czechscript/ast"
)

// Optimize folds every foldable expression in prog and returns prog.
// Running it again on its own output changes nothing.
func Optimize(prog *ast.Program) *ast.Program {
	if prog == nil {
		return nil
	}
	stmts(prog.Body)
	return prog
}

func stmts(ss []ast.Statement) {
	for _, s := range ss {
		stmt(s)
	}
}

func block(b *ast.BlockStatement) {
	if b != nil {
		stmts(b.Body)
	}
}

func params(ps []*ast.Parameter) {
	for _, p := range ps {
		p.Default = expr(p.Default)
	}
}

func decl(d *ast.VariableDeclaration) {
	if d == nil {
		return
	}
	for _, v := range d.Declarations {
		v.Init = expr(v.Init)
	}
}

func stmt(s ast.Statement) {
	switch s := s.(type) {
	case *ast.VariableDeclaration:
		decl(s)
	case *ast.FunctionDeclaration:
		params(s.Params)
		block(s.Body)
	case *ast.ClassDeclaration:
		for _, m := range s.Body {
			params(m.Params)
			block(m.Body)
		}
	case *ast.IfStatement:
		s.Test = expr(s.Test)
		stmt(s.Consequent)
		stmt(s.Alternate)
	case *ast.WhileStatement:
		s.Test = expr(s.Test)
		stmt(s.Body)
	case *ast.ForStatement:
		decl(s.Init)
		s.Test = expr(s.Test)
		s.Update = expr(s.Update)
		stmt(s.Body)
	case *ast.ForOfStatement:
		s.Right = expr(s.Right)
		stmt(s.Body)
	case *ast.ReturnStatement:
		s.Argument = expr(s.Argument)
	case *ast.ThrowStatement:
		s.Argument = expr(s.Argument)
	case *ast.TryStatement:
		block(s.Block)
		if s.Handler != nil {
			block(s.Handler.Body)
		}
		block(s.Finalizer)
	case *ast.ExportNamedDeclaration:
		stmt(s.Declaration)
	case *ast.ExportDefaultDeclaration:
		stmt(s.Declaration)
	case *ast.BlockStatement:
		stmts(s.Body)
	case *ast.ExpressionStatement:
		s.Expression = expr(s.Expression)
	}
}

func exprs(es []ast.Expression) {
	for i, e := range es {
		es[i] = expr(e)
	}
}

// expr folds e bottom-up and returns the expression that replaces it.
func expr(e ast.Expression) ast.Expression {
	switch e := e.(type) {
	case nil:
		return nil
	case *ast.BinaryExpression:
		e.Left = expr(e.Left)
		e.Right = expr(e.Right)
		if folded := foldBinary(e); folded != nil {
			return folded
		}
	case *ast.UnaryExpression:
		e.Argument = expr(e.Argument)
		if folded := foldUnary(e); folded != nil {
			return folded
		}
	case *ast.AssignmentExpression:
		e.Left = expr(e.Left)
		e.Right = expr(e.Right)
	case *ast.ConditionalExpression:
		e.Test = expr(e.Test)
		e.Consequent = expr(e.Consequent)
		e.Alternate = expr(e.Alternate)
	case *ast.LogicalExpression:
		e.Left = expr(e.Left)
		e.Right = expr(e.Right)
	case *ast.UpdateExpression:
		e.Argument = expr(e.Argument)
	case *ast.CallExpression:
		e.Callee = expr(e.Callee)
		exprs(e.Arguments)
	case *ast.MemberExpression:
		e.Object = expr(e.Object)
		if e.Computed {
			e.Property = expr(e.Property)
		}
	case *ast.NewExpression:
		e.Callee = expr(e.Callee)
		exprs(e.Arguments)
	case *ast.ArrayExpression:
		exprs(e.Elements)
	case *ast.ObjectExpression:
		for _, p := range e.Properties {
			p.Value = expr(p.Value)
		}
	case *ast.SpreadElement:
		e.Argument = expr(e.Argument)
	case *ast.ArrowFunctionExpression:
		params(e.Params)
		e.Body = expr(e.Body)
		block(e.BlockBody)
	}
	return e
}

func foldBinary(e *ast.BinaryExpression) ast.Expression {
	l, ok := e.Left.(*ast.Literal)
	if !ok {
		return nil
	}
	r, ok := e.Right.(*ast.Literal)
	if !ok {
		return nil
	}

	if l.Kind == ast.StringLiteral && r.Kind == ast.StringLiteral {
		if e.Operator != "+" {
			return nil
		}
		return &ast.Literal{Loc: e.Loc, Kind: ast.StringLiteral, Str: l.Str + r.Str}
	}
	if l.Kind != ast.NumberLiteral || r.Kind != ast.NumberLiteral {
		return nil
	}

	v, ok := arith(e.Operator, l.Num, r.Num)
	if !ok {
		return nil
	}
	return &ast.Literal{Loc: e.Loc, Kind: ast.NumberLiteral, Num: v}
}

func foldUnary(e *ast.UnaryExpression) ast.Expression {
	lit, ok := e.Argument.(*ast.Literal)
	if !ok {
		return nil
	}
	if e.Operator == "!" {
		return &ast.Literal{Loc: e.Loc, Kind: ast.BooleanLiteral, Bool: !truthy(lit)}
	}
	if lit.Kind != ast.NumberLiteral {
		return nil
	}
	switch e.Operator {
	case "-":
		return &ast.Literal{Loc: e.Loc, Kind: ast.NumberLiteral, Num: -lit.Num}
	case "+":
		return &ast.Literal{Loc: e.Loc, Kind: ast.NumberLiteral, Num: lit.Num}
	}
	return nil
}

func truthy(l *ast.Literal) bool {
	switch l.Kind {
	case ast.NumberLiteral:
		return l.Num != 0 && !math.IsNaN(l.Num)
	case ast.StringLiteral:
		return l.Str != ""
	case ast.BooleanLiteral:
		return l.Bool
	}
	return false
}

// arith evaluates a numeric operator with IEEE double semantics. Division by
// zero yields an infinity or NaN.
func arith(op string, a, b float64) (float64, bool) {
	switch op {
	case "+":
		return a + b, true
	case "-":
		return a - b, true
	case "*":
		return a * b, true
	case "/":
		return a / b, true
	case "%":
		return math.Mod(a, b), true
	case "**":
		return pow(a, b), true
	}
	return 0, false
}

// pow differs from math.Pow where the target runtime answers NaN.
func pow(a, b float64) float64 {
	if math.IsNaN(b) {
		return math.NaN()
	}
	if math.Abs(a) == 1 && math.IsInf(b, 0) {
		return math.NaN()
	}
	return math.Pow(a, b)
}
