// Package analyzer checks declarations and references against a stack of
// lexical scopes.
//
// It reports redeclarations and assignments to constants as errors and
// references to unknown names as warnings. Nothing it finds is fatal.
package analyzer

import (
	"fmt"

	"github.com/pontaoski/czechscript/ast"
	"github.com/pontaoski/czechscript/diag"
)

type Analyzer struct {
	scopes []scope
	r      *diag.Reporter
}

// Analyze walks prog and appends its findings to r.
func Analyze(prog *ast.Program, r *diag.Reporter) {
	a := &Analyzer{r: r}
	a.pushScope()
	a.visit(prog)
}

// hoist binds the function declarations of a statement list before any of
// the statements are visited.
func (a *Analyzer) hoist(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ExportNamedDeclaration:
			stmt = s.Declaration
		case *ast.ExportDefaultDeclaration:
			stmt = s.Declaration
		}
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok && fn.ID != nil {
			a.bind(fn.ID, Function, true)
		}
	}
}

func (a *Analyzer) visitBody(stmts []ast.Statement) {
	a.pushScope()
	a.hoist(stmts)
	for _, stmt := range stmts {
		a.visit(stmt)
	}
	a.popScope()
}

// declare binds id in the innermost scope, reporting a redeclaration when
// the name is already taken there.
func (a *Analyzer) declare(id *ast.Identifier, kind Kind, initialized bool) {
	if prev, ok := a.current()[id.Name]; ok {
		d := diag.Errorf(diag.Redeclaration, id.Pos(), "'%s' is already declared in this scope", id.Name)
		switch {
		case !prev.pos.IsValid():
		case prev.pos.Before(id.Pos()):
			d.Suggestion = fmt.Sprintf("previous declaration as %s at %s", prev.kind, prev.pos)
		default:
			// hoisted function declared further down
			d.Suggestion = fmt.Sprintf("conflicts with %s declared at %s", prev.kind, prev.pos)
		}
		a.r.Report(d)
	}
	a.bind(id, kind, initialized)
}

func (a *Analyzer) checkAssignable(target ast.Expression) {
	id, ok := target.(*ast.Identifier)
	if !ok {
		return
	}
	b := a.lookup(id.Name)
	if b == nil || !b.kind.readOnly() {
		return
	}
	d := diag.Errorf(diag.ConstAssignment, id.Pos(), "cannot assign to %s '%s'", b.kind, id.Name)
	d.Suggestion = "declare it with 'proměnná' instead"
	a.r.Report(d)
}

func (a *Analyzer) reference(id *ast.Identifier) {
	if a.lookup(id.Name) != nil || IsBuiltin(id.Name) {
		return
	}
	d := diag.Warnf(diag.UndefinedVariable, id.Pos(), "'%s' is not defined", id.Name)
	if similar := diag.Similar(id.Name, a.visible()); similar != "" {
		d.Suggestion = "did you mean '" + similar + "'?"
	}
	a.r.Report(d)
}

func (a *Analyzer) visitFunction(params []*ast.Parameter, body *ast.BlockStatement, expr ast.Expression) {
	a.pushScope()
	for _, p := range params {
		a.visitExpr(p.Default)
		a.declare(p.Name, Parameter, true)
	}
	if body != nil {
		a.visit(body)
	}
	a.visitExpr(expr)
	a.popScope()
}

func (a *Analyzer) visitExpr(e ast.Expression) {
	if e != nil {
		a.visit(e)
	}
}

func (a *Analyzer) visitStmt(s ast.Statement) {
	if s != nil {
		a.visit(s)
	}
}

func (a *Analyzer) visit(n ast.Node) {
	switch n := n.(type) {
	case *ast.Program:
		a.visitBody(n.Body)
	case *ast.BlockStatement:
		a.visitBody(n.Body)

	case *ast.VariableDeclaration:
		kind := Let
		if n.Kind == ast.Const {
			kind = Const
		}
		for _, d := range n.Declarations {
			a.visitExpr(d.Init)
			a.declare(d.ID, kind, d.Init != nil)
		}
	case *ast.FunctionDeclaration:
		if a.lookup(n.ID.Name) == nil {
			a.bind(n.ID, Function, true)
		}
		a.visitFunction(n.Params, n.Body, nil)
	case *ast.ClassDeclaration:
		a.declare(n.ID, Class, true)
		if n.SuperClass != nil {
			a.reference(n.SuperClass)
		}
		for _, m := range n.Body {
			a.visitFunction(m.Params, m.Body, nil)
		}

	case *ast.IfStatement:
		a.visitExpr(n.Test)
		a.visitStmt(n.Consequent)
		a.visitStmt(n.Alternate)
	case *ast.WhileStatement:
		a.visitExpr(n.Test)
		a.visitStmt(n.Body)
	case *ast.ForStatement:
		a.pushScope()
		if n.Init != nil {
			a.visit(n.Init)
		}
		a.visitExpr(n.Test)
		a.visitExpr(n.Update)
		a.visitStmt(n.Body)
		a.popScope()
	case *ast.ForOfStatement:
		a.visitExpr(n.Right)
		a.pushScope()
		if n.Left != nil {
			for _, d := range n.Left.Declarations {
				a.declare(d.ID, Const, true)
			}
		}
		a.visitStmt(n.Body)
		a.popScope()
	case *ast.ReturnStatement:
		a.visitExpr(n.Argument)
	case *ast.ThrowStatement:
		a.visitExpr(n.Argument)
	case *ast.TryStatement:
		a.visit(n.Block)
		if n.Handler != nil {
			a.pushScope()
			if n.Handler.Param != nil {
				a.declare(n.Handler.Param, Let, true)
			}
			a.visit(n.Handler.Body)
			a.popScope()
		}
		if n.Finalizer != nil {
			a.visit(n.Finalizer)
		}

	case *ast.ImportDeclaration:
		if n.Default != nil {
			a.declare(n.Default, Import, true)
		}
		for _, s := range n.Specifiers {
			a.declare(s.Local, Import, true)
		}
	case *ast.ExportNamedDeclaration:
		a.visitStmt(n.Declaration)
	case *ast.ExportDefaultDeclaration:
		a.visitStmt(n.Declaration)
	case *ast.ExpressionStatement:
		a.visitExpr(n.Expression)

	case *ast.AssignmentExpression:
		a.checkAssignable(n.Left)
		a.visitExpr(n.Left)
		a.visitExpr(n.Right)
	case *ast.UpdateExpression:
		a.checkAssignable(n.Argument)
		a.visitExpr(n.Argument)
	case *ast.MemberExpression:
		a.visitExpr(n.Object)
		if n.Computed {
			a.visitExpr(n.Property)
		}
	case *ast.ObjectExpression:
		for _, p := range n.Properties {
			a.visitExpr(p.Value)
		}
	case *ast.ArrowFunctionExpression:
		a.visitFunction(n.Params, n.BlockBody, n.Body)
	case *ast.Identifier:
		a.reference(n)

	case *ast.BreakStatement, *ast.ContinueStatement, *ast.Literal,
		*ast.ThisExpression, *ast.SuperExpression, *ast.TypeAnnotation:

	default:
		for _, child := range ast.Children(n) {
			a.visit(child)
		}
	}
}
