package codegen

import (
	"math"

	"github.com/pontaoski/czechscript/ast"
	"github.com/pontaoski/czechscript/errors"
)

// Binding strength of each expression form, loosest first. An operand is
// parenthesised when it binds looser than its position requires.
const (
	precLowest = iota + 1
	precAssign
	precConditional
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precExponent
	precUnary
	precPostfix
	precNew
	precCall
	precPrimary
)

var binaryPrec = map[string]int{
	"==": precEquality, "!=": precEquality, "===": precEquality, "!==": precEquality,
	"<": precRelational, ">": precRelational, "<=": precRelational, ">=": precRelational,
	"instanceof": precRelational, "in": precRelational,
	"+": precAdditive, "-": precAdditive,
	"*": precMultiplicative, "/": precMultiplicative, "%": precMultiplicative,
	"**": precExponent,
}

func precedence(e ast.Expression) int {
	switch e := e.(type) {
	case *ast.AssignmentExpression, *ast.ArrowFunctionExpression, *ast.SpreadElement:
		return precAssign
	case *ast.ConditionalExpression:
		return precConditional
	case *ast.LogicalExpression:
		if e.Operator == "&&" {
			return precAnd
		}
		return precOr
	case *ast.BinaryExpression:
		if p, ok := binaryPrec[e.Operator]; ok {
			return p
		}
		return precRelational
	case *ast.UnaryExpression:
		return precUnary
	case *ast.UpdateExpression:
		if e.Prefix {
			return precUnary
		}
		return precPostfix
	case *ast.NewExpression:
		if len(e.Arguments) == 0 {
			return precNew
		}
		return precCall
	case *ast.CallExpression, *ast.MemberExpression:
		return precCall
	case *ast.Literal:
		if e.Kind == ast.NumberLiteral && isNegative(e.Num) {
			return precUnary
		}
	}
	return precPrimary
}

func isNegative(f float64) bool {
	return f < 0 || isNegativeZero(f)
}

func isNegativeZero(f float64) bool {
	return f == 0 && math.Signbit(f)
}

// startsWithBrace reports whether e would be printed starting with an
// object literal, which at statement start reads as a block.
func startsWithBrace(e ast.Expression) bool {
	for {
		switch n := e.(type) {
		case *ast.ObjectExpression:
			return true
		case *ast.AssignmentExpression:
			e = n.Left
		case *ast.BinaryExpression:
			if precedence(n.Left) < binaryPrec[n.Operator] {
				return false
			}
			e = n.Left
		case *ast.LogicalExpression:
			e = n.Left
		case *ast.ConditionalExpression:
			e = n.Test
		case *ast.CallExpression:
			e = n.Callee
		case *ast.MemberExpression:
			e = n.Object
		case *ast.UpdateExpression:
			if n.Prefix {
				return false
			}
			e = n.Argument
		default:
			return false
		}
	}
}

// signOf returns the sign character e is printed with, if any, so that
// `- -x` and `+ +x` keep their separating space.
func signOf(e ast.Expression) byte {
	switch n := e.(type) {
	case *ast.UnaryExpression:
		if n.Operator == "-" || n.Operator == "+" {
			return n.Operator[0]
		}
	case *ast.UpdateExpression:
		if n.Prefix {
			return n.Operator[0]
		}
	case *ast.Literal:
		if n.Kind == ast.NumberLiteral && isNegative(n.Num) {
			return '-'
		}
	}
	return 0
}

func isWordOperator(op string) bool {
	return op != "" && op[0] >= 'a' && op[0] <= 'z'
}

func mixesNullish(parent, child ast.Expression) bool {
	p, ok := parent.(*ast.LogicalExpression)
	if !ok {
		return false
	}
	c, ok := child.(*ast.LogicalExpression)
	if !ok {
		return false
	}
	return (p.Operator == "??") != (c.Operator == "??")
}

// expr writes e, parenthesised when it binds looser than want.
func (g *Generator) expr(e ast.Expression, want int) {
	if e == nil {
		panic(errors.UnknownNode{Type: "<nil>"})
	}
	if precedence(e) < want {
		g.write("(")
		g.exprBody(e)
		g.write(")")
		return
	}
	g.exprBody(e)
}

func (g *Generator) operand(parent, child ast.Expression, want int) {
	if mixesNullish(parent, child) {
		g.write("(")
		g.exprBody(child)
		g.write(")")
		return
	}
	g.expr(child, want)
}

func (g *Generator) exprBody(e ast.Expression) {
	switch e := e.(type) {
	case *ast.Identifier:
		g.identifier(e)
	case *ast.Literal:
		g.literal(e)
	case *ast.ThisExpression:
		g.mark(e.Pos(), "")
		g.write("this")
	case *ast.SuperExpression:
		g.mark(e.Pos(), "")
		g.write("super")

	case *ast.AssignmentExpression:
		g.expr(e.Left, precCall)
		g.write(" " + e.Operator + " ")
		g.expr(e.Right, precAssign)
	case *ast.ConditionalExpression:
		g.expr(e.Test, precOr)
		g.write(" ? ")
		g.expr(e.Consequent, precAssign)
		g.write(" : ")
		g.expr(e.Alternate, precAssign)
	case *ast.LogicalExpression:
		p := precedence(e)
		g.operand(e, e.Left, p)
		g.write(" " + e.Operator + " ")
		g.operand(e, e.Right, p+1)
	case *ast.BinaryExpression:
		p := precedence(e)
		if e.Operator == "**" {
			g.expr(e.Left, precPostfix)
			g.write(" ** ")
			g.expr(e.Right, precExponent)
			return
		}
		g.expr(e.Left, p)
		g.write(" " + e.Operator + " ")
		g.expr(e.Right, p+1)
	case *ast.UnaryExpression:
		g.write(e.Operator)
		if isWordOperator(e.Operator) || signOf(e.Argument) == e.Operator[0] {
			g.write(" ")
		}
		g.expr(e.Argument, precUnary)
	case *ast.UpdateExpression:
		if e.Prefix {
			g.write(e.Operator)
			if signOf(e.Argument) == e.Operator[0] {
				g.write(" ")
			}
			g.expr(e.Argument, precUnary)
			return
		}
		g.expr(e.Argument, precCall)
		g.write(e.Operator)

	case *ast.CallExpression:
		g.expr(e.Callee, precCall)
		if e.Optional {
			g.write("?.")
		}
		g.arguments(e.Arguments)
	case *ast.MemberExpression:
		if lit, ok := e.Object.(*ast.Literal); ok && lit.Kind == ast.NumberLiteral {
			g.write("(")
			g.literal(lit)
			g.write(")")
		} else {
			g.expr(e.Object, precCall)
		}
		switch {
		case e.Computed:
			if e.Optional {
				g.write("?.")
			}
			g.write("[")
			g.expr(e.Property, precLowest)
			g.write("]")
		case e.Optional:
			g.write("?.")
			g.propertyName(e.Property)
		default:
			g.write(".")
			g.propertyName(e.Property)
		}
	case *ast.NewExpression:
		g.write("new ")
		if containsCall(e.Callee) {
			g.write("(")
			g.exprBody(e.Callee)
			g.write(")")
		} else {
			g.expr(e.Callee, precCall)
		}
		if len(e.Arguments) > 0 {
			g.arguments(e.Arguments)
		}

	case *ast.ArrayExpression:
		g.write("[")
		for i, el := range e.Elements {
			if i > 0 {
				g.write(", ")
			}
			g.expr(el, precAssign)
		}
		g.write("]")
	case *ast.ObjectExpression:
		if len(e.Properties) == 0 {
			g.write("{}")
			return
		}
		g.write("{ ")
		for i, p := range e.Properties {
			if i > 0 {
				g.write(", ")
			}
			g.property(p)
		}
		g.write(" }")
	case *ast.SpreadElement:
		g.write("...")
		g.expr(e.Argument, precAssign)
	case *ast.ArrowFunctionExpression:
		if e.Async {
			g.write("async ")
		}
		g.params(e.Params)
		g.write(" => ")
		switch {
		case e.BlockBody != nil:
			g.block(e.BlockBody)
		case startsWithBrace(e.Body):
			g.write("(")
			g.expr(e.Body, precLowest)
			g.write(")")
		default:
			g.expr(e.Body, precAssign)
		}

	default:
		panic(errors.UnknownNode{Type: ast.TypeName(e)})
	}
}

func containsCall(e ast.Expression) bool {
	for {
		switch n := e.(type) {
		case *ast.CallExpression:
			return true
		case *ast.MemberExpression:
			e = n.Object
		default:
			return false
		}
	}
}

func (g *Generator) arguments(args []ast.Expression) {
	g.write("(")
	for i, arg := range args {
		if i > 0 {
			g.write(", ")
		}
		g.expr(arg, precAssign)
	}
	g.write(")")
}

func (g *Generator) identifier(id *ast.Identifier) {
	if id == nil {
		panic(errors.UnknownNode{Type: "<nil>"})
	}
	g.mark(id.Pos(), id.Name)
	g.write(id.Name)
}

// propertyName writes the name after a dot. It maps to the source but is
// not a variable name.
func (g *Generator) propertyName(e ast.Expression) {
	id, ok := e.(*ast.Identifier)
	if !ok {
		panic(errors.UnknownNode{Type: ast.TypeName(e)})
	}
	g.mark(id.Pos(), "")
	g.write(id.Name)
}

func (g *Generator) property(p *ast.Property) {
	key, isIdent := p.Key.(*ast.Identifier)
	if value, ok := p.Value.(*ast.Identifier); ok && isIdent && value.Name == key.Name {
		g.identifier(value)
		return
	}
	switch k := p.Key.(type) {
	case *ast.Identifier:
		g.propertyName(k)
	case *ast.Literal:
		g.literal(k)
	default:
		panic(errors.UnknownNode{Type: ast.TypeName(k)})
	}
	g.write(": ")
	g.expr(p.Value, precAssign)
}

func (g *Generator) literal(l *ast.Literal) {
	if l == nil {
		panic(errors.UnknownNode{Type: "<nil>"})
	}
	g.mark(l.Pos(), "")
	switch l.Kind {
	case ast.NumberLiteral:
		// String(-0) is "0", which would turn y / -0 into y / 0.
		if isNegativeZero(l.Num) {
			g.write("-0")
		} else {
			g.write(FormatNumber(l.Num))
		}
	case ast.StringLiteral:
		g.write(Quote(l.Str))
	case ast.BooleanLiteral:
		if l.Bool {
			g.write("true")
		} else {
			g.write("false")
		}
	case ast.NullLiteral:
		g.write("null")
	case ast.UndefinedLiteral:
		g.write("undefined")
	default:
		panic(errors.UnknownNode{Type: "Literal"})
	}
}
