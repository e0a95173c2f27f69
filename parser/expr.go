package parser

import (
	"github.com/pontaoski/czechscript/ast"
	"github.com/pontaoski/czechscript/errors"
	"github.com/pontaoski/czechscript/types"
)

var assignOps = []string{"=", "+=", "-=", "*=", "/=", "%=", "**=", "&&=", "||=", "??="}

// wordOps maps the Czech operator words onto their JavaScript spelling.
var wordOps = map[string]string{
	"a":           "&&",
	"nebo":        "||",
	"ne":          "!",
	"rovno":       "===",
	"nerovno":     "!==",
	"větší":       ">",
	"menší":       "<",
	"větší_rovno": ">=",
	"menší_rovno": "<=",
	"typeof":      "typeof",
	"delete":      "delete",
	"await":       "await",
	"instanceof":  "instanceof",
}

// binaryOp consumes the current token when it is one of the given operators,
// either spelled as an operator or as one of the Czech words in words.
func (p *Parser) binaryOp(ops []string, words []string) (string, bool) {
	tok := p.peek()
	switch tok.Kind {
	case types.Operator:
		for _, op := range ops {
			if tok.Value == op {
				p.next()
				return op, true
			}
		}
	case types.Keyword:
		for _, w := range words {
			if tok.Value == w {
				p.next()
				return wordOps[w], true
			}
		}
	}
	return "", false
}

func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expression {
	if p.isArrowStart() {
		return p.parseArrow()
	}

	left := p.parseConditional()

	if p.atOp(assignOps...) {
		op := p.peek()
		switch left.(type) {
		case *ast.Identifier, *ast.MemberExpression:
		default:
			panic(errors.UnexpectedToken{Got: op})
		}
		p.next()
		return &ast.AssignmentExpression{
			Loc:      ast.Loc{Location: left.Pos()},
			Operator: op.Value,
			Left:     left,
			Right:    p.parseAssignment(),
		}
	}

	return left
}

func (p *Parser) parseConditional() ast.Expression {
	test := p.parseLogicalOr()
	if !p.atOp("?") {
		return test
	}
	p.next()
	cons := p.parseAssignment()
	p.expect(types.Punctuation, ":")
	return &ast.ConditionalExpression{
		Loc:        ast.Loc{Location: test.Pos()},
		Test:       test,
		Consequent: cons,
		Alternate:  p.parseAssignment(),
	}
}

func (p *Parser) parseLogicalOr() ast.Expression {
	left := p.parseLogicalAnd()
	for {
		op, ok := p.binaryOp([]string{"||", "??"}, []string{"nebo"})
		if !ok {
			return left
		}
		left = &ast.LogicalExpression{Loc: ast.Loc{Location: left.Pos()}, Operator: op, Left: left, Right: p.parseLogicalAnd()}
	}
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	left := p.parseEquality()
	for {
		op, ok := p.binaryOp([]string{"&&"}, []string{"a"})
		if !ok {
			return left
		}
		left = &ast.LogicalExpression{Loc: ast.Loc{Location: left.Pos()}, Operator: op, Left: left, Right: p.parseEquality()}
	}
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	for {
		op, ok := p.binaryOp([]string{"==", "===", "!=", "!=="}, []string{"rovno", "nerovno"})
		if !ok {
			return left
		}
		left = &ast.BinaryExpression{Loc: ast.Loc{Location: left.Pos()}, Operator: op, Left: left, Right: p.parseRelational()}
	}
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	for {
		op, ok := p.binaryOp(
			[]string{">", "<", ">=", "<="},
			[]string{"větší", "menší", "větší_rovno", "menší_rovno", "instanceof"},
		)
		if !ok {
			return left
		}
		left = &ast.BinaryExpression{Loc: ast.Loc{Location: left.Pos()}, Operator: op, Left: left, Right: p.parseAdditive()}
	}
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for {
		op, ok := p.binaryOp([]string{"+", "-"}, nil)
		if !ok {
			return left
		}
		left = &ast.BinaryExpression{Loc: ast.Loc{Location: left.Pos()}, Operator: op, Left: left, Right: p.parseMultiplicative()}
	}
}

// parseMultiplicative also handles **, left-associatively, at the same
// level as * / %.
func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for {
		op, ok := p.binaryOp([]string{"*", "/", "%", "**"}, nil)
		if !ok {
			return left
		}
		left = &ast.BinaryExpression{Loc: ast.Loc{Location: left.Pos()}, Operator: op, Left: left, Right: p.parseUnary()}
	}
}

func (p *Parser) parseUnary() ast.Expression {
	tok := p.peek()

	if tok.Is(types.Operator, "++", "--") {
		p.next()
		return &ast.UpdateExpression{Loc: ast.Loc{Location: tok.Pos()}, Operator: tok.Value, Argument: p.parseUnary(), Prefix: true}
	}

	op, ok := p.binaryOp([]string{"!", "-", "+", "~"}, []string{"ne", "typeof", "delete", "await"})
	if !ok {
		return p.parsePostfix()
	}
	return &ast.UnaryExpression{Loc: ast.Loc{Location: tok.Pos()}, Operator: op, Argument: p.parseUnary(), Prefix: true}
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parseCallMember()
	if p.atOp("++", "--") {
		op := p.next()
		return &ast.UpdateExpression{Loc: ast.Loc{Location: expr.Pos()}, Operator: op.Value, Argument: expr}
	}
	return expr
}

func (p *Parser) parseCallMember() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch {
		case p.atPunct("."):
			p.next()
			expr = &ast.MemberExpression{Loc: ast.Loc{Location: expr.Pos()}, Object: expr, Property: p.expectPropertyName()}
		case p.atPunct("["):
			p.next()
			prop := p.parseExpression()
			p.expect(types.Punctuation, "]")
			expr = &ast.MemberExpression{Loc: ast.Loc{Location: expr.Pos()}, Object: expr, Property: prop, Computed: true}
		case p.atPunct("("):
			expr = &ast.CallExpression{Loc: ast.Loc{Location: expr.Pos()}, Callee: expr, Arguments: p.parseArguments()}
		case p.atOp("?."):
			p.next()
			switch {
			case p.atPunct("("):
				expr = &ast.CallExpression{Loc: ast.Loc{Location: expr.Pos()}, Callee: expr, Arguments: p.parseArguments(), Optional: true}
			case p.atPunct("["):
				p.next()
				prop := p.parseExpression()
				p.expect(types.Punctuation, "]")
				expr = &ast.MemberExpression{Loc: ast.Loc{Location: expr.Pos()}, Object: expr, Property: prop, Computed: true, Optional: true}
			default:
				expr = &ast.MemberExpression{Loc: ast.Loc{Location: expr.Pos()}, Object: expr, Property: p.expectPropertyName(), Optional: true}
			}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArguments() []ast.Expression {
	p.expect(types.Punctuation, "(")
	var args []ast.Expression
	for !p.atPunct(")") {
		if len(args) > 0 {
			p.expect(types.Punctuation, ",")
			if p.atPunct(")") {
				break
			}
		}
		args = append(args, p.parseElement())
	}
	p.expect(types.Punctuation, ")")
	return args
}

// parseElement parses an argument or array element, either of which may be
// spread.
func (p *Parser) parseElement() ast.Expression {
	if p.atOp("...") {
		tok := p.next()
		return &ast.SpreadElement{Loc: ast.Loc{Location: tok.Pos()}, Argument: p.parseAssignment()}
	}
	return p.parseAssignment()
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()
	loc := ast.Loc{Location: tok.Pos()}

	switch tok.Kind {
	case types.Number:
		p.next()
		return &ast.Literal{Loc: loc, Kind: ast.NumberLiteral, Num: tok.Num}
	case types.String:
		p.next()
		return &ast.Literal{Loc: loc, Kind: ast.StringLiteral, Str: tok.Value}
	case types.Boolean:
		p.next()
		return &ast.Literal{Loc: loc, Kind: ast.BooleanLiteral, Bool: tok.Bool}
	case types.Null:
		p.next()
		if tok.Value == "nedefinováno" {
			return &ast.Literal{Loc: loc, Kind: ast.UndefinedLiteral}
		}
		return &ast.Literal{Loc: loc, Kind: ast.NullLiteral}
	case types.Identifier, types.Type:
		p.next()
		return ast.NewID(tok.Value, tok.Pos())
	case types.Keyword:
		switch tok.Value {
		case "nový":
			return p.parseNew()
		case "tento":
			p.next()
			return &ast.ThisExpression{Loc: loc}
		case "super":
			p.next()
			return &ast.SuperExpression{Loc: loc}
		}
	case types.Punctuation:
		switch tok.Value {
		case "(":
			p.next()
			expr := p.parseExpression()
			p.expect(types.Punctuation, ")")
			return expr
		case "[":
			return p.parseArray()
		case "{":
			return p.parseObject()
		}
	}

	p.fail("expression")
	return nil
}

// parseNew parses `nový Callee(args)`. The argument list is optional.
func (p *Parser) parseNew() ast.Expression {
	tok := p.next()

	var callee ast.Expression = p.expectIdent()
	for {
		if p.atPunct(".") {
			p.next()
			callee = &ast.MemberExpression{Loc: ast.Loc{Location: callee.Pos()}, Object: callee, Property: p.expectPropertyName()}
		} else {
			break
		}
	}

	expr := &ast.NewExpression{Loc: ast.Loc{Location: tok.Pos()}, Callee: callee}
	if p.atPunct("(") {
		expr.Arguments = p.parseArguments()
	}
	return expr
}

func (p *Parser) parseArray() ast.Expression {
	tok := p.next()
	arr := &ast.ArrayExpression{Loc: ast.Loc{Location: tok.Pos()}}
	for !p.atPunct("]") {
		if len(arr.Elements) > 0 {
			p.expect(types.Punctuation, ",")
			if p.atPunct("]") {
				break
			}
		}
		arr.Elements = append(arr.Elements, p.parseElement())
	}
	p.expect(types.Punctuation, "]")
	return arr
}

func (p *Parser) parseObject() ast.Expression {
	tok := p.next()
	obj := &ast.ObjectExpression{Loc: ast.Loc{Location: tok.Pos()}}
	for !p.atPunct("}") {
		if len(obj.Properties) > 0 {
			p.expect(types.Punctuation, ",")
			if p.atPunct("}") {
				break
			}
		}
		obj.Properties = append(obj.Properties, p.parseProperty())
	}
	p.expect(types.Punctuation, "}")
	return obj
}

func (p *Parser) parseProperty() *ast.Property {
	tok := p.peek()
	prop := &ast.Property{Loc: ast.Loc{Location: tok.Pos()}}

	switch {
	case tok.Kind == types.String:
		p.next()
		prop.Key = ast.NewString(tok.Value, tok.Pos())
	case tok.Kind == types.Number:
		p.next()
		prop.Key = ast.NewNumber(tok.Num, tok.Pos())
	case tok.IsWord():
		p.next()
		prop.Key = ast.NewID(tok.Value, tok.Pos())
		if p.atPunct(",", "}") && (tok.Kind == types.Identifier || tok.Kind == types.Type) {
			prop.Value = ast.NewID(tok.Value, tok.Pos())
			return prop
		}
	default:
		p.fail("property name")
	}

	p.expect(types.Punctuation, ":")
	prop.Value = p.parseAssignment()
	return prop
}

// isArrowStart looks ahead for `x =>`, `(...) =>` or an async variant of
// either, without consuming anything.
func (p *Parser) isArrowStart() bool {
	offset := 0
	if p.atKeyword("async") {
		offset = 1
	}
	tok := p.peekAt(offset)

	if tok.Kind == types.Identifier || tok.Kind == types.Type {
		return p.peekAt(offset+1).Is(types.Operator, "=>")
	}
	if !tok.Is(types.Punctuation, "(") {
		return false
	}

	depth := 0
	for i := p.pos + offset; i < len(p.tokens); i++ {
		t := p.tokens[i]
		switch {
		case t.Kind == types.EOF:
			return false
		case t.Is(types.Punctuation, "(", "[", "{"):
			depth++
		case t.Is(types.Punctuation, ")", "]", "}"):
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Is(types.Operator, "=>")
			}
		}
	}
	return false
}

func (p *Parser) parseArrow() ast.Expression {
	fn := &ast.ArrowFunctionExpression{Loc: ast.Loc{Location: p.peek().Pos()}}
	if p.atKeyword("async") {
		p.next()
		fn.Async = true
	}

	if p.atPunct("(") {
		fn.Params = p.parseFunctionParams()
	} else {
		name := p.expectIdent()
		fn.Params = []*ast.Parameter{{Loc: name.Loc, Name: name}}
	}
	p.expect(types.Operator, "=>")

	if p.atPunct("{") {
		fn.BlockBody = p.parseBlock()
	} else {
		fn.Body = p.parseAssignment()
	}
	return fn
}
