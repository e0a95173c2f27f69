// Package parser builds an ast.Program from a token slice by recursive
// descent with one token of lookahead.
//
// There is no error recovery: the first syntax error aborts the parse.
package parser

import (
	"github.com/pontaoski/czechscript/ast"
	"github.com/pontaoski/czechscript/errors"
	"github.com/pontaoski/czechscript/types"
	"github.com/ztrue/tracerr"
)

// CounterName is the identifier the counted loop `opakuj (N)` declares.
const CounterName = "__i"

var classModifiers = map[string]bool{
	"statické":   true,
	"soukromé":   true,
	"veřejné":    true,
	"chráněné":   true,
	"abstraktní": true,
	"konečné":    true,
}

type Parser struct {
	tokens []types.Token
	pos    int
}

func NewParser(tokens []types.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != types.EOF {
		var last types.Position
		if len(tokens) > 0 {
			last = tokens[len(tokens)-1].Location.To
		}
		tokens = append(tokens[:len(tokens):len(tokens)], types.Token{Kind: types.EOF, Location: types.SingleCharSpan(last)})
	}
	return &Parser{tokens: tokens}
}

// Parse builds the Program for tokens, which must end with an EOF token.
func Parse(tokens []types.Token) (*ast.Program, error) {
	return NewParser(tokens).Parse()
}

func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				err = tracerr.Wrap(rerr)
				prog = nil
			} else {
				panic(r)
			}
		}
	}()

	prog = &ast.Program{Loc: ast.Loc{Location: p.peek().Pos()}}
	for {
		p.skipSemicolons()
		if p.peek().Kind == types.EOF {
			return prog, nil
		}
		prog.Body = append(prog.Body, p.parseStatement())
	}
}

func (p *Parser) peek() types.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) types.Token {
	if p.pos+offset >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+offset]
}

// next consumes the current token. The EOF token is never consumed.
func (p *Parser) next() types.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != types.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) peekIs(k types.TokenKind, values ...string) bool {
	return p.peek().Is(k, values...)
}

func (p *Parser) atPunct(values ...string) bool {
	return p.peekIs(types.Punctuation, values...)
}

func (p *Parser) atOp(values ...string) bool {
	return p.peekIs(types.Operator, values...)
}

func (p *Parser) atKeyword(values ...string) bool {
	return p.peekIs(types.Keyword, values...)
}

func (p *Parser) fail(expected ...string) {
	tok := p.peek()
	if tok.Kind == types.EOF {
		panic(errors.UnexpectedEOF{Expected: expected, Location: tok.Pos()})
	}
	panic(errors.UnexpectedToken{Got: tok})
}

// expect consumes a token of kind k, with value v when v is not empty.
func (p *Parser) expect(k types.TokenKind, v string) types.Token {
	tok := p.peek()
	if tok.Kind == k && (v == "" || tok.Value == v) {
		return p.next()
	}
	if tok.Kind == types.EOF {
		want := k.String()
		if v != "" {
			want = "'" + v + "'"
		}
		panic(errors.UnexpectedEOF{Expected: []string{want}, Location: tok.Pos()})
	}
	panic(errors.ExpectedKindGotKind{Expected: k, Value: v, Got: tok})
}

// expectIdent accepts identifiers and type words; the latter are ordinary
// names outside annotations.
func (p *Parser) expectIdent() *ast.Identifier {
	tok := p.peek()
	if tok.Kind == types.Identifier || tok.Kind == types.Type {
		p.next()
		return ast.NewID(tok.Value, tok.Pos())
	}
	return ast.NewID(p.expect(types.Identifier, "").Value, tok.Pos())
}

// expectPropertyName accepts any word, reserved or not.
func (p *Parser) expectPropertyName() *ast.Identifier {
	tok := p.peek()
	if tok.IsWord() {
		p.next()
		return ast.NewID(tok.Value, tok.Pos())
	}
	return p.expectIdent()
}

// skipSemicolon consumes an optional statement terminator.
func (p *Parser) skipSemicolon() {
	if p.atPunct(";") {
		p.next()
	}
}

func (p *Parser) skipSemicolons() {
	for p.atPunct(";") {
		p.next()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	tok := p.peek()

	if tok.Is(types.Punctuation, "{") {
		return p.parseBlock()
	}
	if tok.Kind != types.Keyword {
		return p.parseExpressionStatement()
	}

	switch tok.Value {
	case "proměnná", "konstanta":
		decl := p.parseVariableDeclaration()
		p.skipSemicolon()
		return decl
	case "funkce":
		return p.parseFunctionDeclaration(false)
	case "async":
		if p.peekAt(1).Is(types.Keyword, "funkce") {
			p.next()
			fn := p.parseFunctionDeclaration(true)
			fn.Location = tok.Pos()
			return fn
		}
	case "třída":
		return p.parseClassDeclaration()
	case "když":
		return p.parseIfStatement()
	case "dokud":
		return p.parseWhileStatement()
	case "opakuj":
		return p.parseCountedLoop()
	case "pro_každý":
		return p.parseForEach()
	case "vrať":
		return p.parseReturnStatement()
	case "přeruš":
		p.next()
		p.skipSemicolon()
		return &ast.BreakStatement{Loc: ast.Loc{Location: tok.Pos()}}
	case "pokračuj":
		p.next()
		p.skipSemicolon()
		return &ast.ContinueStatement{Loc: ast.Loc{Location: tok.Pos()}}
	case "zkus":
		return p.parseTryStatement()
	case "hoď":
		p.next()
		arg := p.parseExpression()
		p.skipSemicolon()
		return &ast.ThrowStatement{Loc: ast.Loc{Location: tok.Pos()}, Argument: arg}
	case "importuj":
		return p.parseImport()
	case "exportuj":
		return p.parseExport()
	}

	return p.parseExpressionStatement()
}

func (p *Parser) parseVariableDeclaration() *ast.VariableDeclaration {
	tok := p.next()
	decl := &ast.VariableDeclaration{Loc: ast.Loc{Location: tok.Pos()}, Kind: ast.Let}
	if tok.Value == "konstanta" {
		decl.Kind = ast.Const
	}

	for {
		id := p.expectIdent()
		d := &ast.VariableDeclarator{Loc: id.Loc, ID: id}
		if p.atPunct(":") {
			p.next()
			d.TypeAnnotation = p.parseType()
		}
		if p.atOp("=") {
			p.next()
			d.Init = p.parseExpression()
		}
		decl.Declarations = append(decl.Declarations, d)

		if !p.atPunct(",") {
			return decl
		}
		p.next()
	}
}

func (p *Parser) parseType() *ast.TypeAnnotation {
	tok := p.peek()
	if !tok.IsWord() {
		p.fail("type")
	}
	p.next()
	return &ast.TypeAnnotation{Loc: ast.Loc{Location: tok.Pos()}, Name: tok.Value}
}

func (p *Parser) parseFunctionDeclaration(async bool) *ast.FunctionDeclaration {
	tok := p.expect(types.Keyword, "funkce")
	fn := &ast.FunctionDeclaration{
		Loc:   ast.Loc{Location: tok.Pos()},
		ID:    p.expectIdent(),
		Async: async,
	}
	fn.Params = p.parseFunctionParams()
	if p.atPunct(":") {
		p.next()
		fn.ReturnType = p.parseType()
	}
	fn.Body = p.parseBlock()
	return fn
}

func (p *Parser) parseFunctionParams() []*ast.Parameter {
	p.expect(types.Punctuation, "(")

	var params []*ast.Parameter
	for !p.atPunct(")") {
		if len(params) > 0 {
			p.expect(types.Punctuation, ",")
		}
		name := p.expectIdent()
		param := &ast.Parameter{Loc: name.Loc, Name: name}
		if p.atPunct(":") {
			p.next()
			param.TypeAnnotation = p.parseType()
		}
		if p.atOp("=") {
			p.next()
			param.Default = p.parseAssignment()
		}
		params = append(params, param)
	}
	p.expect(types.Punctuation, ")")

	return params
}

func (p *Parser) parseClassDeclaration() *ast.ClassDeclaration {
	tok := p.next()
	class := &ast.ClassDeclaration{Loc: ast.Loc{Location: tok.Pos()}, ID: p.expectIdent()}

	if p.atKeyword("rozšiřuje") {
		p.next()
		class.SuperClass = p.expectIdent()
	}

	p.expect(types.Punctuation, "{")
	for {
		p.skipSemicolons()
		if p.atPunct("}") || p.peek().Kind == types.EOF {
			break
		}
		class.Body = append(class.Body, p.parseClassMember())
	}
	p.expect(types.Punctuation, "}")

	return class
}

func (p *Parser) parseClassMember() *ast.MethodDefinition {
	m := &ast.MethodDefinition{Loc: ast.Loc{Location: p.peek().Pos()}}

	for p.peek().Kind == types.Keyword && classModifiers[p.peek().Value] {
		mod := p.next().Value
		m.Modifiers = append(m.Modifiers, mod)
		if mod == "statické" {
			m.Static = true
		}
	}

	if p.atKeyword("konstruktor") {
		tok := p.next()
		m.Kind = ast.Constructor
		m.Key = ast.NewID(tok.Value, tok.Pos())
		m.Params = p.parseFunctionParams()
		m.Body = p.parseBlock()
		return m
	}

	m.Kind = ast.Method
	m.Key = p.expectPropertyName()
	m.Params = p.parseFunctionParams()
	if p.atPunct(":") {
		p.next()
		m.ReturnType = p.parseType()
	}
	m.Body = p.parseBlock()
	return m
}

func (p *Parser) parseCondition() ast.Expression {
	p.expect(types.Punctuation, "(")
	test := p.parseExpression()
	p.expect(types.Punctuation, ")")
	return test
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	tok := p.next()
	stmt := &ast.IfStatement{Loc: ast.Loc{Location: tok.Pos()}, Test: p.parseCondition()}

	if p.atKeyword("pak") {
		p.next()
	}

	stmt.Consequent = p.parseBlockOrStatement()
	if p.atKeyword("jinak") {
		p.next()
		stmt.Alternate = p.parseBlockOrStatement()
	}

	return stmt
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	tok := p.next()
	return &ast.WhileStatement{
		Loc:  ast.Loc{Location: tok.Pos()},
		Test: p.parseCondition(),
		Body: p.parseBlockOrStatement(),
	}
}

// parseCountedLoop lowers `opakuj (N) body` to
// `for (let __i = 0; __i < N; __i++) body`.
func (p *Parser) parseCountedLoop() *ast.ForStatement {
	tok := p.next()
	times := p.parseCondition()
	body := p.parseBlockOrStatement()

	var synthetic types.Position
	return &ast.ForStatement{
		Loc: ast.Loc{Location: tok.Pos()},
		Init: &ast.VariableDeclaration{
			Kind: ast.Let,
			Declarations: []*ast.VariableDeclarator{{
				ID:   ast.NewID(CounterName, synthetic),
				Init: ast.NewNumber(0, synthetic),
			}},
		},
		Test: &ast.BinaryExpression{
			Operator: "<",
			Left:     ast.NewID(CounterName, synthetic),
			Right:    times,
		},
		Update: &ast.UpdateExpression{
			Operator: "++",
			Argument: ast.NewID(CounterName, synthetic),
		},
		Body: body,
	}
}

// parseForEach lowers `pro_každý (x v c) body` to `for (const x of c) body`.
func (p *Parser) parseForEach() *ast.ForOfStatement {
	tok := p.next()
	p.expect(types.Punctuation, "(")
	id := p.expectIdent()
	p.expect(types.Keyword, "v")
	right := p.parseExpression()
	p.expect(types.Punctuation, ")")

	return &ast.ForOfStatement{
		Loc: ast.Loc{Location: tok.Pos()},
		Left: &ast.VariableDeclaration{
			Loc:          id.Loc,
			Kind:         ast.Const,
			Declarations: []*ast.VariableDeclarator{{Loc: id.Loc, ID: id}},
		},
		Right: right,
		Body:  p.parseBlockOrStatement(),
	}
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	tok := p.next()
	stmt := &ast.ReturnStatement{Loc: ast.Loc{Location: tok.Pos()}}
	if !p.atPunct(";", "}") && p.peek().Kind != types.EOF {
		stmt.Argument = p.parseExpression()
	}
	p.skipSemicolon()
	return stmt
}

func (p *Parser) parseTryStatement() *ast.TryStatement {
	tok := p.next()
	stmt := &ast.TryStatement{Loc: ast.Loc{Location: tok.Pos()}, Block: p.parseBlock()}

	if p.atKeyword("chyť") {
		catch := p.next()
		handler := &ast.CatchClause{Loc: ast.Loc{Location: catch.Pos()}}
		if p.atPunct("(") {
			p.next()
			handler.Param = p.expectIdent()
			p.expect(types.Punctuation, ")")
		}
		handler.Body = p.parseBlock()
		stmt.Handler = handler
	}

	if p.atKeyword("nakonec") {
		p.next()
		stmt.Finalizer = p.parseBlock()
	}

	if stmt.Handler == nil && stmt.Finalizer == nil {
		p.fail("chyť", "nakonec")
	}

	return stmt
}

func (p *Parser) parseImport() *ast.ImportDeclaration {
	tok := p.next()
	decl := &ast.ImportDeclaration{Loc: ast.Loc{Location: tok.Pos()}}

	if p.peek().Kind == types.String {
		src := p.next()
		decl.Source = ast.NewString(src.Value, src.Pos())
		p.skipSemicolon()
		return decl
	}

	if p.atPunct("{") {
		p.next()
		for !p.atPunct("}") {
			if len(decl.Specifiers) > 0 {
				p.expect(types.Punctuation, ",")
				if p.atPunct("}") {
					break
				}
			}
			imported := p.expectPropertyName()
			spec := &ast.ImportSpecifier{Loc: imported.Loc, Imported: imported, Local: imported}
			if p.atKeyword("jako") {
				p.next()
				spec.Local = p.expectIdent()
			} else {
				spec.Local = ast.NewID(imported.Name, imported.Location)
			}
			decl.Specifiers = append(decl.Specifiers, spec)
		}
		p.expect(types.Punctuation, "}")
	} else {
		decl.Default = p.expectIdent()
	}

	p.expect(types.Keyword, "z")
	src := p.expect(types.String, "")
	decl.Source = ast.NewString(src.Value, src.Pos())
	p.skipSemicolon()

	return decl
}

func (p *Parser) parseExport() ast.Statement {
	tok := p.next()
	if p.atKeyword("výchozí") {
		p.next()
		return &ast.ExportDefaultDeclaration{Loc: ast.Loc{Location: tok.Pos()}, Declaration: p.parseStatement()}
	}
	return &ast.ExportNamedDeclaration{Loc: ast.Loc{Location: tok.Pos()}, Declaration: p.parseStatement()}
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	tok := p.expect(types.Punctuation, "{")
	block := &ast.BlockStatement{Loc: ast.Loc{Location: tok.Pos()}}

	for {
		p.skipSemicolons()
		if p.atPunct("}") || p.peek().Kind == types.EOF {
			break
		}
		block.Body = append(block.Body, p.parseStatement())
	}
	p.expect(types.Punctuation, "}")

	return block
}

func (p *Parser) parseBlockOrStatement() ast.Statement {
	if p.atPunct("{") {
		return p.parseBlock()
	}
	return p.parseStatement()
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	expr := p.parseExpression()
	p.skipSemicolon()
	return &ast.ExpressionStatement{Loc: ast.Loc{Location: expr.Pos()}, Expression: expr}
}
