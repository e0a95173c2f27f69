package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pontaoski/czechscript/ast"
	"github.com/pontaoski/czechscript/errors"
	"github.com/pontaoski/czechscript/lexer"
	"github.com/ztrue/tracerr"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens, err := lexer.Tokenize(src, "test.cs")
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	prog, err := Parse(tokens)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return prog
}

// sexpr renders a node compactly so trees can be compared as strings.
func sexpr(n ast.Node) string {
	switch n := n.(type) {
	case nil:
		return "nil"
	case *ast.Identifier:
		return n.Name
	case *ast.Literal:
		switch n.Kind {
		case ast.NumberLiteral:
			return fmt.Sprint(n.Num)
		case ast.StringLiteral:
			return fmt.Sprintf("%q", n.Str)
		case ast.BooleanLiteral:
			return fmt.Sprint(n.Bool)
		case ast.NullLiteral:
			return "null"
		default:
			return "undefined"
		}
	case *ast.BinaryExpression:
		return fmt.Sprintf("(%s %s %s)", n.Operator, sexpr(n.Left), sexpr(n.Right))
	case *ast.LogicalExpression:
		return fmt.Sprintf("(%s %s %s)", n.Operator, sexpr(n.Left), sexpr(n.Right))
	case *ast.AssignmentExpression:
		return fmt.Sprintf("(%s %s %s)", n.Operator, sexpr(n.Left), sexpr(n.Right))
	case *ast.ConditionalExpression:
		return fmt.Sprintf("(? %s %s %s)", sexpr(n.Test), sexpr(n.Consequent), sexpr(n.Alternate))
	case *ast.UnaryExpression:
		return fmt.Sprintf("(%s %s)", n.Operator, sexpr(n.Argument))
	case *ast.UpdateExpression:
		if n.Prefix {
			return fmt.Sprintf("(%s %s)", n.Operator, sexpr(n.Argument))
		}
		return fmt.Sprintf("(%s %s)", sexpr(n.Argument), n.Operator)
	case *ast.CallExpression:
		call := "call"
		if n.Optional {
			call = "call?"
		}
		return fmt.Sprintf("(%s %s%s)", call, sexpr(n.Callee), list(n.Arguments))
	case *ast.NewExpression:
		return fmt.Sprintf("(new %s%s)", sexpr(n.Callee), list(n.Arguments))
	case *ast.MemberExpression:
		dot := "."
		if n.Optional {
			dot = "?."
		}
		if n.Computed {
			return fmt.Sprintf("%s%s[%s]", sexpr(n.Object), strings.TrimSuffix(dot, "."), sexpr(n.Property))
		}
		return sexpr(n.Object) + dot + sexpr(n.Property)
	case *ast.ArrayExpression:
		return "[" + strings.TrimPrefix(list(n.Elements), " ") + "]"
	case *ast.ObjectExpression:
		var props []string
		for _, p := range n.Properties {
			props = append(props, sexpr(p.Key)+":"+sexpr(p.Value))
		}
		return "{" + strings.Join(props, " ") + "}"
	case *ast.SpreadElement:
		return "..." + sexpr(n.Argument)
	case *ast.ArrowFunctionExpression:
		var params []string
		for _, p := range n.Params {
			params = append(params, p.Name.Name)
		}
		body := sexpr(n.Body)
		if n.BlockBody != nil {
			body = "{block}"
		}
		return fmt.Sprintf("(=> (%s) %s)", strings.Join(params, " "), body)
	case *ast.ThisExpression:
		return "this"
	case *ast.SuperExpression:
		return "super"
	}
	return ast.TypeName(n)
}

func list(es []ast.Expression) string {
	var b strings.Builder
	for _, e := range es {
		b.WriteString(" " + sexpr(e))
	}
	return b.String()
}

func expr(t *testing.T, src string) ast.Expression {
	t.Helper()
	prog := parse(t, src)
	if len(prog.Body) != 1 {
		t.Fatalf("%q: got %d statements, want 1", src, len(prog.Body))
	}
	stmt, ok := prog.Body[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("%q: got %s, want ExpressionStatement", src, ast.TypeName(prog.Body[0]))
	}
	return stmt.Expression
}

func TestExpressions(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		{`1 + 2 * 3`, "(+ 1 (* 2 3))"},
		{`(1 + 2) * 3`, "(* (+ 1 2) 3)"},
		{`10 - 4 - 3`, "(- (- 10 4) 3)"},
		{`2 ** 3 ** 2`, "(** (** 2 3) 2)"},
		{`x větší 5 a y menší_rovno 3`, "(&& (> x 5) (<= y 3))"},
		{`x rovno 1 nebo ne y`, "(|| (=== x 1) (! y))"},
		{`x nerovno nedefinováno`, "(!== x undefined)"},
		{`x == y != w`, "(!= (== x y) w)"},
		{`a1 ?? b1 || c1`, "(|| (?? a1 b1) c1)"},
		{`x = y = 3`, "(= x (= y 3))"},
		{`x += 2`, "(+= x 2)"},
		{`c ? 1 : 2`, "(? c 1 2)"},
		{`-x`, "(- x)"},
		{`typeof x`, "(typeof x)"},
		{`await načti()`, "(await (call načti))"},
		{`i++`, "(i ++)"},
		{`--i`, "(-- i)"},
		{`o.p.q`, "o.p.q"},
		{`o[0]`, "o[0]"},
		{`o?.p`, "o?.p"},
		{`f?.(1)`, "(call? f 1)"},
		{`konzole.log("ahoj", 1)`, `(call konzole.log "ahoj" 1)`},
		{`o.výchozí`, "o.výchozí"},
		{`nový Datum`, "(new Datum)"},
		{`nový Mapa(1, 2)`, "(new Mapa 1 2)"},
		{`[1, 2, ...zbytek]`, "[1 2 ...zbytek]"},
		{`[1, 2,]`, "[1 2]"},
		{`f(...args)`, "(call f ...args)"},
		{`x = {jméno: "Jan", věk: 30}`, `(= x {jméno:"Jan" věk:30})`},
		{`x = {"klíč": 1, pole}`, `(= x {"klíč":1 pole:pole})`},
		{`x = {}`, "(= x {})"},
		{`x => x * 2`, "(=> (x) (* x 2))"},
		{`(a1, b1) => a1 + b1`, "(=> (a1 b1) (+ a1 b1))"},
		{`() => { vrať 1 }`, "(=> () {block})"},
		{`(x)`, "x"},
		{`tento.jméno`, "this.jméno"},
		{`super.metoda()`, "(call super.metoda)"},
		{`pravda`, "true"},
		{`null`, "null"},
		{`číslo + 1`, "(+ číslo 1)"},
		{`x instanceof Pole`, "(instanceof x Pole)"},
	} {
		if got := sexpr(expr(t, test.input)); got != test.want {
			t.Errorf("parse(%q):\n got  %s\n want %s", test.input, got, test.want)
		}
	}
}

func TestStatements(t *testing.T) {
	for _, test := range []struct {
		input string
		want  []string
	}{
		{`proměnná x = 5; konstanta y = 3`, []string{"VariableDeclaration", "VariableDeclaration"}},
		{`proměnná x = 5 proměnná y = 6`, []string{"VariableDeclaration", "VariableDeclaration"}},
		{`;;; x;`, []string{"ExpressionStatement"}},
		{`funkce f() {} třída A {}`, []string{"FunctionDeclaration", "ClassDeclaration"}},
		{`async funkce f() {}`, []string{"FunctionDeclaration"}},
		{`když (x) pak { } jinak { }`, []string{"IfStatement"}},
		{`dokud (x) { x-- }`, []string{"WhileStatement"}},
		{`opakuj (3) { }`, []string{"ForStatement"}},
		{`pro_každý (p v pole) { }`, []string{"ForOfStatement"}},
		{`{ proměnná x = 1 }`, []string{"BlockStatement"}},
		{`zkus { } chyť (e) { } nakonec { }`, []string{"TryStatement"}},
		{`hoď nový Chyba("x")`, []string{"ThrowStatement"}},
		{`importuj { a1 } z "m"`, []string{"ImportDeclaration"}},
		{`exportuj funkce f() {}`, []string{"ExportNamedDeclaration"}},
		{`exportuj výchozí třída A {}`, []string{"ExportDefaultDeclaration"}},
	} {
		var got []string
		for _, stmt := range parse(t, test.input).Body {
			got = append(got, ast.TypeName(stmt))
		}
		if strings.Join(got, " ") != strings.Join(test.want, " ") {
			t.Errorf("parse(%q) = %v, want %v", test.input, got, test.want)
		}
	}
}

func TestVariableDeclaration(t *testing.T) {
	prog := parse(t, `konstanta x: číslo = 1, y = "a", w`)
	decl := prog.Body[0].(*ast.VariableDeclaration)
	if decl.Kind != ast.Const {
		t.Errorf("kind = %s, want const", decl.Kind)
	}
	if len(decl.Declarations) != 3 {
		t.Fatalf("got %d declarators, want 3", len(decl.Declarations))
	}
	if d := decl.Declarations[0]; d.ID.Name != "x" || d.TypeAnnotation.String() != "číslo" || sexpr(d.Init) != "1" {
		t.Errorf("first declarator = %s: %s = %s", d.ID.Name, d.TypeAnnotation, sexpr(d.Init))
	}
	if d := decl.Declarations[2]; d.Init != nil {
		t.Errorf("w has initialiser %s", sexpr(d.Init))
	}
}

func TestFunctionDeclaration(t *testing.T) {
	prog := parse(t, `funkce sečti(a1: číslo, b1 = 2): číslo { vrať a1 + b1 }`)
	fn := prog.Body[0].(*ast.FunctionDeclaration)
	if got, want := fn.String(), "funkce sečti(a1: číslo, b1): číslo"; got != want {
		t.Errorf("signature = %q, want %q", got, want)
	}
	if sexpr(fn.Params[1].Default) != "2" {
		t.Errorf("default = %s, want 2", sexpr(fn.Params[1].Default))
	}
	ret := fn.Body.Body[0].(*ast.ReturnStatement)
	if sexpr(ret.Argument) != "(+ a1 b1)" {
		t.Errorf("return = %s", sexpr(ret.Argument))
	}
}

func TestCountedLoop(t *testing.T) {
	prog := parse(t, `opakuj (n * 2) { x++ }`)
	loop := prog.Body[0].(*ast.ForStatement)

	d := loop.Init.Declarations[0]
	if loop.Init.Kind != ast.Let || d.ID.Name != CounterName || sexpr(d.Init) != "0" {
		t.Errorf("init = %s %s = %s", loop.Init.Kind, d.ID.Name, sexpr(d.Init))
	}
	if got := sexpr(loop.Test); got != "(< __i (* n 2))" {
		t.Errorf("test = %s", got)
	}
	if got := sexpr(loop.Update); got != "(__i ++)" {
		t.Errorf("update = %s", got)
	}
	if loop.Pos().Line != 1 || loop.Pos().Column != 1 {
		t.Errorf("loop position = %s", loop.Pos())
	}
}

func TestForEach(t *testing.T) {
	prog := parse(t, `pro_každý (položka v seznam) vypis(položka)`)
	loop := prog.Body[0].(*ast.ForOfStatement)
	if loop.Left.Kind != ast.Const || loop.Left.Declarations[0].ID.Name != "položka" {
		t.Errorf("left = %s %s", loop.Left.Kind, loop.Left.Declarations[0].ID.Name)
	}
	if sexpr(loop.Right) != "seznam" {
		t.Errorf("right = %s", sexpr(loop.Right))
	}
	if _, ok := loop.Body.(*ast.ExpressionStatement); !ok {
		t.Errorf("body = %s", ast.TypeName(loop.Body))
	}
}

func TestIfElseChain(t *testing.T) {
	prog := parse(t, `když (x větší 0) { a1() } jinak když (x menší 0) b1() jinak { c1() }`)
	stmt := prog.Body[0].(*ast.IfStatement)
	if sexpr(stmt.Test) != "(> x 0)" {
		t.Errorf("test = %s", sexpr(stmt.Test))
	}
	inner, ok := stmt.Alternate.(*ast.IfStatement)
	if !ok {
		t.Fatalf("alternate = %s, want IfStatement", ast.TypeName(stmt.Alternate))
	}
	if _, ok := inner.Consequent.(*ast.ExpressionStatement); !ok {
		t.Errorf("inner consequent = %s", ast.TypeName(inner.Consequent))
	}
	if _, ok := inner.Alternate.(*ast.BlockStatement); !ok {
		t.Errorf("inner alternate = %s", ast.TypeName(inner.Alternate))
	}
}

func TestClassDeclaration(t *testing.T) {
	prog := parse(t, `
třída Pes rozšiřuje Zvíře {
	konstruktor(jméno) { super(jméno) }
	veřejné štěkej(): řetězec { vrať "haf" }
	statické vytvoř() { vrať nový Pes("Rex") }
}`)
	class := prog.Body[0].(*ast.ClassDeclaration)
	if class.ID.Name != "Pes" || class.SuperClass.Name != "Zvíře" {
		t.Errorf("class %s extends %s", class.ID.Name, class.SuperClass.Name)
	}
	if len(class.Body) != 3 {
		t.Fatalf("got %d members, want 3", len(class.Body))
	}
	if class.Body[0].Kind != ast.Constructor {
		t.Errorf("first member is not the constructor")
	}
	if m := class.Body[1]; m.Key.Name != "štěkej" || m.Static || m.ReturnType.String() != "řetězec" || m.Modifiers[0] != "veřejné" {
		t.Errorf("second member = %+v", m)
	}
	if !class.Body[2].Static {
		t.Errorf("third member is not static")
	}
}

func TestImports(t *testing.T) {
	prog := parse(t, `
importuj { a1, b1 jako c1 } z "modul"
importuj výchozíVěc z "./jiný"
importuj "./styl.css"`)

	named := prog.Body[0].(*ast.ImportDeclaration)
	if len(named.Specifiers) != 2 || named.Specifiers[1].Imported.Name != "b1" || named.Specifiers[1].Local.Name != "c1" {
		t.Errorf("named import = %s", ast.Dump(named))
	}
	if named.Source.Str != "modul" {
		t.Errorf("source = %q", named.Source.Str)
	}

	def := prog.Body[1].(*ast.ImportDeclaration)
	if def.Default == nil || def.Default.Name != "výchozíVěc" {
		t.Errorf("default import = %s", ast.Dump(def))
	}

	bare := prog.Body[2].(*ast.ImportDeclaration)
	if bare.Default != nil || len(bare.Specifiers) != 0 || bare.Source.Str != "./styl.css" {
		t.Errorf("bare import = %s", ast.Dump(bare))
	}
}

func TestTryStatement(t *testing.T) {
	prog := parse(t, `zkus { riskuj() } chyť (chyba) { vypis(chyba) }`)
	stmt := prog.Body[0].(*ast.TryStatement)
	if stmt.Handler == nil || stmt.Handler.Param.Name != "chyba" {
		t.Errorf("handler = %s", ast.Dump(stmt.Handler))
	}
	if stmt.Finalizer != nil {
		t.Errorf("unexpected finalizer")
	}
}

func TestPositions(t *testing.T) {
	prog := parse(t, "proměnná x = 1\n  když (x) { }")
	if got := prog.Body[1].Pos(); got.Line != 2 || got.Column != 3 {
		t.Errorf("if position = %s, want 2:3", got)
	}
	decl := prog.Body[0].(*ast.VariableDeclaration)
	if got := decl.Declarations[0].Init.Pos(); got.Column != 14 {
		t.Errorf("init position = %s, want column 14", got)
	}
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		input string
		eof   bool
		want  string
	}{
		{`proměnná = 5`, false, "expected IDENTIFIER"},
		{`když x větší 5 { }`, false, "expected '('"},
		{`funkce f( {`, false, "expected IDENTIFIER"},
		{`1 = 2`, false, "unexpected token"},
		{`zkus { }`, true, "chyť or nakonec"},
		{`funkce f() {`, true, "unexpected end of input"},
		{`x = (1 + `, true, "unexpected end of input"},
		{`proměnná x: `, true, "unexpected end of input"},
		{`proměnná x: = 5`, false, "unexpected token OPERATOR"},
		{`funkce f(): 3 {}`, false, "unexpected token NUMBER"},
		{`funkce f(y: "s") {}`, false, "unexpected token STRING"},
		{`importuj { a1 } "m"`, false, "expected 'z'"},
	} {
		tokens, err := lexer.Tokenize(test.input, "err.cs")
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", test.input, err)
		}
		prog, err := Parse(tokens)
		if err == nil {
			t.Errorf("Parse(%q) succeeded", test.input)
			continue
		}
		if prog != nil {
			t.Errorf("Parse(%q) returned a program alongside an error", test.input)
		}
		cause := tracerr.Unwrap(err)
		if _, ok := cause.(errors.ParseError); !ok {
			t.Errorf("Parse(%q) error %T is not a ParseError", test.input, cause)
		}
		if _, isEOF := cause.(errors.UnexpectedEOF); isEOF != test.eof {
			t.Errorf("Parse(%q) error %T, want UnexpectedEOF = %v", test.input, cause, test.eof)
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("Parse(%q) error %q does not contain %q", test.input, err, test.want)
		}
	}
}
