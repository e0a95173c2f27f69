// Package codegen prints an ast.Program as JavaScript.
package codegen

import (
	"strings"

	"github.com/pontaoski/czechscript/ast"
	"github.com/pontaoski/czechscript/errors"
	"github.com/pontaoski/czechscript/sourcemap"
	"github.com/pontaoski/czechscript/types"
	"github.com/ztrue/tracerr"
)

const DefaultIndent = "    "

type Options struct {
	// Indent is written once per nesting level. Empty means DefaultIndent.
	Indent string
	// SourceMap, when set, receives a mapping for every statement,
	// identifier and literal that carries a source position.
	SourceMap *sourcemap.Builder
}

type Generator struct {
	opts  Options
	out   strings.Builder
	level int

	// current output position, zero-based, columns in UTF-16 units
	line, col int
}

func NewGenerator(opts Options) *Generator {
	if opts.Indent == "" {
		opts.Indent = DefaultIndent
	}
	return &Generator{opts: opts}
}

// Generate returns the JavaScript for prog.
func Generate(prog *ast.Program, opts Options) (string, error) {
	return NewGenerator(opts).Generate(prog)
}

func (g *Generator) Generate(prog *ast.Program) (code string, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				err = tracerr.Wrap(rerr)
				code = ""
			} else {
				panic(r)
			}
		}
	}()

	if prog == nil {
		panic(errors.UnknownNode{Type: "<nil>"})
	}
	for _, stmt := range prog.Body {
		g.statement(stmt)
	}
	return g.out.String(), nil
}

func (g *Generator) write(s string) {
	g.out.WriteString(s)
	for _, r := range s {
		if r == '\n' {
			g.line++
			g.col = 0
		} else if r >= 0x10000 {
			g.col += 2
		} else {
			g.col++
		}
	}
}

func (g *Generator) writeIndent() {
	g.write(strings.Repeat(g.opts.Indent, g.level))
}

// mark maps the current output position to pos.
func (g *Generator) mark(pos types.Position, name string) {
	if g.opts.SourceMap == nil || !pos.IsValid() {
		return
	}
	g.opts.SourceMap.Add(g.line, g.col, pos.Line-1, pos.Column-1, name)
}

func (g *Generator) statement(s ast.Statement) {
	g.writeIndent()
	g.statementBody(s)
}

// statementBody writes s at the current position. Every statement ends with
// a newline.
func (g *Generator) statementBody(s ast.Statement) {
	if s == nil {
		panic(errors.UnknownNode{Type: "<nil>"})
	}
	g.mark(s.Pos(), "")

	switch s := s.(type) {
	case *ast.VariableDeclaration:
		g.declaration(s)
		g.write(";\n")
	case *ast.FunctionDeclaration:
		g.function(s)
	case *ast.ClassDeclaration:
		g.class(s)
	case *ast.IfStatement:
		g.ifStatement(s)
	case *ast.WhileStatement:
		g.write("while (")
		g.expr(s.Test, precLowest)
		g.write(")")
		g.loopBody(s.Body)
	case *ast.ForStatement:
		g.write("for (")
		if s.Init != nil {
			g.declaration(s.Init)
		}
		g.write("; ")
		if s.Test != nil {
			g.expr(s.Test, precLowest)
		}
		g.write("; ")
		if s.Update != nil {
			g.expr(s.Update, precLowest)
		}
		g.write(")")
		g.loopBody(s.Body)
	case *ast.ForOfStatement:
		g.write("for (")
		g.write(s.Left.Kind.String() + " ")
		g.identifier(s.Left.Declarations[0].ID)
		g.write(" of ")
		g.expr(s.Right, precAssign)
		g.write(")")
		g.loopBody(s.Body)
	case *ast.ReturnStatement:
		g.write("return")
		if s.Argument != nil {
			g.write(" ")
			g.expr(s.Argument, precLowest)
		}
		g.write(";\n")
	case *ast.BreakStatement:
		g.write("break;\n")
	case *ast.ContinueStatement:
		g.write("continue;\n")
	case *ast.ThrowStatement:
		g.write("throw ")
		g.expr(s.Argument, precLowest)
		g.write(";\n")
	case *ast.TryStatement:
		g.write("try ")
		g.block(s.Block)
		if s.Handler != nil {
			g.write(" catch ")
			if s.Handler.Param != nil {
				g.write("(")
				g.identifier(s.Handler.Param)
				g.write(") ")
			}
			g.block(s.Handler.Body)
		}
		if s.Finalizer != nil {
			g.write(" finally ")
			g.block(s.Finalizer)
		}
		g.write("\n")
	case *ast.ImportDeclaration:
		g.importDeclaration(s)
	case *ast.ExportNamedDeclaration:
		g.write("export ")
		g.statementBody(s.Declaration)
	case *ast.ExportDefaultDeclaration:
		g.write("export default ")
		g.statementBody(s.Declaration)
	case *ast.BlockStatement:
		g.block(s)
		g.write("\n")
	case *ast.ExpressionStatement:
		if startsWithBrace(s.Expression) {
			g.write("(")
			g.expr(s.Expression, precLowest)
			g.write(")")
		} else {
			g.expr(s.Expression, precLowest)
		}
		g.write(";\n")
	default:
		panic(errors.UnknownNode{Type: ast.TypeName(s)})
	}
}

func (g *Generator) declaration(d *ast.VariableDeclaration) {
	g.write(d.Kind.String() + " ")
	for i, v := range d.Declarations {
		if i > 0 {
			g.write(", ")
		}
		g.identifier(v.ID)
		if v.Init != nil {
			g.write(" = ")
			g.expr(v.Init, precAssign)
		}
	}
}

// block writes a braced statement list without a trailing newline.
func (g *Generator) block(b *ast.BlockStatement) {
	if b == nil {
		panic(errors.UnknownNode{Type: "<nil>"})
	}
	if len(b.Body) == 0 {
		g.write("{}")
		return
	}
	g.write("{\n")
	g.level++
	for _, stmt := range b.Body {
		g.statement(stmt)
	}
	g.level--
	g.writeIndent()
	g.write("}")
}

// clause writes the body of an if or loop. A block stays on the header line
// and is left unterminated so an else can follow; anything else goes on its
// own indented line. It reports whether a block was written.
func (g *Generator) clause(s ast.Statement) bool {
	if b, ok := s.(*ast.BlockStatement); ok {
		g.write(" ")
		g.mark(b.Pos(), "")
		g.block(b)
		return true
	}
	g.write("\n")
	g.level++
	g.statement(s)
	g.level--
	return false
}

func (g *Generator) loopBody(s ast.Statement) {
	if g.clause(s) {
		g.write("\n")
	}
}

func (g *Generator) ifStatement(s *ast.IfStatement) {
	g.write("if (")
	g.expr(s.Test, precLowest)
	g.write(")")

	block := g.clause(s.Consequent)
	if s.Alternate == nil {
		if block {
			g.write("\n")
		}
		return
	}

	if block {
		g.write(" else")
	} else {
		g.writeIndent()
		g.write("else")
	}

	if alt, ok := s.Alternate.(*ast.IfStatement); ok {
		g.write(" ")
		g.mark(alt.Pos(), "")
		g.ifStatement(alt)
		return
	}
	if g.clause(s.Alternate) {
		g.write("\n")
	}
}

func (g *Generator) params(ps []*ast.Parameter) {
	g.write("(")
	for i, p := range ps {
		if i > 0 {
			g.write(", ")
		}
		g.identifier(p.Name)
		if p.Default != nil {
			g.write(" = ")
			g.expr(p.Default, precAssign)
		}
	}
	g.write(")")
}

func (g *Generator) function(f *ast.FunctionDeclaration) {
	if f.Async {
		g.write("async ")
	}
	g.write("function ")
	g.identifier(f.ID)
	g.params(f.Params)
	g.write(" ")
	g.block(f.Body)
	g.write("\n")
}

func (g *Generator) class(c *ast.ClassDeclaration) {
	g.write("class ")
	g.identifier(c.ID)
	if c.SuperClass != nil {
		g.write(" extends ")
		g.identifier(c.SuperClass)
	}
	if len(c.Body) == 0 {
		g.write(" {}\n")
		return
	}

	g.write(" {\n")
	g.level++
	for _, m := range c.Body {
		g.writeIndent()
		g.mark(m.Pos(), "")
		if m.Static {
			g.write("static ")
		}
		if m.Kind == ast.Constructor {
			g.write("constructor")
		} else {
			g.identifier(m.Key)
		}
		g.params(m.Params)
		g.write(" ")
		g.block(m.Body)
		g.write("\n")
	}
	g.level--
	g.writeIndent()
	g.write("}\n")
}

func (g *Generator) importDeclaration(s *ast.ImportDeclaration) {
	g.write("import ")
	switch {
	case s.Default != nil:
		g.identifier(s.Default)
		g.write(" from ")
	case len(s.Specifiers) > 0:
		g.write("{ ")
		for i, spec := range s.Specifiers {
			if i > 0 {
				g.write(", ")
			}
			g.identifier(spec.Imported)
			if spec.Local != nil && spec.Local.Name != spec.Imported.Name {
				g.write(" as ")
				g.identifier(spec.Local)
			}
		}
		g.write(" } from ")
	}
	g.literal(s.Source)
	g.write(";\n")
}
