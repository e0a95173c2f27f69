// Package compiler runs the whole pipeline over one source text: tokenize,
// parse, analyze, optimize and generate.
//
// A Compiler keeps the diagnostics of the call in progress, so one instance
// must not be shared between goroutines. Separate instances are independent.
package compiler

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/pontaoski/czechscript/analyzer"
	"github.com/pontaoski/czechscript/ast"
	"github.com/pontaoski/czechscript/codegen"
	"github.com/pontaoski/czechscript/diag"
	"github.com/pontaoski/czechscript/errors"
	"github.com/pontaoski/czechscript/lexer"
	"github.com/pontaoski/czechscript/optimizer"
	"github.com/pontaoski/czechscript/parser"
	"github.com/pontaoski/czechscript/sourcemap"
	"github.com/pontaoski/czechscript/types"
	"github.com/ztrue/tracerr"
)

// SourceExt and OutputExt are the conventional file extensions of input and
// generated files.
const (
	SourceExt = ".cs"
	OutputExt = ".js"
)

type Options struct {
	// Optimize enables constant folding.
	Optimize bool
	// Strict enables the semantic analyzer.
	Strict bool
	// SourceMap requests a source map alongside the code.
	SourceMap bool
	// Filename is used in diagnostics and as the source map's only source.
	Filename string
	// Indent is passed to the code generator.
	Indent string
	// Logger, when set, gets one line per stage.
	Logger *log.Logger
}

func DefaultOptions() Options {
	return Options{
		Optimize: true,
		Strict:   true,
		Filename: "input" + SourceExt,
	}
}

// Result is the outcome of one Compile call. When a fatal error stops the
// pipeline, Code, AST, Tokens and SourceMap are all empty and Errors holds
// exactly that one error.
type Result struct {
	Success   bool
	Code      string
	AST       *ast.Program
	Tokens    []types.Token
	Errors    []diag.Diagnostic
	Warnings  []diag.Diagnostic
	SourceMap *sourcemap.Map
}

type Compiler struct {
	opts     Options
	reporter diag.Reporter
}

func New(opts Options) *Compiler {
	return &Compiler{opts: opts}
}

func (c *Compiler) Options() Options {
	return c.opts
}

// OutputName returns the file name generated code for filename is written
// to: a trailing SourceExt is replaced with OutputExt, anything else gets
// OutputExt appended.
func OutputName(filename string) string {
	if filename == "" {
		return ""
	}
	return strings.TrimSuffix(filename, SourceExt) + OutputExt
}

func (c *Compiler) logf(format string, args ...interface{}) {
	if c.opts.Logger != nil {
		c.opts.Logger.Printf(format, args...)
	}
}

func (c *Compiler) Compile(source string) *Result {
	c.reporter.Reset()

	tokens, err := lexer.Tokenize(source, c.opts.Filename)
	if err != nil {
		return c.fail(err)
	}
	c.logf("lex: %d tokens", len(tokens))

	prog, err := parser.Parse(tokens)
	if err != nil {
		return c.fail(err)
	}
	c.logf("parse: %d statements", len(prog.Body))

	if c.opts.Strict {
		analyzer.Analyze(prog, &c.reporter)
		c.logf("analyze: %d errors, %d warnings", len(c.reporter.Errors), len(c.reporter.Warnings))
	}

	if c.opts.Optimize {
		prog = optimizer.Optimize(prog)
		c.logf("optimize: done")
	}

	var sm *sourcemap.Builder
	if c.opts.SourceMap {
		sm = sourcemap.NewBuilder(filepath.Base(OutputName(c.opts.Filename)))
		sm.AddSource(c.opts.Filename, source)
	}

	code, err := codegen.Generate(prog, codegen.Options{Indent: c.opts.Indent, SourceMap: sm})
	if err != nil {
		return c.fail(err)
	}
	c.logf("generate: %d bytes", len(code))

	res := &Result{
		Success:  !c.reporter.HasErrors(),
		Code:     code,
		AST:      prog,
		Tokens:   tokens,
		Errors:   append([]diag.Diagnostic(nil), c.reporter.Errors...),
		Warnings: append([]diag.Diagnostic(nil), c.reporter.Warnings...),
	}
	if sm != nil {
		res.SourceMap = sm.Build()
		c.logf("sourcemap: %d mappings", sm.Len())
	}
	return res
}

// fail turns a fatal stage error into the single diagnostic of a failed
// result. Diagnostics gathered before it are dropped.
func (c *Compiler) fail(err error) *Result {
	cause := tracerr.Unwrap(err)
	c.logf("fatal: %v", cause)

	d := diag.Diagnostic{Severity: diag.Error, Category: diag.Internal, Message: cause.Error()}
	switch e := cause.(type) {
	case errors.LexError:
		d.Category = diag.Syntax
		d.Location = e.Pos()
	case errors.ParseError:
		d.Category = diag.Syntax
		d.Location = e.Pos()
		if eof, ok := e.(errors.UnexpectedEOF); ok && len(eof.Expected) > 0 {
			d.Suggestion = "add the missing " + strings.Join(eof.Expected, " or ")
		}
	}

	c.reporter.Reset()
	c.reporter.Report(d)
	return &Result{Errors: append([]diag.Diagnostic(nil), c.reporter.Errors...)}
}
