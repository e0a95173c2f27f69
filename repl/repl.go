// Package repl provides an interactive loop that compiles czechscript as it
// is typed and prints the JavaScript it turns into.
//
// A line that leaves a construct open (an unclosed block, a dangling
// operator, an unterminated block comment) is not compiled; the REPL keeps
// reading with a continuation prompt. An empty line compiles whatever has
// been read so far, errors included.
//
// Each chunk is compiled on its own, so names declared in an earlier chunk
// are unknown to the analyzer in later ones.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pontaoski/czechscript/compiler"
	"github.com/pontaoski/czechscript/diag"
	"github.com/pontaoski/czechscript/errors"
	"github.com/pontaoski/czechscript/lexer"
	"github.com/pontaoski/czechscript/parser"
	"github.com/ztrue/tracerr"
)

const (
	prompt       = ">>> "
	continuation = "... "
	filename     = "<stdin>"
)

// REPL runs until end of input (Control-D). Control-C drops the chunk being
// typed.
func REPL(opts compiler.Options, color bool) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       prompt,
		AutoComplete: newCompleter(),
	})
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()

	s := NewSession(opts, color)
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			s.Reset()
			rl.SetPrompt(prompt)
			fmt.Println(err)
			continue
		}
		if err != nil {
			break
		}

		if s.Feed(line, rl.Stdout()) {
			rl.SetPrompt(continuation)
		} else {
			rl.SetPrompt(prompt)
		}
	}
	fmt.Println()
}

// Session collects input lines into chunks and compiles each complete one.
type Session struct {
	compiler *compiler.Compiler
	color    bool
	pending  strings.Builder
}

func NewSession(opts compiler.Options, color bool) *Session {
	opts.Filename = filename
	opts.SourceMap = false
	return &Session{compiler: compiler.New(opts), color: color}
}

// Reset discards a partially typed chunk.
func (s *Session) Reset() {
	s.pending.Reset()
}

// Feed adds one line of input. When the chunk is complete, or line is blank,
// the chunk is compiled and the code and diagnostics are written to w.
// Feed reports whether it is waiting for more lines.
func (s *Session) Feed(line string, w io.Writer) (more bool) {
	s.pending.WriteString(line)
	s.pending.WriteString("\n")
	src := s.pending.String()

	if strings.TrimSpace(line) != "" && Incomplete(src) {
		return true
	}
	s.pending.Reset()
	if strings.TrimSpace(src) == "" {
		return false
	}

	res := s.compiler.Compile(src)
	fmt.Fprint(w, res.Code)
	for _, d := range res.Errors {
		fmt.Fprint(w, diag.Format(d, src, s.color))
	}
	for _, d := range res.Warnings {
		fmt.Fprint(w, diag.Format(d, src, s.color))
	}
	return false
}

// Incomplete reports whether src stops in the middle of a construct, so
// that reading more input could complete it.
func Incomplete(src string) bool {
	tokens, err := lexer.Tokenize(src, filename)
	if err != nil {
		_, ok := tracerr.Unwrap(err).(errors.UnterminatedComment)
		return ok
	}
	_, err = parser.Parse(tokens)
	if err != nil {
		_, ok := tracerr.Unwrap(err).(errors.UnexpectedEOF)
		return ok
	}
	return false
}

// PrintError prints err to stderr.
func PrintError(err error) {
	fmt.Fprintln(os.Stderr, err)
}
