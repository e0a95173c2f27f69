// Package errors holds the fatal failures of the compilation pipeline.
//
// Lexer and parser failures abort the whole compile; the facade turns each
// of them into exactly one error diagnostic.
package errors

import (
	"fmt"
	"strings"

	"github.com/pontaoski/czechscript/types"
)

// LexError is implemented by every tokenizer failure.
type LexError interface {
	error
	LexError()
	Pos() types.Position
}

// ParseError is implemented by every parser failure.
type ParseError interface {
	error
	ParseError()
	Pos() types.Position
}

type UnterminatedString struct {
	Quote    rune
	Location types.Position
}

func (e UnterminatedString) Error() string {
	return fmt.Sprintf("unterminated string: missing closing %c. %d:%d", e.Quote, e.Location.Line, e.Location.Column)
}

func (e UnterminatedString) LexError()           {}
func (e UnterminatedString) Pos() types.Position { return e.Location }

type UnterminatedComment struct {
	Location types.Position
}

func (e UnterminatedComment) Error() string {
	return fmt.Sprintf("unterminated block comment. %d:%d", e.Location.Line, e.Location.Column)
}

func (e UnterminatedComment) LexError()           {}
func (e UnterminatedComment) Pos() types.Position { return e.Location }

type UnknownCharacter struct {
	Char     rune
	Location types.Position
}

func (e UnknownCharacter) Error() string {
	return fmt.Sprintf("unknown character %q. %d:%d", e.Char, e.Location.Line, e.Location.Column)
}

func (e UnknownCharacter) LexError()           {}
func (e UnknownCharacter) Pos() types.Position { return e.Location }

type ExpectedKindGotKind struct {
	Expected types.TokenKind
	Value    string
	Got      types.Token
}

func (e ExpectedKindGotKind) Error() string {
	want := e.Expected.String()
	if e.Value != "" {
		want = fmt.Sprintf("'%s'", e.Value)
	}
	return fmt.Sprintf("expected %s, got %s '%s'. %d:%d", want, e.Got.Kind, e.Got, e.Got.Pos().Line, e.Got.Pos().Column)
}

func (e ExpectedKindGotKind) ParseError()         {}
func (e ExpectedKindGotKind) Pos() types.Position { return e.Got.Pos() }

type UnexpectedToken struct {
	Got types.Token
}

func (e UnexpectedToken) Error() string {
	return fmt.Sprintf("unexpected token %s '%s'. %d:%d", e.Got.Kind, e.Got, e.Got.Pos().Line, e.Got.Pos().Column)
}

func (e UnexpectedToken) ParseError()         {}
func (e UnexpectedToken) Pos() types.Position { return e.Got.Pos() }

// UnexpectedEOF is raised when the input ends inside a construct. The REPL
// uses it to decide that more input is needed.
type UnexpectedEOF struct {
	Expected []string
	Location types.Position
}

func (e UnexpectedEOF) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("unexpected end of input. %d:%d", e.Location.Line, e.Location.Column)
	}
	return fmt.Sprintf("unexpected end of input, expected %s. %d:%d", strings.Join(e.Expected, " or "), e.Location.Line, e.Location.Column)
}

func (e UnexpectedEOF) ParseError()         {}
func (e UnexpectedEOF) Pos() types.Position { return e.Location }

// UnknownNode means the parser produced a node the generator has no rule
// for. It is a programming error, never a user error.
type UnknownNode struct {
	Type string
}

func (e UnknownNode) Error() string {
	return fmt.Sprintf("unknown node type %s", e.Type)
}
