package types

import (
	"fmt"
	"strconv"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

// IsValid reports whether p refers to a real source location.
// Nodes synthesised by the parser carry the zero Position.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p comes earlier in the source than q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota

	Keyword
	Identifier
	Type
	Number
	String
	Boolean
	Null
	Operator
	Punctuation
)

func (t TokenKind) String() string {
	data := map[TokenKind]string{
		EOF:         "EOF",
		Keyword:     "KEYWORD",
		Identifier:  "IDENTIFIER",
		Type:        "TYPE",
		Number:      "NUMBER",
		String:      "STRING",
		Boolean:     "BOOLEAN",
		Null:        "NULL",
		Operator:    "OPERATOR",
		Punctuation: "PUNCTUATION",
	}
	return data[t]
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

// Token is immutable once the lexer has produced it.
//
// Value holds the lexeme for words, operators and punctuation, and the
// decoded contents for strings. Num is set for Number tokens and Bool for
// Boolean tokens.
type Token struct {
	Kind     TokenKind
	Value    string
	Num      float64
	Bool     bool
	Location Span
}

func (t Token) Pos() Position {
	return t.Location.From
}

// Is reports whether t has kind k and, when values are given, one of them.
func (t Token) Is(k TokenKind, values ...string) bool {
	if t.Kind != k {
		return false
	}
	if len(values) == 0 {
		return true
	}
	for _, v := range values {
		if t.Value == v {
			return true
		}
	}
	return false
}

// IsWord reports whether t was lexed from a word, whatever its class.
func (t Token) IsWord() bool {
	switch t.Kind {
	case Keyword, Identifier, Type, Boolean, Null:
		return true
	}
	return false
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case String:
		return strconv.Quote(t.Value)
	case Number:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	}
	return t.Value
}
