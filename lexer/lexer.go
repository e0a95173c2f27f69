package lexer

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/pontaoski/czechscript/errors"
	"github.com/pontaoski/czechscript/types"
	"github.com/ztrue/tracerr"
	"golang.org/x/text/unicode/norm"
)

var keywords = map[string]bool{
	"proměnná": true, "konstanta": true, "funkce": true, "vrať": true,
	"když": true, "pak": true, "jinak": true, "dokud": true, "opakuj": true,
	"pro_každý": true, "v": true, "z": true, "přeruš": true, "pokračuj": true,
	"třída": true, "konstruktor": true, "tento": true, "super": true,
	"nový": true, "rozšiřuje": true, "importuj": true, "exportuj": true,
	"jako": true, "výchozí": true, "async": true, "await": true, "zkus": true,
	"chyť": true, "nakonec": true, "hoď": true, "typ": true, "rozhraní": true,
	"enum": true, "veřejné": true, "soukromé": true, "chráněné": true,
	"statické": true, "abstraktní": true, "konečné": true, "get": true,
	"set": true, "a": true, "nebo": true, "ne": true, "rovno": true,
	"nerovno": true, "větší": true, "menší": true, "větší_rovno": true,
	"menší_rovno": true, "instanceof": true, "typeof": true, "delete": true,
	"yield": true, "switch": true, "case": true, "default": true, "do": true,
	"with": true,
}

var typeNames = map[string]bool{
	"číslo": true, "řetězec": true, "boolean": true, "pole": true,
	"objekt": true, "funkce": true, "prázdné": true, "jakýkoliv": true,
	"nikdy": true, "neznámý": true,
}

var booleans = map[string]bool{
	"pravda":   true,
	"nepravda": false,
}

var nulls = map[string]bool{
	"null":         true,
	"nedefinováno": true,
}

var threeCharOps = map[string]bool{
	"===": true, "!==": true, "...": true, "**=": true, "&&=": true, "||=": true, "??=": true,
}

var twoCharOps = map[string]bool{
	"==": true, "!=": true, "<=": true, ">=": true, "&&": true, "||": true,
	"++": true, "--": true, "+=": true, "-=": true, "*=": true, "/=": true,
	"%=": true, "**": true, "=>": true, "??": true, "?.": true,
}

const operatorChars = "+-*/%=<>!&|^~?"

const punctuationChars = "(){}[];,.:"

// Keywords returns the reserved words and type names in sorted order.
func Keywords() []string {
	words := make([]string, 0, len(keywords)+len(typeNames))
	for word := range keywords {
		words = append(words, word)
	}
	for word := range typeNames {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

type Lexer struct {
	pos    types.Position
	src    []rune
	offset int
}

// NewLexer prepares a single pass over source. The text is normalised to
// NFC first so that a letter written as base + combining mark lexes as the
// same identifier as its precomposed form.
func NewLexer(source string, filename string) *Lexer {
	return &Lexer{
		pos: types.Position{Line: 1, Column: 1, Filename: filename},
		src: []rune(norm.NFC.String(source)),
	}
}

func (l *Lexer) current() rune {
	if l.offset >= len(l.src) {
		return 0
	}
	return l.src[l.offset]
}

func (l *Lexer) peekN(n int) rune {
	if l.offset+n >= len(l.src) {
		return 0
	}
	return l.src[l.offset+n]
}

func (l *Lexer) atEnd() bool {
	return l.offset >= len(l.src)
}

func (l *Lexer) newline() {
	l.pos.Line++
	l.pos.Column = 1
}

// advance consumes one rune. Columns count UTF-16 code units, the unit used
// by source maps and editors.
func (l *Lexer) advance() rune {
	r := l.current()
	l.offset++
	if r == '\n' {
		l.newline()
	} else if r >= 0x10000 {
		l.pos.Column += 2
	} else {
		l.pos.Column++
	}
	return r
}

func (l *Lexer) kinded(t types.TokenKind, value string, from types.Position) types.Token {
	return types.Token{
		Kind:     t,
		Value:    value,
		Location: types.Span{From: from, To: l.pos},
	}
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		r := l.current()
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == '/' && l.peekN(1) == '/':
			for !l.atEnd() && l.current() != '\n' {
				l.advance()
			}
		case r == '/' && l.peekN(1) == '*':
			from := l.pos
			l.advance()
			l.advance()
			for {
				if l.atEnd() {
					panic(errors.UnterminatedComment{Location: from})
				}
				if l.current() == '*' && l.peekN(1) == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) lexIdent() types.Token {
	from := l.pos
	start := l.offset
	for !l.atEnd() && otherChar(l.current()) {
		l.advance()
	}
	lit := string(l.src[start:l.offset])

	switch {
	case keywords[lit]:
		return l.kinded(types.Keyword, lit, from)
	case typeNames[lit]:
		return l.kinded(types.Type, lit, from)
	}
	if b, ok := booleans[lit]; ok {
		tok := l.kinded(types.Boolean, lit, from)
		tok.Bool = b
		return tok
	}
	if nulls[lit] {
		return l.kinded(types.Null, lit, from)
	}
	return l.kinded(types.Identifier, lit, from)
}

func (l *Lexer) lexString() types.Token {
	from := l.pos
	quote := l.advance()

	var lit strings.Builder
	for {
		if l.atEnd() {
			panic(errors.UnterminatedString{Quote: quote, Location: from})
		}
		r := l.advance()
		if r == quote {
			break
		}
		if r != '\\' {
			lit.WriteRune(r)
			continue
		}
		if l.atEnd() {
			panic(errors.UnterminatedString{Quote: quote, Location: from})
		}
		switch esc := l.advance(); esc {
		case 'n':
			lit.WriteRune('\n')
		case 't':
			lit.WriteRune('\t')
		case 'r':
			lit.WriteRune('\r')
		default:
			// covers \\ and the escaped delimiter
			lit.WriteRune(esc)
		}
	}

	return l.kinded(types.String, lit.String(), from)
}

func (l *Lexer) lexNumber() types.Token {
	from := l.pos
	start := l.offset
	for isDigit(l.current()) {
		l.advance()
	}
	if l.current() == '.' && isDigit(l.peekN(1)) {
		l.advance()
		for isDigit(l.current()) {
			l.advance()
		}
	}
	if c := l.current(); c == 'e' || c == 'E' {
		n := 1
		if s := l.peekN(1); s == '+' || s == '-' {
			n = 2
		}
		if isDigit(l.peekN(n)) {
			for i := 0; i < n; i++ {
				l.advance()
			}
			for isDigit(l.current()) {
				l.advance()
			}
		}
	}

	lit := string(l.src[start:l.offset])
	parsed, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// only out-of-range literals get here; ParseFloat still returns ±Inf
		if numErr, ok := err.(*strconv.NumError); !ok || numErr.Err != strconv.ErrRange {
			panic(err)
		}
	}
	tok := l.kinded(types.Number, lit, from)
	tok.Num = parsed
	return tok
}

// lexOperator takes the longest operator lexeme starting here: three
// characters, then two, then one.
func (l *Lexer) lexOperator() types.Token {
	from := l.pos
	if l.offset+3 <= len(l.src) {
		if op := string(l.src[l.offset : l.offset+3]); threeCharOps[op] {
			l.offset += 3
			l.pos.Column += 3
			return l.kinded(types.Operator, op, from)
		}
	}
	if l.offset+2 <= len(l.src) {
		if op := string(l.src[l.offset : l.offset+2]); twoCharOps[op] {
			// "?." followed by a digit is a conditional and a number, as in a?.5:b
			if op != "?." || !isDigit(l.peekN(2)) {
				l.offset += 2
				l.pos.Column += 2
				return l.kinded(types.Operator, op, from)
			}
		}
	}
	r := l.advance()
	return l.kinded(types.Operator, string(r), from)
}

// Lex returns the next token, or an EOF token once the input is exhausted.
func (l *Lexer) Lex() types.Token {
	l.skipWhitespaceAndComments()
	if l.atEnd() {
		return l.kinded(types.EOF, "", l.pos)
	}

	r := l.current()
	switch {
	case r == '"' || r == '\'' || r == '`':
		return l.lexString()
	case isDigit(r):
		return l.lexNumber()
	case firstChar(r):
		return l.lexIdent()
	case r == '.' && l.peekN(1) == '.' && l.peekN(2) == '.':
		return l.lexOperator()
	case strings.ContainsRune(operatorChars, r):
		return l.lexOperator()
	case strings.ContainsRune(punctuationChars, r):
		from := l.pos
		l.advance()
		return l.kinded(types.Punctuation, string(r), from)
	}

	panic(errors.UnknownCharacter{Char: r, Location: l.pos})
}

func (l *Lexer) lexToEOF() (ret []types.Token) {
	t := l.Lex()
	for t.Kind != types.EOF {
		ret = append(ret, t)
		t = l.Lex()
	}
	return append(ret, t)
}

// Tokenize splits source into tokens terminated by a single EOF token.
func Tokenize(source string, filename string) (tokens []types.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				err = tracerr.Wrap(rerr)
				tokens = nil
			} else {
				panic(r)
			}
		}
	}()

	return NewLexer(source, filename).lexToEOF(), nil
}
