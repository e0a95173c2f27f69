package repl

import (
	"strings"
	"unicode"

	"github.com/pontaoski/czechscript/analyzer"
	"github.com/pontaoski/czechscript/lexer"
)

// completer completes the word before the cursor from the keywords, type
// names and builtins.
type completer struct {
	words []string
}

func newCompleter() *completer {
	seen := map[string]bool{}
	var words []string
	for _, word := range append(lexer.Keywords(), analyzer.Builtins()...) {
		if !seen[word] {
			seen[word] = true
			words = append(words, word)
		}
	}
	return &completer{words: words}
}

// Do implements readline.AutoCompleter.
func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	var out [][]rune
	for _, word := range c.words {
		if word != prefix && strings.HasPrefix(word, prefix) {
			out = append(out, []rune(strings.TrimPrefix(word, prefix)))
		}
	}
	return out, pos - start
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
