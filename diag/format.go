package diag

import (
	"fmt"
	"strings"
)

const contextLines = 3

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiGreen  = "\x1b[32m"
)

type painter bool

func (p painter) paint(code, s string) string {
	if !p {
		return s
	}
	return code + s + ansiReset
}

// Format renders d together with the surrounding lines of source, marking
// the offending column with a caret. Escape codes are only emitted when
// color is set.
//
//	error[redeclaration]: 'x' is already declared in this scope
//	  --> main.cs:2:10
//	   |
//	 1 | proměnná x = 1
//	 2 | proměnná x = 2
//	   |          ^
//	   = help: use a different name
func Format(d Diagnostic, source string, color bool) string {
	p := painter(color)
	var b strings.Builder

	sev := p.paint(ansiRed+ansiBold, d.Severity.String())
	if d.Severity == Warning {
		sev = p.paint(ansiYellow+ansiBold, d.Severity.String())
	}
	if d.Category != "" {
		sev += p.paint(ansiBold, "["+string(d.Category)+"]")
	}
	fmt.Fprintf(&b, "%s%s\n", sev, p.paint(ansiBold, ": "+d.Message))

	if !d.Location.IsValid() {
		if d.Suggestion != "" {
			fmt.Fprintf(&b, "  = %s %s\n", p.paint(ansiGreen, "help:"), d.Suggestion)
		}
		return b.String()
	}

	lines := strings.Split(source, "\n")
	line := d.Location.Line
	first := line - contextLines
	if first < 1 {
		first = 1
	}
	last := line + contextLines
	if last > len(lines) {
		last = len(lines)
	}

	width := len(fmt.Sprint(last))
	gutter := strings.Repeat(" ", width)
	bar := p.paint(ansiBlue, "|")

	fmt.Fprintf(&b, "%s%s %s\n", gutter, p.paint(ansiBlue, "-->"), d.Location)
	fmt.Fprintf(&b, "%s %s\n", gutter, bar)
	for n := first; n <= last; n++ {
		text := strings.TrimRight(lines[n-1], "\r")
		fmt.Fprintf(&b, "%s %s %s\n", p.paint(ansiBlue, fmt.Sprintf("%*d", width, n)), bar, text)
		if n == line {
			caret := p.paint(ansiRed+ansiBold, "^")
			if d.Severity == Warning {
				caret = p.paint(ansiYellow+ansiBold, "^")
			}
			fmt.Fprintf(&b, "%s %s %s%s\n", gutter, bar, caretPadding(text, d.Location.Column), caret)
		}
	}

	if d.Suggestion != "" {
		fmt.Fprintf(&b, "%s %s %s\n", gutter, p.paint(ansiGreen, "= help:"), d.Suggestion)
	}

	return b.String()
}

// caretPadding returns the whitespace that puts a caret under column, which
// counts UTF-16 code units from 1. Tabs are kept so the caret lines up with
// the echoed source.
func caretPadding(text string, column int) string {
	var b strings.Builder
	units := 1
	for _, r := range text {
		if units >= column {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
	}
	return b.String()
}
