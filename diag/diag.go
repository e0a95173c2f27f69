// Package diag holds the findings a compile reports back to its caller.
//
// Fatal lexer and parser failures become a single Error; the semantic
// analyzer adds any number of Errors and Warnings, neither of which stops
// code generation.
package diag

import (
	"fmt"
	"sort"

	"github.com/pontaoski/czechscript/types"
)

type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

type Category string

const (
	Syntax            Category = "syntax"
	Redeclaration     Category = "redeclaration"
	ConstAssignment   Category = "const-assignment"
	UndefinedVariable Category = "undefined-variable"
	Internal          Category = "internal"
)

type Diagnostic struct {
	Severity   Severity
	Category   Category
	Message    string
	Location   types.Position
	Suggestion string
}

func (d Diagnostic) String() string {
	msg := fmt.Sprintf("%s: %s", d.Severity, d.Message)
	if d.Location.IsValid() {
		msg = d.Location.String() + ": " + msg
	}
	if d.Suggestion != "" {
		msg += " (" + d.Suggestion + ")"
	}
	return msg
}

func Errorf(cat Category, loc types.Position, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Severity: Error, Category: cat, Location: loc, Message: fmt.Sprintf(format, args...)}
}

func Warnf(cat Category, loc types.Position, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Severity: Warning, Category: cat, Location: loc, Message: fmt.Sprintf(format, args...)}
}

// Reporter collects the diagnostics of one compile. It is not safe for
// concurrent use.
type Reporter struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

func (r *Reporter) Report(d Diagnostic) {
	if d.Severity == Warning {
		r.Warnings = append(r.Warnings, d)
	} else {
		r.Errors = append(r.Errors, d)
	}
}


func (r *Reporter) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *Reporter) Reset() {
	r.Errors = nil
	r.Warnings = nil
}

// All returns errors and warnings together, ordered by source position.
func (r *Reporter) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(r.Errors)+len(r.Warnings))
	all = append(all, r.Errors...)
	all = append(all, r.Warnings...)
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i].Location, all[j].Location
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return all
}
