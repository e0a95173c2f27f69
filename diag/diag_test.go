package diag

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pontaoski/czechscript/types"
)

func pos(line, col int) types.Position {
	return types.Position{Line: line, Column: col, Filename: "main.cs"}
}

func TestReporter(t *testing.T) {
	var r Reporter
	r.Report(Warnf(UndefinedVariable, pos(3, 1), "'%s' is not defined", "y"))
	r.Report(Errorf(Redeclaration, pos(1, 10), "'%s' is already declared in this scope", "x"))
	r.Report(Diagnostic{Severity: Warning, Category: UndefinedVariable, Location: pos(1, 2), Message: "w"})

	if !r.HasErrors() || len(r.Errors) != 1 || len(r.Warnings) != 2 {
		t.Fatalf("got %d errors, %d warnings", len(r.Errors), len(r.Warnings))
	}

	var order []string
	for _, d := range r.All() {
		order = append(order, d.Location.String())
	}
	want := []string{"main.cs:1:2", "main.cs:1:10", "main.cs:3:1"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("All() order (-want +got):\n%s", diff)
	}

	r.Reset()
	if r.HasErrors() || len(r.Warnings) != 0 {
		t.Errorf("Reset left diagnostics behind")
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Severity:   Warning,
		Category:   UndefinedVariable,
		Message:    "'jmeno' is not defined",
		Location:   pos(2, 5),
		Suggestion: "did you mean 'jméno'?",
	}
	want := "main.cs:2:5: warning: 'jmeno' is not defined (did you mean 'jméno'?)"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	d = Diagnostic{Severity: Error, Message: "boom"}
	if got := d.String(); got != "error: boom" {
		t.Errorf("String() without location = %q", got)
	}
}

func TestFormat(t *testing.T) {
	source := "proměnná x = 1\nproměnná x = 2\nvypis(x)"
	d := Diagnostic{
		Severity:   Error,
		Category:   Redeclaration,
		Message:    "'x' is already declared in this scope",
		Location:   pos(2, 10),
		Suggestion: "use a different name",
	}
	want := strings.Join([]string{
		"error[redeclaration]: 'x' is already declared in this scope",
		" --> main.cs:2:10",
		"  |",
		"1 | proměnná x = 1",
		"2 | proměnná x = 2",
		"  |          ^",
		"3 | vypis(x)",
		"  = help: use a different name",
		"",
	}, "\n")
	if got := Format(d, source, false); got != want {
		t.Errorf("Format:\n%s\nwant:\n%s", got, want)
	}

	colored := Format(d, source, true)
	if !strings.Contains(colored, "\x1b[") {
		t.Errorf("colored output has no escape codes")
	}
}

func TestFormatContextWindow(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "x")
	}
	got := Format(Diagnostic{Message: "m", Location: pos(10, 1)}, strings.Join(lines, "\n"), false)
	if !strings.Contains(got, " 7 | x") || !strings.Contains(got, "13 | x") {
		t.Errorf("context window missing lines 7 or 13:\n%s", got)
	}
	if strings.Contains(got, " 6 | x") || strings.Contains(got, "14 | x") {
		t.Errorf("context window too wide:\n%s", got)
	}
}

func TestSimilar(t *testing.T) {
	candidates := []string{"počet", "jméno", "seznam", "Math"}
	for _, test := range []struct {
		name, want string
	}{
		{"pocet", "počet"},
		{"jmeno", "jméno"},
		{"seznamy", "seznam"},
		{"math", "Math"},
		{"úplněJinak", ""},
		{"počet", ""},
	} {
		if got := Similar(test.name, candidates); got != test.want {
			t.Errorf("Similar(%q) = %q, want %q", test.name, got, test.want)
		}
	}
}
