package analyzer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pontaoski/czechscript/diag"
	"github.com/pontaoski/czechscript/lexer"
	"github.com/pontaoski/czechscript/parser"
)

func analyze(t *testing.T, src string) *diag.Reporter {
	t.Helper()
	tokens, err := lexer.Tokenize(src, "test.cs")
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	var r diag.Reporter
	Analyze(prog, &r)
	return &r
}

func categories(ds []diag.Diagnostic) []diag.Category {
	var cats []diag.Category
	for _, d := range ds {
		cats = append(cats, d.Category)
	}
	return cats
}

func TestAnalyze(t *testing.T) {
	for _, test := range []struct {
		name     string
		input    string
		errors   []diag.Category
		warnings []diag.Category
	}{
		{"clean", `proměnná x = 1; x = x + 1; vypis(x)`, nil, nil},
		{"redeclaration", `proměnná x = 1; proměnná x = 2`, []diag.Category{diag.Redeclaration}, nil},
		{"shadowing in block", `proměnná x = 1; { proměnná x = 2 }`, nil, nil},
		{"undefined", `vypis(y)`, nil, []diag.Category{diag.UndefinedVariable}},
		{"const assignment", `konstanta x = 1; x = 2`, []diag.Category{diag.ConstAssignment}, nil},
		{"compound const assignment", `konstanta x = 1; x += 2`, []diag.Category{diag.ConstAssignment}, nil},
		{"const update", `konstanta x = 1; x++`, []diag.Category{diag.ConstAssignment}, nil},
		{"shadowed const", `konstanta x = 1; { proměnná x = 2; x = 3 }`, nil, nil},
		{"own initializer", `proměnná x = x`, nil, []diag.Category{diag.UndefinedVariable}},
		{"hoisting", `f(); funkce f() { vrať 1 }`, nil, nil},
		{"parameters", `funkce f(a1, b1 = a1) { vrať a1 + b1 }`, nil, nil},
		{"parameter scope ends", `funkce f(a1) { } vypis(a1)`, nil, []diag.Category{diag.UndefinedVariable}},
		{"block scope ends", `{ proměnná x = 1 } vypis(x)`, nil, []diag.Category{diag.UndefinedVariable}},
		{"member properties", `proměnná o = {jméno: 1}; vypis(o.jméno, o["x"])`, nil, nil},
		{"computed member", `proměnná o = {}; vypis(o[klíč])`, nil, []diag.Category{diag.UndefinedVariable}},
		{"shorthand property", `vypis({chybí})`, nil, []diag.Category{diag.UndefinedVariable}},
		{"counted loop", `opakuj (3) { vypis(__i) } opakuj (2) { }`, nil, nil},
		{"for each", `pro_každý (p v [1, 2]) { vypis(p) }`, nil, nil},
		{"for each const", `pro_každý (p v [1, 2]) { p = 3 }`, []diag.Category{diag.ConstAssignment}, nil},
		{"catch parameter", `zkus { } chyť (e) { vypis(e) }`, nil, nil},
		{"imports", `importuj { a1, b1 jako c1 } z "m"; vypis(a1, c1)`, nil, nil},
		{"import is constant", `importuj x z "m"; x = 1`, []diag.Category{diag.ConstAssignment}, nil},
		{"class", `třída A { metoda(x) { vrať tento.y + x } } proměnná a1 = nový A()`, nil, nil},
		{"unknown superclass", `třída A rozšiřuje B { }`, nil, []diag.Category{diag.UndefinedVariable}},
		{"arrow", `proměnná f = (x) => x * 2; f(1)`, nil, nil},
		{"builtins", `console.log(Math.PI, JSON, parseInt("1"))`, nil, nil},
		{"exported function hoisted", `f(); exportuj funkce f() { }`, nil, nil},
		{"class redeclared", `proměnná A = 1; třída A { }`, []diag.Category{diag.Redeclaration}, nil},
		{"errors do not stop", `konstanta x = 1; x = 2; x = 3; proměnná x`, []diag.Category{diag.ConstAssignment, diag.ConstAssignment, diag.Redeclaration}, nil},
	} {
		t.Run(test.name, func(t *testing.T) {
			r := analyze(t, test.input)
			if diff := cmp.Diff(test.errors, categories(r.Errors)); diff != "" {
				t.Errorf("errors (-want +got):\n%s\n%v", diff, r.Errors)
			}
			if diff := cmp.Diff(test.warnings, categories(r.Warnings)); diff != "" {
				t.Errorf("warnings (-want +got):\n%s\n%v", diff, r.Warnings)
			}
		})
	}
}

func TestSuggestion(t *testing.T) {
	r := analyze(t, "proměnná počet = 1\nvypis(pocet)")
	if len(r.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(r.Warnings))
	}
	w := r.Warnings[0]
	if w.Suggestion != "did you mean 'počet'?" {
		t.Errorf("suggestion = %q", w.Suggestion)
	}
	if w.Location.Line != 2 || w.Location.Column != 7 {
		t.Errorf("location = %s, want 2:7", w.Location)
	}
}

func TestRedeclarationOfHoistedFunction(t *testing.T) {
	r := analyze(t, "proměnná f = 1\nfunkce f() {}")
	if len(r.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(r.Errors))
	}
	d := r.Errors[0]
	if d.Location.Line != 1 {
		t.Errorf("error on line %d, want 1", d.Location.Line)
	}
	if want := "conflicts with function declared at test.cs:2:8"; d.Suggestion != want {
		t.Errorf("suggestion = %q, want %q", d.Suggestion, want)
	}
}

func TestRedeclarationPointsAtSecond(t *testing.T) {
	r := analyze(t, "proměnná x = 1\nproměnná x = 2")
	if len(r.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(r.Errors))
	}
	if got := r.Errors[0].Location.Line; got != 2 {
		t.Errorf("error on line %d, want 2", got)
	}
	if want := "previous declaration as variable at test.cs:1:10"; r.Errors[0].Suggestion != want {
		t.Errorf("suggestion = %q, want %q", r.Errors[0].Suggestion, want)
	}
}
