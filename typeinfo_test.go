package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pontaoski/czechscript/lexer"
	"github.com/pontaoski/czechscript/parser"
)

func TestCollectTypeInfo(t *testing.T) {
	src := `
exportuj funkce sečti(x: číslo, y: číslo): číslo { vrať x + y }
exportuj třída Pes { konstruktor() {} štěkej() {} statické vytvoř() {} }
exportuj konstanta verze: řetězec = "1.0", build = 3
exportuj výchozí funkce hlavni() {}
funkce skryta() {}
`
	tokens, err := lexer.Tokenize(src, "lib.cs")
	if err != nil {
		t.Fatal(err)
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}

	want := typeInfo{
		Functions: map[string]string{
			"sečti":  "funkce sečti(x: číslo, y: číslo): číslo",
			"hlavni": "funkce hlavni()",
		},
		Classes: map[string][]string{
			"Pes": {"štěkej", "vytvoř"},
		},
		Variables: map[string]string{
			"verze": "řetězec",
			"build": "",
		},
		Default: "hlavni",
	}
	if diff := cmp.Diff(want, collectTypeInfo(prog)); diff != "" {
		t.Errorf("typeinfo (-want +got):\n%s", diff)
	}
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		root, file, output string
		want               string
	}{
		{dir, filepath.Join(dir, "a", "b.cs"), "", filepath.Join(dir, "a", "b.js")},
		{dir, filepath.Join(dir, "a", "b.cs"), "dist", filepath.Join("dist", "a", "b.js")},
		{filepath.Join(dir, "one.cs"), filepath.Join(dir, "one.cs"), "out.js", "out.js"},
		{"rel", filepath.Join(cwd, "rel", "x.cs"), "dist", filepath.Join("dist", "x.js")},
	} {
		if got := outputPath(test.root, test.file, test.output); got != test.want {
			t.Errorf("outputPath(%q, %q, %q) = %q, want %q", test.root, test.file, test.output, got, test.want)
		}
	}
}
