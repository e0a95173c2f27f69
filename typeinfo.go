package main

import (
	"encoding/json"

	"github.com/pontaoski/czechscript/ast"
)

// typeInfo describes what a file exports, for editors and bundlers that do
// not want to parse czechscript themselves.
type typeInfo struct {
	Functions map[string]string   `json:"functions"`
	Classes   map[string][]string `json:"classes"`
	Variables map[string]string   `json:"variables"`
	Default   string              `json:"default,omitempty"`
}

func collectTypeInfo(prog *ast.Program) typeInfo {
	t := typeInfo{
		Functions: map[string]string{},
		Classes:   map[string][]string{},
		Variables: map[string]string{},
	}

	for _, stmt := range prog.Body {
		switch s := stmt.(type) {
		case *ast.ExportNamedDeclaration:
			t.add(s.Declaration)
		case *ast.ExportDefaultDeclaration:
			t.Default = t.add(s.Declaration)
		}
	}

	return t
}

// add records decl and returns the name it exports, if it has one.
func (t *typeInfo) add(decl ast.Statement) string {
	switch d := decl.(type) {
	case *ast.FunctionDeclaration:
		t.Functions[d.ID.Name] = d.String()
		return d.ID.Name
	case *ast.ClassDeclaration:
		methods := []string{}
		for _, m := range d.Body {
			if m.Kind == ast.Method {
				methods = append(methods, m.Key.Name)
			}
		}
		t.Classes[d.ID.Name] = methods
		return d.ID.Name
	case *ast.VariableDeclaration:
		for _, v := range d.Declarations {
			t.Variables[v.ID.Name] = v.TypeAnnotation.String()
		}
		if len(d.Declarations) == 1 {
			return d.Declarations[0].ID.Name
		}
	}
	return ""
}

func (t typeInfo) JSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}
