package ast

import (
	"fmt"
	"strings"

	"github.com/alecthomas/repr"
)

// TypeName returns the node's variant name, e.g. "BinaryExpression".
func TypeName(n Node) string {
	if n == nil {
		return ""
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}

// Dump renders the whole tree as Go-like literal syntax.
func Dump(n Node) string {
	return repr.String(n, repr.Indent("  "), repr.OmitEmpty(true))
}

func (t *TypeAnnotation) String() string {
	if t == nil {
		return ""
	}
	return t.Name
}

func (f *FunctionDeclaration) String() string {
	var args []string
	for _, p := range f.Params {
		arg := p.Name.Name
		if p.TypeAnnotation != nil {
			arg += ": " + p.TypeAnnotation.String()
		}
		args = append(args, arg)
	}
	sig := fmt.Sprintf("funkce %s(%s)", f.ID.Name, strings.Join(args, ", "))
	if f.ReturnType != nil {
		sig += ": " + f.ReturnType.String()
	}
	return sig
}
