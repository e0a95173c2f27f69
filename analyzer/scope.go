package analyzer

import (
	"sort"

	"github.com/pontaoski/czechscript/ast"
	"github.com/pontaoski/czechscript/types"
)

type Kind int

const (
	Let Kind = iota
	Const
	Function
	Parameter
	Class
	Import
)

func (k Kind) String() string {
	switch k {
	case Const:
		return "constant"
	case Function:
		return "function"
	case Parameter:
		return "parameter"
	case Class:
		return "class"
	case Import:
		return "import"
	}
	return "variable"
}

// readOnly reports whether a binding of this kind may not be assigned.
func (k Kind) readOnly() bool {
	return k == Const || k == Import
}

type binding struct {
	kind        Kind
	initialized bool
	pos         types.Position
}

type scope map[string]*binding

func (a *Analyzer) pushScope() {
	a.scopes = append(a.scopes, make(scope))
}

// popScope never removes the global scope.
func (a *Analyzer) popScope() {
	if len(a.scopes) > 1 {
		a.scopes = a.scopes[:len(a.scopes)-1]
	}
}

func (a *Analyzer) current() scope {
	return a.scopes[len(a.scopes)-1]
}

func (a *Analyzer) lookup(name string) *binding {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if b, ok := a.scopes[i][name]; ok {
			return b
		}
	}
	return nil
}

func (a *Analyzer) bind(id *ast.Identifier, kind Kind, initialized bool) {
	a.current()[id.Name] = &binding{kind: kind, initialized: initialized, pos: id.Pos()}
}

// visible returns every name in scope together with the builtins, sorted
// and without duplicates.
func (a *Analyzer) visible() []string {
	seen := map[string]bool{}
	for _, s := range a.scopes {
		for name := range s {
			seen[name] = true
		}
	}
	for name := range builtins {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
