package analyzer

import "sort"

var builtins = addBuiltins()

func addBuiltins() (ret map[string]bool) {
	ret = make(map[string]bool)

	groups := []func() []string{
		addHostGlobals,
		addLanguageGlobals,
		addRuntime,
	}
	for _, group := range groups {
		for _, name := range group() {
			ret[name] = true
		}
	}

	return
}

// addHostGlobals are provided by a browser or Node host.
func addHostGlobals() []string {
	return []string{
		"console", "document", "window", "globalThis", "localStorage",
		"fetch", "setTimeout", "setInterval", "clearTimeout", "clearInterval",
		"require", "module", "exports", "process",
	}
}

func addLanguageGlobals() []string {
	return []string{
		"Math", "Date", "Array", "Object", "String", "Number", "Boolean",
		"JSON", "Promise", "Set", "Map", "RegExp", "Symbol", "Error",
		"TypeError", "RangeError", "parseInt", "parseFloat", "isNaN",
		"isFinite", "undefined", "NaN", "Infinity",
	}
}

// addRuntime lists the helpers of the CzechScript runtime library.
func addRuntime() []string {
	return []string{
		"vypis", "vypisChybu", "vypisVarování", "prvek", "prvky", "vytvoř",
		"odstraň", "přidejTřídu", "odeberTřídu", "přepniTřídu", "nastavAtribut",
		"nastavStyl", "nastavInterval", "načtiData", "odesliData", "ulož",
		"smaž", "mapuj", "filtruj", "najdi", "obsahuje", "odeber", "položky",
		"hodnoty", "mocnina", "odmocnina", "zaokrouhli", "zaokrouhliNahoru",
		"typHodnoty",
	}
}

// IsBuiltin reports whether name is always available without a declaration.
func IsBuiltin(name string) bool {
	return builtins[name]
}

// Builtins returns the allow-list in sorted order.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
