// Package semantic implements the parser's static-check machinery: a
// scoped stack of name→Symbol maps used to validate use-before-declaration,
// const reassignment, duplicate declarations, and the fixed set of
// always-defined system names.
package semantic

// SymbolKind classifies how a name was bound.
type SymbolKind int

const (
	KindConst SymbolKind = iota
	KindVariable
	KindFunction
	KindLibrary
	KindImport
	KindParameter
)

// Symbol is the parse-time metadata record for one name binding.
type Symbol struct {
	Name        string
	Kind        SymbolKind
	DefinedLine int
}

type scope struct {
	names map[string]*Symbol
	order []string
}

func newScope() *scope {
	return &scope{names: make(map[string]*Symbol)}
}

// Table is a stack of scope frames, shared by the parser across one file's
// static checks. Each Table carries its own always-defined builtin set, so
// host-registered names on one parse never leak into another.
type Table struct {
	frames   []*scope
	builtins map[string]bool
}

// defaultBuiltins is the fixed base set of names every parser considers
// always defined: system values, namespace roots, and built-in free
// functions. It is copied per Table and never mutated.
var defaultBuiltins = map[string]bool{
	"page": true, "env": true, "response": true,
	"Math": true, "Date": true, "JSON": true, "random": true,
	"http": true, "util": true, "Resource": true,
	"len": true, "str": true, "int": true, "float": true, "bool": true,
	"range": true, "enumerate": true, "zip": true, "input": true,
}

func New() *Table {
	builtins := make(map[string]bool, len(defaultBuiltins))
	for name := range defaultBuiltins {
		builtins[name] = true
	}
	return &Table{frames: []*scope{newScope()}, builtins: builtins}
}

// RegisterHostName adds a host-injected free-function or namespace name to
// this table's always-defined set. The registration is per-Table: other
// parsers, including concurrent ones, are unaffected.
func (t *Table) RegisterHostName(name string) { t.builtins[name] = true }

// IsBuiltin reports whether name is one of the always-defined system
// names, which let/const declarations may not shadow.
func (t *Table) IsBuiltin(name string) bool { return t.builtins[name] }

func (t *Table) Push() { t.frames = append(t.frames, newScope()) }

func (t *Table) Pop() {
	if len(t.frames) > 1 {
		t.frames = t.frames[:len(t.frames)-1]
	}
}

// Define binds name in the current top frame. It returns false if name is
// already defined in that frame.
func (t *Table) Define(name string, kind SymbolKind, line int) bool {
	top := t.frames[len(t.frames)-1]
	if _, exists := top.names[name]; exists {
		return false
	}
	top.names[name] = &Symbol{Name: name, Kind: kind, DefinedLine: line}
	top.order = append(top.order, name)
	return true
}

// Lookup walks the frame stack top-down, falling back to the builtin set.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for i := len(t.frames) - 1; i >= 0; i-- {
		if s, ok := t.frames[i].names[name]; ok {
			return s, true
		}
	}
	if t.builtins[name] {
		return &Symbol{Name: name, Kind: KindImport}, true
	}
	return nil, false
}

// Exists reports whether name resolves at all (used, use-before-decl).
func (t *Table) Exists(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// IsConst reports whether name resolves to a Const symbol anywhere on the
// stack.
func (t *Table) IsConst(name string) bool {
	sym, ok := t.Lookup(name)
	return ok && sym.Kind == KindConst
}
