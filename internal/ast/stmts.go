package ast

import "strings"

// LetDecl / ConstDecl bind Name to the evaluated Value expression in the
// current top scope frame.
type LetDecl struct {
	NodeBase
	Name  string
	Value Expression
}

func (*LetDecl) statementNode() {}
func (l *LetDecl) String() string { return "let " + l.Name + " = " + l.Value.String() }

type ConstDecl struct {
	NodeBase
	Name  string
	Value Expression
}

func (*ConstDecl) statementNode() {}
func (c *ConstDecl) String() string { return "const " + c.Name + " = " + c.Value.String() }

// AssignTarget is the left-hand side of an Assign statement: a bare
// identifier, a member access, or an index access.
type AssignTarget struct {
	Identifier *Identifier
	Member     *MemberAccess
	Index      *IndexAccess
}

type Assign struct {
	NodeBase
	Target AssignTarget
	Value  Expression
}

func (*Assign) statementNode() {}
func (a *Assign) String() string { return "<assign> = " + a.Value.String() }

// If is `if cond: ... else: ...`; Else may be nil.
type If struct {
	NodeBase
	Cond Expression
	Then []Statement
	Else []Statement
}

func (*If) statementNode() {}
func (i *If) String() string { return "if " + i.Cond.String() + ": ..." }

// WhenCase is one `CASE:` arm of a When statement. Values holds one or more
// literal patterns (an OR-pattern); Otherwise marks the default arm.
type WhenCase struct {
	Values    []Expression
	Otherwise bool
	Body      []Statement
}

// When evaluates Subject once and executes the first matching case.
type When struct {
	NodeBase
	Subject Expression
	Cases   []WhenCase
}

func (*When) statementNode() {}
func (w *When) String() string { return "when " + w.Subject.String() + ": ..." }

// For is `for v1, v2, ... in Iterable: body`.
type For struct {
	NodeBase
	Vars     []string
	Iterable Expression
	Body     []Statement
}

func (*For) statementNode() {}
func (f *For) String() string {
	return "for " + strings.Join(f.Vars, ", ") + " in " + f.Iterable.String() + ": ..."
}

// While is `while cond: body`.
type While struct {
	NodeBase
	Cond Expression
	Body []Statement
}

func (*While) statementNode() {}
func (w *While) String() string { return "while " + w.Cond.String() + ": ..." }

type Break struct{ NodeBase }

func (*Break) statementNode()    {}
func (*Break) String() string    { return "break" }

type Continue struct{ NodeBase }

func (*Continue) statementNode() {}
func (*Continue) String() string { return "continue" }

// Step is a named block used for logging/diagnostics only; it shares the
// enclosing scope and does not affect control flow.
type Step struct {
	NodeBase
	Label string
	Body  []Statement
}

func (*Step) statementNode() {}
func (s *Step) String() string { return "step " + s.Label + ": ..." }

// FunctionDef binds Name in the enclosing scope to a Function value whose
// closure is captured at definition time.
type FunctionDef struct {
	NodeBase
	Name   string
	Params []string
	Body   []Statement
}

func (*FunctionDef) statementNode() {}
func (f *FunctionDef) String() string {
	return "function " + f.Name + "(" + strings.Join(f.Params, ", ") + "): ..."
}

// Return is valid only inside a function body.
type Return struct {
	NodeBase
	Value Expression // nil for bare `return`
}

func (*Return) statementNode() {}
func (r *Return) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}

// LibraryDecl marks a file as a library; Name must equal the file stem.
type LibraryDecl struct {
	NodeBase
	Name string
}

func (*LibraryDecl) statementNode() {}
func (l *LibraryDecl) String() string { return "library " + l.Name }

// ExportDecl wraps exactly one const or function declaration, registering
// it on the enclosing library's exports table.
type ExportDecl struct {
	NodeBase
	Inner Statement // *ConstDecl or *FunctionDef
}

func (*ExportDecl) statementNode() {}
func (e *ExportDecl) String() string { return "export " + e.Inner.String() }

// ImportAll is `import Alias from "path"`.
type ImportAll struct {
	NodeBase
	Alias string
	Path  string
}

func (*ImportAll) statementNode() {}
func (i *ImportAll) String() string { return "import " + i.Alias + ` from "` + i.Path + `"` }

// ImportMembers is `from "path" import N1, N2, ...`.
type ImportMembers struct {
	NodeBase
	Path  string
	Names []string
}

func (*ImportMembers) statementNode() {}
func (i *ImportMembers) String() string {
	return `from "` + i.Path + `" import ` + strings.Join(i.Names, ", ")
}

// Exit terminates the run. Code and Message are optional expressions.
type Exit struct {
	NodeBase
	Code    Expression
	Message Expression
}

func (*Exit) statementNode() {}
func (e *Exit) String() string { return "exit" }

// Log is a diagnostic statement: `log expr`.
type Log struct {
	NodeBase
	Value Expression
}

func (*Log) statementNode() {}
func (l *Log) String() string { return "log " + l.Value.String() }

// ExprStatement wraps a bare expression evaluated for its side effects.
type ExprStatement struct {
	NodeBase
	Expr Expression
}

func (*ExprStatement) statementNode() {}
func (e *ExprStatement) String() string { return e.Expr.String() }

// ActionKind enumerates the domain actions delegated to ActionHost.
type ActionKind int

const (
	ActionNavigate ActionKind = iota
	ActionClick
	ActionType
	ActionWait
	ActionAssert
	ActionScreenshot
	ActionScroll
	ActionExtract
	ActionCheck
	ActionHover
	ActionUpload
	ActionSelect
)

func (k ActionKind) String() string {
	names := [...]string{"navigate", "click", "type", "wait", "assert", "screenshot",
		"scroll", "extract", "check", "hover", "upload", "select"}
	if int(k) < len(names) {
		return names[k]
	}
	return "action"
}

// Action is a single domain-action statement. Args are positional
// expressions; Kwargs are named ones (e.g. `type "#email" text="a@b.com"`).
// Selector/value arguments are full expressions so f-strings and computed
// values are permitted.
type Action struct {
	NodeBase
	Kind   ActionKind
	Args   []Expression
	Kwargs map[string]Expression
	Into   string // for `extract ... into name`, empty otherwise
}

func (*Action) statementNode() {}
func (a *Action) String() string { return a.Kind.String() + " ..." }
