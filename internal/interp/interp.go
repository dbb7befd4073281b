package interp

import (
	"fmt"

	"github.com/flowbylang/flowby/internal/action"
	"github.com/flowbylang/flowby/internal/ast"
	"github.com/flowbylang/flowby/internal/errors"
	"github.com/flowbylang/flowby/internal/i18n"
	"github.com/flowbylang/flowby/internal/token"
	"github.com/flowbylang/flowby/internal/value"
)

// DefaultMaxWhileIterations caps `while` loop execution so a condition
// that never turns false fails loudly instead of hanging the run. A zero
// Interpreter.MaxWhileIterations falls back to this default;
// the WithMaxWhileIterations option overrides it.
const DefaultMaxWhileIterations = 10000

// Interpreter walks a Program's statements directly against an Environment
// chain; it never compiles to an intermediate bytecode form. Non-local
// control flow (break/continue/return/exit) is carried as flags checked by
// every statement-sequence loop rather than panic/recover.
type Interpreter struct {
	Env      *Environment
	Action   action.Host
	Out      Logger
	Input    InputReader
	Messages i18n.Resolver

	origin string

	breakFlag    bool
	continueFlag bool
	returnFlag   bool
	returnValue  value.Value
	exitFlag     bool
	exitCode     int64
	exitMessage  string

	libraries   *LibraryRegistry
	hostGlobals []string

	callStack            []errors.Frame
	AllowRecursion       bool
	AllowNestedFunctions bool

	// MaxWhileIterations overrides DefaultMaxWhileIterations when non-zero
	// (set via WithMaxWhileIterations, itself fed by .flowby.yaml).
	MaxWhileIterations int

	RuntimeErr *errors.FlowbyError
}

func (in *Interpreter) maxWhileIterations() int {
	if in.MaxWhileIterations > 0 {
		return in.MaxWhileIterations
	}
	return DefaultMaxWhileIterations
}

// Logger is the narrow interface `log` statements write through, letting
// callers route interpreter output anywhere (stdout, a buffer, a test
// recorder) without the interp package depending on an output framework.
type Logger interface {
	Log(msg string)
}

// Options configures New beyond the mandatory host/logger pair, fed from
// `.flowby.yaml` (internal/config) by CLI commands.
type Options struct {
	LibrarySearchPaths []string
	MaxWhileIterations int
	DotEnvPath         string
	Input              InputReader
	Messages           i18n.Resolver
	Origin             string
	Globals            map[string]value.Value
}

type Option func(*Options)

// WithLibrarySearchPaths adds directories searched for library imports,
// after the importer's own directory and lib/.
func WithLibrarySearchPaths(paths []string) Option {
	return func(o *Options) { o.LibrarySearchPaths = paths }
}

// WithMaxWhileIterations overrides DefaultMaxWhileIterations.
func WithMaxWhileIterations(n int) Option {
	return func(o *Options) { o.MaxWhileIterations = n }
}

// WithDotEnvPath loads a .env file into the `env` namespace.
func WithDotEnvPath(path string) Option {
	return func(o *Options) { o.DotEnvPath = path }
}

// WithInput makes input() interactive by routing it through reader.
// Without one, input() falls back to its default argument or fails.
func WithInput(reader InputReader) Option {
	return func(o *Options) { o.Input = reader }
}

// WithMessages replaces the default English i18n resolver for runtime
// error messages.
func WithMessages(r i18n.Resolver) Option {
	return func(o *Options) { o.Messages = r }
}

// WithOrigin records the path of the file being run, which anchors
// relative import resolution.
func WithOrigin(origin string) Option {
	return func(o *Options) { o.Origin = origin }
}

// WithGlobal injects a host-defined binding into the global scope. The
// name is recorded on the interpreter so library parses it performs treat
// it as always defined; callers parsing their own source register it via
// Parser.RegisterHostName.
func WithGlobal(name string, v value.Value) Option {
	return func(o *Options) {
		if o.Globals == nil {
			o.Globals = make(map[string]value.Value)
		}
		o.Globals[name] = v
	}
}

// New builds an Interpreter with a fresh global environment.
func New(host action.Host, out Logger, opts ...Option) *Interpreter {
	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}

	messages := cfg.Messages
	if messages == nil {
		messages = i18n.Default()
	}
	in := &Interpreter{
		Env:                NewEnvironment(),
		Action:             host,
		Out:                out,
		Input:              cfg.Input,
		Messages:           messages,
		origin:             cfg.Origin,
		libraries:          NewLibraryRegistry(cfg.LibrarySearchPaths),
		MaxWhileIterations: cfg.MaxWhileIterations,
	}
	registerFreeFunctions(in.Env)
	registerNamespaces(in.Env, host, cfg.DotEnvPath, out)
	for name, v := range cfg.Globals {
		in.Env.Define(name, v)
		in.hostGlobals = append(in.hostGlobals, name)
	}
	return in
}

// Run evaluates prog's top-level statements in the interpreter's global
// environment. It returns the first uncaught runtime error, or nil on a
// normal or `exit`-triggered stop.
func (in *Interpreter) Run(prog *ast.Program) error {
	in.execBlock(prog.Statements, in.Env)
	if in.RuntimeErr != nil {
		return in.RuntimeErr
	}
	return nil
}

// ExitCode reports the code passed to `exit`, or 0 if the run never hit one.
func (in *Interpreter) ExitCode() int64 { return in.exitCode }

// ExitMessage reports the message passed to `exit`, if any.
func (in *Interpreter) ExitMessage() string { return in.exitMessage }

// execBlock runs stmts in env, stopping early on any active signal or
// runtime error.
func (in *Interpreter) execBlock(stmts []ast.Statement, env *Environment) {
	for _, s := range stmts {
		in.execStatement(s, env)
		if in.signaled() {
			return
		}
	}
}

func (in *Interpreter) signaled() bool {
	return in.breakFlag || in.continueFlag || in.returnFlag || in.exitFlag || in.RuntimeErr != nil
}

func (in *Interpreter) fail(pos interface{ Line() int }, format string, args ...any) {
	in.failWithKind(errors.RuntimeError, pos, format, args...)
}

func (in *Interpreter) failWithKind(kind errors.Kind, pos interface{ Line() int }, format string, args ...any) {
	if in.RuntimeErr != nil {
		return
	}
	err := errors.New(kind, token.Position{Origin: in.origin, Line: pos.Line()}, format, args...)
	err.Frames = in.frames()
	in.RuntimeErr = err
}

// failKey fails with a message rendered from a canonical i18n key,
// keeping the key on the error so hosts can re-localize.
func (in *Interpreter) failKey(kind errors.Kind, pos interface{ Line() int }, key string, args ...any) {
	if in.RuntimeErr != nil {
		return
	}
	err := errors.NewKeyed(kind, token.Position{Origin: in.origin, Line: pos.Line()}, key, in.Messages.Resolve(key, args...))
	err.Frames = in.frames()
	in.RuntimeErr = err
}

// frames snapshots the active call stack, innermost frame first.
func (in *Interpreter) frames() []errors.Frame {
	if len(in.callStack) == 0 {
		return nil
	}
	out := make([]errors.Frame, 0, len(in.callStack))
	for i := len(in.callStack) - 1; i >= 0; i-- {
		out = append(out, in.callStack[i])
	}
	return out
}

func (in *Interpreter) execStatement(s ast.Statement, env *Environment) {
	switch n := s.(type) {
	case *ast.LetDecl:
		env.Define(n.Name, in.eval(n.Value, env))
	case *ast.ConstDecl:
		env.Define(n.Name, in.eval(n.Value, env))
	case *ast.Assign:
		in.execAssign(n, env)
	case *ast.If:
		in.execIf(n, env)
	case *ast.When:
		in.execWhen(n, env)
	case *ast.For:
		in.execFor(n, env)
	case *ast.While:
		in.execWhile(n, env)
	case *ast.Break:
		in.breakFlag = true
	case *ast.Continue:
		in.continueFlag = true
	case *ast.Step:
		if in.Out != nil {
			in.Out.Log(fmt.Sprintf("step: %s", n.Label))
		}
		in.execBlock(n.Body, env)
	case *ast.FunctionDef:
		fn := &value.Function{Name: n.Name, Params: n.Params, Body: n.Body, Closure: env, Line: n.Line()}
		env.Define(n.Name, value.FuncVal(fn))
	case *ast.Return:
		if n.Value != nil {
			in.returnValue = in.eval(n.Value, env)
		} else {
			in.returnValue = value.None
		}
		in.returnFlag = true
	case *ast.Exit:
		in.execExit(n, env)
	case *ast.Log:
		if in.Out != nil {
			in.Out.Log(value.Str(in.eval(n.Value, env)))
		}
	case *ast.ExprStatement:
		in.eval(n.Expr, env)
	case *ast.LibraryDecl:
		// No runtime effect: library-ness is a parse-time constraint only.
	case *ast.ExportDecl:
		in.execStatement(n.Inner, env)
	case *ast.ImportAll:
		in.execImportAll(n, env)
	case *ast.ImportMembers:
		in.execImportMembers(n, env)
	case *ast.Action:
		in.execAction(n, env)
	default:
		in.fail(s, "unsupported statement %T", s)
	}
}

func (in *Interpreter) execAssign(n *ast.Assign, env *Environment) {
	v := in.eval(n.Value, env)
	switch {
	case n.Target.Identifier != nil:
		if !env.Set(n.Target.Identifier.Name, v) {
			in.fail(n, "assignment to undefined variable %q", n.Target.Identifier.Name)
		}
	case n.Target.Member != nil:
		target := in.eval(n.Target.Member.Target, env)
		if target.Kind() != value.KindDict {
			in.fail(n, "cannot assign member %q of a non-dict value", n.Target.Member.Name)
			return
		}
		target.AsDict().Set(n.Target.Member.Name, v)
	case n.Target.Index != nil:
		in.assignIndex(n.Target.Index, v, env)
	}
}

func (in *Interpreter) assignIndex(idx *ast.IndexAccess, v value.Value, env *Environment) {
	target := in.eval(idx.Target, env)
	key := in.eval(idx.Index, env)
	switch target.Kind() {
	case value.KindList:
		i := int(key.AsInt())
		if !target.AsList().Set(i, v) {
			in.fail(idx, "list index %d out of range", i)
		}
	case value.KindDict:
		target.AsDict().Set(value.Str(key), v)
	default:
		in.fail(idx, "cannot index-assign a %s value", target.Kind())
	}
}

// if/when blocks share the enclosing scope rather than opening a new one,
// matching how execStatement runs step blocks above.
func (in *Interpreter) execIf(n *ast.If, env *Environment) {
	if in.eval(n.Cond, env).Truthy() {
		in.execBlock(n.Then, env)
		return
	}
	in.execBlock(n.Else, env)
}

func (in *Interpreter) execWhen(n *ast.When, env *Environment) {
	subject := in.eval(n.Subject, env)
	for _, c := range n.Cases {
		if c.Otherwise {
			in.execBlock(c.Body, env)
			return
		}
		for _, valExpr := range c.Values {
			if value.Equal(subject, in.eval(valExpr, env)) {
				in.execBlock(c.Body, env)
				return
			}
		}
	}
}

func (in *Interpreter) execFor(n *ast.For, env *Environment) {
	iterable := in.eval(n.Iterable, env)
	items, err := iterate(iterable)
	if err != nil {
		in.fail(n, "%s", err)
		return
	}
	for _, elem := range items {
		loopEnv := NewEnclosedEnvironment(env)
		if err := bindLoopVars(loopEnv, n.Vars, elem); err != nil {
			in.fail(n, "%s", err)
			return
		}
		in.execBlock(n.Body, loopEnv)
		if in.returnFlag || in.exitFlag || in.RuntimeErr != nil {
			return
		}
		if in.breakFlag {
			in.breakFlag = false
			return
		}
		if in.continueFlag {
			in.continueFlag = false
		}
	}
}

func (in *Interpreter) execWhile(n *ast.While, env *Environment) {
	iterations := 0
	maxIter := in.maxWhileIterations()
	for in.eval(n.Cond, env).Truthy() {
		iterations++
		if iterations > maxIter {
			in.failKey(errors.RuntimeError, n, "runtime.while_cap", maxIter)
			return
		}
		loopEnv := NewEnclosedEnvironment(env)
		in.execBlock(n.Body, loopEnv)
		if in.returnFlag || in.exitFlag || in.RuntimeErr != nil {
			return
		}
		if in.breakFlag {
			in.breakFlag = false
			return
		}
		if in.continueFlag {
			in.continueFlag = false
		}
	}
}

func (in *Interpreter) execExit(n *ast.Exit, env *Environment) {
	if n.Code != nil {
		code := in.eval(n.Code, env)
		if code.Kind() == value.KindInt {
			in.exitCode = code.AsInt()
		}
	}
	if n.Message != nil {
		in.exitMessage = value.Str(in.eval(n.Message, env))
		if in.Out != nil {
			in.Out.Log(in.exitMessage)
		}
	}
	in.exitFlag = true
}
