package interp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flowbylang/flowby/internal/ast"
	"github.com/flowbylang/flowby/internal/errors"
	"github.com/flowbylang/flowby/internal/parser"
	"github.com/flowbylang/flowby/internal/value"
)

// Library is the result of loading one library file: its export table,
// keyed by the exported name.
type Library struct {
	Path    string
	Name    string
	Exports *value.Dict
}

// libraryNamespace adapts a Library to value.Namespace so `import X from
// "..."` bindings support member access (`X.thing`) the same way host
// namespaces do.
type libraryNamespace struct {
	lib *Library
	in  *Interpreter
}

func (n *libraryNamespace) Name() string { return n.lib.Name }

// Member returns the raw export for `alias.member` access, so exported
// constants and functions can be read without being called.
func (n *libraryNamespace) Member(name string) (value.Value, error) {
	v, ok := n.lib.Exports.Get(name)
	if !ok {
		return value.None, fmt.Errorf("%s", n.in.Messages.Resolve("module.unknown_export", n.lib.Name, name))
	}
	return v, nil
}

// Invoke runs an exported function for `alias.fn(args)` method-call
// syntax, including zero-argument calls.
func (n *libraryNamespace) Invoke(method string, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	v, err := n.Member(method)
	if err != nil {
		return value.None, err
	}
	if v.Kind() != value.KindFunction {
		if len(args) == 0 && len(kwargs) == 0 {
			return v, nil
		}
		return value.None, fmt.Errorf("%q is not callable", method)
	}
	return n.in.callFunction(v.AsFunction(), args, kwargs, lineAt(0)), nil
}

// LibraryRegistry caches loaded libraries by canonical absolute path and
// detects circular imports via an active-loading stack. The registry may
// be shared by concurrent interpreters, so cache and loading-stack access
// is serialized; the lock is never held across the execute phase so a
// library's own imports cannot deadlock.
type LibraryRegistry struct {
	searchPaths []string

	mu      sync.Mutex
	cache   map[string]*Library
	loading []string
}

func NewLibraryRegistry(searchPaths []string) *LibraryRegistry {
	return &LibraryRegistry{searchPaths: searchPaths, cache: make(map[string]*Library)}
}

func (r *LibraryRegistry) cached(abs string) (*Library, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lib, ok := r.cache[abs]
	return lib, ok
}

func (r *LibraryRegistry) store(abs string, lib *Library) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[abs] = lib
}

// beginLoading marks abs as actively loading, reporting the full cycle
// when abs is already on the stack.
func (r *LibraryRegistry) beginLoading(abs string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, active := range r.loading {
		if active == abs {
			cycle := append(append([]string(nil), r.loading[i:]...), abs)
			return fmt.Errorf("%s", strings.Join(cycle, " -> "))
		}
	}
	r.loading = append(r.loading, abs)
	return nil
}

func (r *LibraryRegistry) endLoading(abs string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.loading) - 1; i >= 0; i-- {
		if r.loading[i] == abs {
			r.loading = append(r.loading[:i], r.loading[i+1:]...)
			return
		}
	}
}

// resolveLibraryPath tries each search location in order: relative to
// the importer's directory, then lib/ under the importer, then lib/ under
// the working directory, then each configured search path, then
// ~/.flowby/lib/, then a system library directory.
func (r *LibraryRegistry) resolveLibraryPath(path, importerDir string) (string, bool) {
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
		return "", false
	}
	candidates := []string{
		filepath.Join(importerDir, path),
		filepath.Join(importerDir, "lib", path),
		filepath.Join("lib", path),
	}
	for _, sp := range r.searchPaths {
		candidates = append(candidates, filepath.Join(sp, path))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".flowby", "lib", path))
	}
	candidates = append(candidates, filepath.Join("/usr/local/share/flowby/lib", path))
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, err := filepath.Abs(c)
			if err != nil {
				return c, true
			}
			return abs, true
		}
	}
	return "", false
}

// importerDir is the directory relative imports resolve against: the
// directory of the file this interpreter is executing.
func (in *Interpreter) importerDir() string {
	if in.origin == "" {
		return "."
	}
	dir := filepath.Dir(in.origin)
	if dir == "" {
		return "."
	}
	return dir
}

// loadLibrary runs the two import phases: resolve, cache-check,
// parse+validate, cycle-check, then execute for exports.
func (in *Interpreter) loadLibrary(path, importerDir string) (*Library, error) {
	abs, ok := in.libraries.resolveLibraryPath(path, importerDir)
	if !ok {
		return nil, fmt.Errorf("%s", in.Messages.Resolve("module.not_found", path))
	}
	if cached, ok := in.libraries.cached(abs); ok {
		return cached, nil
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading library %s: %w", abs, err)
	}

	p := parser.New(string(src), abs)
	p.SetAllowNestedFunctions(in.AllowNestedFunctions)
	for _, name := range in.hostGlobals {
		p.RegisterHostName(name)
	}
	prog := p.ParseProgram()
	if violations := p.Violations(); len(violations) > 0 {
		return nil, fmt.Errorf("library %s failed to load: %s", abs, violations[0].Message)
	}

	if !startsWithLibraryDecl(prog) {
		return nil, fmt.Errorf("%s", in.Messages.Resolve("module.not_a_library", abs))
	}

	if cycleErr := in.libraries.beginLoading(abs); cycleErr != nil {
		return nil, fmt.Errorf("%s", in.Messages.Resolve("module.circular", cycleErr.Error()))
	}
	defer in.libraries.endLoading(abs)

	libEnv := NewEnvironment()
	registerFreeFunctions(libEnv)
	sub := &Interpreter{
		Env:                  libEnv,
		Action:               in.Action,
		Out:                  in.Out,
		Input:                in.Input,
		Messages:             in.Messages,
		origin:               abs,
		libraries:            in.libraries,
		hostGlobals:          in.hostGlobals,
		AllowRecursion:       in.AllowRecursion,
		AllowNestedFunctions: in.AllowNestedFunctions,
	}
	sub.execBlock(prog.Statements, libEnv)
	if sub.RuntimeErr != nil {
		return nil, fmt.Errorf("error initializing library %s: %w", abs, sub.RuntimeErr)
	}

	stem := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	exports := value.NewDict()
	name := stem
	for _, s := range prog.Statements {
		switch n := s.(type) {
		case *ast.LibraryDecl:
			name = n.Name
		case *ast.ExportDecl:
			exportName := exportedName(n.Inner)
			if exportName == "" {
				continue
			}
			v, ok := libEnv.Get(exportName)
			if !ok {
				return nil, fmt.Errorf("library %s: export %q not found after initialization", abs, exportName)
			}
			exports.Set(exportName, v)
		}
	}

	lib := &Library{Path: abs, Name: name, Exports: exports}
	in.libraries.store(abs, lib)
	return lib, nil
}

func startsWithLibraryDecl(prog *ast.Program) bool {
	for _, s := range prog.Statements {
		_, ok := s.(*ast.LibraryDecl)
		return ok
	}
	return false
}

func exportedName(inner ast.Statement) string {
	switch s := inner.(type) {
	case *ast.ConstDecl:
		return s.Name
	case *ast.FunctionDef:
		return s.Name
	default:
		return ""
	}
}

func (in *Interpreter) execImportAll(n *ast.ImportAll, env *Environment) {
	lib, err := in.loadLibrary(n.Path, in.importerDir())
	if err != nil {
		in.failWithKind(errors.ModuleError, n, "%s", err)
		return
	}
	env.Define(n.Alias, value.NamespaceVal(&libraryNamespace{lib: lib, in: in}))
}

func (in *Interpreter) execImportMembers(n *ast.ImportMembers, env *Environment) {
	lib, err := in.loadLibrary(n.Path, in.importerDir())
	if err != nil {
		in.failWithKind(errors.ModuleError, n, "%s", err)
		return
	}
	for _, name := range n.Names {
		v, ok := lib.Exports.Get(name)
		if !ok {
			in.failKey(errors.ModuleError, n, "module.unknown_export", lib.Name, name)
			return
		}
		env.Define(name, v)
	}
}
