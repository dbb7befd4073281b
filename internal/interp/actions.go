package interp

import "github.com/flowbylang/flowby/internal/ast"

func (in *Interpreter) execAction(n *ast.Action, env *Environment) {
	if in.Action == nil {
		in.fail(n, "no action host configured to run %q", n.Kind)
		return
	}
	result, err := in.Action.Do(n.Kind.String(), in.evalArgs(n.Args, env), in.evalKwargs(n.Kwargs, env))
	if err != nil {
		in.fail(n, "%s", err)
		return
	}
	if n.Into != "" {
		env.Define(n.Into, result)
	}
}
