// Package interp implements Flowby's tree-walking interpreter:
// Environment is the runtime scope chain, Interpreter walks the AST
// directly (no bytecode compilation step), and control flow that must
// unwind several AST levels (break/continue/return/exit) is carried as a
// typed signal checked after every statement rather than a Go panic.
package interp

import "github.com/flowbylang/flowby/internal/value"

// Environment is a case-sensitive scope frame chained to its enclosing
// scope.
type Environment struct {
	store map[string]value.Value
	outer *Environment
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]value.Value)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{store: make(map[string]value.Value), outer: outer}
}

// Get searches this frame, then walks outward through enclosing frames.
func (e *Environment) Get(name string) (value.Value, bool) {
	if v, ok := e.store[name]; ok {
		return v, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return value.None, false
}

// Set assigns to the frame where name is already defined, walking outward,
// so assignment rebinds in the declaring frame rather than the current
// one. It returns false if name is undefined anywhere in the chain.
func (e *Environment) Set(name string, v value.Value) bool {
	if _, ok := e.store[name]; ok {
		e.store[name] = v
		return true
	}
	if e.outer != nil {
		return e.outer.Set(name, v)
	}
	return false
}

// Define binds name in this frame, shadowing any outer binding.
func (e *Environment) Define(name string, v value.Value) {
	e.store[name] = v
}
