// ==============================================================================================
// FILE: interp/environment.go
// ==============================================================================================
// PACKAGE: interp
// PURPOSE: Lexical scope chain (§3.4, §4.4). Each Environment is one cons
//          cell: a flat map of bindings plus a pointer to the enclosing
//          scope. Closures capture an *Environment by reference, which is
//          exactly what makes them closures -- later mutation through one
//          reference is visible through every other reference to the same
//          cell, grounded on the teacher's object.Environment.
// ==============================================================================================

package interp

import "fmt"

// Environment is one scope in the chain, from the current block up to the
// global scope at the root.
type Environment struct {
	store map[string]Value
	outer *Environment
}

// NewEnvironment creates a fresh top-level (global) scope.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Value)}
}

// NewEnclosedEnvironment creates a scope nested directly inside outer, e.g.
// for a block, function call, or loop iteration.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{store: make(map[string]Value), outer: outer}
}

// Define binds name to value in THIS scope, shadowing any outer binding of
// the same name. Used for `var` declarations and parameter binding.
func (e *Environment) Define(name string, value Value) {
	e.store[name] = value
}

// Get looks up name, walking outward through enclosing scopes, and is the
// fallback path used only when the resolver found no lexical binding (i.e.
// the reference is treated as a global).
func (e *Environment) Get(name string) (Value, bool) {
	if v, ok := e.store[name]; ok {
		return v, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// Assign rebinds an EXISTING name, walking outward until it finds the scope
// that declared it. Returns false if name was never declared anywhere in
// the chain.
func (e *Environment) Assign(name string, value Value) bool {
	if _, ok := e.store[name]; ok {
		e.store[name] = value
		return true
	}
	if e.outer != nil {
		return e.outer.Assign(name, value)
	}
	return false
}

// ancestor walks exactly `distance` scopes outward from e. A distance that
// overruns the chain indicates a resolver/evaluator inconsistency and is a
// programming error, not a user-facing runtime error.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		if env.outer == nil {
			panic(fmt.Sprintf("interp: environment chain shorter than resolved distance %d", distance))
		}
		env = env.outer
	}
	return env
}

// GetAt reads name from the scope exactly `distance` hops outward -- the
// fast path the evaluator takes for every variable the resolver bound
// lexically (§4.4).
func (e *Environment) GetAt(distance int, name string) Value {
	v, ok := e.ancestor(distance).store[name]
	if !ok {
		panic(fmt.Sprintf("interp: resolved variable %q missing at distance %d", name, distance))
	}
	return v
}

// AssignAt rebinds name in the scope exactly `distance` hops outward.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	e.ancestor(distance).store[name] = value
}
