// ==============================================================================================
// FILE: interp/callable.go
// ==============================================================================================
// PACKAGE: interp
// PURPOSE: The callable and class hierarchy (§3.1, §4.6): user-defined
//          functions with closures, bound methods carrying `this`, classes
//          with single inheritance acting as their own constructors, and
//          instances with a settable property bag backed by their class's
//          method table.
// ==============================================================================================

package interp

import (
	"strings"

	"github.com/amoghasbhardwaj/slang/ast"
	"github.com/amoghasbhardwaj/slang/errors"
)

// Function is a user-defined function or method, closing over the
// environment active at the point of its declaration.
type Function struct {
	Declaration   *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

func (f *Function) Arity() int { return len(f.Declaration.Params) }

func (f *Function) String() string { return "<fn " + f.Declaration.Name.Lexeme + ">" }

// Bind produces a new Function identical to f but closing over an
// environment that additionally binds `this` to instance -- how a method
// becomes a bound method each time it's looked up on an instance
// (§4.6).
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Declaration: f.Declaration, Closure: env, IsInitializer: f.IsInitializer}
}

func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnclosedEnvironment(f.Closure)
	for i, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	_, err := in.executeBlock(f.Declaration.Body, env)
	if ret, ok := asReturn(err); ok {
		if f.IsInitializer {
			return f.Closure.GetAt(0, "this"), nil
		}
		return ret.Value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

// Class is a runtime class object. It is itself Callable: calling it
// constructs a new Instance and runs `init` if the class (or an ancestor)
// defines one.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *Class) String() string { return c.Name }

// FindMethod looks up a method by name, walking the single-inheritance
// chain from this class up to its ancestors.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	instance := &Instance{Class: c, Fields: make(map[string]Value)}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is one object created from a Class: a mutable field bag plus a
// pointer back to the class that supplies its methods.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// Get reads a property: fields shadow methods, and a looked-up method is
// bound to this instance before being returned (§4.6).
func (i *Instance) Get(name string, line int) (Value, error) {
	if v, ok := i.Fields[name]; ok {
		return v, nil
	}
	if method := i.Class.FindMethod(name); method != nil {
		return method.Bind(i), nil
	}
	return nil, errors.NewRuntimeError(line, "at '"+name+"'", "undefined property '%s'", name)
}

// Set writes a property, creating it if absent.
func (i *Instance) Set(name string, value Value) {
	i.Fields[name] = value
}

// Builtin wraps a natively-implemented global function (clock, input, type,
// and the `list` constructor; the list methods use listBoundMethod in
// builtins.go) behind the same Callable
// interface user-defined functions implement, so the evaluator's call
// machinery never needs to distinguish them.
type Builtin struct {
	Name string
	Arty int
	Fn   func(in *Interpreter, args []Value) (Value, error)
}

func (b *Builtin) Arity() int { return b.Arty }

func (b *Builtin) Call(in *Interpreter, args []Value) (Value, error) { return b.Fn(in, args) }

func (b *Builtin) String() string { return "<native fn " + b.Name + ">" }

// describeArgs renders an argument list for arity-mismatch diagnostics.
func describeArgs(args []Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Stringify(a)
	}
	return strings.Join(parts, ", ")
}
