// ==============================================================================================
// FILE: interp/builtins.go
// ==============================================================================================
// PACKAGE: interp
// PURPOSE: The standard library built-ins (§4.6). original_source/'s
//          BuiltInClass/BuiltInFun/BuiltInIo split groups built-ins by
//          concern; registerFreeFunctions/registerIO/registerListClass
//          mirror that three-way grouping while still populating one flat
//          global-scope table, generalizing the teacher's single
//          object.Builtins slice-of-struct registration.
// ==============================================================================================

package interp

import (
	"bufio"
	"fmt"
	"time"

	"github.com/amoghasbhardwaj/slang/errors"
)

// registerBuiltins populates env (the global scope) with every built-in
// name the language defines.
func registerBuiltins(env *Environment, stdout *bufio.Writer, stdin *bufio.Reader) {
	registerFreeFunctions(env)
	registerIO(env, stdout, stdin)
	registerListClass(env)
}

// registerFreeFunctions wires `clock` and `type` -- pure functions with no
// external side effect beyond reading the wall clock.
func registerFreeFunctions(env *Environment) {
	env.Define("clock", &Builtin{
		Name: "clock", Arty: 0,
		Fn: func(in *Interpreter, args []Value) (Value, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})

	env.Define("type", &Builtin{
		Name: "type", Arty: 1,
		Fn: func(in *Interpreter, args []Value) (Value, error) {
			return TypeName(args[0]), nil
		},
	})
}

// registerIO wires `input`. No `print` callable is registered: `print` is a
// scanner keyword, parsed as ast.PrintStmt, which prints the value of one
// expression (see flushPrint); `print(a, b)` with several arguments is a
// parse error.
func registerIO(env *Environment, stdout *bufio.Writer, stdin *bufio.Reader) {
	env.Define("input", &Builtin{
		Name: "input", Arty: 0,
		Fn: func(in *Interpreter, args []Value) (Value, error) {
			line, err := stdin.ReadString('\n')
			if err != nil && line == "" {
				return nil, nil
			}
			for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
				line = line[:len(line)-1]
			}
			return line, nil
		},
	})
}

// registerListClass wires `list(...)`, the built-in constructor that packs
// whatever arguments it is called with into a new List -- grounded on
// original_source/src/builtins/BuiltInClass.cpp's `ListClass::call`, which
// sets `this->list = args` directly rather than building an empty list.
// `len`/`append` are NOT registered here as free functions: they are list
// methods, dispatched through the same generic `.name(...)` lookup path
// instance methods use (§4.6) -- see List.Get and listMethods below.
func registerListClass(env *Environment) {
	env.Define("list", &Builtin{
		Name: "list", Arty: -1,
		Fn: func(in *Interpreter, args []Value) (Value, error) {
			elements := make([]Value, len(args))
			copy(elements, args)
			return NewList(elements), nil
		},
	})
}

// listBoundMethod is a native Callable closed over the specific List it was
// looked up on, the built-in-method analogue of Function.Bind for
// user-defined methods.
type listBoundMethod struct {
	name  string
	arity int
	fn    func(l *List, in *Interpreter, args []Value) (Value, error)
	list  *List
}

func (m *listBoundMethod) Arity() int { return m.arity }

func (m *listBoundMethod) String() string { return "<native fn " + m.name + ">" }

func (m *listBoundMethod) Call(in *Interpreter, args []Value) (Value, error) {
	return m.fn(m.list, in, args)
}

// listMethods is the native method table every List instance dispatches
// through via Get, mirroring original_source's ListLenMethods/
// ListAppendMethods bound to a list instance.
var listMethods = map[string]struct {
	arity int
	fn    func(l *List, in *Interpreter, args []Value) (Value, error)
}{
	"len": {
		arity: 0,
		fn: func(l *List, in *Interpreter, args []Value) (Value, error) {
			return int32(len(l.Elements)), nil
		},
	},
	"append": {
		arity: 1,
		fn: func(l *List, in *Interpreter, args []Value) (Value, error) {
			l.Elements = append(l.Elements, args[0])
			return l, nil
		},
	},
}

// Get implements PropertyGetter for *List, so `xs.len()`/`xs.append(v)`
// resolve through evaluator.evalGet exactly the way `instance.method()`
// does -- there is no separate "list builtin function" call path.
func (l *List) Get(name string, line int) (Value, error) {
	m, ok := listMethods[name]
	if !ok {
		return nil, errors.NewRuntimeError(line, "at '"+name+"'", "undefined property '%s'", name)
	}
	return &listBoundMethod{name: name, arity: m.arity, fn: m.fn, list: l}, nil
}

// flushPrint is the small helper the `print` statement (ast.PrintStmt)
// calls through the Interpreter's output writer.
func flushPrint(w *bufio.Writer, v Value) {
	fmt.Fprintln(w, Stringify(v))
	w.Flush()
}
