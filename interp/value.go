// ==============================================================================================
// FILE: interp/value.go
// ==============================================================================================
// PACKAGE: interp
// PURPOSE: The runtime value model (§3.1). A Value is any of: nil, bool,
//          float64 (number), int32 (integer), string, *List, a Callable
//          (user function, bound method, or builtin), *Class, or *Instance.
//          Go's own dynamic interface{} already gives a dynamically-typed
//          tagged union for free, so Value is just a documented alias
//          rather than a hand-rolled sum type -- the same choice the
//          teacher's object.Object interface makes, minus the interface
//          method set, since there is no per-type behaviour every Value
//          must support here beyond what Stringify/TypeName already do.
// ==============================================================================================

package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is any runtime value produced or consumed by the evaluator.
type Value = interface{}

// List is the language's one built-in compound type: a growable, 0-indexed
// sequence of Values, accessed with the `[]` subscript operator and the
// `len`/`append` built-in methods (§4.6).
type List struct {
	Elements []Value
}

// NewList wraps a slice of already-evaluated elements.
func NewList(elements []Value) *List {
	return &List{Elements: elements}
}

// Callable is implemented by anything invocable with `(...)`: user-defined
// functions, bound methods, classes (as constructors), and built-ins.
// Arity returns -1 for a variadic callable (e.g. the `list` constructor),
// which tells evalCall to skip the argument-count check entirely.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
	String() string
}

// PropertyGetter is implemented by any runtime value that supports `.name`
// lookup through the language's one generic method/field-resolution path
// (§4.6): class Instances (fields, then inherited methods) and Lists
// (native len/append methods).
type PropertyGetter interface {
	Get(name string, line int) (Value, error)
}

// IsTruthy implements the language's truthiness rule (§3.1/§4.5): nil and
// false are falsy, everything else -- including 0 and the empty string --
// is truthy.
func IsTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// IsNumeric reports whether v is a number or integer, the predicate used to
// gate arithmetic, comparison, and increment/decrement operands (§9: the
// corrected "accept numeric, reject everything else" predicate).
func IsNumeric(v Value) bool {
	switch v.(type) {
	case float64, int32:
		return true
	default:
		return false
	}
}

// AsFloat64 widens a numeric Value to float64 for arithmetic that must
// produce a float result (division, mixed int/float operations).
func AsFloat64(v Value) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

// TypeName returns the name the `type` built-in and error messages use for
// a Value's runtime type (§4.6).
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case int32:
		return "integer"
	case string:
		return "string"
	case *List:
		return "list"
	case *Class:
		return "class"
	case *Instance:
		return "instance"
	case Callable:
		return "function"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Stringify renders a Value the way `print` and list/instance Inspect
// formatting do.
func Stringify(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case string:
		return val
	case *List:
		parts := make([]string, len(val.Elements))
		for i, e := range val.Elements {
			parts[i] = Stringify(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Class:
		return val.Name
	case *Instance:
		return val.Class.Name + " instance"
	case Callable:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
