// ==============================================================================================
// FILE: resolver/resolver.go
// ==============================================================================================
// PACKAGE: resolver
// PURPOSE: The two-pass static resolver (§4.3, §3.5). Walks the AST once,
//          after parsing and before evaluation, to bind every variable
//          reference to the number of enclosing scopes between its use and
//          its declaration. The result is a side-table the evaluator
//          consults instead of doing a dynamic, outer-chain walk on every
//          lookup, and it is also where the handful of static errors
//          specified in §4.3 (self-reference in an initializer, `return`
//          outside a function, `this`/`super` outside a class, etc.) are
//          caught before the program ever runs.
// ==============================================================================================

package resolver

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/amoghasbhardwaj/slang/ast"
	"github.com/amoghasbhardwaj/slang/errors"
)

type functionKind int

const (
	noFunction functionKind = iota
	inFunction
	inMethod
	inInitializer
)

type classKind int

const (
	noClass classKind = iota
	inClass
	inSubclass
)

// scope maps a name to whether its declaration has finished (is "defined"),
// as opposed to merely "declared" -- the split is what catches
// `var a = a;` self-reference inside its own initializer.
type scope map[string]bool

// Resolution is the output side-table: for each Expression node that reads
// or writes a variable, how many enclosing scopes separate it from the
// scope that declares that variable. Absence from the map means "resolve
// in the global environment at runtime."
//
// Keying on the ast.Expression interface value directly (rather than on a
// synthetic integer id) works because every AST node is heap-allocated
// through a pointer constructor in the parser and never copied afterward,
// so its Go pointer identity is already a stable, comparable handle -- the
// same guarantee spec.md's "side-table keyed by node identity" asks for.
type Resolution map[ast.Expression]int

// FunctionLabel is a stable external id assigned to each function/class
// declaration seen during resolution, used only for debug/snapshot output
// so that dumps do not depend on Go map iteration order.
type FunctionLabel struct {
	Name string
	ID   uuid.UUID
}

// Resolver performs the static pass over a parsed program.
type Resolver struct {
	scopes      []scope
	resolution  Resolution
	errs        *errors.Accumulator
	currentFn   functionKind
	currentCls  classKind
	loopDepth   int
	Labels      []FunctionLabel // declaration order, for debug dumps
}

// New creates a Resolver that will record diagnostics into errs.
func New(errs *errors.Accumulator) *Resolver {
	return &Resolver{resolution: make(Resolution), errs: errs}
}

// Resolve walks every top-level statement and returns the completed
// side-table. Call once per program; the REPL creates a fresh Resolver for
// each submitted line (top-level names are globals and leave no scope state).
func (r *Resolver) Resolve(statements []ast.Statement) Resolution {
	r.resolveStatements(statements)
	return r.resolution
}

// ----------------------------------------------------------------------------------------------
// Scope stack
// ----------------------------------------------------------------------------------------------

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name string, line int) {
	if len(r.scopes) == 0 {
		return
	}
	current := r.scopes[len(r.scopes)-1]
	if _, ok := current[name]; ok {
		r.errs.Add(line, "at '"+name+"'", "already a variable with this name in this scope")
	}
	current[name] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *Resolver) resolveLocal(expr ast.Expression, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.resolution[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any lexical scope -- treated as a global at runtime.
}

// ----------------------------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------------------------

func (r *Resolver) resolveStatements(statements []ast.Statement) {
	for _, stmt := range statements {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpression(s.Expression)
	case *ast.PrintStmt:
		r.resolveExpression(s.Expression)
	case *ast.VarStmt:
		r.declare(s.Name.Lexeme, s.Name.Line)
		if s.Initializer != nil {
			r.resolveExpression(s.Initializer)
		}
		r.define(s.Name.Lexeme)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Then)
		for _, arm := range s.ElifArms {
			r.resolveExpression(arm.Condition)
			r.resolveStatement(arm.Body)
		}
		if s.Else != nil {
			r.resolveStatement(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpression(s.Condition)
		r.loopDepth++
		r.resolveStatement(s.Body)
		if s.Increment != nil {
			r.resolveExpression(s.Increment)
		}
		r.loopDepth--
	case *ast.FunctionStmt:
		r.declare(s.Name.Lexeme, s.Name.Line)
		r.define(s.Name.Lexeme)
		r.Labels = append(r.Labels, FunctionLabel{Name: s.Name.Lexeme, ID: newLabelID()})
		r.resolveFunction(s, inFunction)
	case *ast.ClassStmt:
		r.resolveClass(s)
	case *ast.ReturnStmt:
		if r.currentFn == noFunction {
			r.errs.Add(s.Keyword.Line, "at 'return'", "can't return from top-level code")
		}
		if s.Value != nil {
			if r.currentFn == inInitializer {
				r.errs.Add(s.Keyword.Line, "at 'return'", "can't return a value from an initializer")
			}
			r.resolveExpression(s.Value)
		}
	case *ast.BreakStmt:
		if r.loopDepth == 0 {
			r.errs.Add(s.Keyword.Line, "at 'break'", "can't use 'break' outside of a loop")
		}
	case *ast.ContinueStmt:
		if r.loopDepth == 0 {
			r.errs.Add(s.Keyword.Line, "at 'continue'", "can't use 'continue' outside of a loop")
		}
	default:
		panic(fmt.Sprintf("resolver: unhandled statement type %T", stmt))
	}
}

func (r *Resolver) resolveClass(s *ast.ClassStmt) {
	enclosingClass := r.currentCls
	r.currentCls = inClass

	r.declare(s.Name.Lexeme, s.Name.Line)
	r.define(s.Name.Lexeme)
	r.Labels = append(r.Labels, FunctionLabel{Name: s.Name.Lexeme, ID: newLabelID()})

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errs.Add(s.Superclass.Name.Line, "at '"+s.Superclass.Name.Lexeme+"'", "a class can't inherit from itself")
		}
		r.currentCls = inSubclass
		r.resolveExpression(s.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		kind := inMethod
		if method.Name.Lexeme == "init" {
			kind = inInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope() // "this"
	if s.Superclass != nil {
		r.endScope() // "super"
	}

	r.currentCls = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionKind) {
	enclosingFn := r.currentFn
	r.currentFn = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param.Lexeme, param.Line)
		r.define(param.Lexeme)
	}
	r.resolveStatements(fn.Body)
	r.endScope()

	r.currentFn = enclosingFn
}

// ----------------------------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------------------------

func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Literal:
		// Nothing to resolve.
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.errs.Add(e.Name.Line, "at '"+e.Name.Lexeme+"'", "can't read local variable in its own initializer")
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)
	case *ast.Assign:
		r.resolveExpression(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)
	case *ast.Unary:
		r.resolveExpression(e.Right)
	case *ast.Binary:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.Logical:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.Grouping:
		r.resolveExpression(e.Expression)
	case *ast.Call:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.Get:
		r.resolveExpression(e.Object)
	case *ast.Set:
		r.resolveExpression(e.Value)
		r.resolveExpression(e.Object)
	case *ast.This:
		if r.currentCls == noClass {
			r.errs.Add(e.Keyword.Line, "at 'this'", "can't use 'this' outside of a class")
			return
		}
		r.resolveLocal(e, "this")
	case *ast.Super:
		if r.currentCls == noClass {
			r.errs.Add(e.Keyword.Line, "at 'super'", "can't use 'super' outside of a class")
		} else if r.currentCls != inSubclass {
			r.errs.Add(e.Keyword.Line, "at 'super'", "can't use 'super' in a class with no superclass")
		}
		r.resolveLocal(e, "super")
	case *ast.Increment:
		r.resolveExpression(e.Target)
	case *ast.Decrement:
		r.resolveExpression(e.Target)
	case *ast.List:
		for _, el := range e.Elements {
			r.resolveExpression(el)
		}
	case *ast.Subscript:
		r.resolveExpression(e.Object)
		r.resolveExpression(e.Index)
	case *ast.IndexSet:
		r.resolveExpression(e.Object)
		r.resolveExpression(e.Index)
		r.resolveExpression(e.Value)
	case *ast.BadExpr:
		// Already reported by the parser.
	default:
		panic(fmt.Sprintf("resolver: unhandled expression type %T", expr))
	}
}

// newLabelID is split out so tests can substitute a deterministic id
// generator without reaching into uuid's package state.
var newLabelID = uuid.New
