package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoghasbhardwaj/slang/ast"
	"github.com/amoghasbhardwaj/slang/errors"
	"github.com/amoghasbhardwaj/slang/lexer"
	"github.com/amoghasbhardwaj/slang/parser"
)

func resolveSource(t *testing.T, src string) (Resolution, *errors.Accumulator) {
	t.Helper()
	accum := errors.NewAccumulator()
	tokens := lexer.New(src, accum).ScanTokens()
	stmts := parser.New(tokens, accum).Parse()
	require.False(t, accum.HadCompileError(), "unexpected parse errors: %v", accum.Diagnostics())

	res := New(accum).Resolve(stmts)
	return res, accum
}

func TestResolve_LocalShadowingProducesNonZeroDepth(t *testing.T) {
	res, accum := resolveSource(t, `
var a = "global";
{
  var a = "local";
  print a;
}
`)
	assert.False(t, accum.HadCompileError())

	found := false
	for expr, depth := range res {
		if v, ok := expr.(*ast.Variable); ok && v.Name.Lexeme == "a" && depth == 0 {
			found = true
		}
	}
	assert.True(t, found, "expected the inner `print a` to resolve at depth 0")
}

func TestResolve_GlobalReferenceIsUnresolved(t *testing.T) {
	res, accum := resolveSource(t, `
var a = 1;
print a;
`)
	assert.False(t, accum.HadCompileError())
	for expr, depth := range res {
		if v, ok := expr.(*ast.Variable); ok && v.Name.Lexeme == "a" {
			t.Fatalf("expected global reference to be absent from the side-table, found depth %d", depth)
		}
	}
}

func TestResolve_SelfReferenceInInitializerIsAnError(t *testing.T) {
	_, accum := resolveSource(t, `
var a = "outer";
{
  var a = a;
}
`)
	assert.True(t, accum.HadCompileError())
}

func TestResolve_ReturnOutsideFunctionIsAnError(t *testing.T) {
	_, accum := resolveSource(t, `return 1;`)
	assert.True(t, accum.HadCompileError())
}

func TestResolve_ReturnValueFromInitializerIsAnError(t *testing.T) {
	_, accum := resolveSource(t, `
class C {
  init() {
    return 1;
  }
}
`)
	assert.True(t, accum.HadCompileError())
}

func TestResolve_ThisOutsideClassIsAnError(t *testing.T) {
	_, accum := resolveSource(t, `print this;`)
	assert.True(t, accum.HadCompileError())
}

func TestResolve_SuperOutsideSubclassIsAnError(t *testing.T) {
	_, accum := resolveSource(t, `
class C {
  method() {
    super.method();
  }
}
`)
	assert.True(t, accum.HadCompileError())
}

func TestResolve_ClassInheritingFromItselfIsAnError(t *testing.T) {
	_, accum := resolveSource(t, `class C < C {}`)
	assert.True(t, accum.HadCompileError())
}

func TestResolve_BreakOutsideLoopIsAnError(t *testing.T) {
	_, accum := resolveSource(t, `break;`)
	assert.True(t, accum.HadCompileError())
}

func TestResolve_ContinueInsideLoopIsFine(t *testing.T) {
	_, accum := resolveSource(t, `while (true) { continue; }`)
	assert.False(t, accum.HadCompileError())
}

func TestResolve_RedeclarationInSameScopeIsAnError(t *testing.T) {
	_, accum := resolveSource(t, `
{
  var a = 1;
  var a = 2;
}
`)
	assert.True(t, accum.HadCompileError())
}

func TestResolve_SuperValidInsideSubclassMethod(t *testing.T) {
	_, accum := resolveSource(t, `
class A {
  greet() { print "a"; }
}
class B < A {
  greet() {
    super.greet();
  }
}
`)
	assert.False(t, accum.HadCompileError())
}

func TestDumpLabels_IncludesFunctionAndClassNames(t *testing.T) {
	accum := errors.NewAccumulator()
	tokens := lexer.New(`
fun f() {}
class C {}
`, accum).ScanTokens()
	stmts := parser.New(tokens, accum).Parse()
	r := New(accum)
	r.Resolve(stmts)

	dump := r.DumpLabels()
	assert.Contains(t, dump, "f\t")
	assert.Contains(t, dump, "C\t")
}
