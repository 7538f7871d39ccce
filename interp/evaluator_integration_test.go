package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/amoghasbhardwaj/slang/errors"
	"github.com/amoghasbhardwaj/slang/lexer"
	"github.com/amoghasbhardwaj/slang/parser"
	"github.com/amoghasbhardwaj/slang/resolver"
)

// run scans, parses, resolves, and evaluates src, returning everything
// written to stdout and the runtime error (if any). Parse/resolve errors
// fail the test immediately via t.Fatalf, since these integration tests are
// about evaluator behavior on already-valid programs.
func run(t *testing.T, src string) (string, error) {
	t.Helper()

	accum := errors.NewAccumulator()
	tokens := lexer.New(src, accum).ScanTokens()
	statements := parser.New(tokens, accum).Parse()
	if accum.HadCompileError() {
		t.Fatalf("unexpected parse errors: %v", accum.Diagnostics())
	}

	locals := resolver.New(accum).Resolve(statements)
	if accum.HadCompileError() {
		t.Fatalf("unexpected resolve errors: %v", accum.Diagnostics())
	}

	var out bytes.Buffer
	in := New(locals, &out, strings.NewReader(""), accum)
	err := in.Interpret(statements)
	return out.String(), err
}

func TestInterpret_FibonacciRecursion(t *testing.T) {
	out, err := run(t, `
fun fib(n) {
  if (n <= 1) { return n; }
  return fib(n - 1) + fib(n - 2);
}
print fib(10);
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if strings.TrimSpace(out) != "55" {
		t.Fatalf("expected 55, got %q", out)
	}
}

func TestInterpret_ClosuresCaptureByReference(t *testing.T) {
	out, err := run(t, `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    return count;
  }
  return increment;
}

var counter = makeCounter();
print counter();
print counter();
print counter();
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if strings.TrimSpace(out) != "1\n2\n3" {
		t.Fatalf("expected 1,2,3 lines, got %q", out)
	}
}

func TestInterpret_ClassInheritanceAndSuper(t *testing.T) {
	out, err := run(t, `
class Animal {
  init(name) { this.name = name; }
  speak() { print this.name + " makes a sound."; }
}

class Dog < Animal {
  speak() {
    super.speak();
    print this.name + " barks.";
  }
}

var d = Dog("Rex");
d.speak();
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	want := "Rex makes a sound.\nRex barks."
	if strings.TrimSpace(out) != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestInterpret_ListLiteralAndSubscriptMutation(t *testing.T) {
	out, err := run(t, `
var xs = [1, 2, 3];
xs[1] = 99;
print xs;
print xs[1];
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	want := "[1, 99, 3]\n99"
	if strings.TrimSpace(out) != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestInterpret_ForLoopWithContinueStillAdvances(t *testing.T) {
	out, err := run(t, `
for (var i = 0; i < 5; i = i + 1) {
  if (i == 2) { continue; }
  print i;
}
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if strings.TrimSpace(out) != "0\n1\n3\n4" {
		t.Fatalf("expected 0,1,3,4 (2 skipped, loop still advances), got %q", out)
	}
}

func TestInterpret_BreakExitsLoopImmediately(t *testing.T) {
	out, err := run(t, `
for (var i = 0; i < 10; i = i + 1) {
  if (i == 3) { break; }
  print i;
}
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if strings.TrimSpace(out) != "0\n1\n2" {
		t.Fatalf("expected 0,1,2, got %q", out)
	}
}

func TestInterpret_DivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := run(t, `print 1 / 0;`)
	if err == nil {
		t.Fatalf("expected a runtime error for division by zero")
	}
}

func TestInterpret_IncrementDecrementOnVariable(t *testing.T) {
	out, err := run(t, `
var i = 0;
i++;
i++;
i--;
print i;
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if strings.TrimSpace(out) != "1" {
		t.Fatalf("expected 1, got %q", out)
	}
}

func TestInterpret_IfElifElseChainPicksFirstTrueBranch(t *testing.T) {
	out, err := run(t, `
var x = 2;
if (x == 1) { print "one"; }
elif (x == 2) { print "two"; }
elif (x == 2) { print "also two, never printed"; }
else { print "other"; }
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if strings.TrimSpace(out) != "two" {
		t.Fatalf("expected only the first true branch to run, got %q", out)
	}
}

func TestInterpret_StringConcatenationAndIntFloatArithmetic(t *testing.T) {
	out, err := run(t, `
print "a" + "b";
print 1 + 2;
print 1 + 2.5;
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if strings.TrimSpace(out) != "ab\n3\n3.5" {
		t.Fatalf("expected ab,3,3.5, got %q", out)
	}
}

func TestInterpret_BuiltinListLenAndAppend(t *testing.T) {
	out, err := run(t, `
var xs = list(10, 20, 30);
print xs.len();
xs.append(40);
print xs[-1];
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if strings.TrimSpace(out) != "3\n40" {
		t.Fatalf("expected 3,40, got %q", out)
	}
}
