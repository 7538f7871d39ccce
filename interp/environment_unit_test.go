package interp

import "testing"

func TestEnvironment_DefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", int32(5))
	v, ok := env.Get("x")
	if !ok || v != int32(5) {
		t.Fatalf("expected 5, got %v ok=%v", v, ok)
	}
}

func TestEnvironment_GetWalksOuterChain(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", "outer value")
	inner := NewEnclosedEnvironment(outer)

	v, ok := inner.Get("x")
	if !ok || v != "outer value" {
		t.Fatalf("expected outer value to be visible from inner scope, got %v ok=%v", v, ok)
	}
}

func TestEnvironment_DefineShadowsOuter(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", "outer")
	inner := NewEnclosedEnvironment(outer)
	inner.Define("x", "inner")

	v, _ := inner.Get("x")
	if v != "inner" {
		t.Fatalf("expected shadowed inner value, got %v", v)
	}
	outerV, _ := outer.Get("x")
	if outerV != "outer" {
		t.Fatalf("expected outer scope to be untouched, got %v", outerV)
	}
}

func TestEnvironment_AssignRebindsExistingInOuterScope(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", int32(1))
	inner := NewEnclosedEnvironment(outer)

	if ok := inner.Assign("x", int32(2)); !ok {
		t.Fatalf("expected assign to existing outer binding to succeed")
	}
	v, _ := outer.Get("x")
	if v != int32(2) {
		t.Fatalf("expected outer binding to be rebound to 2, got %v", v)
	}
}

func TestEnvironment_AssignUndeclaredNameFails(t *testing.T) {
	env := NewEnvironment()
	if ok := env.Assign("never_declared", int32(1)); ok {
		t.Fatalf("expected assign to an undeclared name to fail")
	}
}

func TestEnvironment_GetAtAndAssignAt(t *testing.T) {
	global := NewEnvironment()
	global.Define("x", int32(1))
	level1 := NewEnclosedEnvironment(global)
	level2 := NewEnclosedEnvironment(level1)

	if v := level2.GetAt(2, "x"); v != int32(1) {
		t.Fatalf("expected GetAt(2) to reach the global scope, got %v", v)
	}

	level2.AssignAt(2, "x", int32(9))
	if v, _ := global.Get("x"); v != int32(9) {
		t.Fatalf("expected AssignAt(2) to rebind the global scope, got %v", v)
	}
}

func TestEnvironment_ClosuresShareTheSameCell(t *testing.T) {
	// Two Environments pointing at the same outer scope both observe a
	// mutation made through either one -- this is what makes a closure a
	// closure rather than a snapshot.
	outer := NewEnvironment()
	outer.Define("counter", int32(0))

	closureA := NewEnclosedEnvironment(outer)
	closureB := NewEnclosedEnvironment(outer)

	closureA.AssignAt(1, "counter", int32(41))
	v := closureB.GetAt(1, "counter")
	if v != int32(41) {
		t.Fatalf("expected mutation through one closure to be visible through another, got %v", v)
	}
}
