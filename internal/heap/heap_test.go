package heap

import (
	"testing"

	"github.com/golox-lang/golox/internal/value"
)

func TestEnvironmentGetSetChain(t *testing.T) {
	h := New(DefaultThreshold)
	global := h.NewEnvironment(value.NilRef, true)
	h.Environment(global).Define("x", value.Number(1))

	child := h.NewEnvironment(global, false)
	h.Environment(child).Define("y", value.Number(2))

	if v, ok := h.Environment(child).Get(h, "x"); !ok || v != value.Number(1) {
		t.Fatalf("expected to find x=1 via parent chain, got %+v, %v", v, ok)
	}
	if v, ok := h.Environment(child).Get(h, "y"); !ok || v != value.Number(2) {
		t.Fatalf("expected y=2 in child frame, got %+v, %v", v, ok)
	}
	if !h.Environment(child).Assign(h, "x", value.Number(9)) {
		t.Fatal("assign to inherited binding should succeed")
	}
	if v, _ := h.Environment(global).Get(h, "x"); v != value.Number(9) {
		t.Fatalf("assign through chain should mutate the defining frame, got %+v", v)
	}
	if h.Environment(child).Assign(h, "never_defined", value.Nil) {
		t.Fatal("assign to an undefined name should fail")
	}
}

func TestGetAtAssignAtWalkExactDistance(t *testing.T) {
	h := New(DefaultThreshold)
	global := h.NewEnvironment(value.NilRef, true)
	h.Environment(global).Define("a", value.String("global"))

	outer := h.NewEnvironment(global, false)
	h.Environment(outer).Define("a", value.String("outer"))

	inner := h.NewEnvironment(outer, false)
	h.Environment(inner).Define("a", value.String("inner"))

	if v, ok := h.Environment(inner).GetAt(h, 0, "a"); !ok || v != value.String("inner") {
		t.Fatalf("GetAt(0) = %+v, %v", v, ok)
	}
	if v, ok := h.Environment(inner).GetAt(h, 1, "a"); !ok || v != value.String("outer") {
		t.Fatalf("GetAt(1) = %+v, %v", v, ok)
	}
	if v, ok := h.Environment(inner).GetAt(h, 2, "a"); !ok || v != value.String("global") {
		t.Fatalf("GetAt(2) = %+v, %v", v, ok)
	}
	if !h.Environment(inner).AssignAt(h, 1, "a", value.String("outer-mutated")) {
		t.Fatal("AssignAt(1) should succeed")
	}
	if v, _ := h.Environment(outer).GetAt(h, 0, "a"); v != value.String("outer-mutated") {
		t.Fatalf("expected outer frame mutated, got %+v", v)
	}
	if v, _ := h.Environment(inner).GetAt(h, 0, "a"); v != value.String("inner") {
		t.Fatalf("inner frame should be untouched, got %+v", v)
	}
}

func TestDescribeCallableAndInstance(t *testing.T) {
	h := New(DefaultThreshold)
	classRef := h.NewClass(&Class{Name: "Bagel", Superclass: value.NilRef, Methods: map[string]value.Ref{}})
	if got := h.Describe(value.Callable(classRef)); got != "Bagel" {
		t.Errorf("class Describe = %q, want %q", got, "Bagel")
	}

	instRef := h.NewInstance(&Instance{Class: classRef, Fields: map[string]value.Value{}})
	if got := h.Describe(value.Instance(instRef)); got != "Bagel instance" {
		t.Errorf("instance Describe = %q, want %q", got, "Bagel instance")
	}

	nativeRef := h.NewNativeFunction(&NativeFunction{Name: "clock", Arity: 0})
	if got := h.Describe(value.Callable(nativeRef)); got != "<native fn>" {
		t.Errorf("native fn Describe = %q, want %q", got, "<native fn>")
	}
}

func TestCollectFreesUnreachableEnvironmentCycle(t *testing.T) {
	h := New(DefaultThreshold)
	root := h.NewEnvironment(value.NilRef, true)

	// Build a self-referential cycle unreachable from root: an environment
	// whose only binding is a closure that in turn captures that very
	// environment. A refcounting GC would leak this; mark-sweep must not.
	doomed := h.NewEnvironment(root, false)
	fnRef := h.NewFunction(&Function{})
	closureRef := h.NewClosure(&Closure{Function: fnRef, Env: doomed})
	h.Environment(doomed).Define("self", value.Callable(closureRef))

	before := h.Count()
	if before != 4 { // root, doomed, fnRef, closureRef
		t.Fatalf("expected 4 tracked objects before collection, got %d", before)
	}

	freed := h.Collect(root)
	if freed != 3 {
		t.Fatalf("expected the cycle (doomed env, function, closure) to be freed, got %d freed", freed)
	}
	if h.Count() != 1 {
		t.Fatalf("expected only root to survive, got %d objects", h.Count())
	}
}

func TestCollectKeepsReachableClosure(t *testing.T) {
	h := New(DefaultThreshold)
	root := h.NewEnvironment(value.NilRef, true)

	captured := h.NewEnvironment(root, false)
	fnRef := h.NewFunction(&Function{})
	closureRef := h.NewClosure(&Closure{Function: fnRef, Env: captured})
	h.Environment(root).Define("f", value.Callable(closureRef))

	freed := h.Collect(root)
	if freed != 0 {
		t.Fatalf("expected nothing freed while the closure is reachable from root, got %d", freed)
	}
	if h.Count() != 4 {
		t.Fatalf("expected all 4 objects to survive, got %d", h.Count())
	}
}

func TestRunFromEnvRespectsThreshold(t *testing.T) {
	h := New(1 << 30) // threshold never reached
	root := h.NewEnvironment(value.NilRef, true)
	h.NewEnvironment(root, false) // unreachable, but below threshold

	if freed := h.RunFromEnv(root); freed != 0 {
		t.Fatalf("expected no collection below threshold, freed %d", freed)
	}
	if h.Count() != 2 {
		t.Fatalf("expected both objects to remain untouched, got %d", h.Count())
	}
}
