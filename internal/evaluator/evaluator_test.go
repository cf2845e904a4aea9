package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golox-lang/golox/internal/builtins"
	"github.com/golox-lang/golox/internal/heap"
	"github.com/golox-lang/golox/internal/parser"
	"github.com/golox-lang/golox/internal/resolver"
	"github.com/golox-lang/golox/internal/scanner"
)

// run scans, parses, resolves, and interprets src, returning everything
// printed to stdout. It fails the test on any static or runtime error.
func run(t *testing.T, src string) string {
	t.Helper()
	toks := scanner.New(src).ScanTokens()

	stmts, parseErrs := parser.New(toks).Parse()
	if parseErrs.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %s", src, parseErrs.Error())
	}

	locals, resolveErrs := resolver.Resolve(stmts)
	if resolveErrs.HasErrors() {
		t.Fatalf("unexpected resolve errors for %q: %s", src, resolveErrs.Error())
	}

	var out bytes.Buffer
	h := heap.New(heap.DefaultThreshold)
	eval := New(h, &out)
	builtins.Register(h, eval.Globals, func() float64 { return 0 })
	eval.SetLocals(locals)

	if err := eval.Interpret(stmts); err != nil {
		t.Fatalf("unexpected runtime error for %q: %v", src, err)
	}
	return out.String()
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestScenarioArithmetic(t *testing.T) {
	got := lines(run(t, `print 1 + 2;`))
	want := []string{"3"}
	assertLines(t, got, want)
}

func TestScenarioBlockShadowing(t *testing.T) {
	got := lines(run(t, `var a = "hi"; { var a = "bye"; print a; } print a;`))
	assertLines(t, got, []string{"bye", "hi"})
}

func TestScenarioClosureCaptureByReference(t *testing.T) {
	src := `fun make() { var i = 0; fun inc() { i = i + 1; return i; } return inc; } var c = make(); print c(); print c(); print c();`
	got := lines(run(t, src))
	assertLines(t, got, []string{"1", "2", "3"})
}

func TestScenarioInheritanceAndSuper(t *testing.T) {
	src := `class A { greet() { print "A"; } } class B < A { greet() { super.greet(); print "B"; } } B().greet();`
	got := lines(run(t, src))
	assertLines(t, got, []string{"A", "B"})
}

func TestScenarioInitializer(t *testing.T) {
	src := `class Point { init(x, y) { this.x = x; this.y = y; } } var p = Point(3, 4); print p.x + p.y;`
	got := lines(run(t, src))
	assertLines(t, got, []string{"7"})
}

func TestScenarioResolverFixesDistanceAtDefinition(t *testing.T) {
	src := `var a = "global"; { fun show() { print a; } show(); var a = "local"; show(); }`
	got := lines(run(t, src))
	assertLines(t, got, []string{"global", "global"})
}

func TestShortCircuitAndDoesNotEvaluateRight(t *testing.T) {
	src := `fun boom() { print "boom"; return true; } false and boom();`
	got := lines(run(t, src))
	assertLines(t, got, nil)
}

func TestShortCircuitOrDoesNotEvaluateRight(t *testing.T) {
	src := `fun boom() { print "boom"; return true; } true or boom();`
	got := lines(run(t, src))
	assertLines(t, got, nil)
}

func TestInitReturnsInstanceEvenWithEmptyReturn(t *testing.T) {
	src := `class A { init() { return; } } print A();`
	got := lines(run(t, src))
	assertLines(t, got, []string{"A instance"})
}

func TestEqualityIsByIdentityForInstances(t *testing.T) {
	src := `class A {} var x = A(); var y = A(); print x == x; print x == y;`
	got := lines(run(t, src))
	assertLines(t, got, []string{"true", "false"})
}

func TestRuntimeErrorOnUndefinedVariable(t *testing.T) {
	toks := scanner.New(`print nope;`).ScanTokens()
	stmts, parseErrs := parser.New(toks).Parse()
	if parseErrs.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", parseErrs.Error())
	}
	locals, resolveErrs := resolver.Resolve(stmts)
	if resolveErrs.HasErrors() {
		t.Fatalf("unexpected resolve errors: %s", resolveErrs.Error())
	}
	var out bytes.Buffer
	h := heap.New(heap.DefaultThreshold)
	eval := New(h, &out)
	eval.SetLocals(locals)
	if err := eval.Interpret(stmts); err == nil {
		t.Fatal("expected a runtime error for an undefined variable")
	}
}

func TestGCReclaimsUnreachableEnvironmentsAcrossStatements(t *testing.T) {
	src := `fun noop() { var temp = "discarded"; } noop(); noop(); noop();`
	toks := scanner.New(src).ScanTokens()
	stmts, parseErrs := parser.New(toks).Parse()
	if parseErrs.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", parseErrs.Error())
	}
	locals, resolveErrs := resolver.Resolve(stmts)
	if resolveErrs.HasErrors() {
		t.Fatalf("unexpected resolve errors: %s", resolveErrs.Error())
	}
	var out bytes.Buffer
	h := heap.New(1) // force a cycle after every top-level statement
	eval := New(h, &out)
	eval.SetLocals(locals)
	if err := eval.Interpret(stmts); err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	h.Collect(eval.Globals.Ref)
	// Only the global frame plus noop's Function and Closure should remain
	// reachable; every call's throwaway environment should have been swept
	// away already, across three collection cycles (one per top-level call).
	if h.Count() != 3 {
		t.Fatalf("expected 3 surviving objects (global env, Function, Closure), got %d", h.Count())
	}
}

func assertLines(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d lines %v, want %d lines %v", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
