// Package heap implements the managed heap and mark–sweep garbage collector
// of §4.2. Every Environment, Function, Closure, NativeFunction, Class, and
// Instance used by the evaluator is allocated here and referenced elsewhere
// only by value.Ref — never by a Go pointer — so that collection is purely
// a bookkeeping exercise over one table, grounded directly in the reference
// implementation's GC (see _examples/original_source/GC.cpp): track on
// allocation, mark from a root environment, sweep anything left WHITE.
package heap

import (
	"fmt"
	"io"

	"github.com/golox-lang/golox/internal/value"
	"github.com/google/uuid"
)

// mark is the two-color scheme of §4.2: a GRAY phase is unnecessary because
// marking recurses directly (every reachable object is visited exactly
// once per cycle, via its object's mark field).
type mark uint8

const (
	white mark = iota
	black
)

// approxSize gives each kind a fixed nominal weight for the live-bytes
// counter (§4.2: "Live bytes counter is maintained with fixed per-kind
// sizes"). The exact numbers don't matter; only their relative order and the
// fact that they grow with live object count does.
var approxSize = map[Kind]int{
	KindEnvironment:    64,
	KindFunction:       48,
	KindClosure:        32,
	KindNativeFunction: 32,
	KindClass:          56,
	KindInstance:       56,
}

type object struct {
	kind Kind
	mark mark
	data any
}

// DefaultThreshold is the live-byte threshold below which a program never
// triggers a collection (§4.2: "small programs do not collect").
const DefaultThreshold = 1 << 20 // 1 MiB of nominal weight

// Heap is the managed heap: an allocation table plus a live-bytes counter
// that gates collection.
type Heap struct {
	objects   map[value.Ref]*object
	nextRef   value.Ref
	liveBytes int
	threshold int

	// Stderr receives "untracked memory" diagnostics (§4.2's failure mode:
	// marking a reference not present in the table is a bug, reported but
	// non-fatal) and, when Trace is enabled, one line per collection cycle.
	Stderr io.Writer
	Trace  bool

	// SessionID tags this heap instance in --trace diagnostics so that
	// multiple interpreter instances (a REPL and a concurrently-run script
	// in tests, say) can be told apart in shared log output.
	SessionID uuid.UUID
}

// New creates an empty Heap. threshold <= 0 uses DefaultThreshold.
func New(threshold int) *Heap {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Heap{
		objects:   make(map[value.Ref]*object),
		nextRef:   value.NilRef + 1,
		threshold: threshold,
		Stderr:    io.Discard,
		SessionID: uuid.New(),
	}
}

func (h *Heap) track(kind Kind, data any) value.Ref {
	ref := h.nextRef
	h.nextRef++
	h.objects[ref] = &object{kind: kind, mark: white, data: data}
	h.liveBytes += approxSize[kind]
	return ref
}

// Count returns the number of currently tracked objects, for --trace output
// and tests.
func (h *Heap) Count() int { return len(h.objects) }

// LiveBytes returns the current nominal live-byte total.
func (h *Heap) LiveBytes() int { return h.liveBytes }

// --- typed constructors -----------------------------------------------

// NewEnvironment allocates a fresh lexical frame. parent is value.NilRef for
// the global frame.
func (h *Heap) NewEnvironment(parent value.Ref, isGlobal bool) value.Ref {
	var store frameStore
	if isGlobal {
		store = newSwissFrame()
	} else {
		store = newOrderedFrame()
	}
	return h.track(KindEnvironment, &Environment{Parent: parent, IsGlobal: isGlobal, store: store})
}

// NewFunction allocates a heap.Function wrapping a resolved ast.Function.
func (h *Heap) NewFunction(fn *Function) value.Ref {
	return h.track(KindFunction, fn)
}

// NewClosure allocates a Closure over a Function and captured Environment.
func (h *Heap) NewClosure(c *Closure) value.Ref {
	return h.track(KindClosure, c)
}

// NewNativeFunction allocates a host-provided callable.
func (h *Heap) NewNativeFunction(n *NativeFunction) value.Ref {
	return h.track(KindNativeFunction, n)
}

// NewClass allocates a Class.
func (h *Heap) NewClass(c *Class) value.Ref {
	return h.track(KindClass, c)
}

// NewInstance allocates an Instance.
func (h *Heap) NewInstance(i *Instance) value.Ref {
	return h.track(KindInstance, i)
}

// --- typed accessors -----------------------------------------------

func (h *Heap) get(ref value.Ref, kind Kind) *object {
	obj, ok := h.objects[ref]
	if !ok || obj.kind != kind {
		return nil
	}
	return obj
}

// Environment resolves ref to its Environment, or nil if ref is stale or of
// the wrong kind (an interpreter bug if it ever happens).
func (h *Heap) Environment(ref value.Ref) *Environment {
	if obj := h.get(ref, KindEnvironment); obj != nil {
		return obj.data.(*Environment)
	}
	return nil
}

func (h *Heap) Function(ref value.Ref) *Function {
	if obj := h.get(ref, KindFunction); obj != nil {
		return obj.data.(*Function)
	}
	return nil
}

func (h *Heap) Closure(ref value.Ref) *Closure {
	if obj := h.get(ref, KindClosure); obj != nil {
		return obj.data.(*Closure)
	}
	return nil
}

func (h *Heap) NativeFunction(ref value.Ref) *NativeFunction {
	if obj := h.get(ref, KindNativeFunction); obj != nil {
		return obj.data.(*NativeFunction)
	}
	return nil
}

func (h *Heap) Class(ref value.Ref) *Class {
	if obj := h.get(ref, KindClass); obj != nil {
		return obj.data.(*Class)
	}
	return nil
}

func (h *Heap) Instance(ref value.Ref) *Instance {
	if obj := h.get(ref, KindInstance); obj != nil {
		return obj.data.(*Instance)
	}
	return nil
}

// ancestor walks exactly distance parent links starting at env, per §4.1's
// getAt/assignAt contract.
func (h *Heap) ancestor(env *Environment, distance int) *Environment {
	for i := 0; i < distance; i++ {
		env = h.Environment(env.Parent)
	}
	return env
}

// KindOf reports the kind tracked at ref and whether ref is live.
func (h *Heap) KindOf(ref value.Ref) (Kind, bool) {
	obj, ok := h.objects[ref]
	if !ok {
		return 0, false
	}
	return obj.kind, true
}

// Describe renders the canonical string form of §6 for a Value, resolving
// Callable/Instance references against the heap. Values that need no heap
// lookup are rendered directly via value.Value.LiteralString.
func (h *Heap) Describe(v value.Value) string {
	switch v.Kind {
	case value.KindCallable:
		return h.describeCallable(v.Ref)
	case value.KindInstance:
		inst := h.Instance(v.Ref)
		if inst == nil {
			return "<invalid instance>"
		}
		class := h.Class(inst.Class)
		if class == nil {
			return "<invalid instance>"
		}
		return fmt.Sprintf("%s instance", class.Name)
	default:
		return v.LiteralString()
	}
}

func (h *Heap) describeCallable(ref value.Ref) string {
	kind, ok := h.KindOf(ref)
	if !ok {
		return "<invalid callable>"
	}
	switch kind {
	case KindClass:
		return h.Class(ref).Name
	case KindNativeFunction:
		return "<native fn>"
	case KindClosure:
		closure := h.Closure(ref)
		fn := h.Function(closure.Function)
		return fmt.Sprintf("<fn %s>", fn.Decl.Name.Lexeme)
	default:
		return "<callable>"
	}
}
