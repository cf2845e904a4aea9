package heap

import (
	"fmt"

	"github.com/golox-lang/golox/internal/value"
)

// RunFromEnv runs one mark–sweep cycle rooted at rootEnv if the live-byte
// count has crossed the configured threshold; otherwise it is a no-op
// (§4.2: "The collector runs only when live bytes exceed a configurable
// threshold"). It always returns the number of objects freed (zero if the
// cycle did not run).
func (h *Heap) RunFromEnv(rootEnv value.Ref) int {
	if h.liveBytes < h.threshold {
		return 0
	}
	h.mark(rootEnv, KindEnvironment)
	freed := h.sweep()
	if h.Trace {
		fmt.Fprintf(h.Stderr, "gc[%s]: collected %d objects, %d bytes live\n", h.SessionID, freed, h.liveBytes)
	}
	return freed
}

// Collect forces a cycle regardless of the threshold, for tests. It writes
// no trace line.
func (h *Heap) Collect(rootEnv value.Ref) int {
	h.mark(rootEnv, KindEnvironment)
	return h.sweep()
}

// mark paints ref and everything reachable from it BLACK. It is safe to call
// on a NilRef (a no-op) and idempotent (an already-BLACK object is not
// revisited, which is what makes cycles terminate).
func (h *Heap) mark(ref value.Ref, kind Kind) {
	if ref == value.NilRef {
		return
	}
	obj, ok := h.objects[ref]
	if !ok {
		fmt.Fprintf(h.Stderr, "gc: mark of untracked reference %d (kind %s)\n", ref, kind)
		return
	}
	if obj.mark == black {
		return
	}
	obj.mark = black

	switch obj.kind {
	case KindEnvironment:
		env := obj.data.(*Environment)
		env.store.forEach(func(v value.Value) { h.markValue(v) })
		h.mark(env.Parent, KindEnvironment)
	case KindFunction:
		fn := obj.data.(*Function)
		for _, nested := range fn.Nested {
			h.mark(nested, KindFunction)
		}
	case KindClosure:
		closure := obj.data.(*Closure)
		h.mark(closure.Function, KindFunction)
		h.mark(closure.Env, KindEnvironment)
	case KindClass:
		class := obj.data.(*Class)
		h.mark(class.Superclass, KindClass)
		for _, m := range class.Methods {
			h.mark(m, KindClosure)
		}
	case KindInstance:
		inst := obj.data.(*Instance)
		h.mark(inst.Class, KindClass)
		for _, f := range inst.Fields {
			h.markValue(f)
		}
	case KindNativeFunction:
		// leaf: nothing further to mark.
	}
}

// markValue marks the heap object a Value refers to, if any.
func (h *Heap) markValue(v value.Value) {
	switch v.Kind {
	case value.KindCallable:
		if kind, ok := h.KindOf(v.Ref); ok {
			h.mark(v.Ref, kind)
		}
	case value.KindInstance:
		h.mark(v.Ref, KindInstance)
	}
}

// sweep destroys every WHITE object and repaints survivors WHITE in
// preparation for the next cycle (§4.2's tri-state-free scheme: only
// WHITE/BLACK ever exist between cycles).
func (h *Heap) sweep() int {
	freed := 0
	for ref, obj := range h.objects {
		if obj.mark == white {
			h.liveBytes -= approxSize[obj.kind]
			delete(h.objects, ref)
			freed++
			continue
		}
		obj.mark = white
	}
	if h.liveBytes < 0 {
		h.liveBytes = 0
	}
	return freed
}
