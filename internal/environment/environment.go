// Package environment is a thin convenience wrapper around heap.Environment
// (§4.1), mirroring the teacher's split between internal/interp's
// Environment alias and internal/interp/runtime's actual implementation: the
// evaluator imports this package rather than reaching into internal/heap
// directly, so the lexical-frame API it depends on reads as its own
// vocabulary (New/NewEnclosed/Get/Define/Assign/GetAt/AssignAt) independent
// of how frames happen to be garbage collected.
package environment

import (
	"github.com/golox-lang/golox/internal/heap"
	"github.com/golox-lang/golox/internal/value"
)

// Chain pairs a heap with the Ref of one particular environment in it, so
// callers needing only frame access don't have to thread both around
// separately.
type Chain struct {
	Heap *heap.Heap
	Ref  value.Ref
}

// New allocates the single root/global environment.
func New(h *heap.Heap) Chain {
	return Chain{Heap: h, Ref: h.NewEnvironment(value.NilRef, true)}
}

// NewEnclosed allocates a child frame scoped inside c.
func (c Chain) NewEnclosed() Chain {
	return Chain{Heap: c.Heap, Ref: c.Heap.NewEnvironment(c.Ref, false)}
}

func (c Chain) frame() *heap.Environment { return c.Heap.Environment(c.Ref) }

// Define binds name in this frame, shadowing any inherited binding.
func (c Chain) Define(name string, v value.Value) {
	c.frame().Define(name, v)
}

// Get searches this frame then walks the parent chain.
func (c Chain) Get(name string) (value.Value, bool) {
	return c.frame().Get(c.Heap, name)
}

// Assign updates an existing binding anywhere in the parent chain, reporting
// whether it found one.
func (c Chain) Assign(name string, v value.Value) bool {
	return c.frame().Assign(c.Heap, name, v)
}

// GetAt walks exactly distance parent links, then reads name there with no
// fallback search (§4.1, used for every resolver-annotated access).
func (c Chain) GetAt(distance int, name string) (value.Value, bool) {
	return c.frame().GetAt(c.Heap, distance, name)
}

// AssignAt walks exactly distance parent links, then writes name there with
// no fallback search.
func (c Chain) AssignAt(distance int, name string, v value.Value) bool {
	return c.frame().AssignAt(c.Heap, distance, name, v)
}
