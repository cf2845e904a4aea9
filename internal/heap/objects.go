package heap

import (
	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/value"
)

// Kind tags which of the six heap object shapes a tracked allocation holds
// (§3.2).
type Kind uint8

const (
	KindEnvironment Kind = iota
	KindFunction
	KindClosure
	KindNativeFunction
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindEnvironment:
		return "environment"
	case KindFunction:
		return "function"
	case KindClosure:
		return "closure"
	case KindNativeFunction:
		return "native function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// Environment is a lexical frame: an optional parent plus a name→Value
// mapping. The global frame (IsGlobal) has no parent (§3.2).
type Environment struct {
	Parent   value.Ref
	IsGlobal bool
	store    frameStore
}

// Get searches this frame then walks the parent chain.
func (e *Environment) Get(h *Heap, name string) (value.Value, bool) {
	if v, ok := e.store.get(name); ok {
		return v, true
	}
	if e.Parent != value.NilRef {
		return h.Environment(e.Parent).Get(h, name)
	}
	return value.Nil, false
}

// Assign updates an existing binding, searching the parent chain. It reports
// whether the name was found anywhere in the chain.
func (e *Environment) Assign(h *Heap, name string, v value.Value) bool {
	if e.store.set(name, v) {
		return true
	}
	if e.Parent != value.NilRef {
		return h.Environment(e.Parent).Assign(h, name, v)
	}
	return false
}

// Define unconditionally binds name in this frame, shadowing any inherited
// binding.
func (e *Environment) Define(name string, v value.Value) {
	e.store.define(name, v)
}

// GetAt walks exactly distance parent links from e, then reads name in that
// frame with no fallback search (§4.1: used for every resolver-annotated
// access). ok is false only if the resolver's distance was wrong — a bug,
// since a correctly resolved distance always names an existing binding.
func (e *Environment) GetAt(h *Heap, distance int, name string) (value.Value, bool) {
	return h.ancestor(e, distance).store.get(name)
}

// AssignAt walks exactly distance parent links from e, then writes name in
// that frame with no fallback search.
func (e *Environment) AssignAt(h *Heap, distance int, name string, v value.Value) bool {
	return h.ancestor(e, distance).store.set(name, v)
}

// Function is the compiled form of a function or method declaration: its
// name, parameters, and body, plus the list of Functions lexically nested in
// its body (populated by the resolver, §4.3/§9) so the GC can reach them
// transitively through their enclosing Function even before any Closure
// captures them.
type Function struct {
	Decl   *ast.Function
	Nested []value.Ref // heap.Function refs, mirrors Decl.NestedFunctions
}

// Closure (the spec's "LoxFn") pairs a Function with the environment
// captured at its definition site. IsInitializer marks a class's "init"
// method, whose call protocol returns the instance rather than its body's
// return value (§4.5).
type Closure struct {
	Function      value.Ref
	Env           value.Ref
	IsInitializer bool
}

// NativeFunction is a host-provided callable (only `clock` is required by
// §6, but the shape is general: any arity and Go function will do).
type NativeFunction struct {
	Name  string
	Arity int
	Fn    func(args []value.Value) (value.Value, error)
}

// Class has a name, an optional superclass, and its own methods (inherited
// methods are found by walking Superclass at lookup time, not copied in).
type Class struct {
	Name       string
	Superclass value.Ref // value.NilRef if there is none
	Methods    map[string]value.Ref
}

// Instance is an object: a Class plus mutable fields.
type Instance struct {
	Class  value.Ref
	Fields map[string]value.Value
}
