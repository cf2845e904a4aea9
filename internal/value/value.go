// Package value implements the tagged-union runtime Value of §3.1.
//
// Per the redesign note in spec §9 ("a cleaner design allocates Environments
// and heap objects in a single arena owned by the interpreter; Values carry
// indices into the arena, not pointers"), a Value never holds a Go pointer
// into heap-managed memory. Callable and Instance values carry a Ref, a
// small integer handle that the heap package resolves against its own
// allocation table. This keeps Value a plain comparable struct: Go's `==`
// operator already implements the equality contract of §4.6 (Nil equals
// only Nil; Bool/Number/String by value; Callable/Instance by identity,
// i.e. by Ref equality) with no custom Equals method required.
package value

import (
	"math"
	"strconv"
)

// Kind tags which alternative of the Value union is populated.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindCallable
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindCallable:
		return "callable"
	case KindInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// Ref is a handle into the managed heap (package heap). It is meaningless on
// its own; only the heap that allocated it can resolve it to an object.
type Ref uint32

// NilRef is never a valid allocation; it is used as the zero value for Refs
// that are not populated (every non-Callable/Instance Value has Ref == NilRef).
const NilRef Ref = 0

// Value is the tagged union of §3.1. It is intentionally small and entirely
// comparable so that Value equality is just Go struct equality.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Str    string
	Ref    Ref
}

// Nil is the unit value.
var Nil = Value{Kind: KindNil}

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Number wraps a float64.
func Number(n float64) Value { return Value{Kind: KindNumber, Number: n} }

// String wraps a string.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Callable wraps a heap reference to a Function, Closure, NativeFunction, or
// Class (§3.1's "Callable reference").
func Callable(ref Ref) Value { return Value{Kind: KindCallable, Ref: ref} }

// Instance wraps a heap reference to a class instance.
func Instance(ref Ref) Value { return Value{Kind: KindInstance, Ref: ref} }

// IsTruthy implements §4.6: every value is truthy except Nil and false.
func (v Value) IsTruthy() bool {
	if v.Kind == KindNil {
		return false
	}
	if v.Kind == KindBool {
		return v.Bool
	}
	return true
}

// IsNil reports whether v is the unit value.
func (v Value) IsNil() bool { return v.Kind == KindNil }

// IsNumber, IsString, IsCallable, IsInstance are convenience type tests used
// throughout the evaluator's operand checks.
func (v Value) IsNumber() bool   { return v.Kind == KindNumber }
func (v Value) IsString() bool   { return v.Kind == KindString }
func (v Value) IsCallable() bool { return v.Kind == KindCallable }
func (v Value) IsInstance() bool { return v.Kind == KindInstance }

// LiteralString renders a value that needs no heap lookup (anything but
// Callable/Instance) using the canonical form of §6. Callable and Instance
// values must be rendered by the heap (their description depends on the
// object they reference), via heap.Heap.Describe.
func (v Value) LiteralString() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.Number)
	case KindString:
		return v.Str
	default:
		return "<heap value>"
	}
}

// formatNumber renders a float64 the way §6 requires: no trailing zeros on
// whole-number values (e.g. "3" rather than "3.000000"), otherwise the
// shortest round-tripping decimal representation.
func formatNumber(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
