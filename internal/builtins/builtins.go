// Package builtins registers the native functions §6 exposes to user code:
// a single `clock()` returning seconds since a fixed epoch as a Number.
package builtins

import (
	"github.com/golox-lang/golox/internal/environment"
	"github.com/golox-lang/golox/internal/heap"
	"github.com/golox-lang/golox/internal/value"
)

// Register defines every built-in in globals. now is injected rather than
// calling time.Now directly so tests can supply a deterministic clock.
func Register(h *heap.Heap, globals environment.Chain, now func() float64) {
	clockRef := h.NewNativeFunction(&heap.NativeFunction{
		Name:  "clock",
		Arity: 0,
		Fn: func(args []value.Value) (value.Value, error) {
			return value.Number(now()), nil
		},
	})
	globals.Define("clock", value.Callable(clockRef))
}
