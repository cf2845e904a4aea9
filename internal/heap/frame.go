package heap

import (
	"github.com/dolthub/swiss"
	"github.com/golox-lang/golox/internal/value"
)

// frameStore is the storage strategy behind an Environment's name→Value
// mapping (§3.2: "an insertion-ordered mapping from name → Value"). Two
// implementations exist: orderedFrame (the default, used by every non-global
// frame) preserves insertion order; swissFrame (used only for the single
// global frame, see SPEC_FULL.md §5) trades that ordering guarantee for
// faster hashing on the one frame expected to grow large and be probed
// repeatedly over a long REPL session. Nothing in the language or CLI
// iterates a frame's bindings in insertion order, so the global frame's
// relaxation is never observable.
type frameStore interface {
	get(name string) (value.Value, bool)
	set(name string, v value.Value) bool
	define(name string, v value.Value)
	forEach(func(v value.Value))
}

// orderedFrame is a small insertion-ordered string-keyed map.
type orderedFrame struct {
	index map[string]int
	keys  []string
	vals  []value.Value
}

func newOrderedFrame() *orderedFrame {
	return &orderedFrame{index: make(map[string]int)}
}

func (f *orderedFrame) get(name string) (value.Value, bool) {
	i, ok := f.index[name]
	if !ok {
		return value.Nil, false
	}
	return f.vals[i], true
}

func (f *orderedFrame) set(name string, v value.Value) bool {
	i, ok := f.index[name]
	if !ok {
		return false
	}
	f.vals[i] = v
	return true
}

func (f *orderedFrame) define(name string, v value.Value) {
	if i, ok := f.index[name]; ok {
		f.vals[i] = v
		return
	}
	f.index[name] = len(f.keys)
	f.keys = append(f.keys, name)
	f.vals = append(f.vals, v)
}

func (f *orderedFrame) forEach(fn func(v value.Value)) {
	for _, v := range f.vals {
		fn(v)
	}
}

// swissFrame backs the global environment with a dolthub/swiss hash table.
type swissFrame struct {
	m *swiss.Map[string, value.Value]
}

func newSwissFrame() *swissFrame {
	return &swissFrame{m: swiss.NewMap[string, value.Value](64)}
}

func (f *swissFrame) get(name string) (value.Value, bool) {
	return f.m.Get(name)
}

func (f *swissFrame) set(name string, v value.Value) bool {
	if _, ok := f.m.Get(name); !ok {
		return false
	}
	f.m.Put(name, v)
	return true
}

func (f *swissFrame) define(name string, v value.Value) {
	f.m.Put(name, v)
}

func (f *swissFrame) forEach(fn func(v value.Value)) {
	f.m.Iter(func(_ string, v value.Value) bool {
		fn(v)
		return false
	})
}
