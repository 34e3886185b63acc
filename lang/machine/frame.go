package machine

import (
	"github.com/dolthub/swiss"

	"github.com/jkopecky/ipp19exec/lang/types"
)

// Frame is a mapping from identifier to variable slot (§3). Each slot begins
// Uninitialized at definition. Frame is backed by a SwissTable map, which
// fits its access pattern well: flat string keys, no ordering requirement,
// frequent point lookups during instruction dispatch.
type Frame struct {
	slots *swiss.Map[string, types.Value]
}

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{slots: swiss.NewMap[string, types.Value](8)}
}

// Has reports whether id is already defined in the frame.
func (f *Frame) Has(id string) bool {
	_, ok := f.slots.Get(id)
	return ok
}

// Define creates a new Uninitialized slot for id. The caller must check Has
// first; Define does not itself enforce uniqueness.
func (f *Frame) Define(id string) {
	f.slots.Put(id, types.Uninitialized)
}

// Assign overwrites id's slot. ok is false if id is not defined.
func (f *Frame) Assign(id string, v types.Value) bool {
	if !f.Has(id) {
		return false
	}
	f.slots.Put(id, v)
	return true
}

// Get returns id's current value. ok is false if id is not defined.
func (f *Frame) Get(id string) (types.Value, bool) {
	return f.slots.Get(id)
}

// Count returns the number of variables defined in the frame, for
// diagnostics (BREAK, --vars).
func (f *Frame) Count() int { return f.slots.Count() }
