package machine

import "github.com/jkopecky/ipp19exec/lang/types"

// DataStack backs PUSHS/POPS and the stack-operand (*S) opcode family
// (SPEC_FULL.md's opcode addendum).
type DataStack struct {
	vals []types.Value
}

// Push appends v to the top of the stack.
func (ds *DataStack) Push(v types.Value) {
	ds.vals = append(ds.vals, v)
}

// Pop removes and returns the top value. ok is false if the stack is empty.
func (ds *DataStack) Pop() (types.Value, bool) {
	n := len(ds.vals)
	if n == 0 {
		return nil, false
	}
	v := ds.vals[n-1]
	ds.vals = ds.vals[:n-1]
	return v, true
}

// Clear empties the stack (CLEARS).
func (ds *DataStack) Clear() {
	ds.vals = ds.vals[:0]
}

// Len reports the current depth, for diagnostics.
func (ds *DataStack) Len() int { return len(ds.vals) }
