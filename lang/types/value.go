// Package types defines the dynamically-typed value model shared by every
// variable slot, literal operand and data-stack entry in the interpreter.
package types

// Value is the interface implemented by every IPPcode19 runtime value: Int,
// Bool, String, Nil and Uninitialized.
type Value interface {
	// String returns the value's textual form. WRITE/DPRINT print it as is,
	// except for Nil, whose String is "nil" but which they print as "".
	String() string

	// Type returns the type tag reported by the TYPE opcode ("int", "bool",
	// "string", "nil", or "" for Uninitialized).
	Type() string
}

// Ordered is implemented by value types that support LT/GT comparison.
// Nil does not implement Ordered: ordering on Nil is undefined (§4.1).
type Ordered interface {
	Value

	// Cmp compares the receiver to y, which is guaranteed by the caller to be
	// of the same dynamic type. It returns negative, zero or positive as the
	// receiver is less than, equal to, or greater than y.
	Cmp(y Value) int
}
