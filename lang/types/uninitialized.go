package types

// UninitializedType is the state of a declared but never-assigned variable
// slot. It is a distinct Value variant so that TYPE can report "" without
// resorting to a sentinel error or a nil interface (§3, §9).
type UninitializedType byte

// Uninitialized is the value every DEFVAR slot holds until its first MOVE,
// READ or other write.
const Uninitialized = UninitializedType(0)

var _ Value = Uninitialized

func (UninitializedType) String() string { return "" }
func (UninitializedType) Type() string   { return "" }
