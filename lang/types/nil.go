package types

// NilType is the type of Nil. Its only legal value is Nil, represented as a
// byte (not struct{}) so that Nil remains a usable map key and constant.
type NilType byte

// Nil is the sole inhabitant of type nil.
const Nil = NilType(0)

var _ Value = Nil

func (NilType) String() string { return "nil" }
func (NilType) Type() string   { return "nil" }
