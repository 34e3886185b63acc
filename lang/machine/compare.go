package machine

import (
	"github.com/jkopecky/ipp19exec/lang/ipperr"
	"github.com/jkopecky/ipp19exec/lang/types"
)

// orderedPair type-checks x and y for LT/GT: same dynamic type, drawn from
// {Int, Bool, String}; Nil is forbidden (§4.1).
func orderedPair(order int, opcode string, x, y types.Value) (types.Ordered, types.Value, error) {
	ox, ok := x.(types.Ordered)
	if !ok {
		return nil, nil, ipperr.At(ipperr.TypeMismatch, order, "%s: operand of type %s is not ordered", opcode, x.Type())
	}
	if x.Type() != y.Type() {
		return nil, nil, ipperr.At(ipperr.TypeMismatch, order, "%s: mismatched operand types %s and %s", opcode, x.Type(), y.Type())
	}
	return ox, y, nil
}

// less implements LT.
func less(order int, x, y types.Value) (bool, error) {
	ox, y, err := orderedPair(order, "LT", x, y)
	if err != nil {
		return false, err
	}
	return ox.Cmp(y) < 0, nil
}

// greater implements GT.
func greater(order int, x, y types.Value) (bool, error) {
	ox, y, err := orderedPair(order, "GT", x, y)
	if err != nil {
		return false, err
	}
	return ox.Cmp(y) > 0, nil
}

// equal implements EQ/JUMPIFEQ/JUMPIFNEQ: Nil is equal only to Nil, and
// unequal to every other value; mismatched non-Nil types are a type error
// (§4.1).
func equal(order int, x, y types.Value) (bool, error) {
	_, xNil := x.(types.NilType)
	_, yNil := y.(types.NilType)
	if xNil || yNil {
		return xNil && yNil, nil
	}

	if x.Type() != y.Type() {
		return false, ipperr.At(ipperr.TypeMismatch, order, "EQ: mismatched operand types %s and %s", x.Type(), y.Type())
	}

	switch xv := x.(type) {
	case types.Int:
		return xv == y.(types.Int), nil
	case types.Bool:
		return xv == y.(types.Bool), nil
	case types.String:
		return xv == y.(types.String), nil
	default:
		return false, ipperr.At(ipperr.TypeMismatch, order, "EQ: uncomparable operand type %s", x.Type())
	}
}
