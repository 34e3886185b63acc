package machine

import (
	"github.com/jkopecky/ipp19exec/lang/ipperr"
	"github.com/jkopecky/ipp19exec/lang/program"
	"github.com/jkopecky/ipp19exec/lang/types"
)

// pops implements POPS var: the top of the data stack is popped into var.
// Error 56 if the stack is empty (SPEC_FULL.md opcode addendum).
func (ex *Executor) pops(order int, dst string) error {
	v, ok := ex.Data.Pop()
	if !ok {
		return ipperr.At(ipperr.MissingValue, order, "POPS: data stack is empty")
	}
	return ex.Frames.Assign(order, dst, v)
}

// popOperand pops one value off the data stack, classifying an empty stack
// as error 56 — the same class PUSHS/POPS already use for stack underflow.
func (ex *Executor) popOperand(order int, opName string) (types.Value, error) {
	v, ok := ex.Data.Pop()
	if !ok {
		return nil, ipperr.At(ipperr.MissingValue, order, "%s: data stack is empty", opName)
	}
	return v, nil
}

// arithS implements the stack-operand ADDS/SUBS/MULS/IDIVS: pop y then x,
// push the result of applying op to x and y, in that order (SPEC_FULL.md
// opcode addendum; not present in original_source/, added as a plausible
// IPPcode19 extension of the two-operand form).
func (ex *Executor) arithS(order int, op program.Opcode) error {
	y, err := ex.popOperand(order, op.String())
	if err != nil {
		return err
	}
	x, err := ex.popOperand(order, op.String())
	if err != nil {
		return err
	}
	xi, ok := x.(types.Int)
	if !ok {
		return ipperr.At(ipperr.TypeMismatch, order, "%s: operand must be int, got %s", op, x.Type())
	}
	yi, ok := y.(types.Int)
	if !ok {
		return ipperr.At(ipperr.TypeMismatch, order, "%s: operand must be int, got %s", op, y.Type())
	}
	result, err := applyArith(order, stackOpcodeBase(op), xi, yi)
	if err != nil {
		return err
	}
	ex.Data.Push(result)
	return nil
}

// stackOpcodeBase maps a stack-operand opcode to the three-operand opcode
// that implements the same operation, so arithS/relationalS can reuse
// applyArith/applyRelational directly.
func stackOpcodeBase(op program.Opcode) program.Opcode {
	switch op {
	case program.ADDS:
		return program.ADD
	case program.SUBS:
		return program.SUB
	case program.MULS:
		return program.MUL
	case program.IDIVS:
		return program.IDIV
	case program.LTS:
		return program.LT
	case program.GTS:
		return program.GT
	case program.EQS:
		return program.EQ
	default:
		return op
	}
}

func (ex *Executor) relationalS(order int, op program.Opcode) error {
	y, err := ex.popOperand(order, op.String())
	if err != nil {
		return err
	}
	x, err := ex.popOperand(order, op.String())
	if err != nil {
		return err
	}
	result, err := applyRelational(order, stackOpcodeBase(op), x, y)
	if err != nil {
		return err
	}
	ex.Data.Push(types.Bool(result))
	return nil
}

func (ex *Executor) boolOpS(order int, op program.Opcode) error {
	y, err := ex.popOperand(order, op.String())
	if err != nil {
		return err
	}
	x, err := ex.popOperand(order, op.String())
	if err != nil {
		return err
	}
	xb, ok := x.(types.Bool)
	if !ok {
		return ipperr.At(ipperr.TypeMismatch, order, "%s: operand must be bool, got %s", op, x.Type())
	}
	yb, ok := y.(types.Bool)
	if !ok {
		return ipperr.At(ipperr.TypeMismatch, order, "%s: operand must be bool, got %s", op, y.Type())
	}
	var result types.Bool
	if op == program.ANDS {
		result = xb && yb
	} else {
		result = xb || yb
	}
	ex.Data.Push(result)
	return nil
}

func (ex *Executor) notS(order int) error {
	x, err := ex.popOperand(order, "NOTS")
	if err != nil {
		return err
	}
	b, ok := x.(types.Bool)
	if !ok {
		return ipperr.At(ipperr.TypeMismatch, order, "NOTS: operand must be bool, got %s", x.Type())
	}
	ex.Data.Push(!b)
	return nil
}

func (ex *Executor) int2charS(order int) error {
	x, err := ex.popOperand(order, "INT2CHARS")
	if err != nil {
		return err
	}
	n, ok := x.(types.Int)
	if !ok {
		return ipperr.At(ipperr.TypeMismatch, order, "INT2CHARS: operand must be int, got %s", x.Type())
	}
	s, err := int2char(order, n)
	if err != nil {
		return err
	}
	ex.Data.Push(s)
	return nil
}

func (ex *Executor) stri2intS(order int) error {
	idxVal, err := ex.popOperand(order, "STRI2INTS")
	if err != nil {
		return err
	}
	strVal, err := ex.popOperand(order, "STRI2INTS")
	if err != nil {
		return err
	}
	s, ok := strVal.(types.String)
	if !ok {
		return ipperr.At(ipperr.TypeMismatch, order, "STRI2INTS: operand must be string, got %s", strVal.Type())
	}
	idx, ok := idxVal.(types.Int)
	if !ok {
		return ipperr.At(ipperr.TypeMismatch, order, "STRI2INTS: index must be int, got %s", idxVal.Type())
	}
	r, err := stri2int(order, s, int(idx))
	if err != nil {
		return err
	}
	ex.Data.Push(r)
	return nil
}

// jumpIfS implements JUMPIFEQS/JUMPIFNEQS: pop y then x and jump to label if
// their equality matches wantEqual.
func (ex *Executor) jumpIfS(order int, label string, wantEqual bool) (bool, int, error) {
	y, err := ex.popOperand(order, "JUMPIFEQS")
	if err != nil {
		return false, 0, err
	}
	x, err := ex.popOperand(order, "JUMPIFEQS")
	if err != nil {
		return false, 0, err
	}
	eq, err := equal(order, x, y)
	if err != nil {
		return false, 0, err
	}
	if eq != wantEqual {
		return false, 0, nil
	}
	return ex.jumpTo(order, label)
}
