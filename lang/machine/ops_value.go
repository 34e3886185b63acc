package machine

import (
	"unicode/utf8"

	"github.com/jkopecky/ipp19exec/lang/ipperr"
	"github.com/jkopecky/ipp19exec/lang/program"
	"github.com/jkopecky/ipp19exec/lang/types"
)

func (ex *Executor) int2char(order int, dst string, symb program.Operand) error {
	v, err := ex.readSymb(order, symb)
	if err != nil {
		return err
	}
	n, ok := v.(types.Int)
	if !ok {
		return ipperr.At(ipperr.TypeMismatch, order, "INT2CHAR: operand must be int, got %s", v.Type())
	}
	s, err := int2char(order, n)
	if err != nil {
		return err
	}
	return ex.Frames.Assign(order, dst, s)
}

func int2char(order int, n types.Int) (types.String, error) {
	r := rune(n)
	if !utf8.ValidRune(r) {
		return "", ipperr.At(ipperr.StringRange, order, "INT2CHAR: %d is not a valid code point", n)
	}
	return types.String(r), nil
}

func (ex *Executor) strlen(order int, dst string, symb program.Operand) error {
	v, err := ex.readSymb(order, symb)
	if err != nil {
		return err
	}
	s, ok := v.(types.String)
	if !ok {
		return ipperr.At(ipperr.TypeMismatch, order, "STRLEN: operand must be string, got %s", v.Type())
	}
	return ex.Frames.Assign(order, dst, types.Int(s.Len()))
}

func (ex *Executor) typeOf(order int, dst string, symb program.Operand) error {
	var tag string
	switch symb.Kind {
	case program.Var:
		v, err := ex.Frames.Read(order, symb.Text)
		if err != nil {
			return err
		}
		tag = v.Type()
	default:
		v, err := ex.readSymb(order, symb)
		if err != nil {
			return err
		}
		tag = v.Type()
	}
	return ex.Frames.Assign(order, dst, types.String(tag))
}

func (ex *Executor) not(order int, dst string, symb program.Operand) error {
	v, err := ex.readSymb(order, symb)
	if err != nil {
		return err
	}
	b, ok := v.(types.Bool)
	if !ok {
		return ipperr.At(ipperr.TypeMismatch, order, "NOT: operand must be bool, got %s", v.Type())
	}
	return ex.Frames.Assign(order, dst, !b)
}

func (ex *Executor) arith(order int, op program.Opcode, dst string, a, b program.Operand) error {
	x, err := ex.readSymb(order, a)
	if err != nil {
		return err
	}
	y, err := ex.readSymb(order, b)
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
	result, err := applyArith(order, op, xi, yi)
	if err != nil {
		return err
	}
	return ex.Frames.Assign(order, dst, result)
}

func applyArith(order int, op program.Opcode, x, y types.Int) (types.Int, error) {
	switch op {
	case program.ADD:
		return x + y, nil
	case program.SUB:
		return x - y, nil
	case program.MUL:
		return x * y, nil
	case program.IDIV:
		if y == 0 {
			return 0, ipperr.At(ipperr.BadOperand, order, "IDIV: division by zero")
		}
		return x / y, nil // Go's integer division truncates toward zero
	default:
		return 0, ipperr.At(ipperr.InvalidStructure, order, "not an arithmetic opcode: %s", op)
	}
}

func (ex *Executor) relational(order int, op program.Opcode, dst string, a, b program.Operand) error {
	x, err := ex.readSymb(order, a)
	if err != nil {
		return err
	}
	y, err := ex.readSymb(order, b)
	if err != nil {
		return err
	}
	result, err := applyRelational(order, op, x, y)
	if err != nil {
		return err
	}
	return ex.Frames.Assign(order, dst, types.Bool(result))
}

func applyRelational(order int, op program.Opcode, x, y types.Value) (bool, error) {
	switch op {
	case program.LT:
		return less(order, x, y)
	case program.GT:
		return greater(order, x, y)
	case program.EQ:
		return equal(order, x, y)
	default:
		return false, ipperr.At(ipperr.InvalidStructure, order, "not a relational opcode: %s", op)
	}
}

func (ex *Executor) boolOp(order int, op program.Opcode, dst string, a, b program.Operand) error {
	x, err := ex.readSymb(order, a)
	if err != nil {
		return err
	}
	y, err := ex.readSymb(order, b)
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
	if op == program.AND {
		result = xb && yb
	} else {
		result = xb || yb
	}
	return ex.Frames.Assign(order, dst, result)
}

func (ex *Executor) stri2int(order int, dst string, strOp, idxOp program.Operand) error {
	s, idx, err := ex.stringAndIndex(order, "STRI2INT", strOp, idxOp)
	if err != nil {
		return err
	}
	r, err := stri2int(order, s, idx)
	if err != nil {
		return err
	}
	return ex.Frames.Assign(order, dst, r)
}

func stri2int(order int, s types.String, idx int) (types.Int, error) {
	runes := s.Runes()
	if idx < 0 || idx >= len(runes) {
		return 0, ipperr.At(ipperr.StringRange, order, "STRI2INT: index %d out of range for string of length %d", idx, len(runes))
	}
	return types.Int(runes[idx]), nil
}

func (ex *Executor) concat(order int, dst string, a, b program.Operand) error {
	x, err := ex.readSymb(order, a)
	if err != nil {
		return err
	}
	y, err := ex.readSymb(order, b)
	if err != nil {
		return err
	}
	xs, ok := x.(types.String)
	if !ok {
		return ipperr.At(ipperr.TypeMismatch, order, "CONCAT: operand must be string, got %s", x.Type())
	}
	ys, ok := y.(types.String)
	if !ok {
		return ipperr.At(ipperr.TypeMismatch, order, "CONCAT: operand must be string, got %s", y.Type())
	}
	return ex.Frames.Assign(order, dst, xs+ys)
}

func (ex *Executor) getChar(order int, dst string, strOp, idxOp program.Operand) error {
	s, idx, err := ex.stringAndIndex(order, "GETCHAR", strOp, idxOp)
	if err != nil {
		return err
	}
	r, err := getChar(order, s, idx)
	if err != nil {
		return err
	}
	return ex.Frames.Assign(order, dst, r)
}

func getChar(order int, s types.String, idx int) (types.String, error) {
	runes := s.Runes()
	if idx < 0 || idx >= len(runes) {
		return "", ipperr.At(ipperr.StringRange, order, "GETCHAR: index %d out of range for string of length %d", idx, len(runes))
	}
	return types.String(runes[idx]), nil
}

func (ex *Executor) setChar(order int, dst string, idxOp, replOp program.Operand) error {
	target, err := ex.Frames.Read(order, dst)
	if err != nil {
		return err
	}
	if _, ok := target.(types.UninitializedType); ok {
		return ipperr.At(ipperr.MissingValue, order, "SETCHAR: variable %s is not initialized", dst)
	}
	s, ok := target.(types.String)
	if !ok {
		return ipperr.At(ipperr.TypeMismatch, order, "SETCHAR: target must be string, got %s", target.Type())
	}

	idxVal, err := ex.readSymb(order, idxOp)
	if err != nil {
		return err
	}
	idx, ok := idxVal.(types.Int)
	if !ok {
		return ipperr.At(ipperr.TypeMismatch, order, "SETCHAR: index must be int, got %s", idxVal.Type())
	}

	replVal, err := ex.readSymb(order, replOp)
	if err != nil {
		return err
	}
	repl, ok := replVal.(types.String)
	if !ok {
		return ipperr.At(ipperr.TypeMismatch, order, "SETCHAR: replacement must be string, got %s", replVal.Type())
	}

	result, err := setChar(order, s, int(idx), repl)
	if err != nil {
		return err
	}
	return ex.Frames.Assign(order, dst, result)
}

// setChar replaces the code point at position idx in s with the first code
// point of repl, preserving every character before idx (§9 — the source
// interpreter this is modeled on spliced at idx-1, which is a defect this
// implementation corrects).
func setChar(order int, s types.String, idx int, repl types.String) (types.String, error) {
	if repl == "" {
		return "", ipperr.At(ipperr.StringRange, order, "SETCHAR: replacement string is empty")
	}
	runes := s.Runes()
	if idx < 0 || idx >= len(runes) {
		return "", ipperr.At(ipperr.StringRange, order, "SETCHAR: index %d out of range for string of length %d", idx, len(runes))
	}
	runes[idx] = repl.Runes()[0]
	return types.String(runes), nil
}

func (ex *Executor) stringAndIndex(order int, opName string, strOp, idxOp program.Operand) (types.String, int, error) {
	sv, err := ex.readSymb(order, strOp)
	if err != nil {
		return "", 0, err
	}
	s, ok := sv.(types.String)
	if !ok {
		return "", 0, ipperr.At(ipperr.TypeMismatch, order, "%s: first operand must be string, got %s", opName, sv.Type())
	}
	iv, err := ex.readSymb(order, idxOp)
	if err != nil {
		return "", 0, err
	}
	idx, ok := iv.(types.Int)
	if !ok {
		return "", 0, ipperr.At(ipperr.TypeMismatch, order, "%s: index must be int, got %s", opName, iv.Type())
	}
	return s, int(idx), nil
}

func (ex *Executor) jumpIf(order int, label string, a, b program.Operand, wantEqual bool) (bool, int, error) {
	x, err := ex.readSymb(order, a)
	if err != nil {
		return false, 0, err
	}
	y, err := ex.readSymb(order, b)
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
