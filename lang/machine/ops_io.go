package machine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jkopecky/ipp19exec/lang/ipperr"
	"github.com/jkopecky/ipp19exec/lang/program"
	"github.com/jkopecky/ipp19exec/lang/types"
)

// render formats v exactly as WRITE/DPRINT must (§4.5): Bool as true/false,
// Nil as empty string, String as its decoded text, Int as decimal.
func render(v types.Value) string {
	switch vv := v.(type) {
	case types.NilType:
		return ""
	default:
		return vv.String()
	}
}

func (ex *Executor) write(order int, symb program.Operand) error {
	v, err := ex.readSymb(order, symb)
	if err != nil {
		return err
	}
	fmt.Fprint(ex.stdout, render(v))
	return nil
}

func (ex *Executor) dprint(order int, symb program.Operand) error {
	v, err := ex.readSymb(order, symb)
	if err != nil {
		return err
	}
	fmt.Fprint(ex.stderr, render(v))
	return nil
}

func (ex *Executor) exit(order int, symb program.Operand) (int, error) {
	v, err := ex.readSymb(order, symb)
	if err != nil {
		return 0, err
	}
	n, ok := v.(types.Int)
	if !ok {
		return 0, ipperr.At(ipperr.TypeMismatch, order, "EXIT: operand must be int, got %s", v.Type())
	}
	if n < 0 || n > 49 {
		return 0, ipperr.At(ipperr.BadOperand, order, "EXIT: code %d out of range [0, 49]", n)
	}
	return int(n), nil
}

func (ex *Executor) move(order int, dst string, src program.Operand) error {
	v, err := ex.readSymb(order, src)
	if err != nil {
		return err
	}
	return ex.Frames.Assign(order, dst, v)
}

// read implements READ var type (§4.5): a line is read from the input
// stream and converted per typeName, defaulting on failure or EOF.
func (ex *Executor) read(order int, dst, typeName string) error {
	// EOF yields an empty line, which each conversion below already defaults
	// correctly on (§4.5, §8).
	line, _ := ex.stdin.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")

	var v types.Value
	switch typeName {
	case "int":
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			n = 0
		}
		v = types.Int(n)
	case "bool":
		v = types.Bool(strings.EqualFold(line, "true"))
	case "string":
		v = types.String(line)
	default:
		return ipperr.At(ipperr.InvalidStructure, order, "READ: invalid type %q", typeName)
	}

	return ex.Frames.Assign(order, dst, v)
}
