// Package program holds the validated, in-memory representation of an
// IPPcode19 program: its opcode catalogue, instructions and label table. The
// loader package is the only producer of a Program; the machine package is
// its only consumer.
package program

import "fmt"

// Opcode identifies one of the fixed IPPcode19 operations (§4.5 and the
// stack-operand addendum in SPEC_FULL.md).
type Opcode uint8

const ( //nolint:revive
	// zero-operand
	CREATEFRAME Opcode = iota
	PUSHFRAME
	POPFRAME
	RETURN
	BREAK
	CLEARS
	ADDS
	SUBS
	MULS
	IDIVS
	LTS
	GTS
	EQS
	ANDS
	ORS
	NOTS
	INT2CHARS
	STRI2INTS

	// one-operand
	DEFVAR
	LABEL
	JUMP
	CALL
	PUSHS
	POPS
	WRITE
	EXIT
	DPRINT
	JUMPIFEQS
	JUMPIFNEQS

	// two-operand
	MOVE
	INT2CHAR
	READ
	STRLEN
	TYPE
	NOT

	// three-operand
	ADD
	SUB
	MUL
	IDIV
	LT
	GT
	EQ
	AND
	OR
	STRI2INT
	CONCAT
	GETCHAR
	SETCHAR
	JUMPIFEQ
	JUMPIFNEQ

	opcodeMax
)

// SlotKind is the declared kind of an operand slot in an opcode's signature.
type SlotKind uint8

const (
	// SlotVar accepts only a var operand.
	SlotVar SlotKind = iota
	// SlotLabel accepts only a label operand.
	SlotLabel
	// SlotType accepts only a type operand (the literal type-name used by READ).
	SlotType
	// SlotSymb accepts a var or any literal kind (int, bool, string, nil).
	SlotSymb
)

var opcodeNames = [opcodeMax]string{
	CREATEFRAME: "CREATEFRAME", PUSHFRAME: "PUSHFRAME", POPFRAME: "POPFRAME",
	RETURN: "RETURN", BREAK: "BREAK", CLEARS: "CLEARS",
	ADDS: "ADDS", SUBS: "SUBS", MULS: "MULS", IDIVS: "IDIVS",
	LTS: "LTS", GTS: "GTS", EQS: "EQS", ANDS: "ANDS", ORS: "ORS", NOTS: "NOTS",
	INT2CHARS: "INT2CHARS", STRI2INTS: "STRI2INTS",
	DEFVAR: "DEFVAR", LABEL: "LABEL", JUMP: "JUMP", CALL: "CALL",
	PUSHS: "PUSHS", POPS: "POPS", WRITE: "WRITE", EXIT: "EXIT", DPRINT: "DPRINT",
	JUMPIFEQS: "JUMPIFEQS", JUMPIFNEQS: "JUMPIFNEQS",
	MOVE: "MOVE", INT2CHAR: "INT2CHAR", READ: "READ", STRLEN: "STRLEN",
	TYPE: "TYPE", NOT: "NOT",
	ADD: "ADD", SUB: "SUB", MUL: "MUL", IDIV: "IDIV",
	LT: "LT", GT: "GT", EQ: "EQ", AND: "AND", OR: "OR",
	STRI2INT: "STRI2INT", CONCAT: "CONCAT", GETCHAR: "GETCHAR", SETCHAR: "SETCHAR",
	JUMPIFEQ: "JUMPIFEQ", JUMPIFNEQ: "JUMPIFNEQ",
}

// signatures maps each opcode to its operand slot kinds, in order. Arity is
// len(signatures[op]).
var signatures = [opcodeMax][]SlotKind{
	DEFVAR: {SlotVar}, LABEL: {SlotLabel}, JUMP: {SlotLabel}, CALL: {SlotLabel},
	PUSHS: {SlotSymb}, POPS: {SlotVar}, WRITE: {SlotSymb}, EXIT: {SlotSymb},
	DPRINT: {SlotSymb}, JUMPIFEQS: {SlotLabel}, JUMPIFNEQS: {SlotLabel},

	MOVE: {SlotVar, SlotSymb}, INT2CHAR: {SlotVar, SlotSymb},
	READ: {SlotVar, SlotType}, STRLEN: {SlotVar, SlotSymb},
	TYPE: {SlotVar, SlotSymb}, NOT: {SlotVar, SlotSymb},

	ADD: {SlotVar, SlotSymb, SlotSymb}, SUB: {SlotVar, SlotSymb, SlotSymb},
	MUL: {SlotVar, SlotSymb, SlotSymb}, IDIV: {SlotVar, SlotSymb, SlotSymb},
	LT: {SlotVar, SlotSymb, SlotSymb}, GT: {SlotVar, SlotSymb, SlotSymb},
	EQ: {SlotVar, SlotSymb, SlotSymb}, AND: {SlotVar, SlotSymb, SlotSymb},
	OR: {SlotVar, SlotSymb, SlotSymb}, STRI2INT: {SlotVar, SlotSymb, SlotSymb},
	CONCAT: {SlotVar, SlotSymb, SlotSymb}, GETCHAR: {SlotVar, SlotSymb, SlotSymb},
	SETCHAR: {SlotVar, SlotSymb, SlotSymb},
	JUMPIFEQ: {SlotLabel, SlotSymb, SlotSymb}, JUMPIFNEQ: {SlotLabel, SlotSymb, SlotSymb},
}

var reverseLookup = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		if name != "" {
			m[name] = Opcode(op)
		}
	}
	return m
}()

// String returns the opcode's mnemonic, as it appears (case-insensitively) in
// the source XML.
func (op Opcode) String() string {
	if op < opcodeMax {
		if name := opcodeNames[op]; name != "" {
			return name
		}
	}
	return fmt.Sprintf("illegal opcode (%d)", op)
}

// Signature returns the operand slot kinds for op, in order. The result must
// not be modified by the caller.
func (op Opcode) Signature() []SlotKind {
	if op < opcodeMax {
		return signatures[op]
	}
	return nil
}

// Arity returns the number of operands op expects.
func (op Opcode) Arity() int { return len(op.Signature()) }

// Lookup resolves a mnemonic (matched case-insensitively by the caller) to
// its Opcode. ok is false for unknown mnemonics.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := reverseLookup[mnemonic]
	return op, ok
}
