package program

// OperandKind is the declared kind of one operand's payload, as carried by
// the source XML's arg/@type attribute.
type OperandKind uint8

const (
	Var OperandKind = iota
	Label
	TypeName
	IntLit
	BoolLit
	StringLit
	NilLit
)

func (k OperandKind) String() string {
	switch k {
	case Var:
		return "var"
	case Label:
		return "label"
	case TypeName:
		return "type"
	case IntLit:
		return "int"
	case BoolLit:
		return "bool"
	case StringLit:
		return "string"
	case NilLit:
		return "nil"
	default:
		return "unknown"
	}
}

// Matches reports whether an operand of kind k may occupy a slot of kind
// slot (§4.3: a symb slot accepts var or any literal kind).
func (k OperandKind) Matches(slot SlotKind) bool {
	switch slot {
	case SlotVar:
		return k == Var
	case SlotLabel:
		return k == Label
	case SlotType:
		return k == TypeName
	case SlotSymb:
		return k == Var || k == IntLit || k == BoolLit || k == StringLit || k == NilLit
	default:
		return false
	}
}

// Operand is one validated operand of an Instruction. Text is the raw
// (already escape-decoded, for string literals) payload: a "scope@id" for
// Var, a label name for Label, a type name for TypeName, or the literal's
// textual form for the literal kinds.
type Operand struct {
	Kind OperandKind
	Text string

	// Decoded literal values, populated by the loader at load time per §4.1.
	// Only the field matching Kind is meaningful.
	IntVal  int64
	BoolVal bool
}

// Instruction is one validated, fully-typed opcode with its operands.
type Instruction struct {
	Order   int
	Opcode  Opcode
	Operand [3]Operand
}
