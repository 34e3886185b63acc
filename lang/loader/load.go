// Package loader converts an IPPcode19 source XML document into a validated
// program.Program (§4.3). It is the only component that touches the source
// encoding; everything downstream works with program.Program's typed
// representation.
package loader

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/jkopecky/ipp19exec/lang/ipperr"
	"github.com/jkopecky/ipp19exec/lang/program"
)

// Load parses and validates the IPPcode19 XML document read from r, and
// returns the resulting Program. Errors are classified per §6: unparseable
// XML is ipperr.MalformedXML (31); every other structural problem is
// ipperr.InvalidStructure (32); duplicate labels are ipperr.SemanticError
// (52).
func Load(r io.Reader) (*program.Program, error) {
	var doc xmlProgram
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, ipperr.New(ipperr.MalformedXML, "malformed XML: %s", err)
	}

	if err := validateRoot(doc); err != nil {
		return nil, err
	}

	instrs := make([]*program.Instruction, 0, len(doc.Instrs))
	seenOrders := make(map[int]bool, len(doc.Instrs))
	for _, xi := range doc.Instrs {
		in, err := convertInstruction(xi)
		if err != nil {
			return nil, err
		}
		if seenOrders[in.Order] {
			return nil, ipperr.New(ipperr.InvalidStructure, "duplicate instruction order %d", in.Order)
		}
		seenOrders[in.Order] = true
		instrs = append(instrs, in)
	}

	prog, err := program.New(instrs)
	if err != nil {
		return nil, classifyProgramError(err)
	}
	return prog, nil
}

// classifyProgramError maps program.New's plain errors to their exit code:
// label problems are semantic (52), everything else is structural (32).
func classifyProgramError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "label") {
		return ipperr.New(ipperr.SemanticError, "%s", msg)
	}
	return ipperr.New(ipperr.InvalidStructure, "%s", msg)
}

func validateRoot(doc xmlProgram) error {
	if doc.XMLName.Local != "program" {
		return ipperr.New(ipperr.InvalidStructure, "root element must be <program>, got <%s>", doc.XMLName.Local)
	}
	if !strings.EqualFold(doc.Language, "IPPcode19") {
		return ipperr.New(ipperr.InvalidStructure, "unsupported or missing language attribute: %q", doc.Language)
	}

	for _, a := range doc.Attrs {
		switch a.Name.Local {
		case "language", "name", "description":
			// allowed
		default:
			return ipperr.New(ipperr.InvalidStructure, "unexpected attribute %q on <program>", a.Name.Local)
		}
	}
	return nil
}

func convertInstruction(xi xmlInstruction) (*program.Instruction, error) {
	order, err := decodeOrder(xi.Order)
	if err != nil {
		return nil, err
	}

	opName := strings.ToUpper(strings.TrimSpace(xi.Opcode))
	op, ok := program.Lookup(opName)
	if !ok {
		return nil, ipperr.New(ipperr.InvalidStructure, "order %d: unknown opcode %q", order, xi.Opcode)
	}

	for _, a := range xi.Attrs {
		if a.Name.Local != "order" && a.Name.Local != "opcode" {
			return nil, ipperr.New(ipperr.InvalidStructure, "order %d: unexpected attribute %q on <instruction>", order, a.Name.Local)
		}
	}

	xargs := []*xmlArg{xi.Arg1, xi.Arg2, xi.Arg3}
	sig := op.Signature()

	// presence must be contiguous starting at arg1, with no gaps (§4.3).
	n := 0
	for n < 3 && xargs[n] != nil {
		n++
	}
	for i := n; i < 3; i++ {
		if xargs[i] != nil {
			return nil, ipperr.New(ipperr.InvalidStructure, "order %d: arg%d present without arg%d", order, i+1, i)
		}
	}
	if n != len(sig) {
		return nil, ipperr.New(ipperr.InvalidStructure, "order %d: %s expects %d operand(s), got %d", order, op, len(sig), n)
	}

	in := &program.Instruction{Order: order, Opcode: op}
	for i := 0; i < n; i++ {
		operand, err := convertOperand(order, i+1, xargs[i], sig[i])
		if err != nil {
			return nil, err
		}
		in.Operand[i] = operand
	}
	return in, nil
}

func convertOperand(order, argNum int, xa *xmlArg, slot program.SlotKind) (program.Operand, error) {
	for _, a := range xa.Attrs {
		if a.Name.Local != "type" {
			return program.Operand{}, ipperr.New(ipperr.InvalidStructure, "order %d: unexpected attribute %q on arg%d", order, a.Name.Local, argNum)
		}
	}

	kind, err := parseOperandKind(xa.Type)
	if err != nil {
		return program.Operand{}, ipperr.New(ipperr.InvalidStructure, "order %d: arg%d: %s", order, argNum, err)
	}
	if !kind.Matches(slot) {
		return program.Operand{}, ipperr.New(ipperr.InvalidStructure, "order %d: arg%d: operand kind %q not valid here", order, argNum, kind)
	}

	text := strings.TrimSpace(xa.Text)
	operand := program.Operand{Kind: kind, Text: text}

	switch kind {
	case program.Var:
		if !isValidScopedIdent(text) {
			return program.Operand{}, ipperr.New(ipperr.InvalidStructure, "order %d: arg%d: invalid variable name %q", order, argNum, text)
		}
	case program.Label:
		if text == "" {
			return program.Operand{}, ipperr.New(ipperr.InvalidStructure, "order %d: arg%d: empty label name", order, argNum)
		}
	case program.TypeName:
		switch text {
		case "int", "bool", "string":
		default:
			return program.Operand{}, ipperr.New(ipperr.InvalidStructure, "order %d: arg%d: invalid type name %q", order, argNum, text)
		}
	case program.IntLit:
		n, err := decodeInt(xa.Text)
		if err != nil {
			return program.Operand{}, err
		}
		operand.IntVal = n
	case program.BoolLit:
		b, err := decodeBool(text)
		if err != nil {
			return program.Operand{}, err
		}
		operand.BoolVal = b
	case program.StringLit:
		s, err := decodeString(xa.Text)
		if err != nil {
			return program.Operand{}, err
		}
		operand.Text = s
	case program.NilLit:
		if err := decodeNil(text); err != nil {
			return program.Operand{}, err
		}
	}

	return operand, nil
}

func parseOperandKind(raw string) (program.OperandKind, error) {
	switch raw {
	case "var":
		return program.Var, nil
	case "label":
		return program.Label, nil
	case "type":
		return program.TypeName, nil
	case "int":
		return program.IntLit, nil
	case "bool":
		return program.BoolLit, nil
	case "string":
		return program.StringLit, nil
	case "nil":
		return program.NilLit, nil
	default:
		return 0, ipperr.New(ipperr.InvalidStructure, "unknown operand type %q", raw)
	}
}

// isValidScopedIdent validates a "GF@x"/"TF@x"/"LF@x" variable name against
// the identifier grammar in §3.
func isValidScopedIdent(s string) bool {
	const prefixLen = 3 // "GF@", "TF@" or "LF@"
	if len(s) <= prefixLen {
		return false
	}
	switch s[:prefixLen] {
	case "GF@", "TF@", "LF@":
	default:
		return false
	}
	return isValidIdent(s[prefixLen:])
}

func isValidIdent(id string) bool {
	if id == "" {
		return false
	}
	for i, r := range id {
		if isIdentHead(r) {
			continue
		}
		if i > 0 && isIdentDigit(r) {
			continue
		}
		return false
	}
	return true
}

func isIdentHead(r rune) bool {
	switch {
	case 'A' <= r && r <= 'Z', 'a' <= r && r <= 'z':
		return true
	case r == '_' || r == '-' || r == '$' || r == '&' || r == '%' || r == '*':
		return true
	}
	return false
}

func isIdentDigit(r rune) bool { return '0' <= r && r <= '9' }
