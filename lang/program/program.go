package program

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

// Program is the ordered instruction table and label table produced by the
// loader (§3). Orders need not be dense or start at 1 but must be unique;
// label names are unique across the whole program.
type Program struct {
	// Orders is the sorted list of instruction orders, computed once so the
	// executor can find the "next order" in O(log n) (§4.4 step 1).
	Orders []int

	byOrder map[int]*Instruction
	labels  map[string]int // label name -> defining instruction's order
}

// New builds a Program from a set of already-parsed instructions. It
// validates order uniqueness and label uniqueness (error classification is
// the caller's responsibility; New reports plain errors describing the
// violation).
func New(instrs []*Instruction) (*Program, error) {
	p := &Program{
		byOrder: make(map[int]*Instruction, len(instrs)),
		labels:  make(map[string]int),
	}

	for _, in := range instrs {
		if in.Order <= 0 {
			return nil, fmt.Errorf("instruction order must be strictly positive, got %d", in.Order)
		}
		if _, dup := p.byOrder[in.Order]; dup {
			return nil, fmt.Errorf("duplicate instruction order %d", in.Order)
		}
		p.byOrder[in.Order] = in
	}

	p.Orders = make([]int, 0, len(p.byOrder))
	for order := range p.byOrder {
		p.Orders = append(p.Orders, order)
	}
	sort.Ints(p.Orders)

	for _, order := range p.Orders {
		in := p.byOrder[order]
		if in.Opcode != LABEL {
			continue
		}
		name := in.Operand[0].Text
		if prev, dup := p.labels[name]; dup {
			return nil, fmt.Errorf("label %q redefined at order %d (first defined at order %d)", name, order, prev)
		}
		p.labels[name] = order
	}

	return p, nil
}

// At returns the instruction at the given order, or nil if none exists.
func (p *Program) At(order int) *Instruction { return p.byOrder[order] }

// NextOrder returns the smallest order strictly greater than order, and
// whether one exists.
func (p *Program) NextOrder(order int) (int, bool) {
	// Orders is sorted, so a binary search finds the successor.
	n := len(p.Orders)
	i := sort.SearchInts(p.Orders, order+1)
	if i < n {
		return p.Orders[i], true
	}
	return 0, false
}

// FirstOrder returns the smallest order in the program, and whether the
// program has any instructions at all.
func (p *Program) FirstOrder() (int, bool) {
	if len(p.Orders) == 0 {
		return 0, false
	}
	return p.Orders[0], true
}

// Label resolves a label name to its defining instruction's order.
func (p *Program) Label(name string) (int, bool) {
	order, ok := p.labels[name]
	return order, ok
}

// LabelNames returns the sorted list of label names defined in the program,
// used to list the known labels when a JUMP/CALL/JUMPIFEQ/JUMPIFNEQ targets
// an undefined one.
func (p *Program) LabelNames() []string {
	names := maps.Keys(p.labels)
	sort.Strings(names)
	return names
}
