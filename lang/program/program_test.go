package program_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkopecky/ipp19exec/lang/program"
)

func lbl(order int, name string) *program.Instruction {
	return &program.Instruction{
		Order:  order,
		Opcode: program.LABEL,
		Operand: [3]program.Operand{
			{Kind: program.Label, Text: name},
		},
	}
}

func TestProgramOrderingAndLookup(t *testing.T) {
	instrs := []*program.Instruction{
		{Order: 30, Opcode: program.CREATEFRAME},
		{Order: 10, Opcode: program.CREATEFRAME},
		lbl(20, "loop"),
	}
	p, err := program.New(instrs)
	require.NoError(t, err)

	assert.Equal(t, []int{10, 20, 30}, p.Orders)

	first, ok := p.FirstOrder()
	require.True(t, ok)
	assert.Equal(t, 10, first)

	next, ok := p.NextOrder(10)
	require.True(t, ok)
	assert.Equal(t, 20, next)

	_, ok = p.NextOrder(30)
	assert.False(t, ok)

	target, ok := p.Label("loop")
	require.True(t, ok)
	assert.Equal(t, 20, target)

	assert.Equal(t, []string{"loop"}, p.LabelNames())
}

func TestProgramRejectsNonPositiveOrder(t *testing.T) {
	_, err := program.New([]*program.Instruction{{Order: 0, Opcode: program.CREATEFRAME}})
	assert.Error(t, err)
}

func TestProgramRejectsDuplicateOrder(t *testing.T) {
	_, err := program.New([]*program.Instruction{
		{Order: 1, Opcode: program.CREATEFRAME},
		{Order: 1, Opcode: program.CREATEFRAME},
	})
	assert.Error(t, err)
}

func TestProgramRejectsDuplicateLabel(t *testing.T) {
	_, err := program.New([]*program.Instruction{
		lbl(1, "loop"),
		lbl(2, "loop"),
	})
	assert.ErrorContains(t, err, "label")
}
