package machine_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkopecky/ipp19exec/lang/ipperr"
	"github.com/jkopecky/ipp19exec/lang/loader"
	"github.com/jkopecky/ipp19exec/lang/machine"
)

// run loads src as an IPPcode19 program and executes it against input,
// returning its stdout, stderr, exit code and any error.
func run(t *testing.T, src, input string) (stdout, stderr string, code int, err error) {
	t.Helper()
	prog, lerr := loader.Load(strings.NewReader(src))
	require.NoError(t, lerr)

	var out, errOut bytes.Buffer
	ex := machine.NewExecutor(prog, strings.NewReader(input), &out, &errOut)
	code, err = ex.Run()
	return out.String(), errOut.String(), code, err
}

func TestWriteLiteralsAndArithmetic(t *testing.T) {
	src := `<program language="IPPcode19">
  <instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@r</arg1></instruction>
  <instruction order="2" opcode="ADD">
    <arg1 type="var">GF@r</arg1>
    <arg2 type="int">2</arg2>
    <arg3 type="int">3</arg3>
  </instruction>
  <instruction order="3" opcode="WRITE"><arg1 type="var">GF@r</arg1></instruction>
</program>`
	out, _, code, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "5", out)
}

func TestIdivByZeroIs57(t *testing.T) {
	src := `<program language="IPPcode19">
  <instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@r</arg1></instruction>
  <instruction order="2" opcode="IDIV">
    <arg1 type="var">GF@r</arg1>
    <arg2 type="int">1</arg2>
    <arg3 type="int">0</arg3>
  </instruction>
</program>`
	_, _, code, err := run(t, src, "")
	require.Error(t, err)
	assert.Equal(t, ipperr.BadOperand, code)
}

func TestIdivTruncatesTowardZero(t *testing.T) {
	src := `<program language="IPPcode19">
  <instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@r</arg1></instruction>
  <instruction order="2" opcode="IDIV">
    <arg1 type="var">GF@r</arg1>
    <arg2 type="int">-7</arg2>
    <arg3 type="int">2</arg3>
  </instruction>
  <instruction order="3" opcode="WRITE"><arg1 type="var">GF@r</arg1></instruction>
</program>`
	out, _, code, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "-3", out)
}

func TestExitOutOfRangeIs57(t *testing.T) {
	src := `<program language="IPPcode19">
  <instruction order="1" opcode="EXIT"><arg1 type="int">50</arg1></instruction>
</program>`
	_, _, code, err := run(t, src, "")
	require.Error(t, err)
	assert.Equal(t, ipperr.BadOperand, code)
}

func TestExitSetsProcessExitCode(t *testing.T) {
	src := `<program language="IPPcode19">
  <instruction order="1" opcode="EXIT"><arg1 type="int">5</arg1></instruction>
</program>`
	_, _, code, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, 5, code)
}

func TestGetCharOutOfRangeIs58(t *testing.T) {
	src := `<program language="IPPcode19">
  <instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@r</arg1></instruction>
  <instruction order="2" opcode="GETCHAR">
    <arg1 type="var">GF@r</arg1>
    <arg2 type="string">hi</arg2>
    <arg3 type="int">9</arg3>
  </instruction>
</program>`
	_, _, code, err := run(t, src, "")
	require.Error(t, err)
	assert.Equal(t, ipperr.StringRange, code)
}

func TestSetCharPreservesPriorCharacters(t *testing.T) {
	// §9's defect-fix: SETCHAR must overwrite position idx only, leaving
	// every character before it untouched (the source this is modeled on
	// spliced at idx-1).
	src := `<program language="IPPcode19">
  <instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@s</arg1></instruction>
  <instruction order="2" opcode="MOVE">
    <arg1 type="var">GF@s</arg1>
    <arg2 type="string">abcde</arg2>
  </instruction>
  <instruction order="3" opcode="SETCHAR">
    <arg1 type="var">GF@s</arg1>
    <arg2 type="int">2</arg2>
    <arg3 type="string">X</arg3>
  </instruction>
  <instruction order="4" opcode="WRITE"><arg1 type="var">GF@s</arg1></instruction>
</program>`
	out, _, code, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "abXde", out)
}

func TestReadDefaultsOnEOF(t *testing.T) {
	src := `<program language="IPPcode19">
  <instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@n</arg1></instruction>
  <instruction order="2" opcode="READ">
    <arg1 type="var">GF@n</arg1>
    <arg2 type="type">int</arg2>
  </instruction>
  <instruction order="3" opcode="WRITE"><arg1 type="var">GF@n</arg1></instruction>
</program>`
	out, _, code, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "0", out)
}

func TestCallAndReturn(t *testing.T) {
	src := `<program language="IPPcode19">
  <instruction order="1" opcode="CALL"><arg1 type="label">twice</arg1></instruction>
  <instruction order="2" opcode="WRITE"><arg1 type="string">after</arg1></instruction>
  <instruction order="3" opcode="EXIT"><arg1 type="int">0</arg1></instruction>
  <instruction order="10" opcode="LABEL"><arg1 type="label">twice</arg1></instruction>
  <instruction order="11" opcode="WRITE"><arg1 type="string">in-call</arg1></instruction>
  <instruction order="12" opcode="RETURN"></instruction>
</program>`
	out, _, code, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "in-callafter", out)
}

func TestJumpIfEq(t *testing.T) {
	src := `<program language="IPPcode19">
  <instruction order="1" opcode="JUMPIFEQ">
    <arg1 type="label">skip</arg1>
    <arg2 type="int">1</arg2>
    <arg3 type="int">1</arg3>
  </instruction>
  <instruction order="2" opcode="WRITE"><arg1 type="string">unreachable</arg1></instruction>
  <instruction order="3" opcode="LABEL"><arg1 type="label">skip</arg1></instruction>
  <instruction order="4" opcode="WRITE"><arg1 type="string">reached</arg1></instruction>
</program>`
	out, _, code, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "reached", out)
}

func TestStackOperandFamily(t *testing.T) {
	// PUSHS 2, PUSHS 3, ADDS -> pop 3 then 2, push 2+3=5, POPS into GF@r.
	src := `<program language="IPPcode19">
  <instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@r</arg1></instruction>
  <instruction order="2" opcode="PUSHS"><arg1 type="int">2</arg1></instruction>
  <instruction order="3" opcode="PUSHS"><arg1 type="int">3</arg1></instruction>
  <instruction order="4" opcode="ADDS"></instruction>
  <instruction order="5" opcode="POPS"><arg1 type="var">GF@r</arg1></instruction>
  <instruction order="6" opcode="WRITE"><arg1 type="var">GF@r</arg1></instruction>
</program>`
	out, _, code, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "5", out)
}

func TestPopsOnEmptyStackIs56(t *testing.T) {
	src := `<program language="IPPcode19">
  <instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@r</arg1></instruction>
  <instruction order="2" opcode="POPS"><arg1 type="var">GF@r</arg1></instruction>
</program>`
	_, _, code, err := run(t, src, "")
	require.Error(t, err)
	assert.Equal(t, ipperr.MissingValue, code)
}

func TestReadUninitializedVariableIs56(t *testing.T) {
	src := `<program language="IPPcode19">
  <instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@r</arg1></instruction>
  <instruction order="2" opcode="DEFVAR"><arg1 type="var">GF@s</arg1></instruction>
  <instruction order="3" opcode="MOVE">
    <arg1 type="var">GF@s</arg1>
    <arg2 type="var">GF@r</arg2>
  </instruction>
</program>`
	_, _, code, err := run(t, src, "")
	require.Error(t, err)
	assert.Equal(t, ipperr.MissingValue, code)
}

func TestDprintGoesToStderr(t *testing.T) {
	src := `<program language="IPPcode19">
  <instruction order="1" opcode="DPRINT"><arg1 type="string">diag</arg1></instruction>
</program>`
	out, errOut, code, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "", out)
	assert.Equal(t, "diag", errOut)
}
