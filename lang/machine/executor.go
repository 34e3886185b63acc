// Package machine implements the IPPcode19 execution engine: the value and
// variable model, the frame system, the call stack, the labelled
// control-flow machinery, and the dispatch and semantics of every opcode
// (§2, §4.4).
package machine

import (
	"bufio"
	"fmt"
	"io"

	"github.com/jkopecky/ipp19exec/lang/ipperr"
	"github.com/jkopecky/ipp19exec/lang/program"
	"github.com/jkopecky/ipp19exec/lang/types"
)

// Executor drives a Program against a FrameSet, CallStack, DataStack and
// input stream (§2, §4.4). The two transient dispatch locations described in
// §4.4, nextOrder (computed once per instruction) and jumpTarget (set by
// control-flow opcodes to override succession), are locals of Run and step,
// not fields of Executor.
type Executor struct {
	Program *program.Program
	Frames  *FrameSet
	Calls   CallStack
	Data    DataStack
	Stats   *Stats

	stdin  *bufio.Reader
	stdout *bufio.Writer
	stderr io.Writer
}

// NewExecutor returns an Executor ready to run p. stdin is the program's
// input stream (the --input file, or standard input); stdout and stderr are
// the program's output streams.
func NewExecutor(p *program.Program, stdin io.Reader, stdout, stderr io.Writer) *Executor {
	return &Executor{
		Program: p,
		Frames:  NewFrameSet(),
		stdin:   bufio.NewReader(stdin),
		stdout:  bufio.NewWriter(stdout),
		stderr:  stderr,
	}
}

// Run drives the dispatch loop described in §4.4 to completion. It returns
// the process exit code and, for any abnormal termination, the error that
// produced it (already classified per §6 via the ipperr package). A nil
// error with exit code 0 is normal termination by falling off the end of the
// program; a nil error with any other code is a successful EXIT.
func (ex *Executor) Run() (exitCode int, err error) {
	defer ex.stdout.Flush()

	order, ok := ex.Program.FirstOrder()
	if !ok {
		return 0, nil
	}

	for {
		in := ex.Program.At(order)
		ex.Stats.ObserveInstruction()

		nextOrder, hasNext := ex.Program.NextOrder(order)

		jumped, jumpTarget, code, halt, err := ex.step(in, nextOrder, hasNext)
		if err != nil {
			ex.stdout.Flush()
			return ipperr.CodeOf(err), err
		}
		if halt {
			ex.stdout.Flush()
			return code, nil
		}

		switch {
		case jumped:
			order = jumpTarget
		case hasNext:
			order = nextOrder
		default:
			return 0, nil
		}
	}
}

// step executes one instruction. It returns:
//   - jumped/jumpTarget: set if the instruction overrides normal succession
//   - exitCode/halt: set if the instruction (EXIT) terminates the program
//   - err: a classified error (§6), if any
func (ex *Executor) step(in *program.Instruction, nextOrder int, hasNext bool) (jumped bool, jumpTarget int, exitCode int, halt bool, err error) {
	order := in.Order

	switch in.Opcode {
	case program.CREATEFRAME:
		ex.Frames.CreateFrame()

	case program.PUSHFRAME:
		err = ex.Frames.PushFrame(order)

	case program.POPFRAME:
		err = ex.Frames.PopFrame(order)

	case program.RETURN:
		target, atEnd, ok := ex.Calls.Pop()
		if !ok {
			err = ipperr.At(ipperr.MissingValue, order, "RETURN: call stack is empty")
			break
		}
		if atEnd {
			halt = true
		} else {
			jumped, jumpTarget = true, target
		}

	case program.BREAK:
		ex.dumpState(order)

	case program.CLEARS:
		ex.Data.Clear()

	case program.DEFVAR:
		err = ex.Frames.Define(order, in.Operand[0].Text)
		if err == nil {
			ex.Stats.ObserveVarCount(ex.Frames.global.Count())
		}

	case program.LABEL:
		// no runtime effect; recorded in the label table at load time.

	case program.JUMP:
		jumped, jumpTarget, err = ex.jumpTo(order, in.Operand[0].Text)

	case program.CALL:
		var target int
		jumped, target, err = ex.jumpTo(order, in.Operand[0].Text)
		if err == nil {
			ex.Calls.Push(nextOrder, hasNext)
			jumpTarget = target
		}

	case program.PUSHS:
		var v types.Value
		v, err = ex.readSymb(order, in.Operand[0])
		if err == nil {
			ex.Data.Push(v)
		}

	case program.POPS:
		err = ex.pops(order, in.Operand[0].Text)

	case program.WRITE:
		err = ex.write(order, in.Operand[0])

	case program.EXIT:
		exitCode, err = ex.exit(order, in.Operand[0])
		halt = err == nil

	case program.DPRINT:
		err = ex.dprint(order, in.Operand[0])

	case program.MOVE:
		err = ex.move(order, in.Operand[0].Text, in.Operand[1])

	case program.INT2CHAR:
		err = ex.int2char(order, in.Operand[0].Text, in.Operand[1])

	case program.READ:
		err = ex.read(order, in.Operand[0].Text, in.Operand[1].Text)

	case program.STRLEN:
		err = ex.strlen(order, in.Operand[0].Text, in.Operand[1])

	case program.TYPE:
		err = ex.typeOf(order, in.Operand[0].Text, in.Operand[1])

	case program.NOT:
		err = ex.not(order, in.Operand[0].Text, in.Operand[1])

	case program.ADD, program.SUB, program.MUL, program.IDIV:
		err = ex.arith(order, in.Opcode, in.Operand[0].Text, in.Operand[1], in.Operand[2])

	case program.LT, program.GT, program.EQ:
		err = ex.relational(order, in.Opcode, in.Operand[0].Text, in.Operand[1], in.Operand[2])

	case program.AND, program.OR:
		err = ex.boolOp(order, in.Opcode, in.Operand[0].Text, in.Operand[1], in.Operand[2])

	case program.STRI2INT:
		err = ex.stri2int(order, in.Operand[0].Text, in.Operand[1], in.Operand[2])

	case program.CONCAT:
		err = ex.concat(order, in.Operand[0].Text, in.Operand[1], in.Operand[2])

	case program.GETCHAR:
		err = ex.getChar(order, in.Operand[0].Text, in.Operand[1], in.Operand[2])

	case program.SETCHAR:
		err = ex.setChar(order, in.Operand[0].Text, in.Operand[1], in.Operand[2])

	case program.JUMPIFEQ:
		jumped, jumpTarget, err = ex.jumpIf(order, in.Operand[0].Text, in.Operand[1], in.Operand[2], true)

	case program.JUMPIFNEQ:
		jumped, jumpTarget, err = ex.jumpIf(order, in.Operand[0].Text, in.Operand[1], in.Operand[2], false)

	// stack-operand family (SPEC_FULL.md addendum)
	case program.ADDS, program.SUBS, program.MULS, program.IDIVS:
		err = ex.arithS(order, in.Opcode)
	case program.LTS, program.GTS, program.EQS:
		err = ex.relationalS(order, in.Opcode)
	case program.ANDS, program.ORS:
		err = ex.boolOpS(order, in.Opcode)
	case program.NOTS:
		err = ex.notS(order)
	case program.INT2CHARS:
		err = ex.int2charS(order)
	case program.STRI2INTS:
		err = ex.stri2intS(order)
	case program.JUMPIFEQS:
		jumped, jumpTarget, err = ex.jumpIfS(order, in.Operand[0].Text, true)
	case program.JUMPIFNEQS:
		jumped, jumpTarget, err = ex.jumpIfS(order, in.Operand[0].Text, false)

	default:
		err = ipperr.At(ipperr.InvalidStructure, order, "unimplemented opcode %s", in.Opcode)
	}

	return jumped, jumpTarget, exitCode, halt, err
}

func (ex *Executor) jumpTo(order int, label string) (bool, int, error) {
	target, ok := ex.Program.Label(label)
	if !ok {
		return false, 0, ipperr.At(ipperr.BadOperand, order, "undefined label %q (known labels: %v)", label, ex.Program.LabelNames())
	}
	return true, target, nil
}

// readSymb resolves one operand to a Value (§4.1): a var operand is looked
// up in its frame (error 56 if its slot is Uninitialized); a literal operand
// decodes directly from its already-parsed payload.
func (ex *Executor) readSymb(order int, op program.Operand) (types.Value, error) {
	switch op.Kind {
	case program.Var:
		v, err := ex.Frames.Read(order, op.Text)
		if err != nil {
			return nil, err
		}
		if _, ok := v.(types.UninitializedType); ok {
			return nil, ipperr.At(ipperr.MissingValue, order, "variable %s is not initialized", op.Text)
		}
		return v, nil
	case program.IntLit:
		return types.Int(op.IntVal), nil
	case program.BoolLit:
		return types.Bool(op.BoolVal), nil
	case program.StringLit:
		return types.String(op.Text), nil
	case program.NilLit:
		return types.Nil, nil
	default:
		return nil, ipperr.At(ipperr.InvalidStructure, order, "operand is not a symb")
	}
}

func (ex *Executor) dumpState(order int) {
	fmt.Fprintf(ex.stderr, "BREAK at order %d: call depth=%d, data stack depth=%d, global vars=%d\n",
		order, ex.Calls.Len(), ex.Data.Len(), ex.Frames.global.Count())
}
