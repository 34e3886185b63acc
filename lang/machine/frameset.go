package machine

import (
	"strings"

	"github.com/jkopecky/ipp19exec/lang/ipperr"
	"github.com/jkopecky/ipp19exec/lang/types"
)

// FrameSet owns the global frame, the (optional) temporary frame and the
// stack of local frames, and resolves scoped variable names GF@x/TF@x/LF@x
// (§3, §4.2, §4.6).
//
// CREATEFRAME, PUSHFRAME and POPFRAME transfer frame ownership by moving a
// *Frame pointer, never by copying its contents: a variable written through
// LF@ after PUSHFRAME remains visible through TF@ after the matching
// POPFRAME (§9 — the source interpreter this is modeled on used a deep copy
// here, which is a defect this implementation corrects).
type FrameSet struct {
	global *Frame
	temp   *Frame // nil means Absent
	locals []*Frame
}

// NewFrameSet returns a FrameSet with a fresh global frame, no temporary
// frame, and an empty local frame stack (§4.2 invariants).
func NewFrameSet() *FrameSet {
	return &FrameSet{global: NewFrame()}
}

// CreateFrame replaces the temporary frame with a fresh, empty one,
// discarding any previous temporary frame (CREATEFRAME; any state -> Present
// in §4.6).
func (fs *FrameSet) CreateFrame() {
	fs.temp = NewFrame()
}

// PushFrame moves the temporary frame onto the local stack, clearing the
// temporary slot (Present -> Absent). It is an error 55 if the temporary
// frame is absent.
func (fs *FrameSet) PushFrame(order int) error {
	if fs.temp == nil {
		return ipperr.At(ipperr.MissingFrame, order, "PUSHFRAME: temporary frame is not defined")
	}
	fs.locals = append(fs.locals, fs.temp)
	fs.temp = nil
	return nil
}

// PopFrame moves the top local frame into the temporary slot, replacing any
// frame already there (any state -> Present). It is an error 55 if the local
// frame stack is empty.
func (fs *FrameSet) PopFrame(order int) error {
	n := len(fs.locals)
	if n == 0 {
		return ipperr.At(ipperr.MissingFrame, order, "POPFRAME: local frame stack is empty")
	}
	fs.temp = fs.locals[n-1]
	fs.locals = fs.locals[:n-1]
	return nil
}

// Define allocates a new Uninitialized slot for the variable named by
// scopedName ("GF@x", "TF@x" or "LF@x"). Error 52 if already defined in that
// frame, error 55 if the frame does not exist.
func (fs *FrameSet) Define(order int, scopedName string) error {
	scope, id, err := splitScoped(order, scopedName)
	if err != nil {
		return err
	}
	frame, err := fs.resolve(order, scope)
	if err != nil {
		return err
	}
	if frame.Has(id) {
		return ipperr.At(ipperr.SemanticError, order, "variable %s already defined", scopedName)
	}
	frame.Define(id)
	return nil
}

// Assign overwrites the slot named by scopedName. Error 54 if undefined,
// error 55 if the frame does not exist.
func (fs *FrameSet) Assign(order int, scopedName string, v types.Value) error {
	scope, id, err := splitScoped(order, scopedName)
	if err != nil {
		return err
	}
	frame, err := fs.resolve(order, scope)
	if err != nil {
		return err
	}
	if !frame.Assign(id, v) {
		return ipperr.At(ipperr.UndefinedVar, order, "variable %s does not exist", scopedName)
	}
	return nil
}

// Read returns the slot's current value, which may be types.Uninitialized.
// Error 54 if undefined, error 55 if the frame does not exist. A successful
// read of an Uninitialized slot is not itself an error here; that is the
// use-site's responsibility (§4.2).
func (fs *FrameSet) Read(order int, scopedName string) (types.Value, error) {
	scope, id, err := splitScoped(order, scopedName)
	if err != nil {
		return nil, err
	}
	frame, err := fs.resolve(order, scope)
	if err != nil {
		return nil, err
	}
	v, ok := frame.Get(id)
	if !ok {
		return nil, ipperr.At(ipperr.UndefinedVar, order, "variable %s does not exist", scopedName)
	}
	return v, nil
}

func (fs *FrameSet) resolve(order int, scope string) (*Frame, error) {
	switch scope {
	case "GF":
		return fs.global, nil
	case "TF":
		if fs.temp == nil {
			return nil, ipperr.At(ipperr.MissingFrame, order, "temporary frame is not defined")
		}
		return fs.temp, nil
	case "LF":
		if len(fs.locals) == 0 {
			return nil, ipperr.At(ipperr.MissingFrame, order, "local frame stack is empty")
		}
		return fs.locals[len(fs.locals)-1], nil
	default:
		return nil, ipperr.At(ipperr.InvalidStructure, order, "unrecognized frame scope %q", scope)
	}
}

func splitScoped(order int, scopedName string) (scope, id string, err error) {
	before, after, ok := strings.Cut(scopedName, "@")
	if !ok {
		return "", "", ipperr.At(ipperr.InvalidStructure, order, "invalid variable name %q", scopedName)
	}
	return before, after, nil
}
