package machine

// callTarget is the resumption point CALL records for its matching RETURN:
// the order to resume at, or, if the CALL was the program's last
// instruction, an indication that returning should fall off the end.
type callTarget struct {
	order int
	atEnd bool
}

// CallStack is the stack of "resume after call" targets pushed by CALL and
// popped by RETURN (§2, §4.5). It is unbounded in principle.
type CallStack struct {
	targets []callTarget
}

// Push records the instruction to resume at once the matching RETURN
// executes. hasNext is false if the CALL was the last instruction in the
// program, in which case RETURN falls off the end instead of jumping.
func (cs *CallStack) Push(resumeOrder int, hasNext bool) {
	cs.targets = append(cs.targets, callTarget{order: resumeOrder, atEnd: !hasNext})
}

// Pop removes and returns the top of the stack. ok is false if the stack is
// empty (RETURN with no matching CALL is error 56, §6).
func (cs *CallStack) Pop() (order int, atEnd bool, ok bool) {
	n := len(cs.targets)
	if n == 0 {
		return 0, false, false
	}
	top := cs.targets[n-1]
	cs.targets = cs.targets[:n-1]
	return top.order, top.atEnd, true
}

// Len reports the current call depth, for diagnostics (BREAK).
func (cs *CallStack) Len() int { return len(cs.targets) }
