package machine

// Stats accumulates the optional runtime counters exposed by the --stats
// family of flags (SPEC_FULL.md's statistics extension, grounded on
// original_source/interpret.py). It never influences control flow, stdout or
// exit codes.
type Stats struct {
	Instructions int
	maxVars      int
}

// ObserveInstruction records the execution of one instruction.
func (s *Stats) ObserveInstruction() {
	if s == nil {
		return
	}
	s.Instructions++
}

// ObserveVarCount records a frame-population sample; MaxVars reports the
// high-water mark across all samples taken.
func (s *Stats) ObserveVarCount(n int) {
	if s == nil {
		return
	}
	if n > s.maxVars {
		s.maxVars = n
	}
}

// MaxVars returns the largest variable count observed across every sample.
func (s *Stats) MaxVars() int {
	if s == nil {
		return 0
	}
	return s.maxVars
}
