package machine

import (
	"testing"

	"github.com/jkopecky/ipp19exec/lang/types"
)

func TestFrameDefineAndAssign(t *testing.T) {
	f := NewFrame()
	if f.Has("x") {
		t.Fatal("x should not be defined yet")
	}
	f.Define("x")
	if !f.Has("x") {
		t.Fatal("x should be defined")
	}
	v, ok := f.Get("x")
	if !ok || v != types.Uninitialized {
		t.Fatalf("expected Uninitialized, got %v, %v", v, ok)
	}
	if !f.Assign("x", types.Int(7)) {
		t.Fatal("assign should succeed on a defined slot")
	}
	v, ok = f.Get("x")
	if !ok || v != types.Int(7) {
		t.Fatalf("expected 7, got %v, %v", v, ok)
	}
}

func TestFrameAssignUndefinedFails(t *testing.T) {
	f := NewFrame()
	if f.Assign("missing", types.Int(1)) {
		t.Fatal("assign should fail on an undefined slot")
	}
}

func TestFrameCount(t *testing.T) {
	f := NewFrame()
	f.Define("a")
	f.Define("b")
	if f.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", f.Count())
	}
}
