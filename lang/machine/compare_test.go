package machine

import (
	"testing"

	"github.com/jkopecky/ipp19exec/lang/ipperr"
	"github.com/jkopecky/ipp19exec/lang/types"
)

func TestLessAndGreater(t *testing.T) {
	lt, err := less(1, types.Int(1), types.Int(2))
	if err != nil || !lt {
		t.Fatalf("1 < 2: got %v, %v", lt, err)
	}
	gt, err := greater(1, types.String("b"), types.String("a"))
	if err != nil || !gt {
		t.Fatalf(`"b" > "a": got %v, %v`, gt, err)
	}
}

func TestOrderedRejectsNil(t *testing.T) {
	_, err := less(1, types.Nil, types.Nil)
	if ipperr.CodeOf(err) != ipperr.TypeMismatch {
		t.Fatalf("exit code = %d, want %d", ipperr.CodeOf(err), ipperr.TypeMismatch)
	}
}

func TestEqualNilRules(t *testing.T) {
	eq, err := equal(1, types.Nil, types.Nil)
	if err != nil || !eq {
		t.Fatalf("nil == nil: got %v, %v", eq, err)
	}
	eq, err = equal(1, types.Nil, types.Int(0))
	if err != nil || eq {
		t.Fatalf("nil == 0 should be false, got %v, %v", eq, err)
	}
}

func TestEqualTypeMismatchIsError(t *testing.T) {
	_, err := equal(1, types.Int(1), types.String("1"))
	if ipperr.CodeOf(err) != ipperr.TypeMismatch {
		t.Fatalf("exit code = %d, want %d", ipperr.CodeOf(err), ipperr.TypeMismatch)
	}
}

func TestEqualSameType(t *testing.T) {
	eq, err := equal(1, types.Bool(true), types.Bool(true))
	if err != nil || !eq {
		t.Fatalf("true == true: got %v, %v", eq, err)
	}
}
