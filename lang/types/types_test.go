package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkopecky/ipp19exec/lang/types"
)

func TestIntCmp(t *testing.T) {
	assert.Equal(t, -1, types.Int(1).Cmp(types.Int(2)))
	assert.Equal(t, 0, types.Int(5).Cmp(types.Int(5)))
	assert.Equal(t, 1, types.Int(9).Cmp(types.Int(2)))
}

func TestIntString(t *testing.T) {
	assert.Equal(t, "42", types.Int(42).String())
	assert.Equal(t, "-7", types.Int(-7).String())
	assert.Equal(t, "int", types.Int(0).Type())
}

func TestBoolOrdering(t *testing.T) {
	assert.True(t, types.False.Cmp(types.True) < 0)
	assert.True(t, types.True.Cmp(types.False) > 0)
	assert.Equal(t, 0, types.True.Cmp(types.True))
}

func TestBoolString(t *testing.T) {
	assert.Equal(t, "true", types.True.String())
	assert.Equal(t, "false", types.False.String())
}

func TestStringLenCountsCodePoints(t *testing.T) {
	s := types.String("čau")
	require.Equal(t, 3, s.Len())
	assert.Equal(t, []rune{'č', 'a', 'u'}, s.Runes())
}

func TestStringCmp(t *testing.T) {
	assert.True(t, types.String("ab").Cmp(types.String("ac")) < 0)
	assert.Equal(t, 0, types.String("x").Cmp(types.String("x")))
}

func TestNilTypeTag(t *testing.T) {
	assert.Equal(t, "nil", types.Nil.Type())
	assert.Equal(t, "nil", types.Nil.String())
}

func TestUninitializedTypeTagIsEmpty(t *testing.T) {
	assert.Equal(t, "", types.Uninitialized.Type())
	assert.Equal(t, "", types.Uninitialized.String())
}
