package xpjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayPushAndGet(t *testing.T) {
	a := NewArray()
	a.Push(NewInt(1))
	a.Push(NewInt(2))
	require.Equal(t, 2, a.Len())
	n, _ := a.Get(1).AsInt()
	assert.Equal(t, int64(2), n)
}

func TestArraySetAutoExtendsWithNull(t *testing.T) {
	a := NewArray()
	a.Set(3, NewString("late"))
	require.Equal(t, 4, a.Len())
	for i := 0; i < 3; i++ {
		assert.Equal(t, KindNull, a.Get(i).Kind())
	}
	s, _ := a.Get(3).AsString()
	assert.Equal(t, "late", s)
}

func TestArrayGetOutOfRangeIsNil(t *testing.T) {
	a := NewArray()
	a.Push(NewInt(1))
	assert.Nil(t, a.Get(5))
	assert.Nil(t, a.Get(-1))
}

func TestArrayCloneIsDeep(t *testing.T) {
	a := NewArray()
	a.Push(NewInt(1))
	clone := a.Clone()
	clone.Set(0, NewInt(99))
	orig, _ := a.Get(0).AsInt()
	cloned, _ := clone.Get(0).AsInt()
	assert.Equal(t, int64(1), orig)
	assert.Equal(t, int64(99), cloned)
}
