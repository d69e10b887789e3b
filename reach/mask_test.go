package reach_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/terrareach/reach"
)

func TestMask_SetGet(t *testing.T) {
	m := reach.NewMask(70, 3) // spans several words
	assert.Equal(t, 0, m.Count())

	m.Set(0, 0)
	m.Set(69, 2)
	m.Set(63, 0)
	m.Set(64, 0)
	m.Set(-1, 0) // ignored
	m.Set(70, 0) // ignored

	assert.True(t, m.Get(0, 0))
	assert.True(t, m.Get(69, 2))
	assert.True(t, m.Get(63, 0))
	assert.True(t, m.Get(64, 0))
	assert.False(t, m.Get(1, 0))
	assert.False(t, m.Get(0, 3))
	assert.Equal(t, 4, m.Count())
	assert.Equal(t, []reach.Cell{{X: 0, Y: 0}, {X: 63, Y: 0}, {X: 64, Y: 0}, {X: 69, Y: 2}}, m.Cells())
}

func TestMask_EmptyShape(t *testing.T) {
	m := reach.NewMask(0, 5)
	m.Set(0, 0)
	assert.Equal(t, 0, m.Count())
	assert.Empty(t, m.Cells())
	assert.False(t, m.Get(0, 0))
}

func TestMask_SubsetEqualClone(t *testing.T) {
	a := reach.NewMask(4, 4)
	b := reach.NewMask(4, 4)
	a.Set(1, 1)
	b.Set(1, 1)
	b.Set(2, 3)

	assert.True(t, a.SubsetOf(b))
	assert.False(t, b.SubsetOf(a))
	assert.False(t, a.Equal(b))

	c := b.Clone()
	assert.True(t, c.Equal(b))
	c.Set(0, 0)
	assert.False(t, c.Equal(b), "clone must not share storage")

	other := reach.NewMask(5, 4)
	assert.False(t, a.SubsetOf(other))
	assert.False(t, a.Equal(other))
	assert.False(t, a.Equal(nil))
}
