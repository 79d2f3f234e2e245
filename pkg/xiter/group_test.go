package xiter

import (
	"slices"
	"testing"

	"gotest.tools/v3/assert"
)

func TestGroup_Key(t *testing.T) {
	g := newGroup("k", []int{1, 2, 3})
	assert.Equal(t, g.Key(), "k")
	assert.Equal(t, g.Len(), 3)
}

func TestGroup_Cursor(t *testing.T) {
	g := newGroup(0, []string{"a", "b"})

	first := g.Cursor()
	assert.Assert(t, first == &g.first)
	second := g.Cursor()
	assert.Assert(t, second != first)

	assert.Assert(t, first.Next())
	assert.Equal(t, first.Current(), "a")
	assert.Assert(t, second.Next())
	assert.Equal(t, second.Current(), "a")
	assert.Assert(t, first.Next())
	assert.Equal(t, first.Current(), "b")
	assert.Assert(t, !first.Next())
	assert.Assert(t, second.Next())
	assert.Equal(t, second.Current(), "b")
}

func TestGroupCursor_Close(t *testing.T) {
	g := newGroup(0, []string{"a", "b", "c"})
	cur := g.Cursor()
	assert.Assert(t, cur.Next())
	assert.NilError(t, cur.Close())
	assert.Equal(t, cur.Current(), "")
	assert.Assert(t, !cur.Next())
	assert.NilError(t, cur.Close())

	// a new traversal starts over
	assert.DeepEqual(t, slices.Collect(g.All()), []string{"a", "b", "c"})
}

func TestGroupCursor_Reset(t *testing.T) {
	cur := newGroup(0, []int{1}).Cursor()
	assert.ErrorIs(t, cur.Reset(), ErrUnsupportedOperation)
}

func TestGroup_Values(t *testing.T) {
	g := newGroup(0, []int{1, 2})
	v := g.Values()
	v[0] = 100
	assert.DeepEqual(t, g.Values(), []int{1, 2})
}

func TestGroup_AllEarlyBreak(t *testing.T) {
	g := newGroup(0, []int{1, 2, 3})
	var got []int
	for v := range g.All() {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	assert.DeepEqual(t, got, []int{1, 2})
	assert.DeepEqual(t, slices.Collect(g.All()), []int{1, 2, 3})
}
