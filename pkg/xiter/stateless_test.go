package xiter

import (
	"slices"
	"testing"

	"gotest.tools/v3/assert"
)

// Every adapter must yield the same result when ranged over twice.

func TestFilter_Stateless(t *testing.T) {
	f := Filter(slices.Values([]int{1, 2, 3, 4}), func(n int) bool { return n%2 == 0 })
	want := []int{2, 4}
	assert.DeepEqual(t, slices.Collect(f), want)
	assert.DeepEqual(t, slices.Collect(f), want)
}

func TestMap_Stateless(t *testing.T) {
	f := Map(slices.Values([]int{1, 2, 3}), func(n int) int { return n * 2 })
	want := []int{2, 4, 6}
	assert.DeepEqual(t, slices.Collect(f), want)
	assert.DeepEqual(t, slices.Collect(f), want)
}

func TestSeqOf_Stateless(t *testing.T) {
	seq := SeqOf(1, 2, 3)
	want := []int{1, 2, 3}
	assert.DeepEqual(t, slices.Collect(seq), want)
	assert.DeepEqual(t, slices.Collect(seq), want)
}

func TestCompact_Stateless(t *testing.T) {
	c := Compact(slices.Values([]int{1, 1, 2, 2, 3, 1, 1, 4}))
	want := []int{1, 2, 3, 1, 4}
	assert.DeepEqual(t, slices.Collect(c), want)
	assert.DeepEqual(t, slices.Collect(c), want)
}

func TestChunks_Stateless(t *testing.T) {
	chunks, err := ChunkGroupBy(slices.Values([]string{"a", "ab", "b", "ba", "bb", "a"}), firstByte)
	assert.NilError(t, err)
	keys := func() []byte {
		return slices.Collect(Map(chunks.All(), (*Group[byte, string]).Key))
	}
	want := []byte{'a', 'b', 'a'}
	assert.DeepEqual(t, keys(), want)
	assert.DeepEqual(t, keys(), want)
}

func TestZipLongest_Stateless(t *testing.T) {
	z := ZipLongest(slices.Values([]int{1, 2}), slices.Values([]string{"a", "b", "c"}))
	got1 := slices.Collect(z)
	got2 := slices.Collect(z)
	assert.DeepEqual(t, got1, got2)
}

func firstByte(s string) byte { return s[0] }
