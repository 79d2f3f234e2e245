package xiter

import (
	"slices"
	"testing"

	"gotest.tools/v3/assert"
)

func TestZipLongest_Normal(t *testing.T) {
	seqA := SeqOf(1, 2)
	seqB := SeqOf("a", "b", "c")
	got := slices.Collect(ZipLongest(seqA, seqB))
	want := []Zipped[int, string]{
		{V1: 1, OK1: true, V2: "a", OK2: true},
		{V1: 2, OK1: true, V2: "b", OK2: true},
		{V1: 0, OK1: false, V2: "c", OK2: true},
	}
	assert.DeepEqual(t, got, want)
}

func TestZipLongest_BothEmpty(t *testing.T) {
	got := slices.Collect(ZipLongest(SeqOf[int](), SeqOf[string]()))
	assert.Equal(t, len(got), 0)
}

func TestZipLongest_LeftLonger(t *testing.T) {
	got := slices.Collect(ZipLongest(SeqOf(1, 2, 3), SeqOf("a")))
	want := []Zipped[int, string]{
		{V1: 1, OK1: true, V2: "a", OK2: true},
		{V1: 2, OK1: true, V2: "", OK2: false},
		{V1: 3, OK1: true, V2: "", OK2: false},
	}
	assert.DeepEqual(t, got, want)
}

func TestZipLongest_EarlyBreak(t *testing.T) {
	count := 0
	for range ZipLongest(SeqOf(1, 2, 3), SeqOf("a", "b", "c")) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, count, 2)
}
