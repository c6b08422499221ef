package pqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPopOrderIsAscending(t *testing.T) {
	q := New[float64, string]()
	q.Push(3.0, "c")
	q.Push(1.0, "a")
	q.Push(2.0, "b")

	v, k, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, 1.0, k)

	v, _, _ = q.Pop()
	assert.Equal(t, "b", v)

	v, _, _ = q.Pop()
	assert.Equal(t, "c", v)

	_, _, ok = q.Pop()
	assert.False(t, ok)
}

func TestLenTracksPushesAndPops(t *testing.T) {
	q := New[int, int]()
	assert.Equal(t, 0, q.Len())
	q.Push(1, 100)
	q.Push(2, 200)
	assert.Equal(t, 2, q.Len())
	q.Pop()
	assert.Equal(t, 1, q.Len())
}

func TestItemsSnapshotsAll(t *testing.T) {
	q := New[int, string]()
	q.Push(5, "x")
	q.Push(1, "y")
	items := q.Items()
	assert.Len(t, items, 2)
}
