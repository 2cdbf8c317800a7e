package bptree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalkOrder(t *testing.T) {
	tr, err := New[int, string](3)
	assert.NoError(t, err)

	for i := 19; i >= 0; i-- {
		tr.Insert(i, fmt.Sprintf("value for %d", i))
	}

	c := tr.Walk()
	assert.NotNil(t, c)

	var values []string
	for c.Valid() {
		values = append(values, c.Value())
		c.Next()
	}

	assert.Len(t, values, 20)
	for i := 0; i < 20; i++ {
		assert.Equal(t, fmt.Sprintf("value for %d", i), values[i])
	}
	assert.NoError(t, c.Err())
}

func TestSeek(t *testing.T) {
	tr, err := New[int, string](3)
	assert.NoError(t, err)

	for i := 0; i < 10; i++ {
		tr.Insert(i, fmt.Sprintf("value for %d", i))
	}

	c := tr.Seek(5)
	assert.True(t, c.Valid())
	assert.Equal(t, 5, c.Key())

	// Seeking a key between entries lands on the next one.
	tr2, err := New[int, string](3)
	assert.NoError(t, err)
	for _, k := range []int{0, 2, 4, 6, 8} {
		tr2.Insert(k, fmt.Sprintf("v%d", k))
	}
	c2 := tr2.Seek(3)
	assert.True(t, c2.Valid())
	assert.Equal(t, 4, c2.Key())
}

func TestSeekFirstAndLast(t *testing.T) {
	tr, err := New[int, int](3)
	assert.NoError(t, err)

	for i := 0; i < 50; i++ {
		tr.Insert(i, i)
	}

	first := tr.SeekFirst()
	assert.True(t, first.Valid())
	assert.Equal(t, 0, first.Key())

	last := tr.SeekLast()
	assert.True(t, last.Valid())
	assert.Equal(t, 49, last.Key())
}

func TestCursorPrev(t *testing.T) {
	tr, err := New[int, int](3)
	assert.NoError(t, err)

	for i := 0; i < 30; i++ {
		tr.Insert(i, i)
	}

	c := tr.SeekLast()
	var got []int
	for c.Valid() {
		got = append(got, c.Key())
		c.Prev()
	}

	assert.Len(t, got, 30)
	for i, k := range got {
		assert.Equal(t, 29-i, k)
	}
}

func TestCursorStaleOnMutation(t *testing.T) {
	tr, err := New[int, int](3)
	assert.NoError(t, err)

	for i := 0; i < 20; i++ {
		tr.Insert(i, i)
	}

	c := tr.Walk()
	assert.True(t, c.Valid())

	tr.Insert(1000, 1000)

	assert.False(t, c.Next())
	assert.ErrorIs(t, c.Err(), ErrStaleCursor)
}

func TestAllRangeFunc(t *testing.T) {
	tr, err := New[int, int](4)
	assert.NoError(t, err)

	for i := 0; i < 10; i++ {
		tr.Insert(i, i*i)
	}

	var keys []int
	stoppedEarly := false
	for k, v := range tr.All() {
		assert.Equal(t, k*k, v)
		keys = append(keys, k)
		if k == 4 {
			stoppedEarly = true
			break
		}
	}
	assert.True(t, stoppedEarly)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, keys)
}

func TestWalkEmptyTree(t *testing.T) {
	tr, err := New[int, int](3)
	assert.NoError(t, err)

	c := tr.Walk()
	assert.False(t, c.Valid())

	count := 0
	for range tr.All() {
		count++
	}
	assert.Equal(t, 0, count)
}
