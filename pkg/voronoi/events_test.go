package voronoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueueOrder(t *testing.T) {
	q := newEventQueue()
	q.push(event{kind: insertEvent, x: 3, y: 2})
	q.push(event{kind: insertEvent, x: 1, y: 5})
	q.push(event{kind: deleteEvent, x: 1, y: 2})
	q.push(event{kind: insertEvent, x: -4, y: -1})
	q.push(event{kind: insertEvent, x: 1, y: 2})
	q.push(event{kind: deleteEvent, x: 1, y: 2})
	require.Equal(t, 6, q.len())

	type key struct {
		y, x float64
		kind eventKind
		seq  uint64
	}
	var got []key
	for !q.empty() {
		e, ok := q.pop()
		require.True(t, ok)
		got = append(got, key{e.y, e.x, e.kind, e.seq})
	}
	assert.Equal(t, []key{
		{-1, -4, insertEvent, 4},
		{2, 1, deleteEvent, 3},
		{2, 1, deleteEvent, 6},
		{2, 1, insertEvent, 5},
		{2, 3, insertEvent, 1},
		{5, 1, insertEvent, 2},
	}, got)

	_, ok := q.pop()
	assert.False(t, ok)
	_, ok = q.peek()
	assert.False(t, ok)
}

func TestEventQueueRemove(t *testing.T) {
	q := newEventQueue()
	a := q.push(event{kind: deleteEvent, y: 1})
	b := q.push(event{kind: deleteEvent, y: 2})
	c := q.push(event{kind: deleteEvent, y: 3})

	assert.True(t, q.remove(b))
	assert.False(t, q.remove(b), "second removal")
	assert.False(t, q.remove(eventHandle{}), "zero handle")

	head, ok := q.peek()
	require.True(t, ok)
	assert.Equal(t, a.seq, head.seq)

	_, _ = q.pop()
	assert.False(t, q.remove(a), "popped event")

	// the slot of a is recycled by d; the old handle must not match it
	d := q.push(event{kind: deleteEvent, y: 0})
	assert.Equal(t, a.node, d.node)
	assert.False(t, q.remove(a))
	assert.True(t, q.remove(d))

	head, ok = q.peek()
	require.True(t, ok)
	assert.Equal(t, c.seq, head.seq)
	assert.Equal(t, 1, q.len())
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "delete", deleteEvent.String())
	assert.Equal(t, "insert", insertEvent.String())
}
