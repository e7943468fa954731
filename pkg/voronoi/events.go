package voronoi

// eventKind orders events that share both sweep coordinate and x: a Delete
// fires before an Insert at the same point.
type eventKind uint8

const (
	deleteEvent eventKind = iota
	insertEvent
)

func (k eventKind) String() string {
	if k == deleteEvent {
		return "delete"
	}
	return "insert"
}

// event is the tagged union processed by the sweep. Insert carries a site,
// Delete carries the squeezed arc, the sites of the triple it was derived
// from and the circle through them.
type event struct {
	kind eventKind
	seq  uint64
	// x breaks ties between events with equal y
	x float64
	y float64

	site Vertex

	arc    nodeID
	triple [3]Vertex
	center Vertex
	radius float64
}

func (e *event) before(o *event) bool {
	if e.y != o.y {
		return e.y < o.y
	}
	if e.x != o.x {
		return e.x < o.x
	}
	if e.kind != o.kind {
		return e.kind < o.kind
	}
	return e.seq < o.seq
}

// eventHandle identifies one queued event. seq is never reused, so comparing
// it is enough to tell whether a reference still points at the same event.
type eventHandle struct {
	seq  uint64
	node nodeID
}

func (h eventHandle) valid() bool { return h.seq != 0 }

// eventQueue is a priority queue ordered by (y, x, kind, seq). It lives in the
// same arena tree as the beach line; the in-order head is the next event.
type eventQueue struct {
	tree rbt[event]
	seq  uint64
}

func newEventQueue() eventQueue {
	return eventQueue{tree: newRBT[event]()}
}

func (q *eventQueue) reset() {
	q.tree.reset()
	q.seq = 0
}

func (q *eventQueue) len() int { return q.tree.size }

func (q *eventQueue) empty() bool { return q.tree.size == 0 }

func (q *eventQueue) push(e event) eventHandle {
	q.seq++
	e.seq = q.seq

	predecessor := nilNode
	node := q.tree.root
	for node != nilNode {
		if e.before(q.tree.value(node)) {
			if l := q.tree.left(node); l != nilNode {
				node = l
			} else {
				predecessor = q.tree.prev(node)
				break
			}
		} else {
			if r := q.tree.right(node); r != nilNode {
				node = r
			} else {
				predecessor = node
				break
			}
		}
	}
	id := q.tree.insertSuccessor(predecessor, e)
	return eventHandle{seq: e.seq, node: id}
}

func (q *eventQueue) peek() (event, bool) {
	head := q.tree.head()
	if head == nilNode {
		return event{}, false
	}
	return *q.tree.value(head), true
}

func (q *eventQueue) pop() (event, bool) {
	head := q.tree.head()
	if head == nilNode {
		return event{}, false
	}
	e := *q.tree.value(head)
	q.tree.removeNode(head)
	return e, true
}

// remove drops the event referenced by h if it is still queued.
func (q *eventQueue) remove(h eventHandle) bool {
	if !h.valid() || !q.tree.isLive(h.node) || q.tree.value(h.node).seq != h.seq {
		return false
	}
	q.tree.removeNode(h.node)
	return true
}
