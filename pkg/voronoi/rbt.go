package voronoi

// nodeID indexes a slot in the rbt arena.
type nodeID int32

const nilNode nodeID = -1

type rbtNode[T any] struct {
	value    T
	left     nodeID
	right    nodeID
	parent   nodeID
	previous nodeID
	next     nodeID
	red      bool
	live     bool
}

// rbt is a red-black tree kept in an arena of indexed nodes. The tree has no
// key of its own: callers choose the position of a new node through
// insertSuccessor, and in-order neighbours are threaded through previous/next.
// Freed slots are recycled, so a nodeID is only meaningful while live.
type rbt[T any] struct {
	nodes []rbtNode[T]
	free  []nodeID
	root  nodeID
	size  int
}

func newRBT[T any]() rbt[T] {
	return rbt[T]{root: nilNode}
}

func (t *rbt[T]) reset() {
	t.nodes = t.nodes[:0]
	t.free = t.free[:0]
	t.root = nilNode
	t.size = 0
}

func (t *rbt[T]) alloc(v T) nodeID {
	node := rbtNode[T]{
		value:    v,
		left:     nilNode,
		right:    nilNode,
		parent:   nilNode,
		previous: nilNode,
		next:     nilNode,
		red:      true,
		live:     true,
	}
	if k := len(t.free); k > 0 {
		id := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[id] = node
		return id
	}
	t.nodes = append(t.nodes, node)
	return nodeID(len(t.nodes) - 1)
}

func (t *rbt[T]) release(id nodeID) {
	var zero T
	t.nodes[id] = rbtNode[T]{
		value:    zero,
		left:     nilNode,
		right:    nilNode,
		parent:   nilNode,
		previous: nilNode,
		next:     nilNode,
	}
	t.free = append(t.free, id)
}

// value returns a pointer into the arena; it is invalidated by the next insert.
func (t *rbt[T]) value(id nodeID) *T {
	return &t.nodes[id].value
}

func (t *rbt[T]) isLive(id nodeID) bool {
	return id >= 0 && int(id) < len(t.nodes) && t.nodes[id].live
}

func (t *rbt[T]) isRed(id nodeID) bool {
	return id != nilNode && t.nodes[id].red
}

func (t *rbt[T]) prev(id nodeID) nodeID  { return t.nodes[id].previous }
func (t *rbt[T]) next(id nodeID) nodeID  { return t.nodes[id].next }
func (t *rbt[T]) left(id nodeID) nodeID  { return t.nodes[id].left }
func (t *rbt[T]) right(id nodeID) nodeID { return t.nodes[id].right }

// insertSuccessor inserts v right after node in in-order sequence, or as the
// first element when node is nilNode.
func (t *rbt[T]) insertSuccessor(node nodeID, v T) nodeID {
	successor := t.alloc(v)
	s := &t.nodes[successor]

	var parent nodeID
	if node != nilNode {
		n := &t.nodes[node]
		s.previous = node
		s.next = n.next
		if n.next != nilNode {
			t.nodes[n.next].previous = successor
		}
		n.next = successor
		if n.right != nilNode {
			// first node of the right subtree
			node = n.right
			for t.nodes[node].left != nilNode {
				node = t.nodes[node].left
			}
			t.nodes[node].left = successor
		} else {
			n.right = successor
		}
		parent = node
	} else if t.root != nilNode {
		node = t.first(t.root)
		s.next = node
		t.nodes[node].previous = successor
		t.nodes[node].left = successor
		parent = node
	} else {
		t.root = successor
		parent = nilNode
	}
	s.parent = parent
	t.size++

	node = successor
	for parent != nilNode && t.nodes[parent].red {
		grandpa := t.nodes[parent].parent
		if parent == t.nodes[grandpa].left {
			uncle := t.nodes[grandpa].right
			if t.isRed(uncle) {
				t.nodes[parent].red = false
				t.nodes[uncle].red = false
				t.nodes[grandpa].red = true
				node = grandpa
			} else {
				if node == t.nodes[parent].right {
					t.rotateLeft(parent)
					node = parent
					parent = t.nodes[node].parent
				}
				t.nodes[parent].red = false
				t.nodes[grandpa].red = true
				t.rotateRight(grandpa)
			}
		} else {
			uncle := t.nodes[grandpa].left
			if t.isRed(uncle) {
				t.nodes[parent].red = false
				t.nodes[uncle].red = false
				t.nodes[grandpa].red = true
				node = grandpa
			} else {
				if node == t.nodes[parent].left {
					t.rotateRight(parent)
					node = parent
					parent = t.nodes[node].parent
				}
				t.nodes[parent].red = false
				t.nodes[grandpa].red = true
				t.rotateLeft(grandpa)
			}
		}
		parent = t.nodes[node].parent
	}
	t.nodes[t.root].red = false
	return successor
}

func (t *rbt[T]) removeNode(node nodeID) {
	removed := node
	n := &t.nodes[node]
	if n.next != nilNode {
		t.nodes[n.next].previous = n.previous
	}
	if n.previous != nilNode {
		t.nodes[n.previous].next = n.next
	}

	parent := n.parent
	left := n.left
	right := n.right
	wasRed := n.red

	var next nodeID
	if left == nilNode {
		next = right
	} else if right == nilNode {
		next = left
	} else {
		next = t.first(right)
	}
	if parent != nilNode {
		if t.nodes[parent].left == node {
			t.nodes[parent].left = next
		} else {
			t.nodes[parent].right = next
		}
	} else {
		t.root = next
	}

	var isRed bool
	if left != nilNode && right != nilNode {
		nx := &t.nodes[next]
		isRed = nx.red
		nx.red = wasRed
		nx.left = left
		t.nodes[left].parent = next
		if next != right {
			parent = nx.parent
			nx.parent = t.nodes[removed].parent
			node = nx.right
			t.nodes[parent].left = node
			nx.right = right
			t.nodes[right].parent = next
		} else {
			nx.parent = parent
			parent = next
			node = nx.right
		}
	} else {
		isRed = wasRed
		node = next
	}
	if node != nilNode {
		t.nodes[node].parent = parent
	}
	t.release(removed)
	t.size--

	if isRed {
		return
	}
	if node != nilNode && t.nodes[node].red {
		t.nodes[node].red = false
		return
	}

	var sibling nodeID
	for node != t.root {
		if node == t.nodes[parent].left {
			sibling = t.nodes[parent].right
			if t.nodes[sibling].red {
				t.nodes[sibling].red = false
				t.nodes[parent].red = true
				t.rotateLeft(parent)
				sibling = t.nodes[parent].right
			}
			if t.isRed(t.nodes[sibling].left) || t.isRed(t.nodes[sibling].right) {
				if !t.isRed(t.nodes[sibling].right) {
					t.nodes[t.nodes[sibling].left].red = false
					t.nodes[sibling].red = true
					t.rotateRight(sibling)
					sibling = t.nodes[parent].right
				}
				t.nodes[sibling].red = t.nodes[parent].red
				t.nodes[parent].red = false
				t.nodes[t.nodes[sibling].right].red = false
				t.rotateLeft(parent)
				node = t.root
				break
			}
		} else {
			sibling = t.nodes[parent].left
			if t.nodes[sibling].red {
				t.nodes[sibling].red = false
				t.nodes[parent].red = true
				t.rotateRight(parent)
				sibling = t.nodes[parent].left
			}
			if t.isRed(t.nodes[sibling].left) || t.isRed(t.nodes[sibling].right) {
				if !t.isRed(t.nodes[sibling].left) {
					t.nodes[t.nodes[sibling].right].red = false
					t.nodes[sibling].red = true
					t.rotateLeft(sibling)
					sibling = t.nodes[parent].left
				}
				t.nodes[sibling].red = t.nodes[parent].red
				t.nodes[parent].red = false
				t.nodes[t.nodes[sibling].left].red = false
				t.rotateRight(parent)
				node = t.root
				break
			}
		}
		t.nodes[sibling].red = true
		node = parent
		parent = t.nodes[parent].parent
		if t.nodes[node].red {
			break
		}
	}
	if node != nilNode {
		t.nodes[node].red = false
	}
}

func (t *rbt[T]) rotateLeft(p nodeID) {
	q := t.nodes[p].right
	parent := t.nodes[p].parent
	if parent != nilNode {
		if t.nodes[parent].left == p {
			t.nodes[parent].left = q
		} else {
			t.nodes[parent].right = q
		}
	} else {
		t.root = q
	}
	t.nodes[q].parent = parent
	t.nodes[p].parent = q
	t.nodes[p].right = t.nodes[q].left
	if r := t.nodes[p].right; r != nilNode {
		t.nodes[r].parent = p
	}
	t.nodes[q].left = p
}

func (t *rbt[T]) rotateRight(p nodeID) {
	q := t.nodes[p].left
	parent := t.nodes[p].parent
	if parent != nilNode {
		if t.nodes[parent].left == p {
			t.nodes[parent].left = q
		} else {
			t.nodes[parent].right = q
		}
	} else {
		t.root = q
	}
	t.nodes[q].parent = parent
	t.nodes[p].parent = q
	t.nodes[p].left = t.nodes[q].right
	if l := t.nodes[p].left; l != nilNode {
		t.nodes[l].parent = p
	}
	t.nodes[q].right = p
}

func (t *rbt[T]) first(node nodeID) nodeID {
	for t.nodes[node].left != nilNode {
		node = t.nodes[node].left
	}
	return node
}

// head returns the in-order first node of the whole tree.
func (t *rbt[T]) head() nodeID {
	if t.root == nilNode {
		return nilNode
	}
	return t.first(t.root)
}
