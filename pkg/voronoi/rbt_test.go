package voronoi

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// checkRBT verifies the red-black properties, parent links and in-order
// threading, and returns the values in order.
func checkRBT(t *testing.T, tree *rbt[int]) []int {
	t.Helper()

	var walk func(n nodeID) int
	walk = func(n nodeID) int {
		if n == nilNode {
			return 1
		}
		node := tree.nodes[n]
		require.True(t, node.live)
		if node.red {
			require.False(t, tree.isRed(node.left), "red node with red left child")
			require.False(t, tree.isRed(node.right), "red node with red right child")
		}
		if node.left != nilNode {
			require.Equal(t, n, tree.nodes[node.left].parent)
		}
		if node.right != nilNode {
			require.Equal(t, n, tree.nodes[node.right].parent)
		}
		lh, rh := walk(node.left), walk(node.right)
		require.Equal(t, lh, rh, "black height mismatch")
		if node.red {
			return lh
		}
		return lh + 1
	}
	if tree.root != nilNode {
		require.False(t, tree.nodes[tree.root].red)
		require.Equal(t, nilNode, tree.nodes[tree.root].parent)
	}
	walk(tree.root)

	// in-order by structure
	var inorder []int
	var collect func(n nodeID)
	collect = func(n nodeID) {
		if n == nilNode {
			return
		}
		collect(tree.nodes[n].left)
		inorder = append(inorder, tree.nodes[n].value)
		collect(tree.nodes[n].right)
	}
	collect(tree.root)

	// in-order by threading
	var threaded []int
	prev := nilNode
	for n := tree.head(); n != nilNode; n = tree.next(n) {
		require.Equal(t, prev, tree.prev(n))
		threaded = append(threaded, tree.nodes[n].value)
		prev = n
	}
	require.Equal(t, inorder, threaded)
	require.Len(t, threaded, tree.size)
	return threaded
}

func TestRBTInsertSuccessorKeepsOrder(t *testing.T) {
	tree := newRBT[int]()
	var ids []nodeID
	var expected []int

	rng := rand.New(rand.NewSource(7))
	for v := 0; v < 300; v++ {
		// insert after a random existing node, or at the front
		pos := rng.Intn(len(ids) + 1)
		var after nodeID = nilNode
		if pos > 0 {
			after = ids[pos-1]
		}
		id := tree.insertSuccessor(after, v)

		ids = append(ids[:pos], append([]nodeID{id}, ids[pos:]...)...)
		expected = append(expected[:pos], append([]int{v}, expected[pos:]...)...)
	}
	require.Equal(t, expected, checkRBT(t, &tree))
}

func TestRBTRemoveAndRecycle(t *testing.T) {
	tree := newRBT[int]()
	var ids []nodeID
	last := nilNode
	for v := 0; v < 200; v++ {
		last = tree.insertSuccessor(last, v)
		ids = append(ids, last)
	}

	rng := rand.New(rand.NewSource(11))
	expected := make([]int, 200)
	for i := range expected {
		expected[i] = i
	}
	for len(ids) > 50 {
		k := rng.Intn(len(ids))
		tree.removeNode(ids[k])
		require.False(t, tree.isLive(ids[k]))
		ids = append(ids[:k], ids[k+1:]...)
		expected = append(expected[:k], expected[k+1:]...)
	}
	require.Equal(t, expected, checkRBT(t, &tree))

	// freed slots are reused
	slots := len(tree.nodes)
	tree.insertSuccessor(nilNode, -1)
	require.Equal(t, slots, len(tree.nodes))
	require.Equal(t, append([]int{-1}, expected...), checkRBT(t, &tree))

	for tree.head() != nilNode {
		tree.removeNode(tree.head())
	}
	require.Equal(t, nilNode, tree.root)
	require.Zero(t, tree.size)
}
