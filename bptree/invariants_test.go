package bptree

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// checkInvariants walks the whole tree and asserts every structural
// invariant from the package's design: ordering, separator correctness,
// balance, occupancy, and parent/chain consistency. It is shared by the
// property-style tests below instead of re-deriving each check inline.
func checkInvariants[K cmp.Ordered, V any](t *testing.T, tr *Tree[K, V]) {
	t.Helper()

	if tr.root == nil {
		return
	}

	depth := -1
	total := 0
	var walk func(n *node[K, V], level int, parent *node[K, V])
	walk = func(n *node[K, V], level int, parent *node[K, V]) {
		assert.True(t, parent == n.parent, "parent pointer mismatch")

		if n != tr.root {
			assert.GreaterOrEqual(t, len(n.keys), n.minKeys(), "non-root node underflowing")
		}
		assert.Less(t, len(n.keys), n.d, "node at or above capacity")

		for i := 1; i < len(n.keys); i++ {
			assert.True(t, n.keys[i-1] < n.keys[i], "keys not strictly ascending")
		}

		if n.isLeaf() {
			if depth == -1 {
				depth = level
			}
			assert.Equal(t, depth, level, "leaves at different depths")
			assert.Equal(t, len(n.keys), len(n.values), "leaf key/value length mismatch")
			total += len(n.keys)
			return
		}

		assert.Equal(t, len(n.keys)+1, len(n.children), "internal node children/key mismatch")
		for i, child := range n.children {
			if i > 0 {
				assert.Equal(t, n.keys[i-1], child.minKey(), "separator does not equal right subtree minimum")
			}
			walk(child, level+1, n)
		}
	}
	walk(tr.root, 0, nil)

	// Chain consistency: forward traversal reversed equals backward
	// traversal, and its length equals the total key count.
	leftmost := tr.root
	for !leftmost.isLeaf() {
		leftmost = leftmost.children[0]
	}
	rightmost := tr.root
	for !rightmost.isLeaf() {
		rightmost = rightmost.children[len(rightmost.children)-1]
	}

	var forward []K
	for n := leftmost; n != nil; n = n.next {
		forward = append(forward, n.keys...)
	}
	var backward []K
	for n := rightmost; n != nil; n = n.prev {
		for i := len(n.keys) - 1; i >= 0; i-- {
			backward = append(backward, n.keys[i])
		}
	}
	assert.Equal(t, len(forward), len(backward), "chain length mismatch forward vs backward")
	assert.Equal(t, total, len(forward), "chain length does not equal total key count")
	for i := range forward {
		assert.Equal(t, forward[i], backward[len(backward)-1-i], "chain traversal mismatch at %d", i)
	}
}
