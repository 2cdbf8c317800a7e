package bptree

import (
	"sort"

	"github.com/kvbush/bplustree/common"
)

// lookupSeparator performs a sorted search for key among an internal
// node's routing keys. Mirrors leaf lookup but over keys only.
func (n *node[K, V]) lookupSeparator(key K) (int, bool) {
	common.Assert(!n.isLeaf(), "lookupSeparator called on a leaf node")
	i := sort.Search(len(n.keys), func(i int) bool { return !(n.keys[i] < key) })
	if i < len(n.keys) && n.keys[i] == key {
		return i, true
	}
	return i, false
}

// refreshSeparatorFor repairs routing after a deletion: if removed
// appears as a separator in n, overwrite it with the current minimum key
// of the subtree to its right.
func (n *node[K, V]) refreshSeparatorFor(removed K) {
	common.Assert(!n.isLeaf(), "refreshSeparatorFor called on a leaf node")
	i, ok := n.lookupSeparator(removed)
	if !ok {
		return
	}
	n.keys[i] = n.children[i+1].minKey()
}

// insertSeparator replaces the single child at idx (which must be
// right) with the pair [left, right] and inserts sep at the
// corresponding key position. Used by split push-up: idx is the
// position the overflowing node occupied before it was split.
func (n *node[K, V]) insertSeparator(idx int, sep K, left, right *node[K, V]) {
	common.Assert(!n.isLeaf(), "insertSeparator called on a leaf node")
	common.Assert(n.children[idx] == right, "insertSeparator: idx does not reference right child")

	var zero K
	n.keys = append(n.keys, zero)
	copy(n.keys[idx+1:], n.keys[idx:])
	n.keys[idx] = sep

	n.children = append(n.children, nil)
	copy(n.children[idx+2:], n.children[idx+1:])
	n.children[idx] = left
	n.children[idx+1] = right

	left.parent = n
	right.parent = n
}

// splitInternal splits a full internal node: with d keys
// and d+1 children, mid = d/2. The new left node keeps keys [0, mid)
// and children [0, mid]; n is retained as the right node, keeping keys
// [mid+1, d) and children [mid+1, d+1]. The key at mid is promoted and
// retained in neither node.
func (n *node[K, V]) splitInternal() (sep K, left, right *node[K, V]) {
	common.Assert(!n.isLeaf(), "splitInternal called on a leaf node")

	mid := n.d / 2
	left = newInternal[K, V](n.d)
	left.keys = append(left.keys, n.keys[:mid]...)
	left.children = append(left.children, n.children[:mid+1]...)
	for _, c := range left.children {
		c.parent = left
	}

	sep = n.keys[mid]

	tailKeys := append([]K(nil), n.keys[mid+1:]...)
	tailChildren := append([]*node[K, V](nil), n.children[mid+1:]...)
	n.keys = tailKeys
	n.children = tailChildren
	right = n

	return sep, left, right
}

// internalBorrowFromRight rotates the parent separator down into n,
// moves right's leftmost child across, and promotes right's former
// first key into the parent.
func (n *node[K, V]) internalBorrowFromRight(right *node[K, V]) {
	common.Assert(!n.isLeaf() && !right.isLeaf(), "internalBorrowFromRight requires internal nodes")
	common.Assert(len(right.keys) > 0, "internalBorrowFromRight: right sibling is empty")

	parent := n.parent
	common.Assert(parent != nil, "internalBorrowFromRight requires a parent")
	j := parent.indexOfChild(right)
	common.Assert(j > 0, "internalBorrowFromRight: right sibling not found in parent")
	sepIdx := j - 1

	n.keys = append(n.keys, parent.keys[sepIdx])
	moved := right.children[0]
	n.children = append(n.children, moved)
	moved.parent = n

	parent.keys[sepIdx] = right.keys[0]

	right.keys = right.keys[1:]
	right.children = right.children[1:]
}

// internalBorrowFromLeft is the mirror of internalBorrowFromRight,
// operating on left's rightmost key/child.
func (n *node[K, V]) internalBorrowFromLeft(left *node[K, V]) {
	common.Assert(!n.isLeaf() && !left.isLeaf(), "internalBorrowFromLeft requires internal nodes")
	common.Assert(len(left.keys) > 0, "internalBorrowFromLeft: left sibling is empty")

	parent := n.parent
	common.Assert(parent != nil, "internalBorrowFromLeft requires a parent")
	j := parent.indexOfChild(n)
	common.Assert(j > 0, "internalBorrowFromLeft: self not found in parent")
	sepIdx := j - 1

	lastKeyIdx := len(left.keys) - 1
	lastChildIdx := len(left.children) - 1
	moved := left.children[lastChildIdx]

	n.keys = append([]K{parent.keys[sepIdx]}, n.keys...)
	n.children = append([]*node[K, V]{moved}, n.children...)
	moved.parent = n

	parent.keys[sepIdx] = left.keys[lastKeyIdx]

	left.keys = left.keys[:lastKeyIdx]
	left.children = left.children[:lastChildIdx]
}

// internalMergeWithRight absorbs right into n: the parent separator
// between them drops down between the key runs, all of right's children
// are reparented onto n, and the parent loses the separator/child pair.
func (n *node[K, V]) internalMergeWithRight(right *node[K, V]) {
	common.Assert(!n.isLeaf() && !right.isLeaf(), "internalMergeWithRight requires internal nodes")

	parent := n.parent
	common.Assert(parent != nil, "internalMergeWithRight requires a parent")
	j := parent.indexOfChild(right)
	common.Assert(j > 0, "internalMergeWithRight: right sibling not found in parent")
	sep := parent.keys[j-1]

	n.keys = append(n.keys, sep)
	n.keys = append(n.keys, right.keys...)
	n.children = append(n.children, right.children...)
	for _, c := range right.children {
		c.parent = n
	}

	parent.eraseChildAt(j)
}

// internalMergeIntoLeft absorbs n into left: left survives, mirroring
// leafMergeIntoLeft for internal nodes.
func (n *node[K, V]) internalMergeIntoLeft(left *node[K, V]) {
	common.Assert(!n.isLeaf() && !left.isLeaf(), "internalMergeIntoLeft requires internal nodes")

	parent := n.parent
	common.Assert(parent != nil, "internalMergeIntoLeft requires a parent")
	j := parent.indexOfChild(n)
	common.Assert(j > 0, "internalMergeIntoLeft: self not found in parent")
	sep := parent.keys[j-1]

	left.keys = append(left.keys, sep)
	left.keys = append(left.keys, n.keys...)
	left.children = append(left.children, n.children...)
	for _, c := range n.children {
		c.parent = left
	}

	parent.eraseChildAt(j)
}
