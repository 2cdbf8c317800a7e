package bptree

import (
	"cmp"
	"fmt"

	"github.com/kvbush/bplustree/common"
)

// Tree is an in-memory B+ tree of order d: the tree owns the root, each
// internal node exclusively owns its children, and leaves hold
// non-owning sibling links that form the in-order traversal chain.
//
// Tree is not safe for concurrent use; every public method runs to
// completion synchronously and there is no locking layered in. Callers
// needing concurrent access should wrap a Tree with their own exclusive
// lock.
type Tree[K cmp.Ordered, V any] struct {
	root    *node[K, V]
	order   int
	version uint64
}

// New constructs an empty tree with fan-out bound d. d must be at least
// 3; New returns ErrInvalidOrder otherwise.
func New[K cmp.Ordered, V any](d int) (*Tree[K, V], error) {
	if d < 3 {
		return nil, fmt.Errorf("%w: order must be >= 3, got %d", ErrInvalidOrder, d)
	}
	return &Tree[K, V]{order: d}, nil
}

// Get returns the value associated with key, and whether it was found.
// Get never mutates the tree and runs in O(log n).
func (t *Tree[K, V]) Get(key K) (V, bool) {
	if t.root == nil {
		var zero V
		return zero, false
	}
	leaf := t.descendToLeaf(key)
	idx, ok := leaf.lookup(key)
	if !ok {
		var zero V
		return zero, false
	}
	return leaf.values[idx], true
}

// Insert sets key to value. If key is already present its value is
// replaced. Insert never fails.
func (t *Tree[K, V]) Insert(key K, value V) {
	if t.root == nil {
		t.root = newLeaf[K, V](t.order)
	}
	leaf := t.descendToLeaf(key)
	idx, exists := leaf.lookup(key)
	t.version++

	if exists {
		leaf.values[idx] = value
		return
	}

	leaf.insertAt(idx, key, value)
	if leaf.overflowing() {
		t.splitAndPushUp(leaf)
	}
}

// Remove deletes key from the tree. It returns ErrNotFound if key is
// absent.
func (t *Tree[K, V]) Remove(key K) error {
	if t.root == nil {
		return fmt.Errorf("%w: %v", ErrNotFound, key)
	}

	leaf := t.descendToLeaf(key)
	idx, ok := leaf.lookup(key)
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotFound, key)
	}

	removedMin := idx == 0
	leaf.eraseAt(idx)
	t.version++

	t.rebalance(leaf)

	if removedMin && !t.root.isLeaf() {
		// Borrow/merge only repairs the one separator it directly
		// touches; an ancestor further up may still hold the removed
		// key as a separator if the affected leaf was the leftmost
		// descendant of that ancestor's right subtree. Descend again
		// by the removed key (the tree is now structurally rebalanced,
		// so no node along the way is transiently empty) and repair
		// any separator still equal to the removed key.
		t.refreshSeparatorsOnPath(key)
	}
	return nil
}

// descendToLeaf walks from the root to the leaf that would contain key.
func (t *Tree[K, V]) descendToLeaf(key K) *node[K, V] {
	n := t.root
	for !n.isLeaf() {
		n, _ = n.route(key)
	}
	return n
}

// refreshSeparatorsOnPath retraces the root-to-leaf path that removed
// once routed through, repairing every separator still equal to removed
// along the way: a separator must equal the minimum key of its right
// subtree, and that minimum changed when removed was deleted. Each node
// is refreshed before it is routed through, so a separator that was just
// corrected (now greater than removed) sends the descent to its left;
// nothing is missed by that, because removed was the minimum of the
// right subtree and so is not a separator anywhere inside it.
func (t *Tree[K, V]) refreshSeparatorsOnPath(removed K) {
	n := t.root
	for !n.isLeaf() {
		n.refreshSeparatorFor(removed)
		n, _ = n.route(removed)
	}
}

// splitAndPushUp splits n (which has just overflowed) and threads the
// resulting separator up through ancestors, splitting each in turn
// until an ancestor remains non-full or a new root is created.
func (t *Tree[K, V]) splitAndPushUp(n *node[K, V]) {
	for {
		parent := n.parent

		var sep K
		var left, right *node[K, V]
		if n.isLeaf() {
			sep, left, right = n.splitLeaf()
		} else {
			sep, left, right = n.splitInternal()
		}

		if parent == nil {
			newRoot := newInternal[K, V](t.order)
			newRoot.keys = append(newRoot.keys, sep)
			newRoot.children = append(newRoot.children, left, right)
			left.parent = newRoot
			right.parent = newRoot
			t.root = newRoot
			return
		}

		idx := parent.indexOfChild(right)
		common.Assert(idx >= 0, "splitAndPushUp: split node not found among parent's children")
		parent.insertSeparator(idx, sep, left, right)

		if !parent.overflowing() {
			return
		}
		n = parent
	}
}

// rebalance walks upward from an underflowing node, borrowing or
// merging with a same-parent sibling at each level, stopping once a
// level is no longer underflowing or the root is reached. It finishes
// by collapsing an internal root that has been reduced to zero keys.
func (t *Tree[K, V]) rebalance(n *node[K, V]) {
	for n != t.root && n.underflowing() {
		parent := n.parent
		idx := parent.indexOfChild(n)
		common.Assert(idx >= 0, "rebalance: node not found among parent's children")

		var left, right *node[K, V]
		if idx+1 < len(parent.children) {
			right = parent.children[idx+1]
		}
		if idx > 0 {
			left = parent.children[idx-1]
		}

		switch {
		case right != nil && right.lendable():
			t.borrowFromRight(n, right)
		case right != nil:
			t.mergeWithRight(n, right)
		case left != nil && left.lendable():
			t.borrowFromLeft(n, left)
		default:
			common.Assert(left != nil, "rebalance: non-root node has no same-parent sibling")
			t.mergeIntoLeft(n, left)
		}

		if !parent.underflowing() {
			break
		}
		n = parent
	}

	t.collapseRootIfNeeded()
}

func (t *Tree[K, V]) borrowFromRight(n, right *node[K, V]) {
	if n.isLeaf() {
		n.leafBorrowFromRight(right)
	} else {
		n.internalBorrowFromRight(right)
	}
}

func (t *Tree[K, V]) borrowFromLeft(n, left *node[K, V]) {
	if n.isLeaf() {
		n.leafBorrowFromLeft(left)
	} else {
		n.internalBorrowFromLeft(left)
	}
}

func (t *Tree[K, V]) mergeWithRight(n, right *node[K, V]) {
	if n.isLeaf() {
		n.leafMergeWithRight(right)
	} else {
		n.internalMergeWithRight(right)
	}
}

func (t *Tree[K, V]) mergeIntoLeft(n, left *node[K, V]) {
	if n.isLeaf() {
		n.leafMergeIntoLeft(left)
	} else {
		n.internalMergeIntoLeft(left)
	}
}

// collapseRootIfNeeded replaces an internal root holding zero keys with
// its single remaining child.
func (t *Tree[K, V]) collapseRootIfNeeded() {
	for t.root != nil && !t.root.isLeaf() && len(t.root.keys) == 0 {
		common.Assert(len(t.root.children) == 1,
			"collapseRootIfNeeded: zero-key internal root must have exactly 1 child, got %d",
			len(t.root.children))
		t.root = t.root.children[0]
		t.root.parent = nil
	}
}

// Len returns the number of key/value pairs currently stored. It is an
// O(n) walk over every entry, not an O(1) counter.
func (t *Tree[K, V]) Len() int {
	n := 0
	for c := t.Walk(); c.Valid(); c.Next() {
		n++
	}
	return n
}
