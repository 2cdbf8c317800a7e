// Package bptree implements an in-memory B+ tree: an ordered
// associative container mapping comparable keys to values. All keys and
// values live in linked leaves; internal nodes hold only routing keys.
package bptree

import (
	"cmp"
	"sort"

	"github.com/kvbush/bplustree/common"
)

// node is the tagged-union node family: internal and leaf nodes share
// the same header (keys, parent, d) and differ only in payload. children
// is nil for a leaf; values/prev/next are nil/zero for an internal node.
// Dispatch on the tag (isLeaf) rather than a dispatch interface, per the
// closed two-variant shape of the tree.
type node[K cmp.Ordered, V any] struct {
	d      int
	keys   []K
	parent *node[K, V]

	// internal payload
	children []*node[K, V]

	// leaf payload
	values     []V
	prev, next *node[K, V]
}

func newLeaf[K cmp.Ordered, V any](d int) *node[K, V] {
	return &node[K, V]{
		d:      d,
		keys:   make([]K, 0, d),
		values: make([]V, 0, d),
	}
}

func newInternal[K cmp.Ordered, V any](d int) *node[K, V] {
	return &node[K, V]{
		d:        d,
		keys:     make([]K, 0, d),
		children: make([]*node[K, V], 0, d+1),
	}
}

func (n *node[K, V]) isLeaf() bool { return n.children == nil }

// overflowing reports the transient state that triggers a split before
// an Insert returns: len(keys) == d.
func (n *node[K, V]) overflowing() bool { return len(n.keys) == n.d }

// minKeys is the occupancy floor for a non-root node: floor(d/2) for
// leaves, ceil(d/2)-1 for internal nodes. The two coincide for odd d;
// for even d the internal floor must be one lower, because an internal
// split of d keys promotes the middle key and leaves the right half
// with ceil(d/2)-1, and because merging two internal nodes pulls the
// separator down with them (a floor(d/2) floor would let a merge reach
// d keys).
func (n *node[K, V]) minKeys() int {
	if n.isLeaf() {
		return n.d / 2
	}
	return (n.d+1)/2 - 1
}

// underflowing reports the transient state that triggers a borrow or
// merge before a Remove returns.
func (n *node[K, V]) underflowing() bool { return len(n.keys) < n.minKeys() }

// lendable reports whether this node can give up one entry to a sibling
// without itself underflowing.
func (n *node[K, V]) lendable() bool { return len(n.keys) > n.minKeys() }

// route returns the child to descend into for key, and that child's
// index among n.children. Uses the upper-bound rule: the
// chosen child is the count of keys <= key, so equal keys route right,
// matching the invariant that a separator equals the minimum of its
// right subtree.
func (n *node[K, V]) route(key K) (*node[K, V], int) {
	common.Assert(!n.isLeaf(), "route called on a leaf node")
	i := sort.Search(len(n.keys), func(i int) bool { return key < n.keys[i] })
	return n.children[i], i
}

// indexOfChild returns the position of child in n.children, or -1 if
// child does not belong to n. d is small so a linear scan is cheap.
func (n *node[K, V]) indexOfChild(child *node[K, V]) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// eraseChildAt removes the child at position j together with the
// separator that routes to it (keys[j-1]), per the merge operations'
// "delete the parent separator that routed to [the absorbed node]".
func (n *node[K, V]) eraseChildAt(j int) {
	common.Assert(!n.isLeaf(), "eraseChildAt called on a leaf node")
	common.Assert(j > 0 && j < len(n.children), "eraseChildAt: index %d out of range", j)
	n.keys = append(n.keys[:j-1], n.keys[j:]...)
	n.children = append(n.children[:j], n.children[j+1:]...)
}

// minKey returns the minimum key of the subtree rooted at n by walking
// the leftmost spine down to a leaf.
func (n *node[K, V]) minKey() K {
	cur := n
	for !cur.isLeaf() {
		cur = cur.children[0]
	}
	common.Assert(len(cur.keys) > 0, "minKey: leftmost leaf has no keys")
	return cur.keys[0]
}
