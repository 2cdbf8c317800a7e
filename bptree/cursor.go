package bptree

import (
	"cmp"
	"iter"
	"sort"

	"github.com/kvbush/bplustree/common"
)

// Cursor produces a finite, non-restartable, forward-or-backward
// sequence of (key, value) pairs over a leaf chain. Its behavior is
// undefined if the tree is mutated while a Cursor born before the
// mutation is still in use; Next/Prev detect this via the tree's
// mutation counter and fail fast rather than silently misbehave.
type Cursor[K cmp.Ordered, V any] struct {
	tree    *Tree[K, V]
	node    *node[K, V]
	idx     int
	version uint64
	stale   bool
}

// Walk returns a Cursor positioned at the first (smallest-key) entry,
// reached by descending to the leftmost leaf.
func (t *Tree[K, V]) Walk() *Cursor[K, V] {
	c := &Cursor[K, V]{tree: t, version: t.version}
	if t.root == nil {
		return c
	}
	n := t.root
	for !n.isLeaf() {
		n = n.children[0]
	}
	c.node = n
	return c
}

// SeekFirst is an alias for Walk, kept for parity with SeekLast.
func (t *Tree[K, V]) SeekFirst() *Cursor[K, V] { return t.Walk() }

// SeekLast returns a Cursor positioned at the last (largest-key) entry.
func (t *Tree[K, V]) SeekLast() *Cursor[K, V] {
	c := &Cursor[K, V]{tree: t, version: t.version}
	if t.root == nil {
		return c
	}
	n := t.root
	for !n.isLeaf() {
		n = n.children[len(n.children)-1]
	}
	c.node = n
	c.idx = len(n.keys) - 1
	return c
}

// Seek returns a Cursor positioned at the first entry whose key is >=
// key (the entry itself if present, otherwise its immediate successor).
func (t *Tree[K, V]) Seek(key K) *Cursor[K, V] {
	c := &Cursor[K, V]{tree: t, version: t.version}
	if t.root == nil {
		return c
	}
	n := t.descendToLeaf(key)
	idx := sort.Search(len(n.keys), func(i int) bool { return !(n.keys[i] < key) })
	if idx >= len(n.keys) {
		c.node = n.next
		c.idx = 0
		return c
	}
	c.node = n
	c.idx = idx
	return c
}

// Valid reports whether the cursor currently addresses an entry.
func (c *Cursor[K, V]) Valid() bool {
	return !c.stale && c.node != nil && c.idx >= 0 && c.idx < len(c.node.keys)
}

// checkVersion marks the cursor stale if the tree has been mutated since
// it was created, and reports whether the cursor is still usable.
func (c *Cursor[K, V]) checkVersion() bool {
	if c.stale {
		return false
	}
	if c.tree.version != c.version {
		c.stale = true
		return false
	}
	return true
}

// Next advances the cursor to the following entry in ascending key
// order, following the leaf chain across node boundaries. It returns
// false when the sequence is exhausted or the cursor has gone stale.
func (c *Cursor[K, V]) Next() bool {
	if !c.checkVersion() || c.node == nil {
		return false
	}
	if c.idx+1 < len(c.node.keys) {
		c.idx++
		return true
	}
	if c.node.next == nil {
		c.node = nil
		return false
	}
	c.node = c.node.next
	c.idx = 0
	return len(c.node.keys) > 0
}

// Prev moves the cursor to the preceding entry in ascending key order.
func (c *Cursor[K, V]) Prev() bool {
	if !c.checkVersion() || c.node == nil {
		return false
	}
	if c.idx-1 >= 0 {
		c.idx--
		return true
	}
	if c.node.prev == nil {
		c.node = nil
		return false
	}
	c.node = c.node.prev
	c.idx = len(c.node.keys) - 1
	return c.idx >= 0
}

// Key returns the key at the cursor's current position. It panics if
// the cursor is not Valid.
func (c *Cursor[K, V]) Key() K {
	common.Assert(c.Valid(), "Cursor.Key called on an invalid cursor")
	return c.node.keys[c.idx]
}

// Value returns the value at the cursor's current position. It panics
// if the cursor is not Valid.
func (c *Cursor[K, V]) Value() V {
	common.Assert(c.Valid(), "Cursor.Value called on an invalid cursor")
	return c.node.values[c.idx]
}

// Err reports ErrStaleCursor if the tree was mutated while this cursor
// was in use, and nil otherwise.
func (c *Cursor[K, V]) Err() error {
	if c.stale {
		return ErrStaleCursor
	}
	return nil
}

// All returns the ascending (key, value) sequence as a Go range-over-func
// iterator, the idiomatic expression of a forward full-scan.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		c := t.Walk()
		for c.Valid() {
			if !yield(c.Key(), c.Value()) {
				return
			}
			c.Next()
		}
	}
}
