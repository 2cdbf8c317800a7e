package bptree

import "errors"

// Tree operations have exactly two user-visible error kinds, and cursors
// add a third for mutation mid-iteration; every other invariant violation
// is an internal assertion (see common.Assert), not a recoverable
// condition.
var (
	// ErrInvalidOrder is returned by New when d < 3.
	ErrInvalidOrder = errors.New("bptree: invalid order")

	// ErrNotFound is returned by Remove when the key is absent.
	ErrNotFound = errors.New("bptree: key not found")

	// ErrStaleCursor is reported by Cursor.Err after the tree has been
	// mutated mid-iteration.
	ErrStaleCursor = errors.New("bptree: cursor invalidated by mutation")
)
