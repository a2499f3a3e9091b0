// Package virtual implements the in-memory filesystem backend.
//
// State is a strict tree of nodes behind one reader-writer lock. Reads
// return clones of the matched subtree so callers never hold a live
// reference into the tree. Every mutation is followed by a full-state
// write-through to the snapshot file; the snapshot store serializes under
// its own lock, so concurrent writers converge to a consistent final
// snapshot on disk.
package virtual
