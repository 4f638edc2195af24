// Package state holds the client-side view of server collections.
//
// ListStore caches the last-fetched collection for one resource and
// replaces it wholesale on every refresh; there is no merging, patching, or
// request sequencing. RefTable joins a foreign-key id against a second
// collection's snapshot to produce display labels, degrading visibly when a
// reference cannot be resolved.
//
// Both types are safe for concurrent use, but neither initiates I/O beyond
// the fetch function a ListStore was constructed with.
package state
