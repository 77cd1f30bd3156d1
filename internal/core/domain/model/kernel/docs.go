// Package kernel provides the shared value objects of the storehouse domain.
//
// UUID is the opaque identity of persisted aggregates. The zero UUID means
// "not persisted yet"; repositories assign a fresh one on insert.
package kernel
