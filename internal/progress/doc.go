// Package progress implements thread-safe hierarchical progress reporting.
//
// A tree of Nodes aggregates fractional completion upward: leaves Report a
// value, parents Fork scaled children and sum their contributions with a
// lock-free compare-and-swap accumulator. Every committed change produces an
// immutable Snapshot delivered synchronously to the node's observers and then
// propagated to its parent. A Coalescer attached to the root drives a single
// Renderer without ever blocking the reporting goroutines.
package progress
