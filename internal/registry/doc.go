// Package registry discovers installed extensions and holds the current
// snapshot of their descriptors. Snapshots are immutable and replaced
// wholesale through an atomic pointer, so listing never takes a lock and
// never observes a partially rebuilt registry.
package registry
