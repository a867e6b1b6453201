// Package crosslight provides the control core of a manual intersection
// signal: per-approach lane-grouping modes, light toggles with a derived
// pedestrian signal, and publishing of the aggregate state to a host.
//
// The host network, clock and rendering are reached only through the
// capability interfaces bundled in Host. Everything in this package runs
// synchronously on the caller's goroutine.
package crosslight
