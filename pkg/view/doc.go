// Package view draws a slider into a vdom tree and turns pointer input
// into normalized handle positions.
//
// The view never writes configuration. It is told what to show through
// its Update methods, each called with a model.Settings snapshot, and it
// reports gestures as positions in [0, 1] through Gestures. All clamping
// and step snapping happens in the model.
//
// Structural nodes keep their identity for the lifetime of the view and
// are attached or detached as settings change; each carries a stable key
// so a diff of the tree targets the right browser element.
package view
