// Package vdom provides the retained node tree the slider view draws into.
//
// The tree lives on the server. Views build it once with the element
// factories and then mutate it in place with the helpers in mutate.go.
// A live session keeps a Clone of the tree as it was last sent to the
// browser and turns the difference into patches with Diff.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("slider"), Key("root"),
//	    Span(Class("slider__handle-label"), Text("20")),
//	    OnMouseDown(handler),
//	)
//
// # Diffing
//
// Diff compares two trees and returns a slice of Patch operations. Keyed
// reconciliation is used when children have keys; nodes that come and go
// (handles, ticks, labels) must carry one so hydration IDs stay attached
// to the right element.
//
// # Hydration
//
// Every element gets a hydration ID (data-hid) linking the server node to
// the browser element. AssignAllHIDs numbers a fresh tree and
// AssignMissingHIDs numbers nodes inserted since.
package vdom
