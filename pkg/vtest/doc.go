// Package vtest provides testing helpers for slider trees.
//
// The helpers work on plain vdom nodes, so any package above vdom and
// render can use them in its tests without a server or a browser.
//
// # Firing Events
//
// Handlers registered on a node are called directly:
//
//	vtest.Fire(t, handle, "mousedown", &vdom.Event{ClientX: 40})
//	vtest.Change(t, input, "25")
//
// Fire fails the test when the node has no handler for the event, which
// catches a handler that was never wired.
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, root, "slider__handle")
//	vtest.ExpectAttribute(t, root, "type", "checkbox")
//
// # Quiet Logging
//
// Logger returns a logger that drops every record, for constructors that
// take one.
package vtest
