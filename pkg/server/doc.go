// Package server serves the demo page and keeps every open page in sync
// with its own slider over a websocket.
//
// Each connection gets a Session holding a private demo.Panel. The session
// runs a single event loop: browser events, config broadcasts and writes
// to the socket all happen on that goroutine, so the slider core never
// sees concurrent access. After every event the session diffs the tree it
// last sent against the live tree and ships the resulting patches as
// JSON:
//
//	{"patches":[{"op":"SetAttr","hid":"h12","key":"style","value":"left: 40%"}]}
//
// Inserted and replaced nodes carry their rendered HTML in "html".
//
// Routes:
//
//	GET /         demo page
//	GET /ws       live session
//	GET /metrics  prometheus metrics
//	GET /healthz  liveness probe
package server
