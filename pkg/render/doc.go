// Package render writes vdom trees as HTML.
//
// The renderer produces the markup for the initial page load and for nodes
// inserted by a patch. It never assigns hydration IDs itself; the live
// session numbers the tree first, and every element with a HID is written
// with a data-hid attribute so the thin client can address it.
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Full Page Rendering
//
//	err := renderer.RenderPage(w, render.PageData{
//	    Body:  body,
//	    Title: "Range slider",
//	})
//
// The page embeds the slider stylesheet and the thin client script, which
// connects back to PageData.SocketPath.
//
// # Security
//
// All text content and attribute values are escaped.
package render
