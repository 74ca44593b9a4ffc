package vtest

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/rangeslider/pkg/render"
	"github.com/vango-dev/rangeslider/pkg/vdom"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Fire calls the handler node registered for eventType. The event's Type
// and HID are filled in from the arguments.
//
// Example:
//
//	vtest.Fire(t, root, "click", &vdom.Event{ClientX: 10, Rect: rect})
func Fire(t testing.TB, node *vdom.VNode, eventType string, ev *vdom.Event) {
	t.Helper()
	if node == nil {
		t.Fatalf("cannot fire %q on a nil node", eventType)
	}
	h := node.Handler(eventType)
	if h == nil {
		t.Fatalf("<%s class=%q> has no %q handler", node.Tag, node.Props["class"], eventType)
	}
	if ev == nil {
		ev = &vdom.Event{}
	}
	ev.Type = eventType
	ev.HID = node.HID
	h(ev)
}

// Change fires a change event carrying value, as a text input would.
func Change(t testing.TB, input *vdom.VNode, value string) {
	t.Helper()
	Fire(t, input, "change", &vdom.Event{Value: value})
}

// Check fires a change event carrying checked, as a checkbox would.
func Check(t testing.TB, input *vdom.VNode, checked bool) {
	t.Helper()
	Fire(t, input, "change", &vdom.Event{Checked: checked})
}

// CountClass returns how many nodes under root carry class.
func CountClass(root *vdom.VNode, class string) int {
	return len(vdom.FindAllByClass(root, class))
}

// RenderToString renders a VNode to an HTML string for assertions.
//
// Example:
//
//	html := vtest.RenderToString(panel.Root())
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, root, "type", "checkbox")
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
