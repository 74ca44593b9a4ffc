package vdom

import (
	"strings"
	"testing"
)

func TestClassHelpers(t *testing.T) {
	n := Div(Class("a", "b"))

	AddClass(n, "b", "c")
	if got := strings.Join(Classes(n), " "); got != "a b c" {
		t.Errorf("after AddClass = %q", got)
	}

	RemoveClass(n, "a", "missing")
	if got := strings.Join(Classes(n), " "); got != "b c" {
		t.Errorf("after RemoveClass = %q", got)
	}

	ToggleClass(n, "d", true)
	ToggleClass(n, "b", false)
	if got := strings.Join(Classes(n), " "); got != "c d" {
		t.Errorf("after ToggleClass = %q", got)
	}

	RemoveClass(n, "c", "d")
	if _, ok := n.Props["class"]; ok {
		t.Error("empty class attribute kept")
	}
	if HasClass(n, "c") {
		t.Error("HasClass after removal")
	}
}

func TestStyleHelpers(t *testing.T) {
	n := Div(StyleAttr("left: 10%; top: 0"))

	SetStyle(n, "left", "20%")
	SetStyle(n, "transform", "translateX(4px)")
	if got := n.Props["style"]; got != "left: 20%; top: 0; transform: translateX(4px)" {
		t.Errorf("style = %v", got)
	}
	if got := Style(n, "transform"); got != "translateX(4px)" {
		t.Errorf("Style(transform) = %q", got)
	}

	RemoveStyle(n, "top")
	SetStyle(n, "transform", "")
	if got := n.Props["style"]; got != "left: 20%" {
		t.Errorf("style = %v", got)
	}

	RemoveStyle(n, "left")
	if _, ok := n.Props["style"]; ok {
		t.Error("empty style attribute kept")
	}
	if Style(n, "left") != "" {
		t.Error("Style on removed property")
	}
}

func TestAttrHelpers(t *testing.T) {
	n := Input(Type("checkbox"))
	SetAttr(n, "checked", true)
	if GetAttr(n, "checked") != true {
		t.Error("SetAttr not stored")
	}
	RemoveAttr(n, "checked")
	if GetAttr(n, "checked") != nil {
		t.Error("RemoveAttr kept value")
	}
}

func TestTextHelpers(t *testing.T) {
	n := Span()
	SetText(n, "one")
	first := n.Children[0]
	SetText(n, "two")
	if n.Children[0] != first {
		t.Error("SetText replaced an existing text node")
	}
	if TextContent(n) != "two" {
		t.Errorf("TextContent = %q", TextContent(n))
	}

	m := Div(Span(Text("a")), Text("b"))
	if TextContent(m) != "ab" {
		t.Errorf("TextContent = %q", TextContent(m))
	}
	SetText(m, "c")
	if len(m.Children) != 1 || TextContent(m) != "c" {
		t.Errorf("SetText on mixed children = %+v", m.Children)
	}
}

func TestChildHelpers(t *testing.T) {
	parent := Div()
	a, b, c := Span(Key("a")), Span(Key("b")), Span(Key("c"))

	AppendChild(parent, a)
	AppendChild(parent, c)
	AppendChild(parent, a)
	InsertChild(parent, 1, b)
	if keys(parent) != "a,b,c" {
		t.Errorf("children = %s", keys(parent))
	}

	if !RemoveChild(parent, b) {
		t.Error("RemoveChild = false")
	}
	if RemoveChild(parent, b) {
		t.Error("second RemoveChild = true")
	}
	InsertChild(parent, 99, b)
	InsertChild(parent, 99, b)
	if keys(parent) != "a,c,b" {
		t.Errorf("children = %s", keys(parent))
	}
	if IndexOf(parent, c) != 1 || Contains(parent, Span()) {
		t.Error("IndexOf/Contains mismatch")
	}
}

func TestFindHelpers(t *testing.T) {
	tree := Div(Class("slider"),
		Div(Class("slider__handle", "slider__handle_left")),
		Div(Class("slider__scale-value")),
		Div(Class("slider__scale-value")),
	)
	if FindByClass(tree, "slider__handle_left") != tree.Children[0] {
		t.Error("FindByClass returned wrong node")
	}
	if FindByClass(tree, "missing") != nil {
		t.Error("FindByClass found a missing class")
	}
	if got := len(FindAllByClass(tree, "slider__scale-value")); got != 2 {
		t.Errorf("FindAllByClass = %d, want 2", got)
	}
}

func keys(n *VNode) string {
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = c.Key
	}
	return strings.Join(parts, ",")
}
