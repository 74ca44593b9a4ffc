package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"br":    true,
	"hr":    true,
	"img":   true,
	"input": true,
	"link":  true,
	"meta":  true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, EventHandler, *VNode, []*VNode, string.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			applyAttr(node, v)
		case []Attr:
			for _, a := range v {
				applyAttr(node, a)
			}
		case EventHandler:
			if v.Handler != nil {
				node.Props[v.Event] = v.Handler
			}
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

func applyAttr(node *VNode, a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			node.Key = s
		}
		return
	}
	if a.Key == "class" {
		if s, ok := a.Value.(string); ok {
			AddClass(node, splitClasses(s)...)
		}
		return
	}
	node.Props[a.Key] = a.Value
}

// Div creates a <div> element.
func Div(args ...any) *VNode { return createElement("div", args) }

// Span creates a <span> element.
func Span(args ...any) *VNode { return createElement("span", args) }

// P creates a <p> element.
func P(args ...any) *VNode { return createElement("p", args) }

// Label creates a <label> element.
func Label(args ...any) *VNode { return createElement("label", args) }

// Input creates an <input> element.
func Input(args ...any) *VNode { return createElement("input", args) }

// Form creates a <form> element.
func Form(args ...any) *VNode { return createElement("form", args) }

// Fieldset creates a <fieldset> element.
func Fieldset(args ...any) *VNode { return createElement("fieldset", args) }

// Legend creates a <legend> element.
func Legend(args ...any) *VNode { return createElement("legend", args) }

// Main creates a <main> element.
func Main(args ...any) *VNode { return createElement("main", args) }

// Section creates a <section> element.
func Section(args ...any) *VNode { return createElement("section", args) }

// H1 creates an <h1> element.
func H1(args ...any) *VNode { return createElement("h1", args) }

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}
