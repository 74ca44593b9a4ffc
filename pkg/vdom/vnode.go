package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <span>, etc.
	KindText                 // Plain text node
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// VNode is a node of the retained tree.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes and event handlers
	Children []*VNode // Child nodes
	Key      string   // Reconciliation key
	Text     string   // For KindText
	HID      string   // Hydration ID
}

// Props holds attributes and event handlers.
type Props map[string]any

// IsInteractive returns true if this node has event handlers.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key, value := range v.Props {
		if _, ok := value.(Handler); ok && strings.HasPrefix(key, "on") {
			return true
		}
	}
	return false
}

// Handler returns the handler registered for an event type such as
// "click", or nil.
func (v *VNode) Handler(eventType string) Handler {
	if v == nil || v.Props == nil {
		return nil
	}
	h, _ := v.Props["on"+eventType].(Handler)
	return h
}

// Clone returns a deep copy of the subtree. Handlers are shared.
func (v *VNode) Clone() *VNode {
	if v == nil {
		return nil
	}
	c := &VNode{
		Kind: v.Kind,
		Tag:  v.Tag,
		Key:  v.Key,
		Text: v.Text,
		HID:  v.HID,
	}
	if v.Props != nil {
		c.Props = make(Props, len(v.Props))
		for k, val := range v.Props {
			c.Props[k] = val
		}
	}
	if v.Children != nil {
		c.Children = make([]*VNode, len(v.Children))
		for i, child := range v.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "onmousedown", etc.
	Handler Handler
}
