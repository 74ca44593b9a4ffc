package vdom

import "strings"

// Classes returns the element's classes in order.
func Classes(node *VNode) []string {
	if node == nil || node.Props == nil {
		return nil
	}
	s, _ := node.Props["class"].(string)
	return splitClasses(s)
}

// HasClass reports whether the element carries class.
func HasClass(node *VNode, class string) bool {
	for _, c := range Classes(node) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends classes the element does not already carry.
func AddClass(node *VNode, classes ...string) {
	if node == nil || node.Kind != KindElement {
		return
	}
	current := Classes(node)
	changed := false
	for _, c := range classes {
		if c == "" || containsString(current, c) {
			continue
		}
		current = append(current, c)
		changed = true
	}
	if changed {
		setClasses(node, current)
	}
}

// RemoveClass removes classes from the element.
func RemoveClass(node *VNode, classes ...string) {
	current := Classes(node)
	if len(current) == 0 {
		return
	}
	kept := current[:0]
	for _, c := range current {
		if !containsString(classes, c) {
			kept = append(kept, c)
		}
	}
	if len(kept) != len(current) {
		setClasses(node, kept)
	}
}

// ToggleClass adds class when on is true and removes it otherwise.
func ToggleClass(node *VNode, class string, on bool) {
	if on {
		AddClass(node, class)
	} else {
		RemoveClass(node, class)
	}
}

func setClasses(node *VNode, classes []string) {
	if node.Props == nil {
		node.Props = make(Props)
	}
	if len(classes) == 0 {
		delete(node.Props, "class")
		return
	}
	node.Props["class"] = strings.Join(classes, " ")
}

func splitClasses(s string) []string {
	return strings.Fields(s)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type styleDecl struct {
	prop  string
	value string
}

func parseStyle(s string) []styleDecl {
	var decls []styleDecl
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		decls = append(decls, styleDecl{prop: prop, value: strings.TrimSpace(value)})
	}
	return decls
}

func formatStyle(decls []styleDecl) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.prop + ": " + d.value
	}
	return strings.Join(parts, "; ")
}

// Style returns the value of one inline style property.
func Style(node *VNode, prop string) string {
	if node == nil || node.Props == nil {
		return ""
	}
	s, _ := node.Props["style"].(string)
	for _, d := range parseStyle(s) {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

// SetStyle sets one inline style property, keeping the others in place.
// An empty value removes the property.
func SetStyle(node *VNode, prop, value string) {
	if node == nil || node.Kind != KindElement {
		return
	}
	if value == "" {
		RemoveStyle(node, prop)
		return
	}
	if node.Props == nil {
		node.Props = make(Props)
	}
	s, _ := node.Props["style"].(string)
	decls := parseStyle(s)
	for i := range decls {
		if decls[i].prop == prop {
			decls[i].value = value
			node.Props["style"] = formatStyle(decls)
			return
		}
	}
	node.Props["style"] = formatStyle(append(decls, styleDecl{prop: prop, value: value}))
}

// RemoveStyle removes one inline style property.
func RemoveStyle(node *VNode, prop string) {
	if node == nil || node.Props == nil {
		return
	}
	s, _ := node.Props["style"].(string)
	decls := parseStyle(s)
	kept := decls[:0]
	for _, d := range decls {
		if d.prop != prop {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		delete(node.Props, "style")
		return
	}
	node.Props["style"] = formatStyle(kept)
}

// SetAttr sets an attribute value.
func SetAttr(node *VNode, key string, value any) {
	if node == nil || node.Kind != KindElement {
		return
	}
	if node.Props == nil {
		node.Props = make(Props)
	}
	node.Props[key] = value
}

// RemoveAttr deletes an attribute.
func RemoveAttr(node *VNode, key string) {
	if node == nil || node.Props == nil {
		return
	}
	delete(node.Props, key)
}

// GetAttr returns an attribute value, or nil.
func GetAttr(node *VNode, key string) any {
	if node == nil || node.Props == nil {
		return nil
	}
	return node.Props[key]
}

// SetText replaces the element's content with a single text node.
func SetText(node *VNode, text string) {
	if node == nil || node.Kind != KindElement {
		return
	}
	if len(node.Children) == 1 && node.Children[0].Kind == KindText {
		node.Children[0].Text = text
		return
	}
	node.Children = []*VNode{Text(text)}
}

// TextContent concatenates all text below node.
func TextContent(node *VNode) string {
	if node == nil {
		return ""
	}
	if node.Kind == KindText {
		return node.Text
	}
	var b strings.Builder
	for _, c := range node.Children {
		b.WriteString(TextContent(c))
	}
	return b.String()
}

// IndexOf returns the position of child in parent, or -1.
func IndexOf(parent, child *VNode) int {
	if parent == nil {
		return -1
	}
	for i, c := range parent.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// Contains reports whether child is a direct child of parent.
func Contains(parent, child *VNode) bool {
	return IndexOf(parent, child) >= 0
}

// AppendChild attaches child at the end of parent. Attaching a node that is
// already a child is a no-op.
func AppendChild(parent, child *VNode) {
	if parent == nil || child == nil || Contains(parent, child) {
		return
	}
	parent.Children = append(parent.Children, child)
}

// InsertChild attaches child at index, clamped to the valid range.
func InsertChild(parent *VNode, index int, child *VNode) {
	if parent == nil || child == nil || Contains(parent, child) {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(parent.Children) {
		index = len(parent.Children)
	}
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[index+1:], parent.Children[index:])
	parent.Children[index] = child
}

// RemoveChild detaches child from parent and reports whether it was there.
func RemoveChild(parent, child *VNode) bool {
	i := IndexOf(parent, child)
	if i < 0 {
		return false
	}
	parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
	return true
}

// Walk visits node and its descendants depth first. Returning false from
// fn stops the walk.
func Walk(node *VNode, fn func(*VNode) bool) bool {
	if node == nil {
		return true
	}
	if !fn(node) {
		return false
	}
	for _, c := range node.Children {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

// FindByClass returns the first element carrying class, or nil.
func FindByClass(root *VNode, class string) *VNode {
	var found *VNode
	Walk(root, func(n *VNode) bool {
		if HasClass(n, class) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAllByClass returns every element carrying class in document order.
func FindAllByClass(root *VNode, class string) []*VNode {
	var found []*VNode
	Walk(root, func(n *VNode) bool {
		if HasClass(n, class) {
			found = append(found, n)
		}
		return true
	})
	return found
}
