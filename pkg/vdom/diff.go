package vdom

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Diff compares two VNode trees and returns the patches needed to transform prev into next.
// HIDs are copied from matched prev nodes onto next; nodes that only exist
// in next keep whatever HID they have (usually none, see AssignMissingHIDs).
func Diff(prev, next *VNode) []Patch {
	var patches []Patch
	diff(prev, next, "", &patches)
	return patches
}

// diff recursively compares nodes and appends patches.
// parentHID is the HID of the parent element, used for text patches.
func diff(prev, next *VNode, parentHID string, patches *[]Patch) {
	if prev == nil && next == nil {
		return
	}

	// Node added (handled by parent via InsertNode)
	if prev == nil {
		return
	}

	if next == nil {
		*patches = append(*patches, Patch{
			Op:  PatchRemoveNode,
			HID: prev.HID,
		})
		return
	}

	if prev.Kind != next.Kind {
		*patches = append(*patches, Patch{
			Op:   PatchReplaceNode,
			HID:  replaceTarget(prev, parentHID),
			Node: next,
		})
		return
	}

	switch prev.Kind {
	case KindText:
		diffText(prev, next, parentHID, patches)
	case KindElement:
		diffElement(prev, next, patches)
	}
}

// replaceTarget picks the element to replace. Text nodes have no HID of
// their own, so their parent is rewritten instead.
func replaceTarget(prev *VNode, parentHID string) string {
	if prev.HID != "" {
		return prev.HID
	}
	return parentHID
}

// diffText compares text nodes. Text patches target the parent element.
func diffText(prev, next *VNode, parentHID string, patches *[]Patch) {
	next.HID = prev.HID

	if prev.Text != next.Text {
		targetHID := prev.HID
		if targetHID == "" {
			targetHID = parentHID
		}
		if targetHID != "" {
			*patches = append(*patches, Patch{
				Op:    PatchSetText,
				HID:   targetHID,
				Value: next.Text,
			})
		}
	}
}

// diffElement compares element nodes.
func diffElement(prev, next *VNode, patches *[]Patch) {
	if prev.Tag != next.Tag {
		*patches = append(*patches, Patch{
			Op:   PatchReplaceNode,
			HID:  prev.HID,
			Node: next,
		})
		return
	}

	next.HID = prev.HID

	diffProps(prev, next, patches)
	diffChildren(prev, next, prev.HID, patches)
}

// diffProps compares and patches attributes. Form state (value, checked)
// is sent as a property write so it also reaches inputs the user edited.
func diffProps(prev, next *VNode, patches *[]Patch) {
	for _, key := range sortedKeys(prev.Props) {
		if isEventHandler(key) {
			continue
		}
		prevVal := prev.Props[key]
		nextVal, exists := next.Props[key]
		switch {
		case !exists:
			*patches = append(*patches, removeProp(prev, key))
		case !propsEqual(prevVal, nextVal):
			*patches = append(*patches, setProp(prev, key, nextVal))
		}
	}

	for _, key := range sortedKeys(next.Props) {
		if isEventHandler(key) {
			continue
		}
		if _, exists := prev.Props[key]; !exists {
			*patches = append(*patches, setProp(prev, key, next.Props[key]))
		}
	}
}

func setProp(node *VNode, key string, value any) Patch {
	switch {
	case key == "checked":
		return Patch{Op: PatchSetChecked, HID: node.HID, Value: propToString(value)}
	case key == "value" && node.Tag == "input":
		return Patch{Op: PatchSetValue, HID: node.HID, Value: propToString(value)}
	}
	return Patch{Op: PatchSetAttr, HID: node.HID, Key: key, Value: propToString(value)}
}

func removeProp(node *VNode, key string) Patch {
	switch {
	case key == "checked":
		return Patch{Op: PatchSetChecked, HID: node.HID, Value: "false"}
	case key == "value" && node.Tag == "input":
		return Patch{Op: PatchSetValue, HID: node.HID, Value: ""}
	}
	return Patch{Op: PatchRemoveAttr, HID: node.HID, Key: key}
}

// diffChildren compares and patches child nodes.
func diffChildren(prev, next *VNode, parentHID string, patches *[]Patch) {
	if textLayoutChanged(prev.Children, next.Children) {
		*patches = append(*patches, Patch{
			Op:   PatchReplaceNode,
			HID:  prev.HID,
			Node: next,
		})
		return
	}
	if hasKeys(prev.Children) || hasKeys(next.Children) {
		diffKeyedChildren(prev, prev.Children, next.Children, parentHID, patches)
	} else {
		diffUnkeyedChildren(prev, prev.Children, next.Children, parentHID, patches)
	}
}

// diffUnkeyedChildren handles children without keys using positional matching.
func diffUnkeyedChildren(parent *VNode, prev, next []*VNode, parentHID string, patches *[]Patch) {
	// Removals first, from the end, so indices of earlier siblings hold.
	for i := len(prev) - 1; i >= len(next); i-- {
		*patches = append(*patches, removePatch(prev[i]))
	}

	for i, nextChild := range next {
		if i < len(prev) {
			diff(prev[i], nextChild, parentHID, patches)
			continue
		}
		*patches = append(*patches, Patch{
			Op:       PatchInsertNode,
			ParentID: parent.HID,
			Index:    i,
			Node:     nextChild,
		})
	}
}

// textLayoutChanged reports whether text children were added, removed or
// reordered. Text nodes cannot be addressed on their own, so such a change
// rebuilds the parent.
func textLayoutChanged(prev, next []*VNode) bool {
	hasText := false
	for _, c := range prev {
		hasText = hasText || c.Kind == KindText
	}
	for _, c := range next {
		hasText = hasText || c.Kind == KindText
	}
	if !hasText {
		return false
	}
	if len(prev) != len(next) {
		return true
	}
	for i := range prev {
		if prev[i].Kind != next[i].Kind || prev[i].Key != next[i].Key {
			return true
		}
	}
	return false
}

func removePatch(child *VNode) Patch {
	return Patch{Op: PatchRemoveNode, HID: child.HID}
}

// diffKeyedChildren reconciles children by key. Unmatched prev children
// are removed first; the survivors are then walked in next order, moving
// or inserting whatever is not already in place.
func diffKeyedChildren(parent *VNode, prev, next []*VNode, parentHID string, patches *[]Patch) {
	nextKeys := make(map[string]bool, len(next))
	for _, child := range next {
		if key := getKey(child); key != "" {
			nextKeys[key] = true
		}
	}

	prevByKey := make(map[string]*VNode, len(prev))
	current := make([]string, 0, len(prev))
	for _, child := range prev {
		key := getKey(child)
		if key == "" || !nextKeys[key] {
			*patches = append(*patches, removePatch(child))
			continue
		}
		prevByKey[key] = child
		current = append(current, key)
	}

	for nextIdx, nextChild := range next {
		key := getKey(nextChild)
		prevChild, matched := prevByKey[key]
		if key == "" || !matched {
			*patches = append(*patches, Patch{
				Op:       PatchInsertNode,
				ParentID: parent.HID,
				Index:    nextIdx,
				Node:     nextChild,
			})
			current = insertAt(current, nextIdx, "")
			continue
		}

		if nextIdx >= len(current) || current[nextIdx] != key {
			*patches = append(*patches, Patch{
				Op:       PatchMoveNode,
				HID:      prevChild.HID,
				ParentID: parent.HID,
				Index:    nextIdx,
			})
			current = insertAt(removeString(current, key), nextIdx, key)
		}

		diff(prevChild, nextChild, parentHID, patches)
	}
}

func insertAt(list []string, i int, s string) []string {
	if i > len(list) {
		i = len(list)
	}
	list = append(list, "")
	copy(list[i+1:], list[i:])
	list[i] = s
	return list
}

func removeString(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// getKey extracts the key from a node.
func getKey(node *VNode) string {
	if node == nil {
		return ""
	}
	return node.Key
}

// hasKeys returns true if any child has a key.
func hasKeys(children []*VNode) bool {
	for _, child := range children {
		if getKey(child) != "" {
			return true
		}
	}
	return false
}

// isEventHandler returns true if the key is an event handler (starts with "on").
// SECURITY: Case-insensitive to catch onclick, ONCLICK, onClick, OnLoad, etc.
func isEventHandler(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

func sortedKeys(p Props) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// propsEqual compares two prop values for equality.
func propsEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}

// propToString converts a prop value to a string for the patch.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
