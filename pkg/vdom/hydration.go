package vdom

import (
	"fmt"
	"sync"
)

// HIDGenerator generates unique hydration IDs.
type HIDGenerator struct {
	counter uint32
	mu      sync.Mutex
}

// NewHIDGenerator creates a new HIDGenerator.
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns the next hydration ID (e.g., "h1", "h2", ...).
func (g *HIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("h%d", g.counter)
}

// Reset resets the counter to 0.
func (g *HIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter = 0
}

// Current returns the current counter value without incrementing.
func (g *HIDGenerator) Current() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counter
}

// AssignAllHIDs assigns a fresh HID to every element node.
func AssignAllHIDs(node *VNode, gen *HIDGenerator) {
	Walk(node, func(n *VNode) bool {
		if n.Kind == KindElement {
			n.HID = gen.Next()
		}
		return true
	})
}

// AssignMissingHIDs assigns HIDs to elements that have none, such as nodes
// attached since the last diff. It returns the number assigned.
func AssignMissingHIDs(node *VNode, gen *HIDGenerator) int {
	n := 0
	Walk(node, func(v *VNode) bool {
		if v.Kind == KindElement && v.HID == "" {
			v.HID = gen.Next()
			n++
		}
		return true
	})
	return n
}

// CollectHIDs returns a map of HID to VNode for all nodes with HIDs.
func CollectHIDs(node *VNode) map[string]*VNode {
	result := make(map[string]*VNode)
	Walk(node, func(n *VNode) bool {
		if n.HID != "" {
			result[n.HID] = n
		}
		return true
	})
	return result
}

// FindByHID finds a node by its HID in the tree.
func FindByHID(node *VNode, hid string) *VNode {
	if hid == "" {
		return nil
	}
	var found *VNode
	Walk(node, func(n *VNode) bool {
		if n.HID == hid {
			found = n
			return false
		}
		return true
	})
	return found
}

// CountInteractive returns the number of interactive elements in the tree.
func CountInteractive(node *VNode) int {
	count := 0
	Walk(node, func(n *VNode) bool {
		if n.IsInteractive() {
			count++
		}
		return true
	})
	return count
}
