package vdom

// Handler receives a browser event dispatched to a node.
type Handler func(*Event)

// Rect is an element's bounding box in client coordinates.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Event is a browser event as forwarded by the thin client.
type Event struct {
	// HID of the node the handler is registered on.
	HID string `json:"hid"`

	// Type is the event name without the "on" prefix.
	Type string `json:"type"`

	// Target is the HID of the element the event originated on. For
	// bubbling events it may be a descendant of HID.
	Target string `json:"target,omitempty"`

	ClientX float64 `json:"clientX,omitempty"`
	ClientY float64 `json:"clientY,omitempty"`

	// Rect is the bounding box of the HID element.
	Rect Rect `json:"rect"`

	// Value and Checked carry form state for change and input events.
	Value   string `json:"value,omitempty"`
	Checked bool   `json:"checked,omitempty"`
}
