package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler Handler) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler Handler) EventHandler { return event("click", handler) }

// OnMouseDown handles mousedown events.
func OnMouseDown(handler Handler) EventHandler { return event("mousedown", handler) }

// OnMouseMove handles mousemove events. The client forwards document-level
// moves to the node while a drag is active.
func OnMouseMove(handler Handler) EventHandler { return event("mousemove", handler) }

// OnMouseUp handles mouseup events.
func OnMouseUp(handler Handler) EventHandler { return event("mouseup", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler Handler) EventHandler { return event("change", handler) }

// OnInput handles input events.
func OnInput(handler Handler) EventHandler { return event("input", handler) }
