package view

import (
	"github.com/vango-dev/rangeslider/pkg/vdom"
)

// PressHandle starts dragging a handle. Pressing the right handle outside
// range mode is ignored.
func (v *View) PressHandle(side Side) {
	if side == Right && !v.settings.IsRange {
		return
	}
	v.dragging = true
	v.dragSide = side
	vdom.AddClass(v.root, ClassDragging)
	vdom.AddClass(v.handle(side).node, ClassDragging)
	v.logger.Debug("drag started", "side", side)
}

// Move reports the pointer position for the dragged handle. Without an
// active drag it does nothing.
func (v *View) Move(ev *vdom.Event) {
	if !v.dragging || ev == nil {
		return
	}
	v.emit(v.dragSide, v.PositionOf(ev))
}

// Release ends the current drag.
func (v *View) Release() {
	if !v.dragging {
		return
	}
	v.dragging = false
	vdom.RemoveClass(v.root, ClassDragging)
	vdom.RemoveClass(v.left.node, ClassDragging)
	vdom.RemoveClass(v.right.node, ClassDragging)
	v.logger.Debug("drag ended", "side", v.dragSide)
}

// Dragging returns the handle being dragged, if any.
func (v *View) Dragging() (Side, bool) {
	return v.dragSide, v.dragging
}

// PositionOf converts the pointer coordinates of ev to a track position
// using the track rectangle carried by the event. Vertical tracks are
// measured from the bottom. A zero-length track yields 0.
func (v *View) PositionOf(ev *vdom.Event) float64 {
	r := ev.Rect
	var pos float64
	if v.settings.IsVertical {
		if r.Height <= 0 {
			return 0
		}
		pos = (r.Top + r.Height - ev.ClientY) / r.Height
	} else {
		if r.Width <= 0 {
			return 0
		}
		pos = (ev.ClientX - r.Left) / r.Width
	}
	if pos < 0 {
		return 0
	}
	if pos > 1 {
		return 1
	}
	return pos
}

// onRootClick jumps the handle to a click on the bare track.
func (v *View) onRootClick(ev *vdom.Event) {
	if ev.Target != "" && ev.Target != v.root.HID {
		return
	}
	if v.settings.IsRange {
		return
	}
	v.emit(Left, v.PositionOf(ev))
}

// jump moves the single handle to pos. Range mode ignores clicks.
func (v *View) jump(pos float64) {
	if v.settings.IsRange {
		return
	}
	v.emit(Left, pos)
}

func (v *View) emit(side Side, pos float64) {
	switch side {
	case Left:
		if v.gestures.OnLeft != nil {
			v.gestures.OnLeft(pos)
		}
	case Right:
		if v.gestures.OnRight != nil {
			v.gestures.OnRight(pos)
		}
	}
}

func (v *View) handle(side Side) *handle {
	if side == Right {
		return v.right
	}
	return v.left
}
