package view

import (
	"github.com/vango-dev/rangeslider/pkg/vdom"
)

// Side identifies a handle.
type Side uint8

const (
	Left Side = iota
	Right
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

type handle struct {
	side  Side
	node  *vdom.VNode
	label *vdom.VNode
}

func newHandle(side Side, press vdom.Handler) *handle {
	sideClass := ClassHandleLeft
	if side == Right {
		sideClass = ClassHandleRight
	}
	return &handle{
		side: side,
		node: vdom.Div(
			vdom.Class(ClassHandle, sideClass),
			vdom.Key("handle-"+side.String()),
			vdom.OnMouseDown(press),
		),
		label: vdom.Span(vdom.Class(ClassHandleLabel), vdom.Key("label")),
	}
}

func (h *handle) showLabel(on bool) {
	if on {
		vdom.AppendChild(h.node, h.label)
	} else {
		vdom.RemoveChild(h.node, h.label)
	}
}

// shift applies the overlap offset in pixels, or clears it for zero.
func (h *handle) shift(px int, vertical bool) {
	if px == 0 {
		vdom.RemoveStyle(h.node, "transform")
		return
	}
	if vertical {
		// Vertical positions grow upwards.
		vdom.SetStyle(h.node, "transform", translate("Y", -px))
		return
	}
	vdom.SetStyle(h.node, "transform", translate("X", px))
}
