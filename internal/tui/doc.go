// Package tui drives a slider from the terminal.
//
// The model owns a slider.Slider built on a detached container and talks
// to it only through the facade, the same way the live server's demo
// panel does. Arrow keys move the active handle by one step; the handle
// validators decide where it lands.
package tui
