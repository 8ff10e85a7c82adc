package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// ScrollInput accumulates GLFW wheel input between frames. The scroll view
// core has no input surface of its own; a position source like this one
// turns wheel ticks into a scalar position for Engine.SetPosition.
type ScrollInput struct {
	window *glfw.Window
	wheelX float32
	wheelY float32
}

// NewScrollInput installs a scroll callback on the window.
func NewScrollInput(window *glfw.Window) *ScrollInput {
	s := &ScrollInput{window: window}
	window.SetScrollCallback(s.scrollCallback)
	return s
}

func (s *ScrollInput) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	s.wheelX += float32(xoff)
	s.wheelY += float32(yoff)
}

// ConsumeWheel returns the wheel movement accumulated since the last call
// and resets the accumulator. Call once per frame after glfw.PollEvents.
func (s *ScrollInput) ConsumeWheel() (x, y float32) {
	x, y = s.wheelX, s.wheelY
	s.wheelX, s.wheelY = 0, 0
	return x, y
}

// KeyPressed reports whether the given key is currently held.
func (s *ScrollInput) KeyPressed(key glfw.Key) bool {
	return s.window.GetKey(key) == glfw.Press
}
