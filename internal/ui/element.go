package ui

import "github.com/go-gl/mathgl/mgl32"

// Action is what a clickable element does when pressed.
type Action string

const (
	ActionNone       Action = ""
	ActionPlay       Action = "play"
	ActionOptions    Action = "options"
	ActionQuit       Action = "quit"
	ActionBack       Action = "back"
	ActionSkyboxNext Action = "skybox_next"
	ActionSkyboxPrev Action = "skybox_prev"
)

var (
	DefaultNormal = mgl32.Vec4{1, 1, 1, 1}
	DefaultHover  = mgl32.Vec4{1, 0.8, 0.2, 1}
)

// Element is a clickable rectangle bound to a text field. Bounds is
// (x, y, w, h) in window pixels; negative x or y anchor from the right or
// bottom edge like TextField positions.
type Element struct {
	Bounds    mgl32.Vec4
	TextField int
	Action    Action

	Normal mgl32.Vec4
	Hover  mgl32.Vec4
}

// Rect resolves Bounds for a window of the given size.
func (e Element) Rect(resolution mgl32.Vec2) mgl32.Vec4 {
	r := e.Bounds
	if r[0] < 0 {
		r[0] += resolution[0]
	}
	if r[1] < 0 {
		r[1] += resolution[1]
	}
	return r
}

// Contains reports whether p lies inside the element, edges included.
func (e Element) Contains(p, resolution mgl32.Vec2) bool {
	r := e.Rect(resolution)
	return p[0] >= r[0] && p[0] <= r[0]+r[2] && p[1] >= r[1] && p[1] <= r[1]+r[3]
}

// Hit returns the index of the first element containing p, or -1.
func Hit(elems []Element, p, resolution mgl32.Vec2) int {
	for i, e := range elems {
		if e.Contains(p, resolution) {
			return i
		}
	}
	return -1
}

// Highlight recolours every element's text field: the active one with its
// hover colour, the rest with their normal colour. Elements bound to a
// missing field are skipped.
func Highlight(elems []Element, fields []TextField, active int) {
	for i, e := range elems {
		if e.TextField < 0 || e.TextField >= len(fields) {
			continue
		}
		c := e.Normal
		if i == active {
			c = e.Hover
		}
		if c == (mgl32.Vec4{}) {
			c = DefaultNormal
			if i == active {
				c = DefaultHover
			}
		}
		fields[e.TextField].Color = c
	}
}
