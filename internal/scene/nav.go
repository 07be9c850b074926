package scene

import (
	"block-breaker-3d/internal/input"
	"block-breaker-3d/internal/ui"

	"github.com/go-gl/mathgl/mgl32"
)

// navigator tracks which element is selected by mouse hover or keyboard
// and reports the action fired this frame.
type navigator struct {
	selected int
}

func newNavigator() navigator { return navigator{selected: -1} }

func (n *navigator) update(in *input.State, elems []ui.Element, fields []ui.TextField, resolution mgl32.Vec2) ui.Action {
	count := len(elems)
	if count == 0 {
		return ui.ActionNone
	}

	hovered := ui.Hit(elems, in.Mouse(), resolution)
	if hovered >= 0 && in.Mouse() != in.PrevMouse() {
		n.selected = hovered
	}
	switch {
	case in.JustPressed(input.ActionNavDown):
		n.selected = (n.selected + 1) % count
	case in.JustPressed(input.ActionNavUp):
		if n.selected <= 0 {
			n.selected = count - 1
		} else {
			n.selected--
		}
	}
	ui.Highlight(elems, fields, n.selected)

	if in.JustPressed(input.ActionMouseLeft) && hovered >= 0 {
		n.selected = hovered
		return elems[hovered].Action
	}
	if in.JustPressed(input.ActionConfirm) && n.selected >= 0 && n.selected < count {
		return elems[n.selected].Action
	}
	return ui.ActionNone
}
