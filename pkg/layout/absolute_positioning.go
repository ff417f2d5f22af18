package layout

import "zenkai/pkg/css"

// applyAbsolutePositioning moves an absolutely positioned box, and its
// subtree, to the place its offsets give inside the containing block's
// padding box, following CSS 2.1 §10.3.7 (horizontal) and §10.6.4
// (vertical).
func (e *Engine) applyAbsolutePositioning(box *Box) {
	containingBlock := box.FindContainingBlock()
	offset := box.Style.GetPositionOffset()

	var cbX, cbY, cbWidth, cbHeight float64
	if containingBlock == nil {
		cbWidth = e.viewport.width
		cbHeight = e.viewport.height
	} else {
		cbX = containingBlock.X + containingBlock.Border.Left
		cbY = containingBlock.Y + containingBlock.Border.Top
		cbWidth = containingBlock.Width + containingBlock.Padding.Left + containingBlock.Padding.Right
		cbHeight = containingBlock.Height + containingBlock.Padding.Top + containingBlock.Padding.Bottom
	}

	marginAuto := func(side string) bool {
		v, ok := box.Style.Get("margin-" + side)
		return ok && v == "auto"
	}

	// Both offsets with auto margins centers the box.
	x := box.X
	switch {
	case offset.HasLeft && offset.HasRight && marginAuto("left") && marginAuto("right"):
		free := cbWidth - offset.Left - offset.Right - box.borderWidth()
		box.Margin.Left, box.Margin.Right = 0, 0
		if free > 0 {
			box.Margin.Left, box.Margin.Right = free/2, free/2
		}
		x = cbX + offset.Left + box.Margin.Left
	case offset.HasLeft:
		x = cbX + offset.Left + box.Margin.Left
	case offset.HasRight:
		x = cbX + cbWidth - offset.Right - box.Margin.Right - box.borderWidth()
	}

	y := box.Y
	switch {
	case offset.HasTop && offset.HasBottom && marginAuto("top") && marginAuto("bottom"):
		free := cbHeight - offset.Top - offset.Bottom - box.borderHeight()
		box.Margin.Top, box.Margin.Bottom = 0, 0
		if free > 0 {
			box.Margin.Top, box.Margin.Bottom = free/2, free/2
		}
		y = cbY + offset.Top + box.Margin.Top
	case offset.HasTop:
		y = cbY + offset.Top + box.Margin.Top
	case offset.HasBottom:
		y = cbY + cbHeight - offset.Bottom - box.Margin.Bottom - box.borderHeight()
	}

	shiftBox(box, x-box.X, y-box.Y)
}

// applyRelativePositioning nudges an in-flow box by its offsets without
// affecting the flow around it.
func applyRelativePositioning(box *Box) {
	if box.Position != css.PositionRelative {
		return
	}
	offset := box.Style.GetPositionOffset()
	var dx, dy float64
	switch {
	case offset.HasLeft:
		dx = offset.Left
	case offset.HasRight:
		dx = -offset.Right
	}
	switch {
	case offset.HasTop:
		dy = offset.Top
	case offset.HasBottom:
		dy = -offset.Bottom
	}
	shiftBox(box, dx, dy)
}

// shiftBox translates a box and all of its descendants.
func shiftBox(box *Box, dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	box.X += dx
	box.Y += dy
	for _, c := range box.Children {
		shiftBox(c, dx, dy)
	}
}
