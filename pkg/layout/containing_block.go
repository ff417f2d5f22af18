package layout

import "zenkai/pkg/css"

// FindContainingBlock finds the containing block for a positioned element.
// Absolute boxes use the nearest positioned ancestor, fixed boxes the
// viewport (nil), everything else its parent.
func (b *Box) FindContainingBlock() *Box {
	switch b.Position {
	case css.PositionAbsolute:
		return b.findNearestPositionedAncestor()
	case css.PositionFixed:
		return nil
	default:
		return b.Parent
	}
}

// findNearestPositionedAncestor finds the nearest ancestor with position != static.
// Nil means the initial containing block.
func (b *Box) findNearestPositionedAncestor() *Box {
	for current := b.Parent; current != nil; current = current.Parent {
		if current.IsPositioned() {
			return current
		}
	}
	return nil
}

// IsPositioned returns true if the box has position != static
func (b *Box) IsPositioned() bool {
	return b.Position != "" && b.Position != css.PositionStatic
}
