package nav

import (
	"zenkai/pkg/html"
)

// content returns the container's content box: its border box inset by
// border and padding.
func content(g Geometry, container *html.Node) Rect {
	r := g.BoundingClientRect(container)
	e := g.Edges(container)
	return Rect{
		Top:    r.Top + e.Border.Top + e.Padding.Top,
		Right:  r.Right - e.Border.Right - e.Padding.Right,
		Bottom: r.Bottom - e.Border.Bottom - e.Padding.Bottom,
		Left:   r.Left + e.Border.Left + e.Padding.Left,
	}
}

// outer returns the element's margin box.
func outer(g Geometry, n *html.Node) Rect {
	r := g.BoundingClientRect(n)
	m := g.Edges(n).Margin
	return Rect{
		Top:    r.Top - m.Top,
		Right:  r.Right + m.Right,
		Bottom: r.Bottom + m.Bottom,
		Left:   r.Left - m.Left,
	}
}

func atEdge(g Geometry, source, container *html.Node, dir Direction) bool {
	s, c := outer(g, source), content(g, container)
	switch dir {
	case Up:
		return s.Top-c.Top <= edgeTolerance
	case Down:
		return c.Bottom-s.Bottom <= edgeTolerance
	case Left:
		return s.Left-c.Left <= edgeTolerance
	case Right:
		return c.Right-s.Right <= edgeTolerance
	}
	return false
}

// IsTopElement reports whether source touches the top of container's
// content box, within two pixels.
func IsTopElement(g Geometry, source, container *html.Node) (bool, error) {
	return isAtEdge(g, source, container, Up)
}

func IsBottomElement(g Geometry, source, container *html.Node) (bool, error) {
	return isAtEdge(g, source, container, Down)
}

func IsLeftElement(g Geometry, source, container *html.Node) (bool, error) {
	return isAtEdge(g, source, container, Left)
}

func IsRightElement(g Geometry, source, container *html.Node) (bool, error) {
	return isAtEdge(g, source, container, Right)
}

func isAtEdge(g Geometry, source, container *html.Node, dir Direction) (bool, error) {
	if err := checkElement(source, "source"); err != nil {
		return false, err
	}
	if err := checkElement(container, "container"); err != nil {
		return false, err
	}
	return atEdge(g, source, container, dir), nil
}

// InElement reports whether n's border box lies inside container's.
func InElement(g Geometry, n, container *html.Node) bool {
	if !n.IsElement() || !container.IsElement() {
		return false
	}
	r, c := g.BoundingClientRect(n), g.BoundingClientRect(container)
	return r.Top >= c.Top && r.Left >= c.Left && r.Bottom <= c.Bottom && r.Right <= c.Right
}

// ExtremeElement returns the visible child accepted by keep that lies
// furthest toward edge. Ties break on the perpendicular axis (leftmost for
// Up and Down, topmost for Left and Right), then on document order. A nil
// keep accepts every child.
func ExtremeElement(g Geometry, container *html.Node, edge Direction, keep func(*html.Node) bool) (*html.Node, error) {
	if err := checkElement(container, "container"); err != nil {
		return nil, err
	}
	if err := validDirection(edge); err != nil {
		return nil, err
	}
	var key, tie func(Rect) float64
	switch edge {
	case Up:
		key, tie = func(r Rect) float64 { return r.Top }, func(r Rect) float64 { return r.Left }
	case Down:
		key, tie = func(r Rect) float64 { return -r.Bottom }, func(r Rect) float64 { return r.Left }
	case Left:
		key, tie = func(r Rect) float64 { return r.Left }, func(r Rect) float64 { return r.Top }
	default:
		key, tie = func(r Rect) float64 { return -r.Right }, func(r Rect) float64 { return r.Top }
	}

	var (
		best         *html.Node
		bestK, bestT float64
	)
	for _, c := range candidates(g, container, keep) {
		r := g.BoundingClientRect(c)
		k, t := key(r), tie(r)
		if best == nil || k < bestK || (k == bestK && t < bestT) {
			best, bestK, bestT = c, k, t
		}
	}
	return best, nil
}

// TopElement returns the visible child with the smallest top, leftmost on
// a tie.
func TopElement(g Geometry, container *html.Node) (*html.Node, error) {
	return ExtremeElement(g, container, Up, nil)
}

// BottomElement returns the visible child with the largest bottom,
// leftmost on a tie.
func BottomElement(g Geometry, container *html.Node) (*html.Node, error) {
	return ExtremeElement(g, container, Down, nil)
}

// LeftElement returns the visible child with the smallest left, topmost on
// a tie.
func LeftElement(g Geometry, container *html.Node) (*html.Node, error) {
	return ExtremeElement(g, container, Left, nil)
}

// RightElement returns the visible child with the largest right, topmost
// on a tie.
func RightElement(g Geometry, container *html.Node) (*html.Node, error) {
	return ExtremeElement(g, container, Right, nil)
}
