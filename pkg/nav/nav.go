// Package nav finds spatial neighbors among the children of a container,
// for arrow-key navigation inside widgets.
//
// Every query reads the geometry afresh; nothing is cached between calls.
package nav

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"zenkai/pkg/css"
	"zenkai/pkg/html"
)

// Rect is a border box in viewport coordinates.
type Rect struct {
	Top, Right, Bottom, Left float64
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Edges are the box model insets of an element.
type Edges struct {
	Margin  css.BoxEdge
	Border  css.BoxEdge
	Padding css.BoxEdge
}

// Geometry answers layout questions about nodes of one document.
type Geometry interface {
	BoundingClientRect(n *html.Node) Rect
	Edges(n *html.Node) Edges
	IsHidden(n *html.Node) bool
}

// Direction of travel.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

var (
	// ErrNotElement is returned when a source or container is nil or not an
	// element.
	ErrNotElement = errors.New("nav: not an element")
	// ErrDirection is returned for a direction outside Up..Right.
	ErrDirection = errors.New("nav: unknown direction")
)

// ParseDirection accepts up/down/left/right and top/bottom, case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "top":
		return Up, nil
	case "down", "bottom":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, errors.Wrapf(ErrDirection, "%q", s)
}

const (
	// edgeTolerance absorbs sub-pixel rounding in the "already at the edge"
	// test.
	edgeTolerance = 2.0
	// sideTolerance lets touching boxes count as being on the correct side.
	sideTolerance = 1.0
	// BadgeClass marks decorative children that are never navigation targets.
	BadgeClass = "badge"
)

func checkElement(n *html.Node, name string) error {
	if !n.IsElement() || n.TagName == "document" {
		return errors.Wrapf(ErrNotElement, "%s", name)
	}
	return nil
}

func validDirection(dir Direction) error {
	if dir < Up || dir > Right {
		return errors.Wrapf(ErrDirection, "%d", int(dir))
	}
	return nil
}

// Closest returns the direct child of container nearest to source in dir.
// With relative set, a source already at the container's edge in dir has no
// neighbor. A nil node with a nil error means no child qualifies.
//
// Candidates skip source, hidden children and children with the badge
// class. The winner has the smallest gap along dir, then the smallest
// perpendicular offset, then comes first in document order.
func Closest(g Geometry, source, container *html.Node, dir Direction, relative bool) (*html.Node, error) {
	return ClosestMatching(g, source, container, dir, relative, nil)
}

// ClosestMatching is Closest restricted to the children accepted by keep.
// A nil keep accepts every child.
func ClosestMatching(g Geometry, source, container *html.Node, dir Direction, relative bool, keep func(*html.Node) bool) (*html.Node, error) {
	if err := checkElement(source, "source"); err != nil {
		return nil, err
	}
	if err := checkElement(container, "container"); err != nil {
		return nil, err
	}
	if err := validDirection(dir); err != nil {
		return nil, err
	}

	if relative && atEdge(g, source, container, dir) {
		return nil, nil
	}

	src := g.BoundingClientRect(source)
	var best *html.Node
	bestPrimary, bestSecond := math.Inf(1), math.Inf(1)
	for _, cand := range candidates(g, container, keep) {
		if cand == source {
			continue
		}
		r := g.BoundingClientRect(cand)
		primary, secondary, ok := distance(src, r, dir)
		if !ok {
			continue
		}
		if primary < bestPrimary || (primary == bestPrimary && secondary < bestSecond) {
			best, bestPrimary, bestSecond = cand, primary, secondary
		}
	}
	return best, nil
}

// distance measures cand from src along dir. ok is false when cand is not
// on the dir side of src.
func distance(src, cand Rect, dir Direction) (primary, secondary float64, ok bool) {
	switch dir {
	case Up:
		if cand.Bottom > src.Top+sideTolerance {
			return 0, 0, false
		}
		return math.Max(src.Top-cand.Bottom, 0), math.Abs(cand.Left - src.Left), true
	case Down:
		if cand.Top < src.Bottom-sideTolerance {
			return 0, 0, false
		}
		return math.Max(cand.Top-src.Bottom, 0), math.Abs(cand.Left - src.Left), true
	case Left:
		if cand.Right > src.Left+sideTolerance {
			return 0, 0, false
		}
		return math.Max(src.Left-cand.Right, 0), math.Abs(cand.Top - src.Top), true
	case Right:
		if cand.Left < src.Right-sideTolerance {
			return 0, 0, false
		}
		return math.Max(cand.Left-src.Right, 0), math.Abs(cand.Top - src.Top), true
	}
	return 0, 0, false
}

func candidates(g Geometry, container *html.Node, keep func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for _, c := range container.ElementChildren() {
		if g.IsHidden(c) || hasClass(c, BadgeClass) {
			continue
		}
		if keep != nil && !keep(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func hasClass(n *html.Node, class string) bool {
	v, _ := n.GetAttribute("class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func ClosestTop(g Geometry, source, container *html.Node, relative ...bool) (*html.Node, error) {
	return Closest(g, source, container, Up, relativeOr(relative))
}

func ClosestBottom(g Geometry, source, container *html.Node, relative ...bool) (*html.Node, error) {
	return Closest(g, source, container, Down, relativeOr(relative))
}

func ClosestLeft(g Geometry, source, container *html.Node, relative ...bool) (*html.Node, error) {
	return Closest(g, source, container, Left, relativeOr(relative))
}

func ClosestRight(g Geometry, source, container *html.Node, relative ...bool) (*html.Node, error) {
	return Closest(g, source, container, Right, relativeOr(relative))
}

func relativeOr(v []bool) bool {
	if len(v) == 0 {
		return true
	}
	return v[0]
}
