package render

import (
	"image"

	"github.com/pkg/errors"
)

// DiffResult summarizes a pixel comparison between two images.
type DiffResult struct {
	Different int
	Total     int
	// MaxDelta is the largest 8-bit channel difference found.
	MaxDelta int
	// Changed is the bounding rectangle of the differing pixels; empty when
	// the images match.
	Changed image.Rectangle
}

// Match reports whether no pixel differs beyond the tolerance.
func (d DiffResult) Match() bool {
	return d.Different == 0
}

// Diff compares a and b pixel by pixel. A pixel differs when one of its
// 8-bit channels differs by more than tolerance.
func Diff(a, b image.Image, tolerance int) (DiffResult, error) {
	bounds := a.Bounds()
	if bounds != b.Bounds() {
		return DiffResult{}, errors.Errorf("image bounds differ: %v and %v", bounds, b.Bounds())
	}

	res := DiffResult{Total: bounds.Dx() * bounds.Dy()}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			d := channelDelta(a, b, x, y)
			res.MaxDelta = max(res.MaxDelta, d)
			if d <= tolerance {
				continue
			}
			res.Different++
			res.Changed = res.Changed.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return res, nil
}

func channelDelta(a, b image.Image, x, y int) int {
	ar, ag, ab, aa := a.At(x, y).RGBA()
	br, bg, bb, ba := b.At(x, y).RGBA()
	return max(
		absDelta(ar, br),
		absDelta(ag, bg),
		absDelta(ab, bb),
		absDelta(aa, ba),
	)
}

func absDelta(a, b uint32) int {
	d := int(a>>8) - int(b>>8)
	if d < 0 {
		return -d
	}
	return d
}
