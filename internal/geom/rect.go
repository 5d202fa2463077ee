package geom

import (
	"errors"
	"math"

	"github.com/go-sod/kdrange/pkg/container/kdtree"
)

var ErrInvalidRect = errors.New("rectangle lower corner exceeds upper corner")

// Rect is a closed axis-aligned rectangle.
type Rect struct {
	Lower kdtree.Point `json:"lower" toml:"lower"`
	Upper kdtree.Point `json:"upper" toml:"upper"`
}

// FromCorners returns the rectangle spanned by two arbitrary opposite corners.
func FromCorners(a, b kdtree.Point) Rect {
	return Rect{
		Lower: kdtree.Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Upper: kdtree.Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

func (r Rect) Validate() error {
	if !Finite(r.Lower) || !Finite(r.Upper) {
		return ErrNonFinite
	}
	if r.Lower.X > r.Upper.X || r.Lower.Y > r.Upper.Y {
		return ErrInvalidRect
	}
	return nil
}

func (r Rect) Contains(p kdtree.Point) bool {
	return p.In(r.Lower, r.Upper)
}

func (r Rect) Width() float64 {
	return r.Upper.X - r.Lower.X
}

func (r Rect) Height() float64 {
	return r.Upper.Y - r.Lower.Y
}

// Search runs a range query for r against t.
func (r Rect) Search(t *kdtree.Tree) kdtree.Result {
	return t.Search(r.Lower, r.Upper)
}
