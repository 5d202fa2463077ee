// Package generate produces random point sets and query rectangles on an
// integer lattice centred on the origin.
package generate

import (
	"errors"
	"fmt"

	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
	"github.com/valyala/fastrand"
)

var (
	ErrTooManyPoints = errors.New("point count exceeds the lattice size")
	ErrNegativeCount = errors.New("negative point count")
)

// Extent is the half-size of the lattice: coordinates lie in
// [-X, X] x [-Y, Y].
type Extent struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

func (e Extent) cells() int {
	return (2*e.X + 1) * (2*e.Y + 1)
}

// PointSet returns count distinct lattice points.
func PointSet(count int, extent Extent) ([]kdtree.Point, error) {
	if extent.X < 0 || extent.Y < 0 {
		return nil, fmt.Errorf("negative extent %+v", extent)
	}
	if count < 0 {
		return nil, fmt.Errorf("%d points: %w", count, ErrNegativeCount)
	}
	if count > extent.cells() {
		return nil, fmt.Errorf("%d points in %+v: %w", count, extent, ErrTooManyPoints)
	}

	seen := make(map[kdtree.Point]struct{}, count)
	points := make([]kdtree.Point, 0, count)
	for len(points) < count {
		p := kdtree.Point{X: coord(extent.X), Y: coord(extent.Y)}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		points = append(points, p)
	}
	return points, nil
}

// Range returns a random rectangle inside the lattice whose sides are at
// most maxSpan long. A non-positive maxSpan lets the sides grow to the
// whole lattice.
func Range(extent Extent, maxSpan int) geom.Rect {
	a := kdtree.Point{X: coord(extent.X), Y: coord(extent.Y)}
	if maxSpan <= 0 {
		return geom.FromCorners(a, kdtree.Point{X: coord(extent.X), Y: coord(extent.Y)})
	}
	b := kdtree.Point{
		X: clamp(a.X+coord(maxSpan), float64(extent.X)),
		Y: clamp(a.Y+coord(maxSpan), float64(extent.Y)),
	}
	return geom.FromCorners(a, b)
}

func coord(half int) float64 {
	return float64(int(fastrand.Uint32n(uint32(2*half+1))) - half)
}

func clamp(v, half float64) float64 {
	switch {
	case v < -half:
		return -half
	case v > half:
		return half
	}
	return v
}
